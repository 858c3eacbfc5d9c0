package models

import (
	"encoding/json"
)

// FlexString decodes a JSON value that the panel returns as either a string
// or a number (port numbers in particular vary by panel version)
type FlexString string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// String returns the underlying value
func (f FlexString) String() string { return string(f) }

// PortMapping is a single assigned port on a game server. Host is the
// player-facing port on the node; Container is the port inside the
// server's sandbox.
type PortMapping struct {
	Host      FlexString `json:"host"`
	Container FlexString `json:"container"`
}

// GameConfig carries the per-game configuration the panel attached to a
// server. Only the ports matter to the bridge.
type GameConfig struct {
	Ports []PortMapping `json:"ports"`
}

// ConfigOverrides is the override envelope around a server's game config
type ConfigOverrides struct {
	GameConfig *GameConfig `json:"gameConfig"`
}

// NodeIPAddress is one entry of a node's IP address list
type NodeIPAddress struct {
	ID       string `json:"_id"`
	External string `json:"external"`
	Internal string `json:"internal"`
}

// Node describes the panel node a game server is placed on
type Node struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	PrimaryIP   string          `json:"primaryIp"`
	IP          string          `json:"ip"`
	IPAddresses []NodeIPAddress `json:"ipAddresses"`
}

// NodeRef decodes the panel's nodeId field, which is either a bare id
// string or the populated node object depending on the endpoint
type NodeRef struct {
	ID   string
	Node *Node
}

// UnmarshalJSON implements json.Unmarshaler
func (n *NodeRef) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*n = NodeRef{}
		return nil
	}
	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*n = NodeRef{ID: id}
		return nil
	}
	var node Node
	if err := json.Unmarshal(data, &node); err != nil {
		return err
	}
	*n = NodeRef{ID: node.ID, Node: &node}
	return nil
}

// GameServer is the panel's view of a provisioned game server
type GameServer struct {
	ServerID        string                 `json:"serverId"`
	Name            string                 `json:"name"`
	Status          string                 `json:"status"`
	Metrics         map[string]interface{} `json:"metrics"`
	GameStatus      map[string]interface{} `json:"gameStatus"`
	AssignedIPID    string                 `json:"assignedIpId"`
	Node            NodeRef                `json:"nodeId"`
	ConfigOverrides *ConfigOverrides       `json:"configOverrides"`
	GameConfig      *GameConfig            `json:"gameConfig"`
}

// Ports returns the server's assigned ports, preferring the override
// config over the native game config
func (s *GameServer) Ports() []PortMapping {
	if s.ConfigOverrides != nil && s.ConfigOverrides.GameConfig != nil && len(s.ConfigOverrides.GameConfig.Ports) > 0 {
		return s.ConfigOverrides.GameConfig.Ports
	}
	if s.GameConfig != nil {
		return s.GameConfig.Ports
	}
	return nil
}

// gameServerEnvelope is the wrapped response shape some panel endpoints use
type gameServerEnvelope struct {
	GameServer *GameServer `json:"gameServer"`
}

// DecodeGameServer parses a panel response body into a GameServer,
// accepting both the enveloped ({"gameServer": {...}}) and flat shapes.
func DecodeGameServer(raw []byte) (*GameServer, error) {
	var envelope gameServerEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.GameServer != nil {
		return envelope.GameServer, nil
	}

	var server GameServer
	if err := json.Unmarshal(raw, &server); err != nil {
		return nil, err
	}
	return &server, nil
}

// ConnectionPort returns the player-facing port of a server's first port
// mapping, preferring the host side over the container side
func (s *GameServer) ConnectionPort() string {
	ports := s.Ports()
	if len(ports) == 0 {
		return ""
	}
	if p := ports[0].Host.String(); p != "" {
		return p
	}
	return ports[0].Container.String()
}
