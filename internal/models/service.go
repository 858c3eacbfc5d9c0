package models

import "time"

// ClientDetails identifies the billing contact that owns a service
type ClientDetails struct {
	ClientID  string `json:"client_id" dynamodbav:"ClientId"`
	Email     string `json:"email" dynamodbav:"Email"`
	FirstName string `json:"first_name" dynamodbav:"FirstName"`
	LastName  string `json:"last_name" dynamodbav:"LastName"`
}

// Service represents the billing system's service record for a single
// game-server subscription. This is the state every provisioning hook
// starts from.
type Service struct {
	ServiceID     string        `dynamodbav:"ServiceId"`
	ProductID     string        `dynamodbav:"ProductId"`
	PanelServerID string        `dynamodbav:"PanelServerId"` // assigned panel server record, may be empty
	Client        ClientDetails `dynamodbav:"Client"`

	Domain   string `dynamodbav:"Domain"`
	Username string `dynamodbav:"Username"`
	Password string `dynamodbav:"Password"`

	// AssignedIdentifier is the durable panel server id written on
	// provisioning. DedicatedIP carries the legacy identifier on old
	// records and the synced ip:port on current ones.
	AssignedIdentifier string `dynamodbav:"AssignedIdentifier"`
	DedicatedIP        string `dynamodbav:"DedicatedIp"`

	CustomFields  map[string]string `dynamodbav:"CustomFields"`
	ConfigOptions map[string]string `dynamodbav:"ConfigOptions"`

	CreatedAt time.Time `dynamodbav:"CreatedAt"`
	UpdatedAt time.Time `dynamodbav:"UpdatedAt"`
}

// ClientName returns the contact's full name, trimmed of padding when
// either part is empty
func (c ClientDetails) ClientName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}
