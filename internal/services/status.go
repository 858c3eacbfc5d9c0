package services

import (
	"context"
	"fmt"

	"github.com/gamecp/provisioner/internal/logger"
	"github.com/gamecp/provisioner/internal/models"
	"github.com/gamecp/provisioner/internal/panel"
	"github.com/gamecp/provisioner/internal/repository"
)

// StatusService fetches live server state and derives the player-facing
// connection address
type StatusService struct {
	gateway  panel.Gateway
	services repository.ServiceRepository
	creds    *CredentialResolver
}

// NewStatusService creates a new status service
func NewStatusService(gateway panel.Gateway, services repository.ServiceRepository, creds *CredentialResolver) *StatusService {
	return &StatusService{
		gateway:  gateway,
		services: services,
		creds:    creds,
	}
}

// FetchStatus retrieves the live state of one game server from the panel
func (s *StatusService) FetchStatus(ctx context.Context, creds models.Credentials, serverID string) (*models.GameServer, error) {
	result, err := s.gateway.Call(ctx, creds, "GET", "game-servers/"+serverID, nil)
	if err != nil {
		return nil, err
	}

	server, err := models.DecodeGameServer(result.Raw)
	if err != nil {
		return nil, fmt.Errorf("unreadable status response for server %s: %w", serverID, err)
	}
	return server, nil
}

// BuildView assembles the status page view for a service: live status,
// metrics, and the derived connection address. A resolved address is
// synced back into the service record so the billing system displays the
// real ip:port; that write is best-effort.
func (s *StatusService) BuildView(ctx context.Context, svc *models.Service, inline models.Credentials, message string) (*models.StatusView, error) {
	creds := s.creds.Resolve(ctx, BundleFromService(svc, inline))
	if !creds.Complete() {
		return nil, ErrCredentialsMissing
	}

	serverID := ResolveServerID(svc)
	if serverID == "" {
		return nil, ErrIdentifierMissing
	}

	server, err := s.FetchStatus(ctx, creds, serverID)
	if err != nil {
		return nil, err
	}

	address := ResolveConnectionAddress(server)
	if address != "" {
		if err := s.services.SetDedicatedIP(ctx, svc.ServiceID, address); err != nil {
			logger.WithFields(map[string]interface{}{
				"service_id": svc.ServiceID,
				"error":      err.Error(),
			}).Warn("Could not sync connection address to service record")
		}
	}

	view := &models.StatusView{
		ServerName:        server.Name,
		ServerID:          serverID,
		Status:            server.Status,
		Metrics:           server.Metrics,
		GameStatus:        server.GameStatus,
		ConnectionAddress: address,
		Message:           message,
	}
	if view.ServerName == "" {
		view.ServerName = defaultProductName
	}
	if view.Status == "" {
		view.Status = "unknown"
	}

	return view, nil
}

// ResolveConnectionAddress derives the player-facing ip:port from live
// server data. The port comes from the first assigned port mapping; the IP
// comes from the node IP entry matching the server's assigned-IP
// reference, preferring the external address, with the node's primary IP
// as fallback. Returns "" unless both parts resolve: a partial address is
// worse than none.
func ResolveConnectionAddress(server *models.GameServer) string {
	port := server.ConnectionPort()

	var ip string
	node := server.Node.Node
	if node != nil && server.AssignedIPID != "" {
		for _, entry := range node.IPAddresses {
			if entry.ID != server.AssignedIPID {
				continue
			}
			if entry.External != "" {
				ip = entry.External
			} else {
				ip = entry.Internal
			}
			break
		}
	}
	if ip == "" && node != nil {
		if node.PrimaryIP != "" {
			ip = node.PrimaryIP
		} else {
			ip = node.IP
		}
	}

	if ip == "" || port == "" {
		return ""
	}
	return ip + ":" + port
}
