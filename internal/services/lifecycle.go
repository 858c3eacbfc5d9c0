package services

import (
	"context"
	"fmt"

	"github.com/gamecp/provisioner/internal/logger"
	"github.com/gamecp/provisioner/internal/models"
	"github.com/gamecp/provisioner/internal/panel"
	"github.com/gamecp/provisioner/internal/repository"
)

// Control actions accepted by the panel
const (
	ActionStart   = "start"
	ActionStop    = "stop"
	ActionRestart = "restart"
)

// LifecycleService issues single control calls against an existing panel
// server identifier. Unlike Create there is no multi-step state machine:
// resolve credentials, resolve the identifier, one call, done.
type LifecycleService struct {
	gateway  panel.Gateway
	services repository.ServiceRepository
	creds    *CredentialResolver
	callLog  *CallLogger
}

// NewLifecycleService creates a new lifecycle service
func NewLifecycleService(
	gateway panel.Gateway,
	services repository.ServiceRepository,
	creds *CredentialResolver,
	callLog *CallLogger,
) *LifecycleService {
	return &LifecycleService{
		gateway:  gateway,
		services: services,
		creds:    creds,
		callLog:  callLog,
	}
}

// Suspend stops the game server
func (l *LifecycleService) Suspend(ctx context.Context, svc *models.Service, inline models.Credentials) error {
	return l.control(ctx, svc, inline, ActionStop)
}

// Unsuspend starts the game server
func (l *LifecycleService) Unsuspend(ctx context.Context, svc *models.Service, inline models.Credentials) error {
	return l.control(ctx, svc, inline, ActionStart)
}

// Control issues an arbitrary status-page control action (start, stop,
// restart)
func (l *LifecycleService) Control(ctx context.Context, svc *models.Service, inline models.Credentials, action string) error {
	if action != ActionStart && action != ActionStop && action != ActionRestart {
		return fmt.Errorf("unsupported control action %q", action)
	}
	return l.control(ctx, svc, inline, action)
}

func (l *LifecycleService) control(ctx context.Context, svc *models.Service, inline models.Credentials, action string) error {
	creds := l.creds.Resolve(ctx, BundleFromService(svc, inline))
	if !creds.Complete() {
		return ErrCredentialsMissing
	}

	serverID := ResolveServerID(svc)
	if serverID == "" {
		return ErrIdentifierMissing
	}

	result, err := l.gateway.Call(ctx, creds, "POST", "game-servers/"+serverID+"/control", map[string]interface{}{
		"action": action,
	})
	if err != nil {
		l.callLog.RecordFailure("Control", map[string]interface{}{
			"service_id": svc.ServiceID,
			"server_id":  serverID,
			"action":     action,
		}, err)
		return err
	}

	if !result.Has("success") {
		return fmt.Errorf("panel did not confirm %s for server %s", action, serverID)
	}

	logger.WithFields(map[string]interface{}{
		"service_id": svc.ServiceID,
		"server_id":  serverID,
		"action":     action,
	}).Info("Control action completed")

	return nil
}

// Terminate deletes the game server. On success the persisted identifier
// is cleared from the billing record; a failed clear is logged but the
// termination still counts, since the remote server is gone.
func (l *LifecycleService) Terminate(ctx context.Context, svc *models.Service, inline models.Credentials) error {
	creds := l.creds.Resolve(ctx, BundleFromService(svc, inline))
	if !creds.Complete() {
		return ErrCredentialsMissing
	}

	serverID := ResolveServerID(svc)
	if serverID == "" {
		return ErrIdentifierMissing
	}

	result, err := l.gateway.Call(ctx, creds, "DELETE", "game-servers/"+serverID, nil)
	if err != nil {
		l.callLog.RecordFailure("Terminate", map[string]interface{}{
			"service_id": svc.ServiceID,
			"server_id":  serverID,
		}, err)
		return err
	}

	if !result.Has("success") {
		return fmt.Errorf("panel did not confirm termination of server %s", serverID)
	}

	if err := l.services.SetServerIdentifier(ctx, svc.ServiceID, ""); err != nil {
		logger.WithFields(map[string]interface{}{
			"service_id": svc.ServiceID,
			"error":      err.Error(),
		}).Warn("Could not clear server identifier after termination")
	}

	logger.WithFields(map[string]interface{}{
		"service_id": svc.ServiceID,
		"server_id":  serverID,
	}).Info("Game server terminated")

	return nil
}
