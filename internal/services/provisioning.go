package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gamecp/provisioner/internal/logger"
	"github.com/gamecp/provisioner/internal/models"
	"github.com/gamecp/provisioner/internal/panel"
	"github.com/gamecp/provisioner/internal/repository"
)

// panelUserRole is the role assigned to billing contacts bound into the panel
const panelUserRole = "user"

// ProvisioningService runs the multi-step create flow against the panel
type ProvisioningService struct {
	gateway  panel.Gateway
	services repository.ServiceRepository
	creds    *CredentialResolver
	naming   *NamingService
	callLog  *CallLogger
}

// NewProvisioningService creates a new provisioning service
func NewProvisioningService(
	gateway panel.Gateway,
	services repository.ServiceRepository,
	creds *CredentialResolver,
	naming *NamingService,
	callLog *CallLogger,
) *ProvisioningService {
	return &ProvisioningService{
		gateway:  gateway,
		services: services,
		creds:    creds,
		naming:   naming,
		callLog:  callLog,
	}
}

// Create provisions a game server for a service. The flow is strictly
// ordered and terminal on the first unrecoverable failure: resolve
// credentials, bind the panel user, validate the game config, submit the
// creation request, and persist the returned identifier. A user bound in
// step 2 is never rolled back when a later step fails.
func (p *ProvisioningService) Create(ctx context.Context, svc *models.Service, inline models.Credentials) (string, error) {
	creds := p.creds.Resolve(ctx, BundleFromService(svc, inline))
	if !creds.Complete() {
		return "", ErrCredentialsMissing
	}

	opts := p.naming.EffectiveOptions(ctx, svc.ProductID)
	serverName := p.naming.GenerateServerName(ctx, svc, opts.NameFormat)

	logger.WithFields(map[string]interface{}{
		"service_id":  svc.ServiceID,
		"email":       svc.Client.Email,
		"server_name": serverName,
	}).Info("Provisioning game server")

	// Step 2: bind the billing contact to a panel user
	userID, err := p.EnsureUserExists(ctx, creds, svc.Client, svc.Password)
	if err != nil {
		p.callLog.RecordFailure("CreateAccount", map[string]interface{}{
			"service_id": svc.ServiceID,
			"email":      svc.Client.Email,
		}, err)
		return "", fmt.Errorf("%w: %v", ErrUserBindingFailed, err)
	}
	if userID == "" {
		return "", ErrUserBindingFailed
	}

	// Keep the billing username in sync with the panel login. Cosmetic;
	// a failure here never stops provisioning.
	if err := p.services.SetUsername(ctx, svc.ServiceID, svc.Client.Email); err != nil {
		logger.WithFields(map[string]interface{}{
			"service_id": svc.ServiceID,
			"error":      err.Error(),
		}).Warn("Could not sync username to service record")
	}

	// Step 3: validate the game config selection
	gameConfigID := opts.GameConfigID
	if gameConfigID == "" {
		gameConfigID = svc.CustomFields[GameConfigCustomField]
	}
	if gameConfigID == "" {
		return "", ErrGameTypeMissing
	}

	// Step 4: assemble the creation payload
	payload := map[string]interface{}{
		"name":              serverName,
		"gameId":            gameConfigID,
		"ownerId":           userID,
		"startAfterInstall": true,
		"autoInstall":       autoDeployEnabled(opts.AutoDeploy),
		"configOverrides":   BuildConfigOverrides(svc.CustomFields, svc.ConfigOptions),
		"assignmentType":    "automatic",
	}
	if opts.NodeID != "" {
		payload["nodeId"] = opts.NodeID
	}
	if opts.Location != "" {
		payload["location"] = opts.Location
	}

	// Step 5: submit. No retry, no rollback of the bound user.
	result, err := p.gateway.Call(ctx, creds, "POST", "game-servers", payload)
	if err != nil {
		p.callLog.RecordFailure("CreateAccount", map[string]interface{}{
			"service_id":  svc.ServiceID,
			"server_name": serverName,
		}, err)
		if apiErr := panel.AsAPIError(err); apiErr != nil {
			return "", fmt.Errorf("%w: %s", ErrProvisioningFailed, apiErr.Message)
		}
		return "", fmt.Errorf("%w: %v", ErrProvisioningFailed, err)
	}

	// Step 6: extract the identifier, enveloped or flat
	serverID := result.StringField("gameServer", "serverId")
	if serverID == "" {
		serverID = result.StringField("serverId")
	}
	if serverID == "" {
		return "", fmt.Errorf("%w: no identifier returned", ErrProvisioningFailed)
	}

	// Step 7: persist the identifier. The remote server exists regardless
	// of whether this write lands, so a failure is logged, not returned.
	if err := p.services.SetServerIdentifier(ctx, svc.ServiceID, serverID); err != nil {
		p.callLog.RecordFailure("SaveServerId", map[string]interface{}{
			"service_id": svc.ServiceID,
			"server_id":  serverID,
		}, err)
	}

	// Mirror the identifier into the admin-visible custom field. It is the
	// last identifier fallback, so a record survives even when the
	// assigned-identifier write above was the one that failed.
	if err := p.services.SetCustomField(ctx, svc.ServiceID, ServerIDCustomField, serverID); err != nil {
		logger.WithFields(map[string]interface{}{
			"service_id": svc.ServiceID,
			"error":      err.Error(),
		}).Warn("Could not mirror server id into custom field")
	}

	logger.WithFields(map[string]interface{}{
		"service_id": svc.ServiceID,
		"server_id":  serverID,
	}).Info("Game server provisioned")

	return serverID, nil
}

// EnsureUserExists looks a panel user up by email and creates one when
// absent. Idempotent: repeated calls for the same email never create
// duplicates, because the lookup runs first on every invocation.
func (p *ProvisioningService) EnsureUserExists(ctx context.Context, creds models.Credentials, client models.ClientDetails, password string) (string, error) {
	if userID := p.findUserByEmail(ctx, creds, client.Email); userID != "" {
		return userID, nil
	}

	result, err := p.gateway.Call(ctx, creds, "POST", "settings/users", map[string]interface{}{
		"email":     client.Email,
		"firstName": client.FirstName,
		"lastName":  client.LastName,
		"role":      panelUserRole,
		"password":  password,
	})
	if err != nil {
		return "", err
	}

	return result.StringField("_id"), nil
}

// findUserByEmail returns the panel user id for an email, or "" when the
// user is absent or the lookup fails (a failed lookup falls through to
// create; the panel rejects duplicate emails on its side)
func (p *ProvisioningService) findUserByEmail(ctx context.Context, creds models.Credentials, email string) string {
	result, err := p.gateway.Call(ctx, creds, "GET", "users?email="+url.QueryEscape(email), nil)
	if err != nil {
		return ""
	}

	data, ok := result.Data["data"].(map[string]interface{})
	if !ok {
		return ""
	}
	users, ok := data["users"].([]interface{})
	if !ok || len(users) == 0 {
		return ""
	}
	first, ok := users[0].(map[string]interface{})
	if !ok {
		return ""
	}
	id, _ := first["_id"].(string)
	return id
}

// autoDeployEnabled interprets the tri-state auto-deploy option
func autoDeployEnabled(value string) bool {
	return value == "on" || value == "1" || value == "yes"
}
