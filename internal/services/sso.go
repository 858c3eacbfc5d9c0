package services

import (
	"context"
	"strings"

	"github.com/gamecp/provisioner/internal/logger"
	"github.com/gamecp/provisioner/internal/models"
	"github.com/gamecp/provisioner/internal/panel"
	"github.com/gamecp/provisioner/internal/repository"
)

// SSOService exchanges short-lived SSO tokens for authenticated panel URLs.
// SSO is a convenience surface: any failure degrades to a plain link to the
// panel root rather than an error.
type SSOService struct {
	gateway panel.Gateway
	servers repository.PanelServerRepository
	creds   *CredentialResolver
}

// NewSSOService creates a new SSO service
func NewSSOService(gateway panel.Gateway, servers repository.PanelServerRepository, creds *CredentialResolver) *SSOService {
	return &SSOService{
		gateway: gateway,
		servers: servers,
		creds:   creds,
	}
}

// ServiceLogin returns a redirect into the panel for a client, scoped to
// their game server when one is provisioned
func (s *SSOService) ServiceLogin(ctx context.Context, svc *models.Service, inline models.Credentials) models.SSORedirect {
	creds := s.creds.Resolve(ctx, BundleFromService(svc, inline))
	panelRoot := strings.TrimRight(creds.Endpoint, "/")

	redirectPath := "/"
	if serverID := ResolveServerID(svc); serverID != "" {
		redirectPath = "/game-servers/" + serverID
	}

	if creds.Complete() {
		result, err := s.gateway.Call(ctx, creds, "POST", "auth/sso-token", map[string]interface{}{
			"email":      svc.Client.Email,
			"redirectTo": redirectPath,
			"baseUrl":    panelRoot,
		})
		if err == nil {
			if ssoURL := result.StringField("ssoUrl"); ssoURL != "" {
				return models.SSORedirect{RedirectTo: ssoURL}
			}
		} else {
			logger.WithFields(map[string]interface{}{
				"service_id": svc.ServiceID,
				"error":      err.Error(),
			}).Warn("SSO token exchange failed, falling back to panel root")
		}
	}

	return models.SSORedirect{RedirectTo: panelRoot}
}

// AdminLogin returns a redirect to a panel's settings page for billing
// admins. Built from the stored endpoint alone; no token exchange.
func (s *SSOService) AdminLogin(ctx context.Context, serverRecordID string) models.SSORedirect {
	record, err := s.servers.Get(ctx, serverRecordID)
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"server_record_id": serverRecordID,
			"error":            err.Error(),
		}).Warn("Panel server record lookup failed for admin SSO")
		return models.SSORedirect{}
	}

	creds := normalizeCredentials(models.Credentials{Endpoint: record.Address()})
	root := strings.TrimRight(creds.Endpoint, "/")
	if root == "" {
		return models.SSORedirect{}
	}

	return models.SSORedirect{RedirectTo: root + "/settings"}
}
