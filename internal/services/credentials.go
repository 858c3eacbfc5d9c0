package services

import (
	"context"
	"strings"

	"github.com/gamecp/provisioner/internal/logger"
	"github.com/gamecp/provisioner/internal/models"
	"github.com/gamecp/provisioner/internal/repository"
)

// CredentialBundle is the possibly-partial configuration a hook starts
// from: inline credentials passed with the request, the service's assigned
// panel server record, and its product.
type CredentialBundle struct {
	Endpoint       string
	Key            string
	ServerRecordID string
	ProductID      string
}

// BundleFromService builds a credential bundle from a service record and
// optional inline credentials
func BundleFromService(svc *models.Service, inline models.Credentials) CredentialBundle {
	return CredentialBundle{
		Endpoint:       inline.Endpoint,
		Key:            inline.Key,
		ServerRecordID: svc.PanelServerID,
		ProductID:      svc.ProductID,
	}
}

// CredentialResolver produces a validated (endpoint, key) pair from a
// layered fallback of configuration sources. Resolution is best-effort:
// lookup failures fall through to the next source and the final result may
// be incomplete; callers decide whether that is fatal.
type CredentialResolver struct {
	servers  repository.PanelServerRepository
	products repository.ProductRepository
}

// NewCredentialResolver creates a new credential resolver
func NewCredentialResolver(servers repository.PanelServerRepository, products repository.ProductRepository) *CredentialResolver {
	return &CredentialResolver{
		servers:  servers,
		products: products,
	}
}

// Resolve walks the fallback chain, first hit wins:
//  1. inline key already present
//  2. the service's assigned panel server record
//  3. a panel server of this module's type in the product's server group
//
// Whatever endpoint wins is normalized to carry an explicit scheme.
func (r *CredentialResolver) Resolve(ctx context.Context, bundle CredentialBundle) models.Credentials {
	resolvers := []func(context.Context, CredentialBundle) (models.Credentials, bool){
		r.fromInline,
		r.fromServerRecord,
		r.fromProductGroup,
	}

	for _, resolve := range resolvers {
		if creds, ok := resolve(ctx, bundle); ok {
			return normalizeCredentials(creds)
		}
	}

	// Best effort: hand back whatever was available, possibly empty
	return normalizeCredentials(models.Credentials{Endpoint: bundle.Endpoint, Key: bundle.Key})
}

func (r *CredentialResolver) fromInline(_ context.Context, bundle CredentialBundle) (models.Credentials, bool) {
	if bundle.Key == "" {
		return models.Credentials{}, false
	}
	return models.Credentials{Endpoint: bundle.Endpoint, Key: bundle.Key}, true
}

func (r *CredentialResolver) fromServerRecord(ctx context.Context, bundle CredentialBundle) (models.Credentials, bool) {
	if bundle.ServerRecordID == "" {
		return models.Credentials{}, false
	}

	record, err := r.servers.Get(ctx, bundle.ServerRecordID)
	if err != nil {
		// An unreachable store counts as "not found"; fall through
		logger.WithFields(map[string]interface{}{
			"server_record_id": bundle.ServerRecordID,
			"error":            err.Error(),
		}).Debug("Panel server record lookup failed, trying next credential source")
		return models.Credentials{}, false
	}
	if record.AccessHash == "" {
		return models.Credentials{}, false
	}

	return models.Credentials{Endpoint: record.Address(), Key: record.AccessHash}, true
}

func (r *CredentialResolver) fromProductGroup(ctx context.Context, bundle CredentialBundle) (models.Credentials, bool) {
	if bundle.ProductID == "" {
		return models.Credentials{}, false
	}

	product, err := r.products.Get(ctx, bundle.ProductID)
	if err != nil || product.ServerGroupID == "" {
		return models.Credentials{}, false
	}

	record, err := r.servers.FindByGroupAndType(ctx, product.ServerGroupID, models.PanelServerType)
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"product_id": bundle.ProductID,
			"group_id":   product.ServerGroupID,
			"error":      err.Error(),
		}).Debug("Server group credential lookup failed")
		return models.Credentials{}, false
	}
	if record.AccessHash == "" {
		return models.Credentials{}, false
	}

	return models.Credentials{Endpoint: record.Address(), Key: record.AccessHash}, true
}

// normalizeCredentials prefixes the endpoint with the secure scheme when it
// lacks one
func normalizeCredentials(creds models.Credentials) models.Credentials {
	if creds.Endpoint != "" && !strings.Contains(creds.Endpoint, "http") {
		creds.Endpoint = "https://" + creds.Endpoint
	}
	return creds
}
