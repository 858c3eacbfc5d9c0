package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/gamecp/provisioner/internal/config"
	"github.com/gamecp/provisioner/internal/models"
	"github.com/gamecp/provisioner/internal/repository"
)

// Custom field names the billing admin can set on a service
const (
	ServerIDCustomField   = "GameCP Server ID"
	GameConfigCustomField = "Game Config ID"
)

// defaultProductName is used when the product lookup fails or the product
// has no name
const defaultProductName = "Game Server"

// autoHostnamePattern matches the billing system's auto-generated
// placeholder hostnames ("server-12-1700000000"). Such domains carry no
// user intent and are never used in server names.
var autoHostnamePattern = regexp.MustCompile(`^server-\d+-\d+$`)

// ResolveServerID reads the panel server identifier from a service record:
// the assigned-identifier field, then the legacy dedicated-IP field, then
// the named custom field. Side-effect-free; first non-empty wins.
func ResolveServerID(svc *models.Service) string {
	if svc.AssignedIdentifier != "" {
		return svc.AssignedIdentifier
	}
	if svc.DedicatedIP != "" {
		return svc.DedicatedIP
	}
	return svc.CustomFields[ServerIDCustomField]
}

// NamingService derives display names and provisioning options for
// services, consulting product records and the optional game catalog
type NamingService struct {
	products repository.ProductRepository
	catalog  *config.GameCatalog
}

// NewNamingService creates a new naming service
func NewNamingService(products repository.ProductRepository, catalog *config.GameCatalog) *NamingService {
	if catalog == nil {
		catalog = &config.GameCatalog{}
	}
	return &NamingService{
		products: products,
		catalog:  catalog,
	}
}

// ProductName resolves the display name of a service's product, defaulting
// to "Game Server" when the product cannot be looked up
func (n *NamingService) ProductName(ctx context.Context, productID string) string {
	if productID == "" {
		return defaultProductName
	}

	if product, err := n.products.Get(ctx, productID); err == nil && product.Name != "" {
		return product.Name
	}
	if entry, ok := n.catalog.Lookup(productID); ok && entry.ProductName != "" {
		return entry.ProductName
	}

	return defaultProductName
}

// EffectiveOptions returns the product's module options with gaps filled
// from the game catalog
func (n *NamingService) EffectiveOptions(ctx context.Context, productID string) models.ModuleOptions {
	var opts models.ModuleOptions
	if product, err := n.products.Get(ctx, productID); err == nil {
		opts = product.Options
	}

	if entry, ok := n.catalog.Lookup(productID); ok {
		if opts.GameConfigID == "" {
			opts.GameConfigID = entry.GameConfigID
		}
		if opts.NodeID == "" {
			opts.NodeID = entry.NodeID
		}
		if opts.Location == "" {
			opts.Location = entry.Location
		}
		if opts.NameFormat == "" {
			opts.NameFormat = entry.NameFormat
		}
	}

	return opts
}

// GenerateServerName substitutes {product}, {serviceid}, {domain} and
// {clientname} into the configured name format. The result is never empty:
// a blank outcome falls back to "Game Server #<serviceId>".
func (n *NamingService) GenerateServerName(ctx context.Context, svc *models.Service, nameFormat string) string {
	format := strings.TrimSpace(nameFormat)
	if format == "" {
		format = "{product}"
	}

	domain := svc.Domain
	if autoHostnamePattern.MatchString(domain) {
		domain = ""
	}

	name := strings.NewReplacer(
		"{product}", n.ProductName(ctx, svc.ProductID),
		"{serviceid}", svc.ServiceID,
		"{domain}", domain,
		"{clientname}", svc.Client.ClientName(),
	).Replace(format)

	name = strings.TrimSpace(name)
	if name != "" {
		return name
	}

	if svc.ServiceID != "" {
		return "Game Server #" + svc.ServiceID
	}
	return "Game Server #" + svc.Client.ClientID
}
