package services

import "errors"

// Orchestration failure taxonomy. Every hook entry point resolves to one of
// these sentinels, a *panel.APIError, or a *panel.TransportError; handlers
// translate them into well-formed hook outcomes and nothing else escapes.
var (
	// ErrCredentialsMissing means credential resolution exhausted every
	// fallback without producing a usable endpoint/key pair
	ErrCredentialsMissing = errors.New("panel credentials are missing")

	// ErrUserBindingFailed means neither lookup nor create yielded a
	// panel user id for the billing contact
	ErrUserBindingFailed = errors.New("could not find or create user in panel")

	// ErrGameTypeMissing means no game config id was set on the product
	// or the service's custom fields
	ErrGameTypeMissing = errors.New("game config id is required but not set")

	// ErrProvisioningFailed wraps any failure of the create flow past
	// user binding
	ErrProvisioningFailed = errors.New("failed to create game server")

	// ErrIdentifierMissing means the service record carries no panel
	// server identifier in any known field
	ErrIdentifierMissing = errors.New("panel server id not found")
)
