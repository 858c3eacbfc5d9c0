package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gamecp/provisioner/internal/panel"
)

// TestResult is the outcome of a connection test, shaped so the billing
// admin sees an actionable message rather than a raw failure
type TestResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ConnectionTester probes a panel with a minimal authenticated request
type ConnectionTester struct {
	gateway panel.Gateway
	creds   *CredentialResolver
}

// NewConnectionTester creates a new connection tester
func NewConnectionTester(gateway panel.Gateway, creds *CredentialResolver) *ConnectionTester {
	return &ConnectionTester{
		gateway: gateway,
		creds:   creds,
	}
}

// Test resolves credentials from the bundle and probes the panel's user
// list. Every failure mode maps to a distinct message.
func (t *ConnectionTester) Test(ctx context.Context, bundle CredentialBundle) TestResult {
	creds := t.creds.Resolve(ctx, bundle)

	if creds.Endpoint == "" {
		return TestResult{Error: "Hostname or IP Address is required"}
	}
	if creds.Key == "" {
		return TestResult{Error: "API Key (Access Hash) is required"}
	}

	result, err := t.gateway.Call(ctx, creds, "GET", "users?limit=1", nil)
	if err != nil {
		if apiErr := panel.AsAPIError(err); apiErr != nil {
			switch apiErr.StatusCode {
			case http.StatusUnauthorized:
				return TestResult{Error: "Authentication failed. Check your API Key."}
			case http.StatusNotFound:
				return TestResult{Error: "API endpoint not found. Verify your hostname."}
			default:
				return TestResult{Error: fmt.Sprintf("API returned HTTP %d", apiErr.StatusCode)}
			}
		}
		return TestResult{Error: "Connection error: " + err.Error()}
	}

	if result.Data == nil {
		return TestResult{Error: "Received invalid JSON response."}
	}
	if !result.Has("users") && !result.Has("data") {
		return TestResult{Error: "Unexpected response structure."}
	}

	return TestResult{Success: true}
}
