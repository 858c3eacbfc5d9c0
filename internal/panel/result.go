package panel

import (
	"context"
	"errors"
	"fmt"

	"github.com/gamecp/provisioner/internal/models"
)

// Result is the payload of a successful (2xx) panel API call. Data is nil
// when the body was absent or not a JSON object; Raw always holds the
// body as received.
type Result struct {
	StatusCode int
	Raw        []byte
	Data       map[string]interface{}
}

// APIError is an application-level failure: the panel answered, but with a
// non-2xx status. Message and Code are best-effort extractions from the
// panel's error body.
type APIError struct {
	StatusCode int
	Message    string
	Code       string
	Details    interface{}
	Raw        string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("panel API error (HTTP %d, code %s): %s", e.StatusCode, e.Code, e.Message)
}

// TransportError is a network-level failure: DNS, connect, TLS, or timeout.
// The panel never saw the request, or the response never arrived.
type TransportError struct {
	Message string
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return "panel unreachable: " + e.Message
}

// AsAPIError unwraps err as an *APIError, or nil
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// IsTransport reports whether err is a transport-level failure
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

// Gateway executes authenticated calls against the panel's management API.
// Implementations classify every outcome as a *Result, an *APIError, or a
// *TransportError; no other error shapes cross this boundary.
type Gateway interface {
	Call(ctx context.Context, creds models.Credentials, method, path string, body interface{}) (*Result, error)
}

// StringField walks the result data through the given keys and returns the
// string at the end, or "" when any hop is missing or the wrong shape
func (r *Result) StringField(keys ...string) string {
	if r == nil {
		return ""
	}
	current := r.Data
	for i, key := range keys {
		value, ok := current[key]
		if !ok {
			return ""
		}
		if i == len(keys)-1 {
			s, _ := value.(string)
			return s
		}
		next, ok := value.(map[string]interface{})
		if !ok {
			return ""
		}
		current = next
	}
	return ""
}

// Has reports whether a top-level key is present in the result data
func (r *Result) Has(key string) bool {
	if r == nil || r.Data == nil {
		return false
	}
	_, ok := r.Data[key]
	return ok
}
