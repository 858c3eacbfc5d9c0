package panel

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/gamecp/provisioner/internal/models"
)

// MockCall records one invocation observed by the mock gateway
type MockCall struct {
	Method string
	Path   string
	URL    string
	Body   interface{}
}

// MockGateway is a canned-response Gateway for tests. Responses are matched
// against the full request URL first, then the relative path, then by
// substring against the URL. A registered value may be:
//   - a JSON string or a map[string]interface{}: returned as a 200 Result
//   - an error (*APIError, *TransportError): returned as the call's error
//
// A request with no matching entry fails with a deterministic
// TransportError rather than reaching the network.
type MockGateway struct {
	mu        sync.Mutex
	Responses map[string]interface{}
	calls     []MockCall
}

// NewMockGateway creates an empty mock gateway
func NewMockGateway() *MockGateway {
	return &MockGateway{Responses: map[string]interface{}{}}
}

// Set registers a canned response under a URL, path, or substring key
func (m *MockGateway) Set(key string, response interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[key] = response
}

// Call implements Gateway
func (m *MockGateway) Call(_ context.Context, creds models.Credentials, method, path string, body interface{}) (*Result, error) {
	url := BuildURL(creds.Endpoint, path)

	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Method: method, Path: path, URL: url, Body: body})
	response, ok := m.Responses[url]
	if !ok {
		response, ok = m.Responses[path]
	}
	if !ok {
		for pattern, candidate := range m.Responses {
			if strings.Contains(url, pattern) {
				response, ok = candidate, true
				break
			}
		}
	}
	m.mu.Unlock()

	if !ok {
		return nil, &TransportError{Message: "no mock configured for " + url}
	}

	switch v := response.(type) {
	case error:
		return nil, v
	case string:
		return resultFromJSON([]byte(v))
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, &TransportError{Message: "unusable mock for " + url + ": " + err.Error()}
		}
		return resultFromJSON(raw)
	}
}

// resultFromJSON builds a 200 Result from a raw JSON body
func resultFromJSON(raw []byte) (*Result, error) {
	result := &Result{StatusCode: 200, Raw: raw}
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err == nil {
		result.Data = data
	}
	return result, nil
}

// Calls returns a copy of every call the mock has seen
func (m *MockGateway) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many calls were made to paths containing pattern
func (m *MockGateway) CallCount(pattern string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, call := range m.calls {
		if strings.Contains(call.Path, pattern) {
			count++
		}
	}
	return count
}
