package panel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gamecp/provisioner/internal/logger"
	"github.com/gamecp/provisioner/internal/models"
)

// apiBasePath is the fixed prefix of every panel API endpoint
const apiBasePath = "/api/"

// maxRecordedResponse bounds how much of a response body is kept in a call
// log entry
const maxRecordedResponse = 4096

// CallRecorder receives one record per external call, success or failure.
// Implementations must never block or fail the calling flow.
type CallRecorder interface {
	Record(action string, request map[string]interface{}, response string, metadata map[string]interface{})
}

// Client is the HTTP implementation of Gateway
type Client struct {
	httpClient *http.Client
	recorder   CallRecorder
}

// NewClient creates a panel API client. The connect timeout bounds dial and
// TLS handshake; the request timeout bounds the whole exchange.
func NewClient(connectTimeout, requestTimeout time.Duration, recorder CallRecorder) *Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: connectTimeout,
		}).DialContext,
		TLSHandshakeTimeout: connectTimeout,
	}

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   requestTimeout,
		},
		recorder: recorder,
	}
}

// BuildURL joins a panel endpoint with the API base path and a relative
// endpoint path
func BuildURL(endpoint, path string) string {
	return strings.TrimRight(endpoint, "/") + apiBasePath + strings.TrimLeft(path, "/")
}

// Call executes one authenticated request against the panel API
func (c *Client) Call(ctx context.Context, creds models.Credentials, method, path string, body interface{}) (*Result, error) {
	url := BuildURL(creds.Endpoint, path)

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			// A non-serializable body is a programming error, surfaced
			// like any other failed send
			return nil, &TransportError{Message: "failed to encode request body: " + err.Error()}
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, &TransportError{Message: "failed to build request: " + err.Error()}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+creds.Key)

	logger.WithFields(map[string]interface{}{
		"method":  method,
		"url":     url,
		"api_key": logger.RedactSecret(creds.Key),
	}).Debug("Calling panel API")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.record(method, path, url, creds.Key, err.Error(), map[string]interface{}{
			"transport_error": err.Error(),
		})
		return nil, &TransportError{Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.record(method, path, url, creds.Key, err.Error(), map[string]interface{}{
			"transport_error": err.Error(),
			"http_code":       resp.StatusCode,
		})
		return nil, &TransportError{Message: "failed to read response: " + err.Error()}
	}

	c.record(method, path, url, creds.Key, string(raw), map[string]interface{}{
		"http_code": resp.StatusCode,
	})

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		result := &Result{StatusCode: resp.StatusCode, Raw: raw}
		if len(raw) > 0 {
			var data map[string]interface{}
			if err := json.Unmarshal(raw, &data); err == nil {
				result.Data = data
			}
		}
		return result, nil
	}

	return nil, decodeAPIError(resp.StatusCode, raw)
}

// decodeAPIError builds an APIError from a non-2xx response, extracting the
// panel's error message and code when the body is parseable JSON
func decodeAPIError(statusCode int, raw []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("API request failed (HTTP %d)", statusCode),
		Code:       "UNKNOWN",
		Raw:        string(raw),
	}

	var body struct {
		Error   string      `json:"error"`
		Code    string      `json:"code"`
		Details interface{} `json:"details"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			apiErr.Message = body.Error
		}
		if body.Code != "" {
			apiErr.Code = body.Code
		}
		apiErr.Details = body.Details
	}

	return apiErr
}

// record forwards call metadata to the recorder, redacting the API key
func (c *Client) record(method, path, url, key, response string, metadata map[string]interface{}) {
	if c.recorder == nil {
		return
	}
	if len(response) > maxRecordedResponse {
		response = response[:maxRecordedResponse]
	}
	c.recorder.Record(
		method+" "+path,
		map[string]interface{}{
			"url":     url,
			"method":  method,
			"api_key": logger.RedactSecret(key),
		},
		response,
		metadata,
	)
}
