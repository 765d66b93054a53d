package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/qkart/storefront/pkg/logger"
)

// Config holds the backend connection settings.
type Config struct {
	// Endpoint is the backend base URL, e.g. http://localhost:8082/api/v1
	Endpoint string

	// Timeout bounds each round-trip. Zero means 30s.
	Timeout time.Duration
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("backend endpoint is required")
	}
	return nil
}

// Client is the REST client for the QKart backend service.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a backend client with the given configuration.
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// doRequest performs one HTTP round-trip against the backend. A non-nil
// payload is sent as a JSON body. An empty token means an unauthenticated
// call. Returns the raw response body for 2xx, *Error for other statuses
// and ErrUnreachable for transport failures.
func (c *Client) doRequest(ctx context.Context, method, path, token string, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	url := c.config.Endpoint + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("Backend request failed at transport level", map[string]interface{}{
			"method": method,
			"path":   path,
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// parseError maps a non-2xx response to *Error. The backend error shape
// is {"success": false, "message": "..."}.
func parseError(status int, body []byte) *Error {
	var payload struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return &Error{StatusCode: status}
	}
	return &Error{StatusCode: status, Message: payload.Message}
}

// decodeList decodes a 2xx body into out, mapping an undecodable body
// to a backend fault.
func decodeList(body []byte, out interface{}) error {
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{StatusCode: http.StatusOK}
	}
	return nil
}

// getJSON fetches path and decodes the 2xx body into out.
func (c *Client) getJSON(ctx context.Context, path, token string, out interface{}) error {
	body, err := c.doRequest(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		// A 2xx with an undecodable body is a backend fault
		return &Error{StatusCode: http.StatusOK}
	}
	return nil
}

// postJSON posts payload to path and decodes the 2xx body into out when
// out is non-nil.
func (c *Client) postJSON(ctx context.Context, path, token string, payload, out interface{}) error {
	body, err := c.doRequest(ctx, http.MethodPost, path, token, payload)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{StatusCode: http.StatusOK}
	}
	return nil
}
