package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Client is a thin HTTP client for integration tests. It carries a bearer
// token and optionally validates every exchange against the OpenAPI document.
type Client struct {
	BaseURL     string
	HTTPClient  *http.Client
	Token       string
	Validator   *OpenAPIValidator
	ValidateAPI bool

	t *testing.T
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
	}
}

// NewClientWithValidator builds a client that validates every exchange
// against the given OpenAPI document.
func NewClientWithValidator(baseURL string, v *OpenAPIValidator) *Client {
	c := NewClient(baseURL)
	c.Validator = v
	c.ValidateAPI = v != nil
	return c
}

// WithoutValidation returns a copy of the client with validation disabled,
// for tests that deliberately send malformed payloads.
func (c *Client) WithoutValidation() *Client {
	clone := *c
	clone.ValidateAPI = false
	return &clone
}

// SetT attaches the current test so validation failures are reported
// against it.
func (c *Client) SetT(t *testing.T) {
	c.t = t
}

// SetToken sets the bearer token sent with subsequent requests.
func (c *Client) SetToken(token string) {
	c.Token = token
}

// ClearToken removes the bearer token, making subsequent requests anonymous.
func (c *Client) ClearToken() {
	c.Token = ""
}

func (c *Client) GET(path string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) POST(path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	if c.ValidateAPI && c.Validator != nil && c.t != nil {
		if err := c.Validator.ValidateRequest(req); err != nil {
			c.t.Errorf("request does not match OpenAPI spec: %v", err)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	if c.ValidateAPI && c.Validator != nil && c.t != nil {
		if err := c.Validator.ValidateResponse(req, resp); err != nil {
			c.t.Errorf("response does not match OpenAPI spec: %v", err)
		}
	}

	return resp, nil
}

// DecodeJSON reads the response body into v and fails the test on error.
func DecodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

// RandomEmail returns a unique email address for signup tests.
func RandomEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@example.com", prefix, uuid.NewString()[:8])
}
