package kapso

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	// DefaultURL is Kapso's remote MCP endpoint.
	DefaultURL = "https://app.kapso.ai/mcp"
	// DefaultCredentialTestURL is probed to check an API key.
	DefaultCredentialTestURL = "https://api.kapso.ai/platform/v1/customers"
)

// Client calls Kapso MCP tools over JSON-RPC.
type Client struct {
	APIKey     string
	URL        string
	TestURL    string
	HTTPClient *http.Client

	mu     sync.Mutex
	lastID int64
}

// Option configures a Client.
type Option func(*Client)

// WithURL overrides the MCP endpoint.
func WithURL(u string) Option {
	return func(c *Client) { c.URL = u }
}

// WithCredentialTestURL overrides the URL probed by TestCredentials.
func WithCredentialTestURL(u string) Option {
	return func(c *Client) { c.TestURL = u }
}

// WithHTTPClient sets the HTTP client used for every request.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// NewClient creates a Kapso MCP client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		APIKey:     apiKey,
		URL:        DefaultURL,
		TestURL:    DefaultCredentialTestURL,
		HTTPClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx response from Kapso.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("kapso API error (status %d): %s", e.StatusCode, e.Body)
}

// nextID returns a millisecond timestamp, bumped when the clock has not
// advanced since the previous call.
func (c *Client) nextID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := time.Now().UnixMilli()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id
	return id
}

// CallTool invokes the named tool and returns the raw JSON-RPC response.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (json.RawMessage, error) {
	env := NewEnvelope(c.nextID(), name, args)
	body, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.APIKey)

	respBody, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", name, err)
	}
	return respBody, nil
}

// Call invokes the named tool and returns its unwrapped result.
func (c *Client) Call(ctx context.Context, name string, args map[string]any) (any, error) {
	raw, err := c.CallTool(ctx, name, args)
	if err != nil {
		return nil, err
	}
	return Unwrap(raw)
}

// TestCredentials checks the API key against the platform API.
func (c *Client) TestCredentials(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.TestURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-API-Key", c.APIKey)

	if _, err := c.do(req); err != nil {
		return fmt.Errorf("test credentials: %w", err)
	}
	return nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// Envelope is a JSON-RPC 2.0 tools/call request.
type Envelope struct {
	JSONRPC string             `json:"jsonrpc"`
	ID      int64              `json:"id"`
	Method  string             `json:"method"`
	Params  mcp.CallToolParams `json:"params"`
}

// NewEnvelope wraps a tool call.
func NewEnvelope(id int64, name string, args map[string]any) Envelope {
	if args == nil {
		args = map[string]any{}
	}
	return Envelope{
		JSONRPC: mcp.JSONRPC_VERSION,
		ID:      id,
		Method:  string(mcp.MethodToolsCall),
		Params:  mcp.CallToolParams{Name: name, Arguments: args},
	}
}

// Unwrap decodes a response. When it is an object with a non-null "result"
// member that member is returned, otherwise the whole decoded value.
func Unwrap(raw []byte) (any, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if obj, ok := v.(map[string]any); ok {
		if result, ok := obj["result"]; ok && result != nil {
			return result, nil
		}
	}
	return v, nil
}
