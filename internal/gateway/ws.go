package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/delivery"
)

// EventType tags every frame sent to the gateway.
const EventType = "kapso.event"

// Frame is the message format sent to the gateway.
type Frame struct {
	Type  string          `json:"type"`
	Event string          `json:"event,omitempty"`
	Data  delivery.Record `json:"data"`
}

// Client forwards records to a downstream gateway over a WebSocket.
type Client struct {
	url    string
	token  string
	logger *slog.Logger

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewClient creates a gateway client. Connect must be called before Emit.
func NewClient(url, token string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{url: url, token: token, logger: logger}
}

// Connect establishes the WebSocket connection.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dial(ctx)
}

func (c *Client) dial(ctx context.Context) error {
	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, c.url, header)
	if err != nil {
		return fmt.Errorf("connect to gateway: %w", err)
	}
	c.conn = conn
	c.logger.Info("connected to gateway", "url", c.url)
	return nil
}

// Emit sends rec as one text frame. A broken connection is redialled once.
func (c *Client) Emit(ctx context.Context, rec delivery.Record) error {
	data, err := json.Marshal(Frame{Type: EventType, Event: rec.Event(), Data: rec})
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return errors.New("not connected to gateway")
	}
	err = c.conn.WriteMessage(websocket.TextMessage, data)
	if err == nil {
		return nil
	}
	c.logger.Warn("gateway write failed, reconnecting", "error", err)

	c.conn.Close()
	c.conn = nil
	if err := c.dial(ctx); err != nil {
		return err
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Close closes the WebSocket connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}
	return nil
}
