package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/delivery"
)

// Headers read from inbound deliveries.
const (
	HeaderEvent          = "X-Webhook-Event"
	HeaderSignature      = "X-Webhook-Signature"
	HeaderIdempotencyKey = "X-Idempotency-Key"
)

// Event types Kapso delivers.
const (
	ConversationCreated  = "whatsapp.conversation.created"
	ConversationEnded    = "whatsapp.conversation.ended"
	ConversationInactive = "whatsapp.conversation.inactive"
	MessageDelivered     = "whatsapp.message.delivered"
	MessageFailed        = "whatsapp.message.failed"
	MessageRead          = "whatsapp.message.read"
	MessageReceived      = "whatsapp.message.received"
	MessageSent          = "whatsapp.message.sent"
)

// EventTypes lists every known event type.
var EventTypes = []string{
	ConversationCreated,
	ConversationEnded,
	ConversationInactive,
	MessageDelivered,
	MessageFailed,
	MessageRead,
	MessageReceived,
	MessageSent,
}

// DefaultEvents is the subscription used when none is configured.
var DefaultEvents = []string{MessageReceived}

// Config controls filtering and signature checks.
type Config struct {
	// Events is the subscription allowlist. Empty accepts everything.
	Events          []string
	VerifySignature bool
	Secret          string
}

// Event is one inbound delivery.
type Event struct {
	Headers http.Header
	Body    []byte
}

// Outcome is the HTTP response to send and, when accepted, the record to emit.
type Outcome struct {
	Status   int
	Response map[string]any
	Record   delivery.Record
}

// Accepted reports whether the outcome carries a record.
func (o Outcome) Accepted() bool { return o.Record != nil }

// Receiver turns deliveries into outcomes. It does no I/O.
type Receiver struct {
	cfg Config
	now func() time.Time
}

// NewReceiver creates a Receiver.
func NewReceiver(cfg Config) *Receiver {
	return &Receiver{cfg: cfg, now: time.Now}
}

// Receive parses, filters and verifies ev, then builds the record.
func (r *Receiver) Receive(ev Event) Outcome {
	var body map[string]any
	if err := json.Unmarshal(ev.Body, &body); err != nil || body == nil {
		return reply(http.StatusBadRequest, map[string]any{"error": "Invalid JSON body"})
	}

	event := ev.Headers.Get(HeaderEvent)
	if event == "" {
		event, _ = body["event"].(string)
	}

	if event != "" && len(r.cfg.Events) > 0 && !slices.Contains(r.cfg.Events, event) {
		return reply(http.StatusOK, map[string]any{"received": true, "ignored": true})
	}

	if r.cfg.VerifySignature && r.cfg.Secret != "" {
		sig := ev.Headers.Get(HeaderSignature)
		if sig == "" {
			return reply(http.StatusUnauthorized, map[string]any{"error": "Missing signature"})
		}
		if !validSignature(ev.Body, sig, r.cfg.Secret) {
			return reply(http.StatusUnauthorized, map[string]any{"error": "Invalid signature"})
		}
	}

	out := reply(http.StatusOK, map[string]any{"received": true})
	out.Record = r.record(event, ev.Headers.Get(HeaderIdempotencyKey), body)
	return out
}

func (r *Receiver) record(event, idemKey string, body map[string]any) delivery.Record {
	rec := delivery.Record{
		"timestamp": r.now().UTC().Format("2006-01-02T15:04:05.000Z"),
	}
	if event != "" {
		rec["event"] = event
	}
	if idemKey != "" {
		rec["idempotencyKey"] = idemKey
	}
	for k, v := range body {
		rec[k] = v
	}

	data, _ := body["data"].(map[string]any)
	for _, key := range []string{"message", "conversation"} {
		if v := body[key]; truthy(v) {
			rec[key] = v
		} else if v := data[key]; truthy(v) {
			rec[key] = v
		}
	}
	return rec
}

func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	default:
		return true
	}
}

// validSignature compares the hex HMAC-SHA256 of body with sig.
func validSignature(body []byte, sig, secret string) bool {
	return hmac.Equal([]byte(sig), []byte(Sign(body, secret)))
}

// Sign returns the signature Kapso would send for body.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func reply(status int, body map[string]any) Outcome {
	return Outcome{Status: status, Response: body}
}
