package webhook

import (
	"net/http"
	"testing"
	"time"
)

func newTestReceiver(cfg Config) *Receiver {
	r := NewReceiver(cfg)
	r.now = func() time.Time { return time.Date(2025, 3, 4, 5, 6, 7, 890_000_000, time.FixedZone("X", 3600)) }
	return r
}

func event(body string, kv ...string) Event {
	h := http.Header{}
	for i := 0; i+1 < len(kv); i += 2 {
		h.Set(kv[i], kv[i+1])
	}
	return Event{Headers: h, Body: []byte(body)}
}

func TestReceiveAcceptsSubscribedEvent(t *testing.T) {
	r := newTestReceiver(Config{Events: DefaultEvents})
	out := r.Receive(event(`{"message":{"id":"m1","text":"hi"}}`,
		HeaderEvent, MessageReceived,
		HeaderIdempotencyKey, "idem-1"))

	if out.Status != http.StatusOK || out.Response["received"] != true {
		t.Fatalf("outcome = %+v", out)
	}
	if _, ok := out.Response["ignored"]; ok {
		t.Fatal("accepted delivery must not be marked ignored")
	}
	rec := out.Record
	if rec == nil {
		t.Fatal("expected a record")
	}
	if rec["event"] != MessageReceived {
		t.Errorf("event = %v", rec["event"])
	}
	if rec["idempotencyKey"] != "idem-1" {
		t.Errorf("idempotencyKey = %v", rec["idempotencyKey"])
	}
	if rec["timestamp"] != "2025-03-04T04:06:07.890Z" {
		t.Errorf("timestamp = %v", rec["timestamp"])
	}
	if rec["message"].(map[string]any)["id"] != "m1" {
		t.Errorf("message = %v", rec["message"])
	}
}

func TestReceiveEventFromBody(t *testing.T) {
	r := newTestReceiver(Config{Events: []string{MessageSent}})
	out := r.Receive(event(`{"event":"whatsapp.message.sent"}`))
	if !out.Accepted() {
		t.Fatalf("outcome = %+v, want accepted", out)
	}
	if out.Record["event"] != MessageSent {
		t.Errorf("event = %v", out.Record["event"])
	}
}

func TestReceiveIgnoresUnsubscribed(t *testing.T) {
	r := newTestReceiver(Config{
		Events:          []string{MessageReceived},
		VerifySignature: true,
		Secret:          "s3cret",
	})
	// No signature: the filter runs before verification.
	out := r.Receive(event(`{"x":1}`, HeaderEvent, MessageRead))
	if out.Status != http.StatusOK || out.Response["ignored"] != true || out.Accepted() {
		t.Fatalf("outcome = %+v, want ignored", out)
	}
}

func TestReceiveNoEventPassesFilter(t *testing.T) {
	r := newTestReceiver(Config{Events: []string{MessageReceived}})
	out := r.Receive(event(`{"x":1}`))
	if !out.Accepted() {
		t.Fatalf("outcome = %+v, want accepted", out)
	}
	if _, ok := out.Record["event"]; ok {
		t.Errorf("event should be absent, got %v", out.Record["event"])
	}
	if _, ok := out.Record["idempotencyKey"]; ok {
		t.Error("idempotencyKey should be absent without the header")
	}
}

func TestReceiveEmptyAllowlistAcceptsAll(t *testing.T) {
	r := newTestReceiver(Config{})
	out := r.Receive(event(`{}`, HeaderEvent, "whatsapp.anything"))
	if !out.Accepted() {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestReceiveSignature(t *testing.T) {
	cfg := Config{VerifySignature: true, Secret: "s3cret"}
	body := `{"event":"whatsapp.message.received","data":{"message":{"id":"m2"}}}`

	tests := []struct {
		name    string
		headers []string
		status  int
		errMsg  string
	}{
		{"missing", nil, http.StatusUnauthorized, "Missing signature"},
		{"wrong", []string{HeaderSignature, "deadbeef"}, http.StatusUnauthorized, "Invalid signature"},
		{"prefixed", []string{HeaderSignature, "sha256=" + Sign([]byte(body), "s3cret")}, http.StatusUnauthorized, "Invalid signature"},
		{"valid", []string{HeaderSignature, Sign([]byte(body), "s3cret")}, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := newTestReceiver(cfg).Receive(event(body, tt.headers...))
			if out.Status != tt.status {
				t.Fatalf("status = %d, want %d", out.Status, tt.status)
			}
			if tt.errMsg != "" {
				if out.Response["error"] != tt.errMsg {
					t.Errorf("error = %v, want %q", out.Response["error"], tt.errMsg)
				}
				if out.Accepted() {
					t.Error("rejected delivery produced a record")
				}
			}
		})
	}
}

func TestReceiveSignatureSkippedWithoutSecret(t *testing.T) {
	r := newTestReceiver(Config{VerifySignature: true})
	if out := r.Receive(event(`{}`)); !out.Accepted() {
		t.Fatalf("outcome = %+v, want accepted", out)
	}
	r = newTestReceiver(Config{Secret: "s3cret"})
	if out := r.Receive(event(`{}`)); !out.Accepted() {
		t.Fatalf("outcome = %+v, want accepted", out)
	}
}

func TestReceiveHoistsFromData(t *testing.T) {
	r := newTestReceiver(Config{})
	out := r.Receive(event(`{"data":{"message":{"id":"m3"},"conversation":{"id":"c3"}}}`))
	rec := out.Record
	if rec["message"].(map[string]any)["id"] != "m3" {
		t.Errorf("message = %v", rec["message"])
	}
	if rec["conversation"].(map[string]any)["id"] != "c3" {
		t.Errorf("conversation = %v", rec["conversation"])
	}
	if _, ok := rec["data"]; !ok {
		t.Error("data should be kept")
	}
}

func TestReceiveTopLevelWinsOverData(t *testing.T) {
	r := newTestReceiver(Config{})
	out := r.Receive(event(`{"message":{"id":"top"},"data":{"message":{"id":"nested"}}}`))
	if out.Record["message"].(map[string]any)["id"] != "top" {
		t.Errorf("message = %v", out.Record["message"])
	}
}

func TestReceiveBodyWinsOnCollision(t *testing.T) {
	r := newTestReceiver(Config{})
	out := r.Receive(event(`{"timestamp":"from-body","event":"body-event"}`, HeaderEvent, "header-event"))
	if out.Record["timestamp"] != "from-body" {
		t.Errorf("timestamp = %v", out.Record["timestamp"])
	}
	if out.Record["event"] != "body-event" {
		t.Errorf("event = %v", out.Record["event"])
	}
}

func TestReceiveInvalidBody(t *testing.T) {
	r := newTestReceiver(Config{})
	for _, body := range []string{`not json`, `[1,2]`, `null`, `"str"`} {
		out := r.Receive(event(body))
		if out.Status != http.StatusBadRequest || out.Response["error"] != "Invalid JSON body" {
			t.Errorf("body %s: outcome = %+v", body, out)
		}
	}
}
