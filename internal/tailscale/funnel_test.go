package tailscale

import "testing"

func TestParseStatus(t *testing.T) {
	got, err := parseStatus([]byte(`{"Self":{"DNSName":"box.tail1234.ts.net."}}`))
	if err != nil {
		t.Fatalf("parseStatus: %v", err)
	}
	if got != "https://box.tail1234.ts.net" {
		t.Fatalf("got %q, want %q", got, "https://box.tail1234.ts.net")
	}

	if _, err := parseStatus([]byte(`{"Self":{}}`)); err == nil {
		t.Fatal("expected error for empty DNS name")
	}
	if _, err := parseStatus([]byte(`nope`)); err == nil {
		t.Fatal("expected error for bad JSON")
	}
}

func TestPort(t *testing.T) {
	tests := []struct {
		addr string
		want string
		ok   bool
	}{
		{":18790", "18790", true},
		{"127.0.0.1:8080", "8080", true},
		{"localhost", "", false},
		{"127.0.0.1:", "", false},
	}
	for _, tt := range tests {
		got, err := Port(tt.addr)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("Port(%q) = %q, %v; want %q", tt.addr, got, err, tt.want)
		}
		if !tt.ok && err == nil {
			t.Errorf("Port(%q) = %q, want error", tt.addr, got)
		}
	}
}
