package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBaseURL(t *testing.T) {
	tests := map[string]string{
		":18790":                "http://localhost:18790",
		"0.0.0.0:9000":          "http://0.0.0.0:9000",
		"https://hooks.example": "https://hooks.example",
	}
	for in, want := range tests {
		if got := baseURL(in); got != want {
			t.Errorf("baseURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStatusCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, "ok")
	}))
	defer srv.Close()

	out, err := execute(t, "", "status", "--url", srv.URL)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "webhook server: ok") {
		t.Fatalf("output = %q", out)
	}
}

func TestOperationsCommand(t *testing.T) {
	got, err := execute(t, "", "operations", "setupLink")
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	for _, want := range []string{"platform_generate_setup_link", "platform_revoke_setup_link", "setupLinkId*"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "whatsapp_send_text_message") {
		t.Errorf("resource filter not applied:\n%s", got)
	}
}
