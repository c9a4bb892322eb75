package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/delivery"
	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/idempotency"
	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/logging"
	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/metrics"
)

const (
	// DefaultPath is where deliveries are accepted.
	DefaultPath = "/webhook"
	// DefaultMaxBodyBytes caps a delivery body when MaxBodyBytes is unset.
	DefaultMaxBodyBytes = 1 << 20
)

// Server exposes a Receiver over HTTP and emits accepted records to Sink.
type Server struct {
	Addr     string
	Path     string
	Receiver *Receiver
	Sink     delivery.Sink
	// Store enables duplicate suppression by idempotency key when non-nil.
	Store idempotency.Store
	// MaxBodyBytes limits the request body; larger deliveries get 413.
	MaxBodyBytes int64
	Metrics      *metrics.Metrics
	Logger       *slog.Logger
}

// Handler returns the router: POST Path, GET /health and GET /metrics.
func (s *Server) Handler() http.Handler {
	path := s.Path
	if path == "" {
		path = DefaultPath
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post(path, s.handleEvent)
	r.Get("/health", handleHealth)
	r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	return r
}

// Run listens on Addr and serves until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("webhook listen: %w", err)
	}
	s.logger().Info("webhook server listening", "addr", ln.Addr().String())

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("webhook serve: %w", err)
	}
	return nil
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	log := s.logger()

	limit := s.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		s.Metrics.WebhookEvent(metrics.OutcomeInvalid)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Warn("webhook body too large", "limit", limit)
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]any{"error": "Payload too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "read error"})
		return
	}

	out := s.Receiver.Receive(Event{Headers: r.Header, Body: body})
	if !out.Accepted() {
		s.Metrics.WebhookEvent(outcomeLabel(out))
		log.Info("webhook delivery not accepted", "status", out.Status, "response", out.Response)
		writeJSON(w, out.Status, out.Response)
		return
	}

	if key, _ := out.Record["idempotencyKey"].(string); key != "" && s.Store != nil {
		dup, err := s.Store.Seen(r.Context(), key)
		if err != nil {
			log.Warn("idempotency check failed, accepting delivery", "key", key, "error", err)
		} else if dup {
			s.Metrics.WebhookEvent(metrics.OutcomeDuplicate)
			log.Info("skipping duplicate delivery", "key", key)
			writeJSON(w, http.StatusOK, map[string]any{"received": true, "duplicate": true})
			return
		}
	}

	if err := s.Sink.Emit(r.Context(), out.Record); err != nil {
		log.Error("emit record", "event", out.Record.Event(), "error", err)
	}
	s.Metrics.WebhookEvent(metrics.OutcomeAccepted)
	log.Info("webhook delivery accepted", "event", out.Record.Event())
	writeJSON(w, out.Status, out.Response)
}

func outcomeLabel(out Outcome) string {
	switch {
	case out.Response["ignored"] == true:
		return metrics.OutcomeIgnored
	case out.Status == http.StatusUnauthorized:
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeInvalid
	}
}

func (s *Server) logger() *slog.Logger {
	if s.Logger == nil {
		return logging.NewNop()
	}
	return s.Logger
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// handleHealth returns 200 OK; used by the CLI status command.
func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ok")
}
