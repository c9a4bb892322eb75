package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/config"
	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/delivery"
	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/gateway"
	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/idempotency"
	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/logging"
	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/metrics"
	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/tailscale"
	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/webhook"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "kapso-mcp-webhook: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := logging.New(logging.ParseLevel(cfg.Log.Level))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sink, closeSink, err := buildSink(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSink()

	store, closeStore, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.Webhook.Funnel {
		port, err := tailscale.Port(cfg.Webhook.Addr)
		if err != nil {
			return err
		}
		url, err := tailscale.StartFunnel(ctx, port, cfg.Webhook.Path, logger)
		if err != nil {
			return err
		}
		logger.Info("register this URL as the Kapso webhook", "url", url)
	}

	var hooks webhook.Hooks
	if ok, err := hooks.CheckExists(ctx); err != nil || !ok {
		if ok, err = hooks.Create(ctx); err != nil || !ok {
			return fmt.Errorf("register webhook: %v", err)
		}
	}
	defer hooks.Delete(context.Background())

	srv := &webhook.Server{
		Addr: cfg.Webhook.Addr,
		Path: cfg.Webhook.Path,
		Receiver: webhook.NewReceiver(webhook.Config{
			Events:          cfg.Webhook.Events,
			VerifySignature: cfg.Webhook.VerifySignature,
			Secret:          cfg.Webhook.Secret,
		}),
		Sink:         sink,
		Store:        store,
		MaxBodyBytes: cfg.Webhook.MaxBodyBytes,
		Metrics:      metrics.New(),
		Logger:       logger,
	}
	return srv.Run(ctx)
}

// buildSink writes records to stdout and, when a gateway is configured,
// forwards them there too.
func buildSink(ctx context.Context, cfg *config.Config, logger *slog.Logger) (delivery.Sink, func(), error) {
	stdout := delivery.NewWriter(os.Stdout)
	if cfg.Gateway.URL == "" {
		return stdout, func() {}, nil
	}

	gw := gateway.NewClient(cfg.Gateway.URL, cfg.Gateway.Token, logger)
	if err := gw.Connect(ctx); err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := gw.Close(); err != nil {
			logger.Warn("close gateway", "error", err)
		}
	}
	return &delivery.Fanout{Sinks: []delivery.Sink{stdout, gw}}, closeFn, nil
}

func buildStore(ctx context.Context, cfg *config.Config) (idempotency.Store, func(), error) {
	switch cfg.Idempotency.Backend {
	case "memory":
		mem := idempotency.NewMemory()
		go mem.StartCleanup(ctx, cfg.Idempotency.TTL.Duration)
		return mem, func() {}, nil
	case "redis":
		r := idempotency.NewRedis(cfg.Idempotency.RedisAddr, cfg.Idempotency.RedisPassword, cfg.Idempotency.RedisDB,
			idempotency.WithTTL(cfg.Idempotency.TTL.Duration))
		if err := r.Ping(ctx); err != nil {
			r.Close()
			return nil, nil, err
		}
		return r, func() { r.Close() }, nil
	default:
		return nil, func() {}, nil
	}
}
