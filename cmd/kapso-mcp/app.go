package main

import (
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/config"
	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/credentials"
	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/dispatch"
	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/kapso"
	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/logging"
	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/metrics"
)

// app is the per-invocation setup shared by subcommands.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func loadApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level := cfg.Log.Level
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		level = v
	}
	return &app{cfg: cfg, logger: logging.New(logging.ParseLevel(level))}, nil
}

// client builds a Kapso client with the resolved API key.
func (a *app) client() (*kapso.Client, error) {
	key, err := credentials.ResolveAPIKey(a.cfg.Kapso.APIKey)
	if err != nil {
		return nil, err
	}
	return a.clientWithKey(key), nil
}

func (a *app) clientWithKey(key string) *kapso.Client {
	return kapso.NewClient(key,
		kapso.WithURL(a.cfg.Kapso.MCPURL),
		kapso.WithCredentialTestURL(a.cfg.Kapso.CredentialTestURL),
		kapso.WithHTTPClient(&http.Client{Timeout: a.cfg.Kapso.Timeout.Duration}),
	)
}

// executor builds an Executor from the [executor] config. The
// --continue-on-fail and --format flags win when the command has them.
func (a *app) executor(cmd *cobra.Command, c dispatch.Caller) *dispatch.Executor {
	exec := &dispatch.Executor{
		Caller:         c,
		ContinueOnFail: a.cfg.Executor.ContinueOnFail,
		ResponseFormat: a.cfg.Executor.ResponseFormat,
		Logger:         a.logger,
		Metrics:        metrics.New(),
	}
	if cmd.Flags().Changed("continue-on-fail") {
		exec.ContinueOnFail, _ = cmd.Flags().GetBool("continue-on-fail")
	}
	if f, _ := cmd.Flags().GetString("format"); f != "" {
		exec.ResponseFormat = f
	}
	return exec
}

// addRunFlags registers the flags read by executor.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "", "response format: concise or detailed")
	cmd.Flags().Bool("continue-on-fail", false, "emit error records instead of stopping at the first failure")
}
