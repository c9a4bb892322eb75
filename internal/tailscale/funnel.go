// Package tailscale exposes the local trigger server on a public HTTPS URL
// through `tailscale funnel`.
package tailscale

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/exec"
	"strings"
)

// tsStatus is a minimal subset of `tailscale status --json` output.
type tsStatus struct {
	Self struct {
		DNSName string `json:"DNSName"`
	} `json:"Self"`
}

// EnsureInstalled checks that the tailscale CLI is available.
func EnsureInstalled() error {
	if _, err := exec.LookPath("tailscale"); err != nil {
		return errors.New("tailscale CLI not found in PATH, install from https://tailscale.com/download")
	}
	return nil
}

// PublicURL returns the HTTPS base URL of this node,
// e.g. "https://machine.tailnet.ts.net".
func PublicURL(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "tailscale", "status", "--json").Output()
	if err != nil {
		return "", fmt.Errorf("tailscale status: %w (is tailscale running?)", err)
	}
	return parseStatus(out)
}

func parseStatus(out []byte) (string, error) {
	var status tsStatus
	if err := json.Unmarshal(out, &status); err != nil {
		return "", fmt.Errorf("parse tailscale status: %w", err)
	}

	dns := strings.TrimSuffix(status.Self.DNSName, ".")
	if dns == "" {
		return "", errors.New("tailscale: empty DNS name, is the node connected?")
	}
	return "https://" + dns, nil
}

// Port extracts the port from a listen address such as ":18790".
func Port(addr string) (string, error) {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("parse listen address %q: %w", addr, err)
	}
	if port == "" {
		return "", fmt.Errorf("listen address %q has no port", addr)
	}
	return port, nil
}

// StartFunnel runs `tailscale funnel <port>` until ctx is cancelled and
// returns the public URL of path. The process is killed with ctx.
func StartFunnel(ctx context.Context, port, path string, logger *slog.Logger) (string, error) {
	if err := EnsureInstalled(); err != nil {
		return "", err
	}

	baseURL, err := PublicURL(ctx)
	if err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, "tailscale", "funnel", port)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("start tailscale funnel: %w", err)
	}
	go cmd.Wait()

	url := baseURL + path
	logger.Info("tailscale funnel started", "port", port, "url", url)
	return url, nil
}
