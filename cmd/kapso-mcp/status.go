package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the webhook trigger server health",
	RunE: func(cmd *cobra.Command, args []string) error {
		base, _ := cmd.Flags().GetString("url")
		if base == "" {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			base = baseURL(a.cfg.Webhook.Addr)
		}

		client := &http.Client{Timeout: 5 * time.Second}
		resp, err := client.Get(strings.TrimSuffix(base, "/") + "/health")
		if err != nil {
			return fmt.Errorf("webhook server unreachable: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("webhook server: unhealthy (status %d)", resp.StatusCode)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "webhook server: ok")
		return nil
	},
}

// baseURL turns a listen address such as ":18790" into a local URL.
func baseURL(addr string) string {
	switch {
	case strings.HasPrefix(addr, "http://"), strings.HasPrefix(addr, "https://"):
		return addr
	case strings.HasPrefix(addr, ":"):
		return "http://localhost" + addr
	default:
		return "http://" + addr
	}
}

func init() {
	statusCmd.Flags().String("url", "", "base URL of the webhook server (default from webhook.addr)")
	rootCmd.AddCommand(statusCmd)
}
