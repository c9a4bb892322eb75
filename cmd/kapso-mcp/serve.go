package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/mcpserver"
	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose every operation as a tool of a local MCP server on stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		client, err := a.client()
		if err != nil {
			return err
		}

		// Stdout carries JSON-RPC; keep stray log output off it.
		log.SetOutput(os.Stderr)

		srv := mcpserver.New(client, version, a.logger, metrics.New())
		a.logger.Info("serving MCP on stdio", "tools", len(mcpserver.Tools()))
		return srv.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
