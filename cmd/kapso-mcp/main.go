package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "kapso-mcp",
	Short: "Call Kapso WhatsApp tools through the Kapso MCP endpoint",
	Long: `kapso-mcp maps a (resource, operation) selection and its fields onto a
Kapso MCP tool call, runs it once per input item and prints one JSON record
per item.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
}
