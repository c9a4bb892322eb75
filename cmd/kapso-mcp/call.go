package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/dispatch"
	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/operation"
)

var callCmd = &cobra.Command{
	Use:   "call <resource> <operation>",
	Short: "Run an operation once per input item",
	Long: `Runs one Kapso MCP tool call per item and prints one JSON record per line.

Items come from --items (a YAML or JSON list of field maps) and/or --set
key=value pairs, which are applied to every item. Run "kapso-mcp operations"
to see the fields of each operation.`,
	Example: `  kapso-mcp call whatsappMessage sendText --set phone=+15551234567 --set body=hello
  kapso-mcp call whatsappContact addNote --items notes.yaml --continue-on-fail`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}

		var items []operation.Fields
		if path, _ := cmd.Flags().GetString("items"); path != "" {
			if items, err = readItems(path); err != nil {
				return err
			}
		}
		sets, _ := cmd.Flags().GetStringArray("set")
		if items, err = applySets(items, sets); err != nil {
			return err
		}

		client, err := a.client()
		if err != nil {
			return err
		}

		exec := a.executor(cmd, client)
		return runAndPrint(cmd, exec, operation.Resource(args[0]), operation.Operation(args[1]), items)
	},
}

// runAndPrint runs items and prints every record produced, including those
// before a failing item, then returns the run error.
func runAndPrint(cmd *cobra.Command, exec *dispatch.Executor, res operation.Resource, op operation.Operation, items []operation.Fields) error {
	records, runErr := exec.Run(cmd.Context(), res, op, items)
	if err := printRecords(cmd.OutOrStdout(), records); err != nil {
		return err
	}
	return runErr
}

func printRecords(w io.Writer, records []dispatch.Record) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	return nil
}

func init() {
	callCmd.Flags().StringArray("set", nil, "field value as key=value (repeatable)")
	callCmd.Flags().String("items", "", "YAML or JSON file with a list of items")
	addRunFlags(callCmd)
	rootCmd.AddCommand(callCmd)
}
