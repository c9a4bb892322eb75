package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/operation"
)

var operationsCmd = &cobra.Command{
	Use:   "operations [resource]",
	Short: "List resources, operations, remote tools and their fields",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RESOURCE\tOPERATION\tTOOL\tFIELDS")

		for _, res := range operation.Resources {
			if len(args) == 1 && string(res.Resource) != args[0] {
				continue
			}
			for _, op := range res.Operations {
				key := operation.Key{Resource: res.Resource, Operation: op.Operation}
				d, _ := operation.Lookup(key)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", res.Resource, op.Operation, d.Tool, describeFields(key))
			}
		}
		return w.Flush()
	},
}

func describeFields(key operation.Key) string {
	var parts []string
	for _, f := range operation.FieldsFor(key) {
		if f.Name == "responseFormat" {
			continue
		}
		name := f.Name
		if f.Required {
			name += "*"
		}
		parts = append(parts, name)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func init() {
	rootCmd.AddCommand(operationsCmd)
}
