package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Enriquefft/kapso-whatsapp-mcp/internal/lookup"
)

var lookupCmd = &cobra.Command{
	Use:       "lookup templates|customers|configs [filter]",
	Short:     "Search the values accepted by template, customer and host number fields",
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{"templates", "customers", "configs"},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		client, err := a.client()
		if err != nil {
			return err
		}

		filter := ""
		if len(args) == 2 {
			filter = args[1]
		}

		r := lookup.New(client)
		var opts []lookup.Option
		switch args[0] {
		case "templates":
			opts, err = r.Templates(cmd.Context(), filter)
		case "customers":
			opts, err = r.Customers(cmd.Context(), filter)
		case "configs":
			opts, err = r.WhatsAppConfigs(cmd.Context())
		default:
			return fmt.Errorf("unknown lookup %q, want templates, customers or configs", args[0])
		}
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "VALUE\tNAME")
		for _, o := range opts {
			fmt.Fprintf(w, "%s\t%s\n", o.Value, o.Name)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}
