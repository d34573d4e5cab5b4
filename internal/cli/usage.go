package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/testdeck/internal/wire"
)

// UsageCmd returns the usage command
func UsageCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "usage",
		Short: "List recent AI usage entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			entries, err := wire.UsageService().ListUsage(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list usage: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println("No usage recorded")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tOPERATION\tPROVIDER\tMODEL\tTOKENS\tCOST\tLATENCY\tOK\tWHEN")
			fmt.Fprintln(w, "--\t---------\t--------\t-----\t------\t----\t-------\t--\t----")
			for _, e := range entries {
				ok := "yes"
				if !e.Success {
					ok = "no"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t$%.4f\t%dms\t%s\t%s\n",
					e.ID, e.Operation, e.Provider, e.Model,
					e.PromptTokens+e.CompletionTokens, e.CostEstimate, e.LatencyMS, ok, e.CreatedAt)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries to show")
	return cmd
}
