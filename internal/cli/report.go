package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/testdeck/internal/ports/primary"
	"github.com/example/testdeck/internal/wire"
)

// ReportCmd returns the report command
func ReportCmd() *cobra.Command {
	var projectID string
	var statsOnly bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build a project quality report",
		Long:  "Aggregate a project's test case results and, unless --stats-only is set, ask the configured LLM for a narrative summary.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			project := resolveProject(projectID)
			if project == "" {
				return fmt.Errorf("no project specified\nHint: use --project or set a default with 'testdeck config set-project'")
			}

			report, err := wire.ReportService().BuildReport(ctx, primary.ReportRequest{
				ProjectID: project,
				StatsOnly: statsOnly,
			})
			if err != nil {
				return fmt.Errorf("failed to build report: %w", err)
			}

			fmt.Printf("Report for %s\n\n", report.ProjectID)

			stats := report.Stats
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Total cases\t%d\n", stats.Total)
			fmt.Fprintf(w, "Passed\t%s\n", color.GreenString("%d", stats.Passed))
			fmt.Fprintf(w, "Failed\t%s\n", color.RedString("%d", stats.Failed))
			fmt.Fprintf(w, "Blocked\t%s\n", color.YellowString("%d", stats.Blocked))
			fmt.Fprintf(w, "Not run\t%d\n", stats.NotRun)
			fmt.Fprintf(w, "Pass rate\t%.1f%%\n", stats.PassRate)
			w.Flush()

			if len(stats.ByPriority) > 0 {
				fmt.Println("\nBy priority:")
				for _, p := range []string{"high", "medium", "low"} {
					if n, ok := stats.ByPriority[p]; ok {
						fmt.Printf("  %s: %d\n", p, n)
					}
				}
			}

			if report.Defects != nil {
				fmt.Printf("\nDefects: %d open, %d resolved\n", report.Defects.Open, report.Defects.Resolved)
			}

			if report.Narrative != "" {
				fmt.Printf("\n%s\n", report.Narrative)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "p", "", "Project ID")
	cmd.Flags().BoolVar(&statsOnly, "stats-only", false, "Skip the LLM narrative; works without LLM settings")
	return cmd
}
