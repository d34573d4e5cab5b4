package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/testdeck/internal/wire"
)

// SyncCmd returns the sync command
func SyncCmd() *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Pull user stories from configured issue trackers",
		Long:  "Fetch stories from every enabled source (Jira, Azure DevOps) and reconcile them into the project. Stories are matched by title, case-insensitively.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			project := resolveProject(projectID)
			if project == "" {
				return fmt.Errorf("no project specified\nHint: use --project or set a default with 'testdeck config set-project'")
			}

			result, err := wire.SyncService().SyncStories(ctx, project)
			if err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SOURCE\tFETCHED\tINSERTED\tUPDATED\tSTATUS")
			fmt.Fprintln(w, "------\t-------\t--------\t-------\t------")
			for _, sr := range result.Sources {
				status := color.GreenString("ok")
				if sr.Err != "" {
					status = color.RedString("skipped: %s", sr.Err)
				}
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n", sr.Source, sr.Fetched, sr.Inserted, sr.Updated, status)
			}
			w.Flush()

			fmt.Printf("\n✓ Synced %s: %d inserted, %d updated\n", result.ProjectID, result.Inserted, result.Updated)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "p", "", "Project ID")
	return cmd
}
