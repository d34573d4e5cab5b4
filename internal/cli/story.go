package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/testdeck/internal/ports/primary"
	"github.com/example/testdeck/internal/wire"
)

// StoryCmd returns the story command
func StoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "story",
		Short: "Manage user stories",
		Long:  "Create, list, update and delete user stories. Deleting a story deletes its test cases.",
	}

	cmd.AddCommand(storyCreateCmd())
	cmd.AddCommand(storyListCmd())
	cmd.AddCommand(storyShowCmd())
	cmd.AddCommand(storyUpdateCmd())
	cmd.AddCommand(storyStatusCmd())
	cmd.AddCommand(storyDeleteCmd())

	return cmd
}

func storyCreateCmd() *cobra.Command {
	var projectID, description, criteria, priority string

	cmd := &cobra.Command{
		Use:   "create [title]",
		Short: "Create a new user story",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			project := resolveProject(projectID)
			if project == "" {
				return fmt.Errorf("no project specified\nHint: use --project or set a default with 'testdeck config set-project'")
			}

			resp, err := wire.StoryService().CreateStory(ctx, primary.CreateStoryRequest{
				ProjectID:          project,
				Title:              args[0],
				Description:        description,
				AcceptanceCriteria: criteria,
				Priority:           priority,
			})
			if err != nil {
				return fmt.Errorf("failed to create story: %w", err)
			}

			fmt.Printf("✓ Created story %s: %s\n", resp.StoryID, resp.Story.Title)
			fmt.Printf("  Project: %s\n", resp.Story.ProjectID)
			fmt.Printf("  Priority: %s\n", resp.Story.Priority)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "p", "", "Project ID")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Story description")
	cmd.Flags().StringVar(&criteria, "criteria", "", "Acceptance criteria")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low/medium/high)")
	return cmd
}

func storyListCmd() *cobra.Command {
	var projectID, status, priority, source string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List user stories",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			stories, err := wire.StoryService().ListStories(ctx, primary.StoryFilters{
				ProjectID: resolveProject(projectID),
				Status:    status,
				Priority:  priority,
				Source:    source,
			})
			if err != nil {
				return fmt.Errorf("failed to list stories: %w", err)
			}

			if len(stories) == 0 {
				fmt.Println("No stories found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tPRIORITY\tSTATUS\tSOURCE")
			fmt.Fprintln(w, "--\t-----\t--------\t------\t------")
			for _, s := range stories {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Title, s.Priority, s.Status, s.Source)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "p", "", "Filter by project")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (draft/ready/in_progress/completed)")
	cmd.Flags().StringVar(&priority, "priority", "", "Filter by priority (low/medium/high)")
	cmd.Flags().StringVar(&source, "source", "", "Filter by source (manual/jira/azure)")
	return cmd
}

func storyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [story-id]",
		Short: "Show story details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			story, err := wire.StoryService().GetStory(ctx, args[0])
			if err != nil {
				return fmt.Errorf("story not found: %w", err)
			}

			fmt.Printf("Story: %s\n", story.ID)
			fmt.Printf("Project: %s\n", story.ProjectID)
			fmt.Printf("Title: %s\n", story.Title)
			if story.Description != "" {
				fmt.Printf("Description: %s\n", story.Description)
			}
			if story.AcceptanceCriteria != "" {
				fmt.Printf("Acceptance criteria: %s\n", story.AcceptanceCriteria)
			}
			fmt.Printf("Priority: %s\n", story.Priority)
			fmt.Printf("Status: %s\n", story.Status)
			fmt.Printf("Source: %s\n", story.Source)
			fmt.Printf("Created: %s\n", story.CreatedAt)
			fmt.Printf("Updated: %s\n", story.UpdatedAt)
			return nil
		},
	}
}

func storyUpdateCmd() *cobra.Command {
	var title, description, criteria, priority string

	cmd := &cobra.Command{
		Use:   "update [story-id]",
		Short: "Update a story's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			err := wire.StoryService().UpdateStory(ctx, primary.UpdateStoryRequest{
				StoryID:            args[0],
				Title:              title,
				Description:        description,
				AcceptanceCriteria: criteria,
				Priority:           priority,
			})
			if err != nil {
				return fmt.Errorf("failed to update story: %w", err)
			}

			fmt.Printf("✓ Updated story %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringVar(&criteria, "criteria", "", "New acceptance criteria")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority (low/medium/high)")
	return cmd
}

func storyStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [story-id] [status]",
		Short: "Set story status (draft/ready/in_progress/completed)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			if err := wire.StoryService().UpdateStoryStatus(ctx, args[0], args[1]); err != nil {
				return fmt.Errorf("failed to update status: %w", err)
			}

			fmt.Printf("✓ Story %s is now %s\n", args[0], args[1])
			return nil
		},
	}
}

func storyDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [story-id]",
		Short: "Delete a story and its test cases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			if err := wire.StoryService().DeleteStory(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete story: %w", err)
			}

			fmt.Printf("✓ Deleted story %s and its test cases\n", args[0])
			return nil
		},
	}
}
