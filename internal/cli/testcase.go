package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/testdeck/internal/ports/primary"
	"github.com/example/testdeck/internal/wire"
)

// TestCaseCmd returns the testcase command
func TestCaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "testcase",
		Short: "Manage test cases and execution results",
		Long:  "Create, list, update and delete test cases, and record execution results.",
	}

	cmd.AddCommand(testCaseCreateCmd())
	cmd.AddCommand(testCaseListCmd())
	cmd.AddCommand(testCaseShowCmd())
	cmd.AddCommand(testCaseUpdateCmd())
	cmd.AddCommand(testCaseStatusCmd())
	cmd.AddCommand(testCaseDeleteCmd())

	return cmd
}

// statusColor renders an execution status with a terminal color.
func statusColor(status string) string {
	switch status {
	case "passed":
		return color.GreenString(status)
	case "failed":
		return color.RedString(status)
	case "blocked":
		return color.YellowString(status)
	default:
		return status
	}
}

func testCaseCreateCmd() *cobra.Command {
	var projectID, storyID, description, expected, testData, caseType, priority, category string
	var steps []string

	cmd := &cobra.Command{
		Use:   "create [title]",
		Short: "Create a new test case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			project := resolveProject(projectID)
			if project == "" {
				return fmt.Errorf("no project specified\nHint: use --project or set a default with 'testdeck config set-project'")
			}

			resp, err := wire.TestCaseService().CreateTestCase(ctx, primary.CreateTestCaseRequest{
				ProjectID:      project,
				UserStoryID:    storyID,
				Title:          args[0],
				Description:    description,
				Steps:          strings.Join(steps, "\n"),
				ExpectedResult: expected,
				TestData:       testData,
				Type:           caseType,
				Priority:       priority,
				Category:       category,
			})
			if err != nil {
				return fmt.Errorf("failed to create test case: %w", err)
			}

			fmt.Printf("✓ Created test case %s: %s\n", resp.TestCaseID, resp.TestCase.Title)
			if resp.TestCase.UserStoryID != "" {
				fmt.Printf("  Story: %s\n", resp.TestCase.UserStoryID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "p", "", "Project ID")
	cmd.Flags().StringVarP(&storyID, "story", "s", "", "User story ID")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Test case description")
	cmd.Flags().StringArrayVar(&steps, "step", nil, "Test step (repeatable, in order)")
	cmd.Flags().StringVar(&expected, "expected", "", "Expected result")
	cmd.Flags().StringVar(&testData, "data", "", "Test data")
	cmd.Flags().StringVar(&caseType, "type", "", "Test case type")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low/medium/high)")
	cmd.Flags().StringVar(&category, "category", "", "Coverage category")
	return cmd
}

func testCaseListCmd() *cobra.Command {
	var projectID, storyID, status, priority string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List test cases",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			cases, err := wire.TestCaseService().ListTestCases(ctx, primary.TestCaseFilters{
				ProjectID:   resolveProject(projectID),
				UserStoryID: storyID,
				Status:      status,
				Priority:    priority,
			})
			if err != nil {
				return fmt.Errorf("failed to list test cases: %w", err)
			}

			if len(cases) == 0 {
				fmt.Println("No test cases found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tPRIORITY\tSTATUS\tSTORY\tCATEGORY")
			fmt.Fprintln(w, "--\t-----\t--------\t------\t-----\t--------")
			for _, tc := range cases {
				storyRef := tc.UserStoryID
				if storyRef == "" {
					storyRef = "-"
				}
				category := tc.Category
				if category == "" {
					category = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					tc.ID, tc.Title, tc.Priority, statusColor(tc.Status), storyRef, category)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "p", "", "Filter by project")
	cmd.Flags().StringVarP(&storyID, "story", "s", "", "Filter by user story")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (not_run/passed/failed/blocked)")
	cmd.Flags().StringVar(&priority, "priority", "", "Filter by priority (low/medium/high)")
	return cmd
}

func testCaseShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [testcase-id]",
		Short: "Show test case details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			tc, err := wire.TestCaseService().GetTestCase(ctx, args[0])
			if err != nil {
				return fmt.Errorf("test case not found: %w", err)
			}

			fmt.Printf("Test case: %s", tc.ID)
			if tc.ReadableID != "" && tc.ReadableID != tc.ID {
				fmt.Printf(" (%s)", tc.ReadableID)
			}
			fmt.Println()
			fmt.Printf("Project: %s\n", tc.ProjectID)
			if tc.UserStoryID != "" {
				fmt.Printf("Story: %s\n", tc.UserStoryID)
			}
			fmt.Printf("Title: %s\n", tc.Title)
			if tc.Description != "" {
				fmt.Printf("Description: %s\n", tc.Description)
			}
			if tc.Steps != "" {
				fmt.Println("Steps:")
				for i, step := range strings.Split(tc.Steps, "\n") {
					fmt.Printf("  %d. %s\n", i+1, step)
				}
			}
			if tc.ExpectedResult != "" {
				fmt.Printf("Expected result: %s\n", tc.ExpectedResult)
			}
			if tc.TestData != "" {
				fmt.Printf("Test data: %s\n", tc.TestData)
			}
			if tc.Type != "" {
				fmt.Printf("Type: %s\n", tc.Type)
			}
			fmt.Printf("Priority: %s\n", tc.Priority)
			fmt.Printf("Status: %s\n", statusColor(tc.Status))
			if tc.Category != "" {
				fmt.Printf("Category: %s\n", tc.Category)
			}
			if tc.ExecutedAt != "" {
				fmt.Printf("Executed: %s\n", tc.ExecutedAt)
			}
			fmt.Printf("Created: %s\n", tc.CreatedAt)
			return nil
		},
	}
}

func testCaseUpdateCmd() *cobra.Command {
	var title, description, expected, testData, priority string
	var steps []string

	cmd := &cobra.Command{
		Use:   "update [testcase-id]",
		Short: "Update a test case's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			err := wire.TestCaseService().UpdateTestCase(ctx, primary.UpdateTestCaseRequest{
				TestCaseID:     args[0],
				Title:          title,
				Description:    description,
				Steps:          strings.Join(steps, "\n"),
				ExpectedResult: expected,
				TestData:       testData,
				Priority:       priority,
			})
			if err != nil {
				return fmt.Errorf("failed to update test case: %w", err)
			}

			fmt.Printf("✓ Updated test case %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringArrayVar(&steps, "step", nil, "Test step (repeatable, replaces all steps)")
	cmd.Flags().StringVar(&expected, "expected", "", "New expected result")
	cmd.Flags().StringVar(&testData, "data", "", "New test data")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority (low/medium/high)")
	return cmd
}

func testCaseStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [testcase-id] [status]",
		Short: "Record an execution result (not_run/passed/failed/blocked)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			if err := wire.TestCaseService().SetExecutionStatus(ctx, args[0], args[1]); err != nil {
				return fmt.Errorf("failed to record result: %w", err)
			}

			fmt.Printf("✓ Test case %s is now %s\n", args[0], statusColor(args[1]))
			return nil
		},
	}
}

func testCaseDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [testcase-id]",
		Short: "Delete a test case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			if err := wire.TestCaseService().DeleteTestCase(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete test case: %w", err)
			}

			fmt.Printf("✓ Deleted test case %s\n", args[0])
			return nil
		},
	}
}
