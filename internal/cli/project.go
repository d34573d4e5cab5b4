package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/testdeck/internal/ports/primary"
	"github.com/example/testdeck/internal/wire"
)

// ProjectCmd returns the project command
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage test projects",
		Long:  "Create, list, update, archive and delete test projects.",
	}

	cmd.AddCommand(projectCreateCmd())
	cmd.AddCommand(projectListCmd())
	cmd.AddCommand(projectShowCmd())
	cmd.AddCommand(projectUpdateCmd())
	cmd.AddCommand(projectArchiveCmd())
	cmd.AddCommand(projectDeleteCmd())
	cmd.AddCommand(projectMemberCmd())

	return cmd
}

func projectCreateCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			resp, err := wire.ProjectService().CreateProject(ctx, primary.CreateProjectRequest{
				Name:        args[0],
				Description: description,
			})
			if err != nil {
				return fmt.Errorf("failed to create project: %w", err)
			}

			fmt.Printf("✓ Created project %s: %s\n", resp.ProjectID, resp.Project.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Project description")
	return cmd
}

func projectListCmd() *cobra.Command {
	var status string
	var includeDeleted bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			projects, err := wire.ProjectService().ListProjects(ctx, primary.ProjectFilters{
				Status:         status,
				IncludeDeleted: includeDeleted,
			})
			if err != nil {
				return fmt.Errorf("failed to list projects: %w", err)
			}

			if len(projects) == 0 {
				fmt.Println("No projects found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTATUS\tCREATED BY\tCREATED")
			fmt.Fprintln(w, "--\t----\t------\t----------\t-------")
			for _, p := range projects {
				createdBy := p.CreatedBy
				if createdBy == "" {
					createdBy = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Status, createdBy, p.CreatedAt)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (active/archived)")
	cmd.Flags().BoolVar(&includeDeleted, "include-deleted", false, "Include soft-deleted projects")
	return cmd
}

func projectShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [project-id]",
		Short: "Show project details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			project, err := wire.ProjectService().GetProject(ctx, args[0])
			if err != nil {
				return fmt.Errorf("project not found: %w", err)
			}

			fmt.Printf("Project: %s\n", project.ID)
			fmt.Printf("Name: %s\n", project.Name)
			if project.Description != "" {
				fmt.Printf("Description: %s\n", project.Description)
			}
			fmt.Printf("Status: %s\n", project.Status)
			if project.CreatedBy != "" {
				fmt.Printf("Created by: %s\n", project.CreatedBy)
			}
			fmt.Printf("Created: %s\n", project.CreatedAt)
			fmt.Printf("Updated: %s\n", project.UpdatedAt)
			return nil
		},
	}
}

func projectUpdateCmd() *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "update [project-id]",
		Short: "Update a project's name or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			err := wire.ProjectService().UpdateProject(ctx, primary.UpdateProjectRequest{
				ProjectID:   args[0],
				Name:        name,
				Description: description,
			})
			if err != nil {
				return fmt.Errorf("failed to update project: %w", err)
			}

			fmt.Printf("✓ Updated project %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New project name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New project description")
	return cmd
}

func projectArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive [project-id]",
		Short: "Archive a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			if err := wire.ProjectService().ArchiveProject(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to archive project: %w", err)
			}

			fmt.Printf("✓ Archived project %s\n", args[0])
			return nil
		},
	}
}

func projectDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [project-id]",
		Short: "Delete a project (soft delete)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			if err := wire.ProjectService().DeleteProject(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete project: %w", err)
			}

			fmt.Printf("✓ Deleted project %s\n", args[0])
			return nil
		},
	}
}

func projectMemberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage project members",
	}

	var role string
	addCmd := &cobra.Command{
		Use:   "add [project-id] [member]",
		Short: "Add a member to a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			err := wire.ProjectService().AddMember(ctx, primary.AddMemberRequest{
				ProjectID: args[0],
				Member:    args[1],
				Role:      role,
			})
			if err != nil {
				return fmt.Errorf("failed to add member: %w", err)
			}

			fmt.Printf("✓ Added %s to project %s\n", args[1], args[0])
			return nil
		},
	}
	addCmd.Flags().StringVar(&role, "role", "", "Member role (viewer/editor/admin, default viewer)")

	removeCmd := &cobra.Command{
		Use:   "remove [project-id] [member]",
		Short: "Remove a member from a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			if err := wire.ProjectService().RemoveMember(ctx, args[0], args[1]); err != nil {
				return fmt.Errorf("failed to remove member: %w", err)
			}

			fmt.Printf("✓ Removed %s from project %s\n", args[1], args[0])
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list [project-id]",
		Short: "List project members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			members, err := wire.ProjectService().ListMembers(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to list members: %w", err)
			}

			if len(members) == 0 {
				fmt.Println("No members found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tMEMBER\tROLE\tADDED")
			fmt.Fprintln(w, "--\t------\t----\t-----")
			for _, m := range members {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.ID, m.Member, m.Role, m.CreatedAt)
			}
			w.Flush()
			return nil
		},
	}

	cmd.AddCommand(addCmd)
	cmd.AddCommand(removeCmd)
	cmd.AddCommand(listCmd)
	return cmd
}
