package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/testdeck/internal/cli"
	"github.com/example/testdeck/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "testdeck",
		Short:   "testdeck - test management from the terminal",
		Version: version.String(),
		Long: `testdeck is a CLI tool for managing test projects, user stories and test cases.
It syncs stories from Jira and Azure DevOps and generates test cases via an LLM.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cli.DetectAndStoreActor()
		},
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.ConfigCmd())
	rootCmd.AddCommand(cli.ProjectCmd())
	rootCmd.AddCommand(cli.StoryCmd())
	rootCmd.AddCommand(cli.TestCaseCmd())
	rootCmd.AddCommand(cli.SyncCmd())
	rootCmd.AddCommand(cli.GenerateCmd())
	rootCmd.AddCommand(cli.ReportCmd())
	rootCmd.AddCommand(cli.UsageCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
