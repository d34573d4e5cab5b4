package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/testdeck/internal/config"
)

// configVersion is the config.json schema version written on first save.
const configVersion = "1"

// ConfigCmd returns the config command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage testdeck configuration",
		Long:  "Show and update the user configuration in ~/.testdeck/config.json.",
	}

	cmd.AddCommand(configShowCmd())
	cmd.AddCommand(configSetActorCmd())
	cmd.AddCommand(configSetProjectCmd())

	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to resolve home directory: %w", err)
			}

			cfg, err := config.LoadConfig(home)
			if err != nil {
				fmt.Println("No configuration found")
				fmt.Println("Hint: run 'testdeck init' first")
				return nil
			}

			fmt.Printf("Version: %s\n", cfg.Version)
			if cfg.Actor != "" {
				fmt.Printf("Actor: %s\n", cfg.Actor)
			} else {
				fmt.Println("Actor: (not set)")
			}
			if cfg.DefaultProject != "" {
				fmt.Printf("Default project: %s\n", cfg.DefaultProject)
			} else {
				fmt.Println("Default project: (not set)")
			}
			return nil
		},
	}
}

func configSetActorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-actor [name]",
		Short: "Set the actor recorded on created entities and audit entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(func(cfg *config.Config) {
				cfg.Actor = args[0]
			}, fmt.Sprintf("✓ Actor set to %s", args[0]))
		},
	}
}

func configSetProjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-project [project-id]",
		Short: "Set the default project used when --project is omitted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(func(cfg *config.Config) {
				cfg.DefaultProject = args[0]
			}, fmt.Sprintf("✓ Default project set to %s", args[0]))
		},
	}
}

// updateConfig loads the config, applies the mutation and saves it back.
// A missing config file starts from an empty one.
func updateConfig(mutate func(*config.Config), confirmation string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to resolve home directory: %w", err)
	}

	cfg, err := config.LoadConfig(home)
	if err != nil {
		cfg = &config.Config{Version: configVersion}
	}

	mutate(cfg)

	if err := config.SaveConfig(home, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println(confirmation)
	return nil
}
