package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/testdeck/internal/config"
	"github.com/example/testdeck/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the testdeck database",
		Long:  `Initialize the testdeck database at ~/.testdeck/testdeck.db with the required schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing testdeck database at %s\n", dbPath)

			database, err := db.GetDB()
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}

			fmt.Println("✓ Database initialized successfully")

			if err := initConfig(); err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}

			fmt.Println("✓ Config file created at ~/.testdeck/config.json")

			if seed {
				if err := db.SeedFixtures(database); err != nil {
					return fmt.Errorf("failed to seed fixtures: %w", err)
				}
				fmt.Println("✓ Seeded development fixtures")
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  testdeck config set-actor \"your-name\"")
			fmt.Println("  testdeck project create \"My First Project\"")

			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "Populate development fixtures")
	return cmd
}

// initConfig creates the initial config.json if it does not exist.
func initConfig() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	if _, err := config.LoadConfig(home); err == nil {
		return nil // Already exists, skip
	}

	return config.SaveConfig(home, &config.Config{Version: configVersion})
}
