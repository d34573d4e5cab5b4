package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/testdeck/internal/config"
	"github.com/example/testdeck/internal/db"
	"github.com/example/testdeck/internal/version"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the testdeck environment",
		Long: `Environment health check for testdeck.

Validates:
- Directory structure (~/.testdeck/) and the database file
- config.json presence and actor/default project settings
- providers.yaml validity and which providers are enabled
- Binary installation and PATH

Examples:
  testdeck doctor          # Run full health check
  testdeck doctor --quiet  # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := []CheckResult{}
			hasErrors := false

			results = append(results, checkDatabase())
			results = append(results, checkConfig())
			results = append(results, checkProviders())
			results = append(results, checkBinary())

			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				fmt.Println("Check              Status")
				fmt.Println("─────────────────────────")
				for _, r := range results {
					fmt.Printf("%-18s %s\n", r.Name, r.Status)
				}
				fmt.Println()

				hasDetails := false
				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						if !hasDetails {
							fmt.Println("Details:")
							hasDetails = true
						}
						fmt.Printf("\n%s:\n%s\n", r.Name, r.Details)
					}
				}

				if hasErrors {
					fmt.Println("\n⚠ Issues found. Run 'testdeck init' to set up missing pieces.")
				} else {
					fmt.Println("All checks passed.")
				}
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

// checkDatabase validates the data directory and database file
func checkDatabase() CheckResult {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  Cannot get home directory"}
	}

	missing := []string{}

	tdDir := filepath.Join(homeDir, ".testdeck")
	if _, err := os.Stat(tdDir); os.IsNotExist(err) {
		missing = append(missing, "~/.testdeck/")
	}

	dbPath, err := db.GetDBPath()
	if err == nil {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			missing = append(missing, "~/.testdeck/testdeck.db")
		}
	}

	if len(missing) > 0 {
		return CheckResult{
			Name:    "Database",
			Status:  "✗",
			Details: "  Missing: " + strings.Join(missing, ", ") + "\n  Run: testdeck init",
		}
	}

	return CheckResult{Name: "Database", Status: "✓"}
}

// checkConfig validates config.json and its key settings
func checkConfig() CheckResult {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return CheckResult{Name: "Config", Status: "✗", Details: "  Cannot get home directory"}
	}

	cfg, err := config.LoadConfig(homeDir)
	if err != nil {
		return CheckResult{
			Name:    "Config",
			Status:  "✗",
			Details: "  ~/.testdeck/config.json not readable\n  Run: testdeck init",
		}
	}

	warnings := []string{}
	if cfg.Actor == "" {
		warnings = append(warnings, "actor not set, audit entries will be anonymous\n  Run: testdeck config set-actor \"your-name\"")
	}
	if cfg.DefaultProject == "" {
		warnings = append(warnings, "default project not set, commands need an explicit --project")
	}

	if len(warnings) > 0 {
		return CheckResult{
			Name:    "Config",
			Status:  "⚠",
			Details: "  " + strings.Join(warnings, "\n  "),
		}
	}

	return CheckResult{Name: "Config", Status: "✓"}
}

// checkProviders validates providers.yaml and reports enabled providers
func checkProviders() CheckResult {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return CheckResult{Name: "Providers", Status: "✗", Details: "  Cannot get home directory"}
	}

	providers, err := config.LoadProviders(homeDir)
	if err != nil {
		return CheckResult{
			Name:    "Providers",
			Status:  "✗",
			Details: "  " + err.Error(),
		}
	}

	enabled := []string{}
	if providers.Jira.Enabled {
		enabled = append(enabled, "jira")
	}
	if providers.Azure.Enabled {
		enabled = append(enabled, "azure")
	}
	if providers.LLM.Enabled {
		enabled = append(enabled, "llm")
	}

	if len(enabled) == 0 {
		return CheckResult{
			Name:    "Providers",
			Status:  "⚠",
			Details: "  No providers enabled; sync, generate and report narratives are unavailable\n  Edit: " + config.ProvidersPath("~"),
		}
	}

	return CheckResult{Name: "Providers", Status: "✓", Details: "  Enabled: " + strings.Join(enabled, ", ")}
}

// checkBinary validates testdeck binary installation
func checkBinary() CheckResult {
	binPath, err := exec.LookPath("testdeck")
	if err != nil {
		return CheckResult{
			Name:    "Binary",
			Status:  "⚠",
			Details: "  'testdeck' not found in PATH\n  Run: make install",
		}
	}

	return CheckResult{Name: "Binary", Status: "✓", Details: fmt.Sprintf("  %s (%s)", binPath, version.String())}
}
