package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_readable_id_to_test_cases",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_source_field_to_user_stories",
		Up:      migrationV2,
	},
}

// RunMigrations applies all pending migrations to the database.
func RunMigrations(database *sql.DB) error {
	// Create schema_version table if it doesn't exist
	_, err := database.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	// Get current schema version
	var currentVersion int
	err = database.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		if err := migration.Up(database); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		if _, err := database.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// migrationV1 adds readable_id to test_cases for installs created before
// the column existed. Fresh installs already have it via SchemaSQL.
func migrationV1(database *sql.DB) error {
	if columnExists(database, "test_cases", "readable_id") {
		return nil
	}
	_, err := database.Exec("ALTER TABLE test_cases ADD COLUMN readable_id TEXT")
	return err
}

// migrationV2 adds the source tag to user_stories.
func migrationV2(database *sql.DB) error {
	if columnExists(database, "user_stories", "source") {
		return nil
	}
	_, err := database.Exec("ALTER TABLE user_stories ADD COLUMN source TEXT NOT NULL DEFAULT 'manual'")
	return err
}

// columnExists reports whether a column exists on a table.
func columnExists(database *sql.DB, table, column string) bool {
	rows, err := database.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			continue
		}
		if name == column {
			return true
		}
	}
	return false
}
