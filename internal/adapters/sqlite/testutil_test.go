// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the single point where the database schema is loaded for
// tests. All test setup functions use db.GetSchemaSQL() so that tests
// run against the authoritative schema; repository code referencing a
// column that does not exist there fails immediately with "no such
// column". Do not hardcode CREATE TABLE statements in test files.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/testdeck/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository tests.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedProject inserts a test project and returns its ID.
func seedProject(t *testing.T, db *sql.DB, id, name string) string {
	t.Helper()
	if id == "" {
		id = "PROJ-001"
	}
	if name == "" {
		name = "Test Project"
	}
	_, err := db.Exec("INSERT INTO projects (id, name, status) VALUES (?, ?, 'active')", id, name)
	if err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return id
}

// seedStory inserts a test story and returns its ID.
func seedStory(t *testing.T, db *sql.DB, id, projectID, title string) string {
	t.Helper()
	if id == "" {
		id = "US-001"
	}
	if projectID == "" {
		projectID = "PROJ-001"
	}
	if title == "" {
		title = "Test Story"
	}
	_, err := db.Exec("INSERT INTO user_stories (id, project_id, title, priority, status, source) VALUES (?, ?, ?, 'medium', 'draft', 'manual')", id, projectID, title)
	if err != nil {
		t.Fatalf("failed to seed story: %v", err)
	}
	return id
}

// seedTestCase inserts a test case and returns its ID.
func seedTestCase(t *testing.T, db *sql.DB, id, projectID, storyID, title string) string {
	t.Helper()
	if id == "" {
		id = "TC-001"
	}
	if projectID == "" {
		projectID = "PROJ-001"
	}
	if title == "" {
		title = "Test Case"
	}
	var story any
	if storyID != "" {
		story = storyID
	}
	_, err := db.Exec("INSERT INTO test_cases (id, project_id, user_story_id, readable_id, title, priority, status) VALUES (?, ?, ?, ?, ?, 'medium', 'not_run')", id, projectID, story, id, title)
	if err != nil {
		t.Fatalf("failed to seed test case: %v", err)
	}
	return id
}
