package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/testdeck/internal/ports/secondary"
)

// TestCaseRepository implements secondary.TestCaseRepository with SQLite.
type TestCaseRepository struct {
	db *sql.DB
}

// NewTestCaseRepository creates a new SQLite test case repository.
func NewTestCaseRepository(db *sql.DB) *TestCaseRepository {
	return &TestCaseRepository{db: db}
}

const testCaseSelectCols = "id, project_id, user_story_id, readable_id, title, description, steps, expected_result, test_data, type, priority, status, category, executed_at, created_at, updated_at"

// scanTestCase scans a test case row into a TestCaseRecord.
func scanTestCase(scanner interface {
	Scan(dest ...any) error
}) (*secondary.TestCaseRecord, error) {
	var (
		storyID    sql.NullString
		readableID sql.NullString
		desc       sql.NullString
		steps      sql.NullString
		expected   sql.NullString
		testData   sql.NullString
		caseType   sql.NullString
		category   sql.NullString
		executedAt sql.NullTime
		createdAt  time.Time
		updatedAt  time.Time
	)

	record := &secondary.TestCaseRecord{}
	err := scanner.Scan(
		&record.ID, &record.ProjectID, &storyID, &readableID, &record.Title, &desc,
		&steps, &expected, &testData, &caseType, &record.Priority, &record.Status,
		&category, &executedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.UserStoryID = storyID.String
	record.ReadableID = readableID.String
	record.Description = desc.String
	record.Steps = steps.String
	record.ExpectedResult = expected.String
	record.TestData = testData.String
	record.Type = caseType.String
	record.Category = category.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	if executedAt.Valid {
		record.ExecutedAt = executedAt.Time.Format(time.RFC3339)
	}

	return record, nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Create persists a new test case.
func (r *TestCaseRepository) Create(ctx context.Context, tc *secondary.TestCaseRecord) error {
	priority := tc.Priority
	if priority == "" {
		priority = "medium"
	}
	status := tc.Status
	if status == "" {
		status = "not_run"
	}
	readableID := tc.ReadableID
	if readableID == "" {
		readableID = tc.ID
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO test_cases (id, project_id, user_story_id, readable_id, title, description, steps, expected_result, test_data, type, priority, status, category) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		tc.ID, tc.ProjectID, nullable(tc.UserStoryID), readableID, tc.Title, nullable(tc.Description),
		nullable(tc.Steps), nullable(tc.ExpectedResult), nullable(tc.TestData), nullable(tc.Type),
		priority, status, nullable(tc.Category),
	)
	if err != nil {
		return fmt.Errorf("failed to create test case: %w", err)
	}

	return nil
}

// GetByID retrieves a test case by its ID.
func (r *TestCaseRepository) GetByID(ctx context.Context, id string) (*secondary.TestCaseRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+testCaseSelectCols+" FROM test_cases WHERE id = ?",
		id,
	)

	record, err := scanTestCase(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("test case %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get test case: %w", err)
	}

	return record, nil
}

// List retrieves test cases matching the given filters.
func (r *TestCaseRepository) List(ctx context.Context, filters secondary.TestCaseFilters) ([]*secondary.TestCaseRecord, error) {
	query := "SELECT " + testCaseSelectCols + " FROM test_cases WHERE 1=1"
	args := []any{}

	if filters.ProjectID != "" {
		query += " AND project_id = ?"
		args = append(args, filters.ProjectID)
	}

	if filters.UserStoryID != "" {
		query += " AND user_story_id = ?"
		args = append(args, filters.UserStoryID)
	}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	if filters.Priority != "" {
		query += " AND priority = ?"
		args = append(args, filters.Priority)
	}

	query += " ORDER BY created_at ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list test cases: %w", err)
	}
	defer rows.Close()

	var cases []*secondary.TestCaseRecord
	for rows.Next() {
		record, err := scanTestCase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan test case: %w", err)
		}
		cases = append(cases, record)
	}

	return cases, nil
}

// Update updates an existing test case's mutable fields.
func (r *TestCaseRepository) Update(ctx context.Context, tc *secondary.TestCaseRecord) error {
	query := "UPDATE test_cases SET updated_at = CURRENT_TIMESTAMP"
	args := []any{}

	if tc.Title != "" {
		query += ", title = ?"
		args = append(args, tc.Title)
	}
	if tc.Description != "" {
		query += ", description = ?"
		args = append(args, tc.Description)
	}
	if tc.Steps != "" {
		query += ", steps = ?"
		args = append(args, tc.Steps)
	}
	if tc.ExpectedResult != "" {
		query += ", expected_result = ?"
		args = append(args, tc.ExpectedResult)
	}
	if tc.TestData != "" {
		query += ", test_data = ?"
		args = append(args, tc.TestData)
	}
	if tc.Priority != "" {
		query += ", priority = ?"
		args = append(args, tc.Priority)
	}

	query += " WHERE id = ?"
	args = append(args, tc.ID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update test case: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("test case %s not found", tc.ID)
	}

	return nil
}

// UpdateStatus sets the execution status; setExecuted stamps executed_at.
func (r *TestCaseRepository) UpdateStatus(ctx context.Context, id, status string, setExecuted bool) error {
	query := "UPDATE test_cases SET status = ?, updated_at = CURRENT_TIMESTAMP"
	args := []any{status}

	if setExecuted {
		query += ", executed_at = CURRENT_TIMESTAMP"
	} else {
		query += ", executed_at = NULL"
	}

	query += " WHERE id = ?"
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update test case status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("test case %s not found", id)
	}

	return nil
}

// Delete removes a test case from persistence.
func (r *TestCaseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM test_cases WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete test case: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("test case %s not found", id)
	}

	return nil
}

// DeleteByStory removes all test cases for a (project, story) pair.
func (r *TestCaseRepository) DeleteByStory(ctx context.Context, projectID, storyID string) (int, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM test_cases WHERE project_id = ? AND user_story_id = ?",
		projectID, storyID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete test cases for story: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	return int(rowsAffected), nil
}

// GetNextID returns the next available test case ID.
func (r *TestCaseRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 4) AS INTEGER)), 0) FROM test_cases",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next test case ID: %w", err)
	}

	return fmt.Sprintf("TC-%03d", maxID+1), nil
}

// ProjectExists checks if a live project exists.
func (r *TestCaseRepository) ProjectExists(ctx context.Context, projectID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM projects WHERE id = ? AND deleted_at IS NULL", projectID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check project existence: %w", err)
	}
	return count > 0, nil
}

// StoryExists checks if a story exists.
func (r *TestCaseRepository) StoryExists(ctx context.Context, storyID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM user_stories WHERE id = ?", storyID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check story existence: %w", err)
	}
	return count > 0, nil
}

// Ensure TestCaseRepository implements the interface
var _ secondary.TestCaseRepository = (*TestCaseRepository)(nil)
