package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/testdeck/internal/ports/secondary"
)

// StoryRepository implements secondary.StoryRepository with SQLite.
type StoryRepository struct {
	db *sql.DB
}

// NewStoryRepository creates a new SQLite story repository.
func NewStoryRepository(db *sql.DB) *StoryRepository {
	return &StoryRepository{db: db}
}

const storySelectCols = "id, project_id, title, description, acceptance_criteria, priority, status, source, created_at, updated_at"

// scanStory scans a story row into a StoryRecord.
func scanStory(scanner interface {
	Scan(dest ...any) error
}) (*secondary.StoryRecord, error) {
	var (
		desc      sql.NullString
		criteria  sql.NullString
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.StoryRecord{}
	err := scanner.Scan(
		&record.ID, &record.ProjectID, &record.Title, &desc, &criteria,
		&record.Priority, &record.Status, &record.Source, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Description = desc.String
	record.AcceptanceCriteria = criteria.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// Create persists a new story.
func (r *StoryRepository) Create(ctx context.Context, story *secondary.StoryRecord) error {
	var desc, criteria sql.NullString
	if story.Description != "" {
		desc = sql.NullString{String: story.Description, Valid: true}
	}
	if story.AcceptanceCriteria != "" {
		criteria = sql.NullString{String: story.AcceptanceCriteria, Valid: true}
	}

	priority := story.Priority
	if priority == "" {
		priority = "medium"
	}
	status := story.Status
	if status == "" {
		status = "draft"
	}
	source := story.Source
	if source == "" {
		source = "manual"
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO user_stories (id, project_id, title, description, acceptance_criteria, priority, status, source) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		story.ID, story.ProjectID, story.Title, desc, criteria, priority, status, source,
	)
	if err != nil {
		return fmt.Errorf("failed to create story: %w", err)
	}

	return nil
}

// GetByID retrieves a story by its ID.
func (r *StoryRepository) GetByID(ctx context.Context, id string) (*secondary.StoryRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+storySelectCols+" FROM user_stories WHERE id = ?",
		id,
	)

	record, err := scanStory(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("story %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get story: %w", err)
	}

	return record, nil
}

// List retrieves stories matching the given filters.
func (r *StoryRepository) List(ctx context.Context, filters secondary.StoryFilters) ([]*secondary.StoryRecord, error) {
	query := "SELECT " + storySelectCols + " FROM user_stories WHERE 1=1"
	args := []any{}

	if filters.ProjectID != "" {
		query += " AND project_id = ?"
		args = append(args, filters.ProjectID)
	}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	if filters.Priority != "" {
		query += " AND priority = ?"
		args = append(args, filters.Priority)
	}

	if filters.Source != "" {
		query += " AND source = ?"
		args = append(args, filters.Source)
	}

	query += " ORDER BY created_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	defer rows.Close()

	var stories []*secondary.StoryRecord
	for rows.Next() {
		record, err := scanStory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan story: %w", err)
		}
		stories = append(stories, record)
	}

	return stories, nil
}

// Update updates an existing story's mutable fields.
func (r *StoryRepository) Update(ctx context.Context, story *secondary.StoryRecord) error {
	query := "UPDATE user_stories SET updated_at = CURRENT_TIMESTAMP"
	args := []any{}

	if story.Title != "" {
		query += ", title = ?"
		args = append(args, story.Title)
	}

	if story.Description != "" {
		query += ", description = ?"
		args = append(args, story.Description)
	}

	if story.AcceptanceCriteria != "" {
		query += ", acceptance_criteria = ?"
		args = append(args, story.AcceptanceCriteria)
	}

	if story.Priority != "" {
		query += ", priority = ?"
		args = append(args, story.Priority)
	}

	if story.Status != "" {
		query += ", status = ?"
		args = append(args, story.Status)
	}

	query += " WHERE id = ?"
	args = append(args, story.ID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update story: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("story %s not found", story.ID)
	}

	return nil
}

// UpdateStatus sets the story status.
func (r *StoryRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE user_stories SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update story status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("story %s not found", id)
	}

	return nil
}

// Delete removes a story from persistence.
func (r *StoryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM user_stories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete story: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("story %s not found", id)
	}

	return nil
}

// GetNextID returns the next available story ID.
func (r *StoryRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 4) AS INTEGER)), 0) FROM user_stories",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next story ID: %w", err)
	}

	return fmt.Sprintf("US-%03d", maxID+1), nil
}

// ProjectExists checks if a live project exists.
func (r *StoryRepository) ProjectExists(ctx context.Context, projectID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM projects WHERE id = ? AND deleted_at IS NULL", projectID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check project existence: %w", err)
	}
	return count > 0, nil
}

// Ensure StoryRepository implements the interface
var _ secondary.StoryRepository = (*StoryRepository)(nil)
