// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/testdeck/internal/ports/secondary"
)

// ProjectRepository implements secondary.ProjectRepository with SQLite.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new SQLite project repository.
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectSelectCols = "id, name, description, created_by, status, deleted_at, created_at, updated_at"

// scanProject scans a project row into a ProjectRecord.
func scanProject(scanner interface {
	Scan(dest ...any) error
}) (*secondary.ProjectRecord, error) {
	var (
		desc      sql.NullString
		createdBy sql.NullString
		deletedAt sql.NullTime
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.ProjectRecord{}
	err := scanner.Scan(&record.ID, &record.Name, &desc, &createdBy, &record.Status, &deletedAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	record.Description = desc.String
	record.CreatedBy = createdBy.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	if deletedAt.Valid {
		record.DeletedAt = deletedAt.Time.Format(time.RFC3339)
	}

	return record, nil
}

// Create persists a new project.
func (r *ProjectRepository) Create(ctx context.Context, project *secondary.ProjectRecord) error {
	var desc, createdBy sql.NullString
	if project.Description != "" {
		desc = sql.NullString{String: project.Description, Valid: true}
	}
	if project.CreatedBy != "" {
		createdBy = sql.NullString{String: project.CreatedBy, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO projects (id, name, description, created_by, status) VALUES (?, ?, ?, ?, 'active')",
		project.ID, project.Name, desc, createdBy,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// GetByID retrieves a live project by its ID. Soft-deleted rows are not
// returned.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*secondary.ProjectRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+projectSelectCols+" FROM projects WHERE id = ? AND deleted_at IS NULL",
		id,
	)

	record, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return record, nil
}

// List retrieves projects matching the given filters.
func (r *ProjectRepository) List(ctx context.Context, filters secondary.ProjectFilters) ([]*secondary.ProjectRecord, error) {
	query := "SELECT " + projectSelectCols + " FROM projects WHERE 1=1"
	args := []any{}

	if !filters.IncludeDeleted {
		query += " AND deleted_at IS NULL"
	}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY created_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*secondary.ProjectRecord
	for rows.Next() {
		record, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, record)
	}

	return projects, nil
}

// Update updates name and/or description of an existing project.
func (r *ProjectRepository) Update(ctx context.Context, project *secondary.ProjectRecord) error {
	query := "UPDATE projects SET updated_at = CURRENT_TIMESTAMP"
	args := []any{}

	if project.Name != "" {
		query += ", name = ?"
		args = append(args, project.Name)
	}

	if project.Description != "" {
		query += ", description = ?"
		args = append(args, project.Description)
	}

	query += " WHERE id = ? AND deleted_at IS NULL"
	args = append(args, project.ID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("project %s not found", project.ID)
	}

	return nil
}

// UpdateStatus sets the project status.
func (r *ProjectRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE projects SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update project status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("project %s not found", id)
	}

	return nil
}

// SoftDelete marks a project deleted without removing the row.
func (r *ProjectRepository) SoftDelete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE projects SET deleted_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL",
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("project %s not found", id)
	}

	return nil
}

// GetNextID returns the next available project ID.
func (r *ProjectRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM projects",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next project ID: %w", err)
	}

	return fmt.Sprintf("PROJ-%03d", maxID+1), nil
}

// AddMember adds a member to a project.
func (r *ProjectRepository) AddMember(ctx context.Context, member *secondary.MemberRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO project_members (id, project_id, member, role) VALUES (?, ?, ?, ?)",
		member.ID, member.ProjectID, member.Member, member.Role,
	)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	return nil
}

// RemoveMember removes a member from a project.
func (r *ProjectRepository) RemoveMember(ctx context.Context, projectID, member string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM project_members WHERE project_id = ? AND member = ?",
		projectID, member,
	)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("member %s not found in project %s", member, projectID)
	}

	return nil
}

// ListMembers retrieves the members of a project.
func (r *ProjectRepository) ListMembers(ctx context.Context, projectID string) ([]*secondary.MemberRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, project_id, member, role, created_at FROM project_members WHERE project_id = ? ORDER BY created_at ASC",
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*secondary.MemberRecord
	for rows.Next() {
		var createdAt time.Time
		record := &secondary.MemberRecord{}
		if err := rows.Scan(&record.ID, &record.ProjectID, &record.Member, &record.Role, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)
		members = append(members, record)
	}

	return members, nil
}

// GetNextMemberID returns the next available membership ID.
func (r *ProjectRepository) GetNextMemberID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 4) AS INTEGER)), 0) FROM project_members",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next member ID: %w", err)
	}

	return fmt.Sprintf("PM-%03d", maxID+1), nil
}

// Ensure ProjectRepository implements the interface
var _ secondary.ProjectRepository = (*ProjectRepository)(nil)
