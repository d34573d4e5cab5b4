// Package primary defines the primary ports (driving adapters) for the
// application: the service interfaces the CLI calls into.
package primary

import "context"

// ProjectService defines the primary port for project operations.
type ProjectService interface {
	// CreateProject creates a new project.
	CreateProject(ctx context.Context, req CreateProjectRequest) (*CreateProjectResponse, error)

	// GetProject retrieves a project by ID.
	GetProject(ctx context.Context, projectID string) (*Project, error)

	// ListProjects lists projects with optional filters.
	ListProjects(ctx context.Context, filters ProjectFilters) ([]*Project, error)

	// UpdateProject updates a project's name and/or description.
	UpdateProject(ctx context.Context, req UpdateProjectRequest) error

	// ArchiveProject marks a project archived.
	ArchiveProject(ctx context.Context, projectID string) error

	// DeleteProject soft-deletes a project.
	DeleteProject(ctx context.Context, projectID string) error

	// AddMember adds a member to a project.
	AddMember(ctx context.Context, req AddMemberRequest) error

	// RemoveMember removes a member from a project.
	RemoveMember(ctx context.Context, projectID, member string) error

	// ListMembers lists the members of a project.
	ListMembers(ctx context.Context, projectID string) ([]*Member, error)
}

// Project is the project domain type exposed to primary adapters.
type Project struct {
	ID          string
	Name        string
	Description string
	CreatedBy   string
	Status      string
	CreatedAt   string
	UpdatedAt   string
}

// ProjectFilters contains filter options for listing projects.
type ProjectFilters struct {
	Status         string
	IncludeDeleted bool
}

// Member is a project membership entry.
type Member struct {
	ID        string
	ProjectID string
	Member    string
	Role      string
	CreatedAt string
}

// CreateProjectRequest carries the inputs for project creation.
type CreateProjectRequest struct {
	Name        string
	Description string
}

// CreateProjectResponse carries the result of project creation.
type CreateProjectResponse struct {
	ProjectID string
	Project   *Project
}

// UpdateProjectRequest carries the inputs for a project update.
type UpdateProjectRequest struct {
	ProjectID   string
	Name        string
	Description string
}

// AddMemberRequest carries the inputs for adding a project member.
type AddMemberRequest struct {
	ProjectID string
	Member    string
	Role      string
}
