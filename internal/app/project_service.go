// Package app contains the application services implementing the
// primary ports. Services validate requests, call into secondary ports
// and map persistence records to domain types.
package app

import (
	"context"
	"fmt"

	"github.com/example/testdeck/internal/ctxutil"
	"github.com/example/testdeck/internal/ports/primary"
	"github.com/example/testdeck/internal/ports/secondary"
)

// ProjectServiceImpl implements the ProjectService interface.
type ProjectServiceImpl struct {
	projectRepo secondary.ProjectRepository
	logWriter   secondary.LogWriter
}

// NewProjectService creates a new ProjectService with injected dependencies.
func NewProjectService(projectRepo secondary.ProjectRepository, logWriter secondary.LogWriter) *ProjectServiceImpl {
	return &ProjectServiceImpl{
		projectRepo: projectRepo,
		logWriter:   logWriter,
	}
}

// CreateProject creates a new project.
func (s *ProjectServiceImpl) CreateProject(ctx context.Context, req primary.CreateProjectRequest) (*primary.CreateProjectResponse, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("project name is required")
	}

	nextID, err := s.projectRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate project ID: %w", err)
	}

	record := &secondary.ProjectRecord{
		ID:          nextID,
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   ctxutil.ActorFromContext(ctx),
	}

	if err := s.projectRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logWriter.LogCreate(ctx, "project", nextID)

	created, err := s.projectRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created project: %w", err)
	}

	return &primary.CreateProjectResponse{
		ProjectID: created.ID,
		Project:   recordToProject(created),
	}, nil
}

// GetProject retrieves a project by ID.
func (s *ProjectServiceImpl) GetProject(ctx context.Context, projectID string) (*primary.Project, error) {
	record, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return recordToProject(record), nil
}

// ListProjects lists projects with optional filters.
func (s *ProjectServiceImpl) ListProjects(ctx context.Context, filters primary.ProjectFilters) ([]*primary.Project, error) {
	records, err := s.projectRepo.List(ctx, secondary.ProjectFilters{
		Status:         filters.Status,
		IncludeDeleted: filters.IncludeDeleted,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]*primary.Project, len(records))
	for i, r := range records {
		projects[i] = recordToProject(r)
	}
	return projects, nil
}

// UpdateProject updates a project's name and/or description.
func (s *ProjectServiceImpl) UpdateProject(ctx context.Context, req primary.UpdateProjectRequest) error {
	if req.Name == "" && req.Description == "" {
		return fmt.Errorf("nothing to update: provide a name or description")
	}

	current, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		return err
	}

	record := &secondary.ProjectRecord{
		ID:          req.ProjectID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.projectRepo.Update(ctx, record); err != nil {
		return err
	}

	if req.Name != "" && req.Name != current.Name {
		s.logWriter.LogUpdate(ctx, "project", req.ProjectID, "name", current.Name, req.Name)
	}
	if req.Description != "" && req.Description != current.Description {
		s.logWriter.LogUpdate(ctx, "project", req.ProjectID, "description", current.Description, req.Description)
	}
	return nil
}

// ArchiveProject marks a project archived.
func (s *ProjectServiceImpl) ArchiveProject(ctx context.Context, projectID string) error {
	current, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if current.Status == "archived" {
		return fmt.Errorf("project %s is already archived", projectID)
	}

	if err := s.projectRepo.UpdateStatus(ctx, projectID, "archived"); err != nil {
		return err
	}

	s.logWriter.LogUpdate(ctx, "project", projectID, "status", current.Status, "archived")
	return nil
}

// DeleteProject soft-deletes a project.
func (s *ProjectServiceImpl) DeleteProject(ctx context.Context, projectID string) error {
	if err := s.projectRepo.SoftDelete(ctx, projectID); err != nil {
		return err
	}

	s.logWriter.LogDelete(ctx, "project", projectID)
	return nil
}

// AddMember adds a member to a project.
func (s *ProjectServiceImpl) AddMember(ctx context.Context, req primary.AddMemberRequest) error {
	if req.Member == "" {
		return fmt.Errorf("member name is required")
	}

	role := req.Role
	if role == "" {
		role = "viewer"
	}
	if role != "viewer" && role != "editor" && role != "admin" {
		return fmt.Errorf("invalid role %q (valid: viewer, editor, admin)", role)
	}

	// Validate project exists
	if _, err := s.projectRepo.GetByID(ctx, req.ProjectID); err != nil {
		return err
	}

	nextID, err := s.projectRepo.GetNextMemberID(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate member ID: %w", err)
	}

	record := &secondary.MemberRecord{
		ID:        nextID,
		ProjectID: req.ProjectID,
		Member:    req.Member,
		Role:      role,
	}
	if err := s.projectRepo.AddMember(ctx, record); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	s.logWriter.LogCreate(ctx, "project_member", nextID)
	return nil
}

// RemoveMember removes a member from a project.
func (s *ProjectServiceImpl) RemoveMember(ctx context.Context, projectID, member string) error {
	if err := s.projectRepo.RemoveMember(ctx, projectID, member); err != nil {
		return err
	}

	s.logWriter.LogDelete(ctx, "project_member", projectID+"/"+member)
	return nil
}

// ListMembers lists the members of a project.
func (s *ProjectServiceImpl) ListMembers(ctx context.Context, projectID string) ([]*primary.Member, error) {
	records, err := s.projectRepo.ListMembers(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	members := make([]*primary.Member, len(records))
	for i, r := range records {
		members[i] = &primary.Member{
			ID:        r.ID,
			ProjectID: r.ProjectID,
			Member:    r.Member,
			Role:      r.Role,
			CreatedAt: r.CreatedAt,
		}
	}
	return members, nil
}

func recordToProject(r *secondary.ProjectRecord) *primary.Project {
	return &primary.Project{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedBy:   r.CreatedBy,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// Ensure ProjectServiceImpl implements the interface
var _ primary.ProjectService = (*ProjectServiceImpl)(nil)
