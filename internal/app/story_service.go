package app

import (
	"context"
	"fmt"

	"github.com/example/testdeck/internal/core/story"
	"github.com/example/testdeck/internal/ports/primary"
	"github.com/example/testdeck/internal/ports/secondary"
)

// StoryServiceImpl implements the StoryService interface.
type StoryServiceImpl struct {
	storyRepo    secondary.StoryRepository
	testCaseRepo secondary.TestCaseRepository
	logWriter    secondary.LogWriter
}

// NewStoryService creates a new StoryService with injected dependencies.
func NewStoryService(storyRepo secondary.StoryRepository, testCaseRepo secondary.TestCaseRepository, logWriter secondary.LogWriter) *StoryServiceImpl {
	return &StoryServiceImpl{
		storyRepo:    storyRepo,
		testCaseRepo: testCaseRepo,
		logWriter:    logWriter,
	}
}

// CreateStory creates a new user story.
func (s *StoryServiceImpl) CreateStory(ctx context.Context, req primary.CreateStoryRequest) (*primary.CreateStoryResponse, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("story title is required")
	}
	if req.Priority != "" && !story.ValidPriority(req.Priority) {
		return nil, fmt.Errorf("invalid priority %q (valid: %s, %s, %s)", req.Priority, story.PriorityLow, story.PriorityMedium, story.PriorityHigh)
	}

	// Validate project exists
	exists, err := s.storyRepo.ProjectExists(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate project: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("project %s not found", req.ProjectID)
	}

	nextID, err := s.storyRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate story ID: %w", err)
	}

	record := &secondary.StoryRecord{
		ID:                 nextID,
		ProjectID:          req.ProjectID,
		Title:              req.Title,
		Description:        req.Description,
		AcceptanceCriteria: req.AcceptanceCriteria,
		Priority:           req.Priority,
		Source:             story.SourceManual,
	}

	if err := s.storyRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create story: %w", err)
	}

	s.logWriter.LogCreate(ctx, "user_story", nextID)

	created, err := s.storyRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created story: %w", err)
	}

	return &primary.CreateStoryResponse{
		StoryID: created.ID,
		Story:   recordToStory(created),
	}, nil
}

// GetStory retrieves a story by ID.
func (s *StoryServiceImpl) GetStory(ctx context.Context, storyID string) (*primary.Story, error) {
	record, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	return recordToStory(record), nil
}

// ListStories lists stories with optional filters.
func (s *StoryServiceImpl) ListStories(ctx context.Context, filters primary.StoryFilters) ([]*primary.Story, error) {
	records, err := s.storyRepo.List(ctx, secondary.StoryFilters{
		ProjectID: filters.ProjectID,
		Status:    filters.Status,
		Priority:  filters.Priority,
		Source:    filters.Source,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}

	stories := make([]*primary.Story, len(records))
	for i, r := range records {
		stories[i] = recordToStory(r)
	}
	return stories, nil
}

// UpdateStory updates a story's mutable fields.
func (s *StoryServiceImpl) UpdateStory(ctx context.Context, req primary.UpdateStoryRequest) error {
	if req.Priority != "" && !story.ValidPriority(req.Priority) {
		return fmt.Errorf("invalid priority %q (valid: %s, %s, %s)", req.Priority, story.PriorityLow, story.PriorityMedium, story.PriorityHigh)
	}

	current, err := s.storyRepo.GetByID(ctx, req.StoryID)
	if err != nil {
		return err
	}

	record := &secondary.StoryRecord{
		ID:                 req.StoryID,
		Title:              req.Title,
		Description:        req.Description,
		AcceptanceCriteria: req.AcceptanceCriteria,
		Priority:           req.Priority,
	}
	if err := s.storyRepo.Update(ctx, record); err != nil {
		return err
	}

	if req.Title != "" && req.Title != current.Title {
		s.logWriter.LogUpdate(ctx, "user_story", req.StoryID, "title", current.Title, req.Title)
	}
	if req.Priority != "" && req.Priority != current.Priority {
		s.logWriter.LogUpdate(ctx, "user_story", req.StoryID, "priority", current.Priority, req.Priority)
	}
	return nil
}

// UpdateStoryStatus sets the story status.
func (s *StoryServiceImpl) UpdateStoryStatus(ctx context.Context, storyID, status string) error {
	if !story.ValidStatus(status) {
		return fmt.Errorf("invalid status %q (valid: %s, %s, %s, %s)", status, story.StatusDraft, story.StatusReady, story.StatusInProgress, story.StatusCompleted)
	}

	current, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		return err
	}

	if err := s.storyRepo.UpdateStatus(ctx, storyID, status); err != nil {
		return err
	}

	s.logWriter.LogUpdate(ctx, "user_story", storyID, "status", current.Status, status)
	return nil
}

// DeleteStory deletes a story and all its test cases. The cascade is
// explicit: test cases go first so a failure cannot orphan the story.
func (s *StoryServiceImpl) DeleteStory(ctx context.Context, storyID string) error {
	current, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		return err
	}

	if _, err := s.testCaseRepo.DeleteByStory(ctx, current.ProjectID, storyID); err != nil {
		return fmt.Errorf("failed to delete story test cases: %w", err)
	}

	if err := s.storyRepo.Delete(ctx, storyID); err != nil {
		return err
	}

	s.logWriter.LogDelete(ctx, "user_story", storyID)
	return nil
}

func recordToStory(r *secondary.StoryRecord) *primary.Story {
	return &primary.Story{
		ID:                 r.ID,
		ProjectID:          r.ProjectID,
		Title:              r.Title,
		Description:        r.Description,
		AcceptanceCriteria: r.AcceptanceCriteria,
		Priority:           r.Priority,
		Status:             r.Status,
		Source:             r.Source,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

// Ensure StoryServiceImpl implements the interface
var _ primary.StoryService = (*StoryServiceImpl)(nil)
