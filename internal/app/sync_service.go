package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/example/testdeck/internal/core/story"
	"github.com/example/testdeck/internal/ports/primary"
	"github.com/example/testdeck/internal/ports/secondary"
)

// fetchLimit bounds how many items one sync pulls per source.
const fetchLimit = 50

// SyncServiceImpl implements the SyncService interface. It reconciles
// externally sourced stories into a project's story list, matching on
// case-insensitive title equality.
type SyncServiceImpl struct {
	storyRepo secondary.StoryRepository
	sources   []secondary.StorySource
	logWriter secondary.LogWriter
	logger    *slog.Logger
}

// NewSyncService creates a new SyncService with injected dependencies.
func NewSyncService(storyRepo secondary.StoryRepository, sources []secondary.StorySource, logWriter secondary.LogWriter, logger *slog.Logger) *SyncServiceImpl {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SyncServiceImpl{
		storyRepo: storyRepo,
		sources:   sources,
		logWriter: logWriter,
		logger:    logger,
	}
}

// SyncStories pulls stories from every enabled source and reconciles
// them into the project's story list. A failing source is logged and
// skipped; the remaining sources still run.
func (s *SyncServiceImpl) SyncStories(ctx context.Context, projectID string) (*primary.SyncResult, error) {
	if len(s.sources) == 0 {
		return nil, fmt.Errorf("no sync sources configured")
	}

	// Validate project exists
	exists, err := s.storyRepo.ProjectExists(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate project: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("project %s not found", projectID)
	}

	existing, err := s.storyRepo.List(ctx, secondary.StoryFilters{ProjectID: projectID})
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}

	result := &primary.SyncResult{ProjectID: projectID}

	for _, source := range s.sources {
		sr := primary.SourceResult{Source: source.Name()}

		fetched, err := source.FetchStories(ctx, fetchLimit)
		if err != nil {
			sr.Err = err.Error()
			result.Sources = append(result.Sources, sr)
			s.logger.WarnContext(ctx, "sync source skipped", "source", source.Name(), "error", err)
			continue
		}
		sr.Fetched = len(fetched)

		for _, ps := range fetched {
			match := findByTitle(existing, ps.Title)
			if match == nil {
				created, err := s.insertStory(ctx, projectID, source.Name(), ps)
				if err != nil {
					return nil, err
				}
				existing = append(existing, created)
				sr.Inserted++
				continue
			}

			if err := s.updateStory(ctx, match, ps); err != nil {
				return nil, err
			}
			sr.Updated++
		}

		result.Inserted += sr.Inserted
		result.Updated += sr.Updated
		result.Sources = append(result.Sources, sr)

		s.logger.InfoContext(ctx, "sync source done",
			"source", source.Name(), "fetched", sr.Fetched, "inserted", sr.Inserted, "updated", sr.Updated)
	}

	return result, nil
}

// findByTitle returns the first existing story whose title matches under
// the sync reconciliation rule.
func findByTitle(stories []*secondary.StoryRecord, title string) *secondary.StoryRecord {
	for _, r := range stories {
		if story.EqualTitles(r.Title, title) {
			return r
		}
	}
	return nil
}

func (s *SyncServiceImpl) insertStory(ctx context.Context, projectID, sourceName string, ps secondary.ProviderStory) (*secondary.StoryRecord, error) {
	nextID, err := s.storyRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate story ID: %w", err)
	}

	record := &secondary.StoryRecord{
		ID:                 nextID,
		ProjectID:          projectID,
		Title:              ps.Title,
		Description:        ps.Description,
		AcceptanceCriteria: ps.AcceptanceCriteria,
		Priority:           ps.Priority,
		Status:             ps.Status,
		Source:             sourceName,
	}
	if err := s.storyRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create story: %w", err)
	}

	s.logWriter.LogCreate(ctx, "user_story", nextID)
	return record, nil
}

func (s *SyncServiceImpl) updateStory(ctx context.Context, current *secondary.StoryRecord, ps secondary.ProviderStory) error {
	record := &secondary.StoryRecord{
		ID:                 current.ID,
		Description:        ps.Description,
		AcceptanceCriteria: ps.AcceptanceCriteria,
		Priority:           ps.Priority,
	}
	if err := s.storyRepo.Update(ctx, record); err != nil {
		return fmt.Errorf("failed to update story %s: %w", current.ID, err)
	}

	if ps.Status != "" && ps.Status != current.Status {
		if err := s.storyRepo.UpdateStatus(ctx, current.ID, ps.Status); err != nil {
			return fmt.Errorf("failed to update story %s status: %w", current.ID, err)
		}
		s.logWriter.LogUpdate(ctx, "user_story", current.ID, "status", current.Status, ps.Status)
		current.Status = ps.Status
	}
	return nil
}

// Ensure SyncServiceImpl implements the interface
var _ primary.SyncService = (*SyncServiceImpl)(nil)
