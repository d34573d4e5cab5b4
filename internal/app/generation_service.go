package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/example/testdeck/internal/core/prompt"
	"github.com/example/testdeck/internal/core/story"
	"github.com/example/testdeck/internal/ports/primary"
	"github.com/example/testdeck/internal/ports/secondary"
)

// costPer1KTokens is the flat blended rate used for the usage log cost
// estimate. It is an estimate for trend-watching, not billing.
const costPer1KTokens = 0.002

// GenerationServiceImpl implements the GenerationService interface.
type GenerationServiceImpl struct {
	storyRepo    secondary.StoryRepository
	testCaseRepo secondary.TestCaseRepository
	usageRepo    secondary.UsageLogRepository
	completion   secondary.CompletionClient
	provider     string
	logWriter    secondary.LogWriter
	logger       *slog.Logger
}

// NewGenerationService creates a new GenerationService with injected
// dependencies. completion may be nil when no LLM provider is
// configured; generation then fails with a configuration error.
func NewGenerationService(
	storyRepo secondary.StoryRepository,
	testCaseRepo secondary.TestCaseRepository,
	usageRepo secondary.UsageLogRepository,
	completion secondary.CompletionClient,
	provider string,
	logWriter secondary.LogWriter,
	logger *slog.Logger,
) *GenerationServiceImpl {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &GenerationServiceImpl{
		storyRepo:    storyRepo,
		testCaseRepo: testCaseRepo,
		usageRepo:    usageRepo,
		completion:   completion,
		provider:     provider,
		logWriter:    logWriter,
		logger:       logger,
	}
}

// GenerateTestCases produces a fresh set of test cases for one story and
// persists it, replacing any prior set for that story.
func (s *GenerationServiceImpl) GenerateTestCases(ctx context.Context, req primary.GenerateRequest) (*primary.GenerateResult, error) {
	if s.completion == nil {
		return nil, fmt.Errorf("llm provider not configured: enable it in providers.yaml")
	}

	storyRecord, err := s.storyRepo.GetByID(ctx, req.StoryID)
	if err != nil {
		return nil, err
	}
	if storyRecord.ProjectID != req.ProjectID {
		return nil, fmt.Errorf("story %s does not belong to project %s", req.StoryID, req.ProjectID)
	}

	images := make([]secondary.ImageAttachment, len(req.Images))
	for i, img := range req.Images {
		images[i] = secondary.ImageAttachment{MediaType: img.MediaType, Data: img.Data}
	}

	userMsg := prompt.BuildGeneration(prompt.StoryInput{
		Title:              storyRecord.Title,
		Description:        storyRecord.Description,
		AcceptanceCriteria: storyRecord.AcceptanceCriteria,
		Priority:           storyRecord.Priority,
	}, req.CustomInstructions, len(images) > 0)

	start := time.Now()
	result, err := s.completion.Complete(ctx, secondary.CompletionRequest{
		System: prompt.GenerationSystem,
		User:   userMsg,
		Images: images,
	})
	latency := time.Since(start).Milliseconds()

	if err != nil {
		s.recordUsage(ctx, "generate_test_cases", nil, latency, false)
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	cases, err := prompt.ParseCases(result.Text)
	if err != nil {
		s.recordUsage(ctx, "generate_test_cases", result, latency, false)
		return nil, err
	}

	s.recordUsage(ctx, "generate_test_cases", result, latency, true)

	// Replace the prior set wholesale. Manual edits to previously
	// generated cases do not survive.
	replaced, err := s.testCaseRepo.DeleteByStory(ctx, req.ProjectID, req.StoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to clear prior test cases: %w", err)
	}

	created := make([]*primary.TestCase, 0, len(cases))
	for _, gc := range cases {
		nextID, err := s.testCaseRepo.GetNextID(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to generate test case ID: %w", err)
		}

		priority := gc.Priority
		if !story.ValidPriority(priority) {
			priority = story.PriorityMedium
		}

		record := &secondary.TestCaseRecord{
			ID:             nextID,
			ProjectID:      req.ProjectID,
			UserStoryID:    req.StoryID,
			ReadableID:     gc.ID,
			Title:          gc.Title,
			Description:    gc.Description,
			Steps:          strings.Join(gc.Steps, "\n"),
			ExpectedResult: gc.ExpectedResult,
			TestData:       gc.TestData,
			Type:           gc.Type,
			Priority:       priority,
			Category:       gc.Category,
		}
		if err := s.testCaseRepo.Create(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to create test case: %w", err)
		}

		s.logWriter.LogCreate(ctx, "test_case", nextID)

		stored, err := s.testCaseRepo.GetByID(ctx, nextID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch created test case: %w", err)
		}
		created = append(created, recordToTestCase(stored))
	}

	if storyRecord.Status != story.StatusCompleted {
		if err := s.storyRepo.UpdateStatus(ctx, req.StoryID, story.StatusCompleted); err != nil {
			return nil, fmt.Errorf("failed to update story status: %w", err)
		}
		s.logWriter.LogUpdate(ctx, "user_story", req.StoryID, "status", storyRecord.Status, story.StatusCompleted)
	}

	s.logger.InfoContext(ctx, "generated test cases",
		"story", req.StoryID, "replaced", replaced, "created", len(created))

	return &primary.GenerateResult{
		StoryID:   req.StoryID,
		Replaced:  replaced,
		TestCases: created,
	}, nil
}

// recordUsage appends a usage log entry. Failures to log are reported
// but never fail the generation itself.
func (s *GenerationServiceImpl) recordUsage(ctx context.Context, operation string, result *secondary.CompletionResult, latencyMS int64, success bool) {
	entry := &secondary.UsageRecord{
		Provider:  s.provider,
		Operation: operation,
		LatencyMS: latencyMS,
		Success:   success,
	}
	if result != nil {
		entry.Model = result.Model
		entry.PromptTokens = result.PromptTokens
		entry.CompletionTokens = result.CompletionTokens
		entry.CostEstimate = float64(result.PromptTokens+result.CompletionTokens) / 1000 * costPer1KTokens
	}

	id, err := s.usageRepo.GetNextID(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "usage log skipped", "error", err)
		return
	}
	entry.ID = id

	if err := s.usageRepo.Create(ctx, entry); err != nil {
		s.logger.WarnContext(ctx, "usage log skipped", "error", err)
	}
}

// Ensure GenerationServiceImpl implements the interface
var _ primary.GenerationService = (*GenerationServiceImpl)(nil)
