package app

import (
	"context"
	"fmt"

	"github.com/example/testdeck/internal/core/story"
	"github.com/example/testdeck/internal/core/testcase"
	"github.com/example/testdeck/internal/ports/primary"
	"github.com/example/testdeck/internal/ports/secondary"
)

// TestCaseServiceImpl implements the TestCaseService interface.
type TestCaseServiceImpl struct {
	testCaseRepo secondary.TestCaseRepository
	logWriter    secondary.LogWriter
}

// NewTestCaseService creates a new TestCaseService with injected dependencies.
func NewTestCaseService(testCaseRepo secondary.TestCaseRepository, logWriter secondary.LogWriter) *TestCaseServiceImpl {
	return &TestCaseServiceImpl{
		testCaseRepo: testCaseRepo,
		logWriter:    logWriter,
	}
}

// CreateTestCase creates a new test case.
func (s *TestCaseServiceImpl) CreateTestCase(ctx context.Context, req primary.CreateTestCaseRequest) (*primary.CreateTestCaseResponse, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("test case title is required")
	}
	if req.Priority != "" && !story.ValidPriority(req.Priority) {
		return nil, fmt.Errorf("invalid priority %q (valid: %s, %s, %s)", req.Priority, story.PriorityLow, story.PriorityMedium, story.PriorityHigh)
	}

	// Validate project exists
	exists, err := s.testCaseRepo.ProjectExists(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate project: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("project %s not found", req.ProjectID)
	}

	// Validate story exists when linked
	if req.UserStoryID != "" {
		exists, err := s.testCaseRepo.StoryExists(ctx, req.UserStoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to validate story: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("story %s not found", req.UserStoryID)
		}
	}

	nextID, err := s.testCaseRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate test case ID: %w", err)
	}

	record := &secondary.TestCaseRecord{
		ID:             nextID,
		ProjectID:      req.ProjectID,
		UserStoryID:    req.UserStoryID,
		ReadableID:     req.ReadableID,
		Title:          req.Title,
		Description:    req.Description,
		Steps:          req.Steps,
		ExpectedResult: req.ExpectedResult,
		TestData:       req.TestData,
		Type:           req.Type,
		Priority:       req.Priority,
		Category:       req.Category,
	}

	if err := s.testCaseRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create test case: %w", err)
	}

	s.logWriter.LogCreate(ctx, "test_case", nextID)

	created, err := s.testCaseRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created test case: %w", err)
	}

	return &primary.CreateTestCaseResponse{
		TestCaseID: created.ID,
		TestCase:   recordToTestCase(created),
	}, nil
}

// GetTestCase retrieves a test case by ID.
func (s *TestCaseServiceImpl) GetTestCase(ctx context.Context, testCaseID string) (*primary.TestCase, error) {
	record, err := s.testCaseRepo.GetByID(ctx, testCaseID)
	if err != nil {
		return nil, err
	}
	return recordToTestCase(record), nil
}

// ListTestCases lists test cases with optional filters.
func (s *TestCaseServiceImpl) ListTestCases(ctx context.Context, filters primary.TestCaseFilters) ([]*primary.TestCase, error) {
	records, err := s.testCaseRepo.List(ctx, secondary.TestCaseFilters{
		ProjectID:   filters.ProjectID,
		UserStoryID: filters.UserStoryID,
		Status:      filters.Status,
		Priority:    filters.Priority,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list test cases: %w", err)
	}

	cases := make([]*primary.TestCase, len(records))
	for i, r := range records {
		cases[i] = recordToTestCase(r)
	}
	return cases, nil
}

// UpdateTestCase updates a test case's mutable fields.
func (s *TestCaseServiceImpl) UpdateTestCase(ctx context.Context, req primary.UpdateTestCaseRequest) error {
	if req.Priority != "" && !story.ValidPriority(req.Priority) {
		return fmt.Errorf("invalid priority %q (valid: %s, %s, %s)", req.Priority, story.PriorityLow, story.PriorityMedium, story.PriorityHigh)
	}

	record := &secondary.TestCaseRecord{
		ID:             req.TestCaseID,
		Title:          req.Title,
		Description:    req.Description,
		Steps:          req.Steps,
		ExpectedResult: req.ExpectedResult,
		TestData:       req.TestData,
		Priority:       req.Priority,
	}
	if err := s.testCaseRepo.Update(ctx, record); err != nil {
		return err
	}

	s.logWriter.LogUpdate(ctx, "test_case", req.TestCaseID, "fields", "", "")
	return nil
}

// SetExecutionStatus records an execution result. Setting not_run clears
// the execution timestamp; any other status stamps it.
func (s *TestCaseServiceImpl) SetExecutionStatus(ctx context.Context, testCaseID, status string) error {
	if err := testcase.CanSetStatus(status).Error(); err != nil {
		return err
	}

	current, err := s.testCaseRepo.GetByID(ctx, testCaseID)
	if err != nil {
		return err
	}

	if err := s.testCaseRepo.UpdateStatus(ctx, testCaseID, status, testcase.IsExecuted(status)); err != nil {
		return err
	}

	s.logWriter.LogUpdate(ctx, "test_case", testCaseID, "status", current.Status, status)
	return nil
}

// DeleteTestCase deletes a test case.
func (s *TestCaseServiceImpl) DeleteTestCase(ctx context.Context, testCaseID string) error {
	if err := s.testCaseRepo.Delete(ctx, testCaseID); err != nil {
		return err
	}

	s.logWriter.LogDelete(ctx, "test_case", testCaseID)
	return nil
}

func recordToTestCase(r *secondary.TestCaseRecord) *primary.TestCase {
	return &primary.TestCase{
		ID:             r.ID,
		ProjectID:      r.ProjectID,
		UserStoryID:    r.UserStoryID,
		ReadableID:     r.ReadableID,
		Title:          r.Title,
		Description:    r.Description,
		Steps:          r.Steps,
		ExpectedResult: r.ExpectedResult,
		TestData:       r.TestData,
		Type:           r.Type,
		Priority:       r.Priority,
		Status:         r.Status,
		Category:       r.Category,
		ExecutedAt:     r.ExecutedAt,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// Ensure TestCaseServiceImpl implements the interface
var _ primary.TestCaseService = (*TestCaseServiceImpl)(nil)
