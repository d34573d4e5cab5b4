package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/testdeck/internal/core/report"
	"github.com/example/testdeck/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockProjectRepository implements secondary.ProjectRepository for testing.
type mockProjectRepository struct {
	projects  map[string]*secondary.ProjectRecord
	members   map[string]*secondary.MemberRecord
	nextID    int
	createErr error
	updateErr error
}

func newMockProjectRepository() *mockProjectRepository {
	return &mockProjectRepository{
		projects: make(map[string]*secondary.ProjectRecord),
		members:  make(map[string]*secondary.MemberRecord),
	}
}

func (m *mockProjectRepository) Create(ctx context.Context, p *secondary.ProjectRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	stored := *p
	if stored.Status == "" {
		stored.Status = "active"
	}
	m.projects[p.ID] = &stored
	return nil
}

func (m *mockProjectRepository) GetByID(ctx context.Context, id string) (*secondary.ProjectRecord, error) {
	if p, ok := m.projects[id]; ok && p.DeletedAt == "" {
		copied := *p
		return &copied, nil
	}
	return nil, fmt.Errorf("project %s not found", id)
}

func (m *mockProjectRepository) List(ctx context.Context, filters secondary.ProjectFilters) ([]*secondary.ProjectRecord, error) {
	var result []*secondary.ProjectRecord
	for _, p := range m.projects {
		if p.DeletedAt != "" && !filters.IncludeDeleted {
			continue
		}
		if filters.Status != "" && p.Status != filters.Status {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (m *mockProjectRepository) Update(ctx context.Context, p *secondary.ProjectRecord) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	existing, ok := m.projects[p.ID]
	if !ok {
		return fmt.Errorf("project %s not found", p.ID)
	}
	if p.Name != "" {
		existing.Name = p.Name
	}
	if p.Description != "" {
		existing.Description = p.Description
	}
	return nil
}

func (m *mockProjectRepository) UpdateStatus(ctx context.Context, id, status string) error {
	existing, ok := m.projects[id]
	if !ok {
		return fmt.Errorf("project %s not found", id)
	}
	existing.Status = status
	return nil
}

func (m *mockProjectRepository) SoftDelete(ctx context.Context, id string) error {
	existing, ok := m.projects[id]
	if !ok || existing.DeletedAt != "" {
		return fmt.Errorf("project %s not found", id)
	}
	existing.DeletedAt = "2026-01-01T00:00:00Z"
	return nil
}

func (m *mockProjectRepository) GetNextID(ctx context.Context) (string, error) {
	m.nextID++
	return fmt.Sprintf("PROJ-%03d", m.nextID), nil
}

func (m *mockProjectRepository) AddMember(ctx context.Context, member *secondary.MemberRecord) error {
	for _, existing := range m.members {
		if existing.ProjectID == member.ProjectID && existing.Member == member.Member {
			return errors.New("UNIQUE constraint failed")
		}
	}
	m.members[member.ID] = member
	return nil
}

func (m *mockProjectRepository) RemoveMember(ctx context.Context, projectID, member string) error {
	for id, existing := range m.members {
		if existing.ProjectID == projectID && existing.Member == member {
			delete(m.members, id)
			return nil
		}
	}
	return fmt.Errorf("member %s not found in project %s", member, projectID)
}

func (m *mockProjectRepository) ListMembers(ctx context.Context, projectID string) ([]*secondary.MemberRecord, error) {
	var result []*secondary.MemberRecord
	for _, member := range m.members {
		if member.ProjectID == projectID {
			result = append(result, member)
		}
	}
	return result, nil
}

func (m *mockProjectRepository) GetNextMemberID(ctx context.Context) (string, error) {
	return fmt.Sprintf("PM-%03d", len(m.members)+1), nil
}

// mockStoryRepository implements secondary.StoryRepository for testing.
type mockStoryRepository struct {
	stories             map[string]*secondary.StoryRecord
	order               []string
	nextID              int
	projectExistsResult bool
	createErr           error
	listErr             error
}

func newMockStoryRepository() *mockStoryRepository {
	return &mockStoryRepository{
		stories:             make(map[string]*secondary.StoryRecord),
		projectExistsResult: true,
	}
}

func (m *mockStoryRepository) Create(ctx context.Context, story *secondary.StoryRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	stored := *story
	if stored.Priority == "" {
		stored.Priority = "medium"
	}
	if stored.Status == "" {
		stored.Status = "draft"
	}
	if stored.Source == "" {
		stored.Source = "manual"
	}
	m.stories[story.ID] = &stored
	m.order = append(m.order, story.ID)
	return nil
}

func (m *mockStoryRepository) GetByID(ctx context.Context, id string) (*secondary.StoryRecord, error) {
	if s, ok := m.stories[id]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("story %s not found", id)
}

func (m *mockStoryRepository) List(ctx context.Context, filters secondary.StoryFilters) ([]*secondary.StoryRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.StoryRecord
	for _, id := range m.order {
		s, ok := m.stories[id]
		if !ok {
			continue
		}
		if filters.ProjectID != "" && s.ProjectID != filters.ProjectID {
			continue
		}
		if filters.Status != "" && s.Status != filters.Status {
			continue
		}
		if filters.Priority != "" && s.Priority != filters.Priority {
			continue
		}
		if filters.Source != "" && s.Source != filters.Source {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (m *mockStoryRepository) Update(ctx context.Context, story *secondary.StoryRecord) error {
	existing, ok := m.stories[story.ID]
	if !ok {
		return fmt.Errorf("story %s not found", story.ID)
	}
	if story.Title != "" {
		existing.Title = story.Title
	}
	if story.Description != "" {
		existing.Description = story.Description
	}
	if story.AcceptanceCriteria != "" {
		existing.AcceptanceCriteria = story.AcceptanceCriteria
	}
	if story.Priority != "" {
		existing.Priority = story.Priority
	}
	return nil
}

func (m *mockStoryRepository) UpdateStatus(ctx context.Context, id, status string) error {
	existing, ok := m.stories[id]
	if !ok {
		return fmt.Errorf("story %s not found", id)
	}
	existing.Status = status
	return nil
}

func (m *mockStoryRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.stories[id]; !ok {
		return fmt.Errorf("story %s not found", id)
	}
	delete(m.stories, id)
	return nil
}

func (m *mockStoryRepository) GetNextID(ctx context.Context) (string, error) {
	m.nextID++
	return fmt.Sprintf("US-%03d", m.nextID), nil
}

func (m *mockStoryRepository) ProjectExists(ctx context.Context, projectID string) (bool, error) {
	return m.projectExistsResult, nil
}

// mockTestCaseRepository implements secondary.TestCaseRepository for testing.
type mockTestCaseRepository struct {
	cases               map[string]*secondary.TestCaseRecord
	order               []string
	nextID              int
	projectExistsResult bool
	storyExistsResult   bool
	deleteByStoryCalls  int
	createErr           error
}

func newMockTestCaseRepository() *mockTestCaseRepository {
	return &mockTestCaseRepository{
		cases:               make(map[string]*secondary.TestCaseRecord),
		projectExistsResult: true,
		storyExistsResult:   true,
	}
}

func (m *mockTestCaseRepository) Create(ctx context.Context, tc *secondary.TestCaseRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	stored := *tc
	if stored.Priority == "" {
		stored.Priority = "medium"
	}
	if stored.Status == "" {
		stored.Status = "not_run"
	}
	if stored.ReadableID == "" {
		stored.ReadableID = tc.ID
	}
	m.cases[tc.ID] = &stored
	m.order = append(m.order, tc.ID)
	return nil
}

func (m *mockTestCaseRepository) GetByID(ctx context.Context, id string) (*secondary.TestCaseRecord, error) {
	if tc, ok := m.cases[id]; ok {
		return tc, nil
	}
	return nil, fmt.Errorf("test case %s not found", id)
}

func (m *mockTestCaseRepository) List(ctx context.Context, filters secondary.TestCaseFilters) ([]*secondary.TestCaseRecord, error) {
	var result []*secondary.TestCaseRecord
	for _, id := range m.order {
		tc, ok := m.cases[id]
		if !ok {
			continue
		}
		if filters.ProjectID != "" && tc.ProjectID != filters.ProjectID {
			continue
		}
		if filters.UserStoryID != "" && tc.UserStoryID != filters.UserStoryID {
			continue
		}
		if filters.Status != "" && tc.Status != filters.Status {
			continue
		}
		if filters.Priority != "" && tc.Priority != filters.Priority {
			continue
		}
		result = append(result, tc)
	}
	return result, nil
}

func (m *mockTestCaseRepository) Update(ctx context.Context, tc *secondary.TestCaseRecord) error {
	existing, ok := m.cases[tc.ID]
	if !ok {
		return fmt.Errorf("test case %s not found", tc.ID)
	}
	if tc.Title != "" {
		existing.Title = tc.Title
	}
	if tc.Steps != "" {
		existing.Steps = tc.Steps
	}
	if tc.Priority != "" {
		existing.Priority = tc.Priority
	}
	return nil
}

func (m *mockTestCaseRepository) UpdateStatus(ctx context.Context, id, status string, setExecuted bool) error {
	existing, ok := m.cases[id]
	if !ok {
		return fmt.Errorf("test case %s not found", id)
	}
	existing.Status = status
	if setExecuted {
		existing.ExecutedAt = "2026-01-01T00:00:00Z"
	} else {
		existing.ExecutedAt = ""
	}
	return nil
}

func (m *mockTestCaseRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.cases[id]; !ok {
		return fmt.Errorf("test case %s not found", id)
	}
	delete(m.cases, id)
	return nil
}

func (m *mockTestCaseRepository) DeleteByStory(ctx context.Context, projectID, storyID string) (int, error) {
	m.deleteByStoryCalls++
	deleted := 0
	for id, tc := range m.cases {
		if tc.ProjectID == projectID && tc.UserStoryID == storyID {
			delete(m.cases, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *mockTestCaseRepository) GetNextID(ctx context.Context) (string, error) {
	m.nextID++
	return fmt.Sprintf("TC-%03d", m.nextID), nil
}

func (m *mockTestCaseRepository) ProjectExists(ctx context.Context, projectID string) (bool, error) {
	return m.projectExistsResult, nil
}

func (m *mockTestCaseRepository) StoryExists(ctx context.Context, storyID string) (bool, error) {
	return m.storyExistsResult, nil
}

// mockUsageLogRepository implements secondary.UsageLogRepository for testing.
type mockUsageLogRepository struct {
	entries []*secondary.UsageRecord
}

func newMockUsageLogRepository() *mockUsageLogRepository {
	return &mockUsageLogRepository{}
}

func (m *mockUsageLogRepository) Create(ctx context.Context, entry *secondary.UsageRecord) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockUsageLogRepository) List(ctx context.Context, limit int) ([]*secondary.UsageRecord, error) {
	result := make([]*secondary.UsageRecord, 0, len(m.entries))
	for i := len(m.entries) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, m.entries[i])
	}
	return result, nil
}

func (m *mockUsageLogRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("AI-%03d", len(m.entries)+1), nil
}

// mockLogWriter implements secondary.LogWriter for testing, recording
// one line per call.
type mockLogWriter struct {
	entries []string
}

func newMockLogWriter() *mockLogWriter {
	return &mockLogWriter{}
}

func (m *mockLogWriter) LogCreate(ctx context.Context, entityType, entityID string) error {
	m.entries = append(m.entries, fmt.Sprintf("create %s %s", entityType, entityID))
	return nil
}

func (m *mockLogWriter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	m.entries = append(m.entries, fmt.Sprintf("update %s %s %s", entityType, entityID, fieldName))
	return nil
}

func (m *mockLogWriter) LogDelete(ctx context.Context, entityType, entityID string) error {
	m.entries = append(m.entries, fmt.Sprintf("delete %s %s", entityType, entityID))
	return nil
}

// mockStorySource implements secondary.StorySource for testing.
type mockStorySource struct {
	name    string
	stories []secondary.ProviderStory
	err     error
	calls   int
}

func (m *mockStorySource) Name() string { return m.name }

func (m *mockStorySource) FetchStories(ctx context.Context, limit int) ([]secondary.ProviderStory, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.stories, nil
}

// mockDefectSource implements secondary.DefectSource for testing.
type mockDefectSource struct {
	metrics *report.DefectMetrics
	err     error
}

func (m *mockDefectSource) FetchDefectMetrics(ctx context.Context) (*report.DefectMetrics, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.metrics, nil
}

// mockCompletionClient implements secondary.CompletionClient for testing.
type mockCompletionClient struct {
	result  *secondary.CompletionResult
	err     error
	lastReq secondary.CompletionRequest
	calls   int
}

func (m *mockCompletionClient) Complete(ctx context.Context, req secondary.CompletionRequest) (*secondary.CompletionResult, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// Interface assertions for the mocks
var _ secondary.ProjectRepository = (*mockProjectRepository)(nil)
var _ secondary.StoryRepository = (*mockStoryRepository)(nil)
var _ secondary.TestCaseRepository = (*mockTestCaseRepository)(nil)
var _ secondary.UsageLogRepository = (*mockUsageLogRepository)(nil)
var _ secondary.LogWriter = (*mockLogWriter)(nil)
var _ secondary.StorySource = (*mockStorySource)(nil)
var _ secondary.DefectSource = (*mockDefectSource)(nil)
var _ secondary.CompletionClient = (*mockCompletionClient)(nil)
