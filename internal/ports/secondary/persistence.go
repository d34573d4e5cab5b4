// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// ProjectRepository defines the secondary port for project persistence.
type ProjectRepository interface {
	// Create persists a new project.
	Create(ctx context.Context, project *ProjectRecord) error

	// GetByID retrieves a live project by its ID.
	GetByID(ctx context.Context, id string) (*ProjectRecord, error)

	// List retrieves projects matching the given filters.
	List(ctx context.Context, filters ProjectFilters) ([]*ProjectRecord, error)

	// Update updates name and/or description of an existing project.
	Update(ctx context.Context, project *ProjectRecord) error

	// UpdateStatus sets the project status (active/archived).
	UpdateStatus(ctx context.Context, id, status string) error

	// SoftDelete marks a project deleted without removing the row.
	SoftDelete(ctx context.Context, id string) error

	// GetNextID returns the next available project ID.
	GetNextID(ctx context.Context) (string, error)

	// AddMember adds a member to a project.
	AddMember(ctx context.Context, member *MemberRecord) error

	// RemoveMember removes a member from a project.
	RemoveMember(ctx context.Context, projectID, member string) error

	// ListMembers retrieves the members of a project.
	ListMembers(ctx context.Context, projectID string) ([]*MemberRecord, error)

	// GetNextMemberID returns the next available membership ID.
	GetNextMemberID(ctx context.Context) (string, error)
}

// ProjectRecord represents a project as stored in persistence.
type ProjectRecord struct {
	ID          string
	Name        string
	Description string
	CreatedBy   string
	Status      string
	DeletedAt   string // empty for live rows
	CreatedAt   string
	UpdatedAt   string
}

// ProjectFilters contains filter options for querying projects.
type ProjectFilters struct {
	Status         string
	IncludeDeleted bool
}

// MemberRecord represents a project membership row.
type MemberRecord struct {
	ID        string
	ProjectID string
	Member    string
	Role      string
	CreatedAt string
}

// StoryRepository defines the secondary port for user story persistence.
type StoryRepository interface {
	// Create persists a new story.
	Create(ctx context.Context, story *StoryRecord) error

	// GetByID retrieves a story by its ID.
	GetByID(ctx context.Context, id string) (*StoryRecord, error)

	// List retrieves stories matching the given filters.
	List(ctx context.Context, filters StoryFilters) ([]*StoryRecord, error)

	// Update updates an existing story's mutable fields.
	Update(ctx context.Context, story *StoryRecord) error

	// UpdateStatus sets the story status.
	UpdateStatus(ctx context.Context, id, status string) error

	// Delete removes a story from persistence.
	Delete(ctx context.Context, id string) error

	// GetNextID returns the next available story ID.
	GetNextID(ctx context.Context) (string, error)

	// ProjectExists checks if a project exists (for validation).
	ProjectExists(ctx context.Context, projectID string) (bool, error)
}

// StoryRecord represents a user story as stored in persistence.
type StoryRecord struct {
	ID                 string
	ProjectID          string
	Title              string
	Description        string
	AcceptanceCriteria string
	Priority           string
	Status             string
	Source             string
	CreatedAt          string
	UpdatedAt          string
}

// StoryFilters contains filter options for querying stories.
type StoryFilters struct {
	ProjectID string
	Status    string
	Priority  string
	Source    string
}

// TestCaseRepository defines the secondary port for test case persistence.
type TestCaseRepository interface {
	// Create persists a new test case.
	Create(ctx context.Context, tc *TestCaseRecord) error

	// GetByID retrieves a test case by its ID.
	GetByID(ctx context.Context, id string) (*TestCaseRecord, error)

	// List retrieves test cases matching the given filters.
	List(ctx context.Context, filters TestCaseFilters) ([]*TestCaseRecord, error)

	// Update updates an existing test case's mutable fields.
	Update(ctx context.Context, tc *TestCaseRecord) error

	// UpdateStatus sets the execution status; setExecuted stamps executed_at.
	UpdateStatus(ctx context.Context, id, status string, setExecuted bool) error

	// Delete removes a test case from persistence.
	Delete(ctx context.Context, id string) error

	// DeleteByStory removes all test cases for a (project, story) pair.
	// Returns the number of rows removed.
	DeleteByStory(ctx context.Context, projectID, storyID string) (int, error)

	// GetNextID returns the next available test case ID.
	GetNextID(ctx context.Context) (string, error)

	// ProjectExists checks if a project exists (for validation).
	ProjectExists(ctx context.Context, projectID string) (bool, error)

	// StoryExists checks if a story exists (for validation).
	StoryExists(ctx context.Context, storyID string) (bool, error)
}

// TestCaseRecord represents a test case as stored in persistence.
// Steps hold a single newline-delimited string; splitting and joining
// happens at the CLI boundary only.
type TestCaseRecord struct {
	ID             string
	ProjectID      string
	UserStoryID    string // empty when the case is not tied to a story
	ReadableID     string
	Title          string
	Description    string
	Steps          string
	ExpectedResult string
	TestData       string
	Type           string
	Priority       string
	Status         string
	Category       string
	ExecutedAt     string
	CreatedAt      string
	UpdatedAt      string
}

// TestCaseFilters contains filter options for querying test cases.
type TestCaseFilters struct {
	ProjectID   string
	UserStoryID string
	Status      string
	Priority    string
}

// UsageLogRepository defines the secondary port for the append-only AI
// usage log. Nothing reads it back except the usage listing.
type UsageLogRepository interface {
	// Create appends a usage log entry.
	Create(ctx context.Context, entry *UsageRecord) error

	// List retrieves the most recent entries, newest first.
	List(ctx context.Context, limit int) ([]*UsageRecord, error)

	// GetNextID returns the next available usage log ID.
	GetNextID(ctx context.Context) (string, error)
}

// UsageRecord represents one LLM call for observability.
type UsageRecord struct {
	ID               string
	Provider         string
	Model            string
	Operation        string
	PromptTokens     int
	CompletionTokens int
	CostEstimate     float64
	LatencyMS        int64
	Success          bool
	CreatedAt        string
}

// AuditLogRepository defines the secondary port for audit log persistence.
type AuditLogRepository interface {
	// Create appends an audit log entry.
	Create(ctx context.Context, entry *AuditRecord) error

	// GetNextID returns the next available audit log ID.
	GetNextID(ctx context.Context) (string, error)
}

// AuditRecord represents one entity mutation in the audit log.
type AuditRecord struct {
	ID         string
	Actor      string
	EntityType string
	EntityID   string
	Action     string
	FieldName  string
	OldValue   string
	NewValue   string
	CreatedAt  string
}
