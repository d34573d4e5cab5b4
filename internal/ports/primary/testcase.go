package primary

import "context"

// TestCaseService defines the primary port for test case operations,
// including the execution tracker.
type TestCaseService interface {
	// CreateTestCase creates a new test case.
	CreateTestCase(ctx context.Context, req CreateTestCaseRequest) (*CreateTestCaseResponse, error)

	// GetTestCase retrieves a test case by ID.
	GetTestCase(ctx context.Context, testCaseID string) (*TestCase, error)

	// ListTestCases lists test cases with optional filters.
	ListTestCases(ctx context.Context, filters TestCaseFilters) ([]*TestCase, error)

	// UpdateTestCase updates a test case's mutable fields.
	UpdateTestCase(ctx context.Context, req UpdateTestCaseRequest) error

	// SetExecutionStatus records an execution result
	// (not_run/passed/failed/blocked).
	SetExecutionStatus(ctx context.Context, testCaseID, status string) error

	// DeleteTestCase deletes a test case.
	DeleteTestCase(ctx context.Context, testCaseID string) error
}

// TestCase is the test case domain type exposed to primary adapters.
// Steps is a newline-delimited string; split/join happens at the CLI
// boundary.
type TestCase struct {
	ID             string
	ProjectID      string
	UserStoryID    string
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

// TestCaseFilters contains filter options for listing test cases.
type TestCaseFilters struct {
	ProjectID   string
	UserStoryID string
	Status      string
	Priority    string
}

// CreateTestCaseRequest carries the inputs for test case creation.
type CreateTestCaseRequest struct {
	ProjectID      string
	UserStoryID    string
	ReadableID     string
	Title          string
	Description    string
	Steps          string
	ExpectedResult string
	TestData       string
	Type           string
	Priority       string
	Category       string
}

// CreateTestCaseResponse carries the result of test case creation.
type CreateTestCaseResponse struct {
	TestCaseID string
	TestCase   *TestCase
}

// UpdateTestCaseRequest carries the inputs for a test case update.
type UpdateTestCaseRequest struct {
	TestCaseID     string
	Title          string
	Description    string
	Steps          string
	ExpectedResult string
	TestData       string
	Priority       string
}
