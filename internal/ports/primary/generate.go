package primary

import "context"

// GenerationService defines the primary port for test case generation.
type GenerationService interface {
	// GenerateTestCases produces a fresh set of test cases for one story
	// via the completion endpoint and persists it, replacing any prior
	// set for that story. The replacement is deliberate and lossy:
	// manual edits to previously generated cases do not survive.
	GenerateTestCases(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
}

// GenerateImage is an image attached to a generation request.
type GenerateImage struct {
	MediaType string
	Data      []byte
}

// GenerateRequest carries the inputs for test case generation.
type GenerateRequest struct {
	ProjectID          string
	StoryID            string
	CustomInstructions string
	Images             []GenerateImage
}

// GenerateResult carries the outcome of a generation run.
type GenerateResult struct {
	StoryID   string
	Replaced  int // prior test cases removed
	TestCases []*TestCase
}
