package secondary

import (
	"context"

	"github.com/example/testdeck/internal/core/report"
)

// ProviderStory is an externally sourced story already normalized into
// the local story shape.
type ProviderStory struct {
	Title              string
	Description        string
	AcceptanceCriteria string
	Priority           string
	Status             string
}

// StorySource defines the secondary port for an external issue feed.
// Implementations fetch one bounded page of current items; paging beyond
// the first page is out of scope.
type StorySource interface {
	// Name identifies the source in sync results and story rows
	// ("jira", "azure").
	Name() string

	// FetchStories fetches up to limit items mapped to the local story
	// shape.
	FetchStories(ctx context.Context, limit int) ([]ProviderStory, error)
}

// DefectSource defines the secondary port for fetching defect counts
// used to enrich reports.
type DefectSource interface {
	// FetchDefectMetrics returns current defect counts.
	FetchDefectMetrics(ctx context.Context) (*report.DefectMetrics, error)
}

// ImageAttachment is an inline image passed to the completion endpoint.
type ImageAttachment struct {
	MediaType string // e.g. "image/png"
	Data      []byte
}

// CompletionRequest is one chat-style call: a system instruction plus a
// user message, optionally with inline images.
type CompletionRequest struct {
	System string
	User   string
	Images []ImageAttachment
}

// CompletionResult is the model reply plus usage accounting.
type CompletionResult struct {
	Text             string
	Model            string
	PromptTokens     int
	CompletionTokens int
}

// CompletionClient defines the secondary port for the chat completion
// endpoint.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error)
}
