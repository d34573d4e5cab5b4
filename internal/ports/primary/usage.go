package primary

import "context"

// UsageService defines the primary port for the AI usage listing.
type UsageService interface {
	// ListUsage retrieves recent AI usage entries, newest first.
	ListUsage(ctx context.Context, limit int) ([]*UsageEntry, error)
}

// UsageEntry is one recorded LLM call.
type UsageEntry struct {
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
