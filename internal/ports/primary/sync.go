package primary

import "context"

// SyncService defines the primary port for story synchronization.
type SyncService interface {
	// SyncStories pulls stories from every enabled source and reconciles
	// them into the project's story list. Partial results are normal: a
	// failing source is skipped and reported, remaining sources still run.
	SyncStories(ctx context.Context, projectID string) (*SyncResult, error)
}

// SourceResult is the outcome for one external source.
type SourceResult struct {
	Source   string
	Fetched  int
	Inserted int
	Updated  int
	Err      string // non-empty when the source was skipped
}

// SyncResult aggregates the per-source outcomes of one sync run.
type SyncResult struct {
	ProjectID string
	Sources   []SourceResult
	Inserted  int
	Updated   int
}

// Touched returns the total number of story rows written.
func (r *SyncResult) Touched() int {
	return r.Inserted + r.Updated
}
