package app

import (
	"context"
	"fmt"

	"github.com/example/testdeck/internal/ports/primary"
	"github.com/example/testdeck/internal/ports/secondary"
)

// UsageServiceImpl implements the UsageService interface.
type UsageServiceImpl struct {
	usageRepo secondary.UsageLogRepository
}

// NewUsageService creates a new UsageService with injected dependencies.
func NewUsageService(usageRepo secondary.UsageLogRepository) *UsageServiceImpl {
	return &UsageServiceImpl{usageRepo: usageRepo}
}

// ListUsage retrieves recent AI usage entries, newest first.
func (s *UsageServiceImpl) ListUsage(ctx context.Context, limit int) ([]*primary.UsageEntry, error) {
	records, err := s.usageRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list usage: %w", err)
	}

	entries := make([]*primary.UsageEntry, len(records))
	for i, r := range records {
		entries[i] = &primary.UsageEntry{
			ID:               r.ID,
			Provider:         r.Provider,
			Model:            r.Model,
			Operation:        r.Operation,
			PromptTokens:     r.PromptTokens,
			CompletionTokens: r.CompletionTokens,
			CostEstimate:     r.CostEstimate,
			LatencyMS:        r.LatencyMS,
			Success:          r.Success,
			CreatedAt:        r.CreatedAt,
		}
	}
	return entries, nil
}

// Ensure UsageServiceImpl implements the interface
var _ primary.UsageService = (*UsageServiceImpl)(nil)
