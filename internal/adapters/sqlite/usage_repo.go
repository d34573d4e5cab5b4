package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/testdeck/internal/ports/secondary"
)

// UsageLogRepository implements secondary.UsageLogRepository with SQLite.
type UsageLogRepository struct {
	db *sql.DB
}

// NewUsageLogRepository creates a new SQLite usage log repository.
func NewUsageLogRepository(db *sql.DB) *UsageLogRepository {
	return &UsageLogRepository{db: db}
}

// Create appends a usage log entry.
func (r *UsageLogRepository) Create(ctx context.Context, entry *secondary.UsageRecord) error {
	success := 0
	if entry.Success {
		success = 1
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO ai_usage_log (id, provider, model, operation, prompt_tokens, completion_tokens, cost_estimate, latency_ms, success) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		entry.ID, entry.Provider, nullable(entry.Model), entry.Operation,
		entry.PromptTokens, entry.CompletionTokens, entry.CostEstimate, entry.LatencyMS, success,
	)
	if err != nil {
		return fmt.Errorf("failed to create usage log entry: %w", err)
	}

	return nil
}

// List retrieves the most recent entries, newest first.
func (r *UsageLogRepository) List(ctx context.Context, limit int) ([]*secondary.UsageRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, provider, model, operation, prompt_tokens, completion_tokens, cost_estimate, latency_ms, success, created_at FROM ai_usage_log ORDER BY created_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list usage log: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.UsageRecord
	for rows.Next() {
		var (
			model     sql.NullString
			success   int
			createdAt time.Time
		)
		record := &secondary.UsageRecord{}
		err := rows.Scan(
			&record.ID, &record.Provider, &model, &record.Operation,
			&record.PromptTokens, &record.CompletionTokens, &record.CostEstimate,
			&record.LatencyMS, &success, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan usage log entry: %w", err)
		}
		record.Model = model.String
		record.Success = success != 0
		record.CreatedAt = createdAt.Format(time.RFC3339)
		entries = append(entries, record)
	}

	return entries, nil
}

// GetNextID returns the next available usage log ID.
func (r *UsageLogRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 4) AS INTEGER)), 0) FROM ai_usage_log",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next usage log ID: %w", err)
	}

	return fmt.Sprintf("AI-%03d", maxID+1), nil
}

// Ensure UsageLogRepository implements the interface
var _ secondary.UsageLogRepository = (*UsageLogRepository)(nil)
