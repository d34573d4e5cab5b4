package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/testdeck/internal/adapters/sqlite"
	"github.com/example/testdeck/internal/ports/secondary"
)

func TestUsageLogRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewUsageLogRepository(db)
	ctx := context.Background()

	entries := []*secondary.UsageRecord{
		{ID: "AI-001", Provider: "azure-openai", Model: "gpt-4o", Operation: "generate_test_cases", PromptTokens: 1200, CompletionTokens: 800, CostEstimate: 0.02, LatencyMS: 3400, Success: true},
		{ID: "AI-002", Provider: "azure-openai", Operation: "generate_test_cases", Success: false},
	}
	for _, e := range entries {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	got, err := repo.List(ctx, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	// Newest first
	if got[0].ID != "AI-002" {
		t.Errorf("expected AI-002 first, got %s", got[0].ID)
	}
	if got[0].Success {
		t.Error("expected AI-002 to be a failure entry")
	}
	if got[1].PromptTokens != 1200 || got[1].CompletionTokens != 800 {
		t.Errorf("token counts not preserved: %+v", got[1])
	}
	if got[1].Model != "gpt-4o" {
		t.Errorf("expected model 'gpt-4o', got '%s'", got[1].Model)
	}
}

func TestUsageLogRepository_List_Limit(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewUsageLogRepository(db)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		id, err := repo.GetNextID(ctx)
		if err != nil {
			t.Fatalf("GetNextID failed: %v", err)
		}
		err = repo.Create(ctx, &secondary.UsageRecord{ID: id, Provider: "azure-openai", Operation: "generate_test_cases", Success: true})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	got, err := repo.List(ctx, 3)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 entries with limit, got %d", len(got))
	}
}

func TestUsageLogRepository_GetNextID(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewUsageLogRepository(db)
	ctx := context.Background()

	id, err := repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if id != "AI-001" {
		t.Errorf("expected AI-001, got %s", id)
	}
}
