package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/testdeck/internal/adapters/sqlite"
	"github.com/example/testdeck/internal/ports/secondary"
)

func TestTestCaseRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTestCaseRepository(db)
	ctx := context.Background()

	seedProject(t, db, "PROJ-001", "Checkout")
	seedStory(t, db, "US-001", "PROJ-001", "Guest Checkout")

	tc := &secondary.TestCaseRecord{
		ID:             "TC-001",
		ProjectID:      "PROJ-001",
		UserStoryID:    "US-001",
		Title:          "Checkout with valid card",
		Description:    "Happy path purchase",
		Steps:          "Add item to cart\nEnter card details\nConfirm order",
		ExpectedResult: "Order confirmation shown",
		TestData:       "Visa 4111111111111111",
		Type:           "functional",
		Priority:       "high",
		Status:         "not_run",
		Category:       "positive",
	}

	if err := repo.Create(ctx, tc); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	retrieved, err := repo.GetByID(ctx, "TC-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if retrieved.Title != "Checkout with valid card" {
		t.Errorf("expected title 'Checkout with valid card', got '%s'", retrieved.Title)
	}
	if retrieved.Steps != "Add item to cart\nEnter card details\nConfirm order" {
		t.Errorf("steps not preserved: %q", retrieved.Steps)
	}
	if retrieved.ReadableID != "TC-001" {
		t.Errorf("expected readable_id to default to id, got '%s'", retrieved.ReadableID)
	}
	if retrieved.ExecutedAt != "" {
		t.Errorf("expected empty executed_at on creation, got '%s'", retrieved.ExecutedAt)
	}
}

func TestTestCaseRepository_Create_Defaults(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTestCaseRepository(db)
	ctx := context.Background()

	seedProject(t, db, "PROJ-001", "Checkout")

	tc := &secondary.TestCaseRecord{
		ID:        "TC-001",
		ProjectID: "PROJ-001",
		Title:     "Minimal Case",
	}
	if err := repo.Create(ctx, tc); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	retrieved, _ := repo.GetByID(ctx, "TC-001")
	if retrieved.Priority != "medium" {
		t.Errorf("expected default priority 'medium', got '%s'", retrieved.Priority)
	}
	if retrieved.Status != "not_run" {
		t.Errorf("expected default status 'not_run', got '%s'", retrieved.Status)
	}
	if retrieved.UserStoryID != "" {
		t.Errorf("expected empty user_story_id, got '%s'", retrieved.UserStoryID)
	}
}

func TestTestCaseRepository_List_Filters(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTestCaseRepository(db)
	ctx := context.Background()

	seedProject(t, db, "PROJ-001", "Checkout")
	seedStory(t, db, "US-001", "PROJ-001", "Guest Checkout")
	seedStory(t, db, "US-002", "PROJ-001", "Saved Cards")

	cases := []*secondary.TestCaseRecord{
		{ID: "TC-001", ProjectID: "PROJ-001", UserStoryID: "US-001", Title: "A", Status: "passed", Priority: "high"},
		{ID: "TC-002", ProjectID: "PROJ-001", UserStoryID: "US-001", Title: "B", Status: "failed", Priority: "low"},
		{ID: "TC-003", ProjectID: "PROJ-001", UserStoryID: "US-002", Title: "C", Status: "passed", Priority: "high"},
	}
	for _, tc := range cases {
		if err := repo.Create(ctx, tc); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	got, err := repo.List(ctx, secondary.TestCaseFilters{UserStoryID: "US-001"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 cases for US-001, got %d", len(got))
	}

	got, err = repo.List(ctx, secondary.TestCaseFilters{ProjectID: "PROJ-001", Status: "passed", Priority: "high"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 passed high cases, got %d", len(got))
	}
}

func TestTestCaseRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTestCaseRepository(db)
	ctx := context.Background()

	seedProject(t, db, "PROJ-001", "Checkout")
	seedTestCase(t, db, "TC-001", "PROJ-001", "", "Original")

	err := repo.Update(ctx, &secondary.TestCaseRecord{ID: "TC-001", Steps: "Open page\nClick button"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	retrieved, _ := repo.GetByID(ctx, "TC-001")
	if retrieved.Steps != "Open page\nClick button" {
		t.Errorf("expected updated steps, got %q", retrieved.Steps)
	}
	if retrieved.Title != "Original" {
		t.Errorf("title should be unchanged, got '%s'", retrieved.Title)
	}

	if err := repo.Update(ctx, &secondary.TestCaseRecord{ID: "TC-999", Title: "x"}); err == nil {
		t.Error("expected error updating missing test case")
	}
}

func TestTestCaseRepository_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTestCaseRepository(db)
	ctx := context.Background()

	seedProject(t, db, "PROJ-001", "Checkout")
	seedTestCase(t, db, "TC-001", "PROJ-001", "", "Case")

	if err := repo.UpdateStatus(ctx, "TC-001", "passed", true); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	retrieved, _ := repo.GetByID(ctx, "TC-001")
	if retrieved.Status != "passed" {
		t.Errorf("expected status 'passed', got '%s'", retrieved.Status)
	}
	if retrieved.ExecutedAt == "" {
		t.Error("expected executed_at to be stamped")
	}

	// Resetting to not_run clears the execution timestamp
	if err := repo.UpdateStatus(ctx, "TC-001", "not_run", false); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	retrieved, _ = repo.GetByID(ctx, "TC-001")
	if retrieved.ExecutedAt != "" {
		t.Errorf("expected executed_at cleared, got '%s'", retrieved.ExecutedAt)
	}

	if err := repo.UpdateStatus(ctx, "TC-999", "passed", true); err == nil {
		t.Error("expected error for missing test case")
	}
}

func TestTestCaseRepository_DeleteByStory(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTestCaseRepository(db)
	ctx := context.Background()

	seedProject(t, db, "PROJ-001", "Checkout")
	seedStory(t, db, "US-001", "PROJ-001", "Guest Checkout")
	seedStory(t, db, "US-002", "PROJ-001", "Saved Cards")
	seedTestCase(t, db, "TC-001", "PROJ-001", "US-001", "A")
	seedTestCase(t, db, "TC-002", "PROJ-001", "US-001", "B")
	seedTestCase(t, db, "TC-003", "PROJ-001", "US-002", "C")

	deleted, err := repo.DeleteByStory(ctx, "PROJ-001", "US-001")
	if err != nil {
		t.Fatalf("DeleteByStory failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 rows deleted, got %d", deleted)
	}

	remaining, _ := repo.List(ctx, secondary.TestCaseFilters{ProjectID: "PROJ-001"})
	if len(remaining) != 1 || remaining[0].ID != "TC-003" {
		t.Errorf("expected only TC-003 remaining, got %+v", remaining)
	}

	// No rows for the story is not an error
	deleted, err = repo.DeleteByStory(ctx, "PROJ-001", "US-001")
	if err != nil {
		t.Fatalf("DeleteByStory failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("expected 0 rows deleted, got %d", deleted)
	}
}

func TestTestCaseRepository_GetNextID(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTestCaseRepository(db)
	ctx := context.Background()

	seedProject(t, db, "PROJ-001", "Checkout")
	seedTestCase(t, db, "TC-041", "PROJ-001", "", "Forty-first")

	id, err := repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if id != "TC-042" {
		t.Errorf("expected TC-042, got %s", id)
	}
}

func TestTestCaseRepository_StoryExists(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTestCaseRepository(db)
	ctx := context.Background()

	seedProject(t, db, "PROJ-001", "Checkout")
	seedStory(t, db, "US-001", "PROJ-001", "Guest Checkout")

	exists, err := repo.StoryExists(ctx, "US-001")
	if err != nil {
		t.Fatalf("StoryExists failed: %v", err)
	}
	if !exists {
		t.Error("expected US-001 to exist")
	}

	exists, _ = repo.StoryExists(ctx, "US-999")
	if exists {
		t.Error("expected US-999 to not exist")
	}
}
