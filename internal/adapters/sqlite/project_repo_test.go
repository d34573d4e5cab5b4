package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/testdeck/internal/adapters/sqlite"
	"github.com/example/testdeck/internal/ports/secondary"
)

func TestProjectRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewProjectRepository(db)
	ctx := context.Background()

	project := &secondary.ProjectRecord{
		ID:          "PROJ-001",
		Name:        "Checkout",
		Description: "Web checkout flow",
		CreatedBy:   "qa-lead",
	}

	if err := repo.Create(ctx, project); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	retrieved, err := repo.GetByID(ctx, "PROJ-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if retrieved.Name != "Checkout" {
		t.Errorf("expected name 'Checkout', got '%s'", retrieved.Name)
	}
	if retrieved.CreatedBy != "qa-lead" {
		t.Errorf("expected created_by 'qa-lead', got '%s'", retrieved.CreatedBy)
	}
	if retrieved.Status != "active" {
		t.Errorf("expected status 'active', got '%s'", retrieved.Status)
	}
}

func TestProjectRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewProjectRepository(db)

	_, err := repo.GetByID(context.Background(), "PROJ-999")
	if err == nil {
		t.Fatal("expected error for missing project")
	}
}

func TestProjectRepository_SoftDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewProjectRepository(db)
	ctx := context.Background()

	seedProject(t, db, "PROJ-001", "Checkout")

	if err := repo.SoftDelete(ctx, "PROJ-001"); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	// Deleted projects are invisible to GetByID
	if _, err := repo.GetByID(ctx, "PROJ-001"); err == nil {
		t.Error("expected soft-deleted project to be invisible")
	}

	// And to default listing
	projects, err := repo.List(ctx, secondary.ProjectFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("expected 0 live projects, got %d", len(projects))
	}

	// But still present with IncludeDeleted
	projects, err = repo.List(ctx, secondary.ProjectFilters{IncludeDeleted: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(projects) != 1 {
		t.Errorf("expected 1 project including deleted, got %d", len(projects))
	}
	if projects[0].DeletedAt == "" {
		t.Error("expected deleted_at to be set")
	}

	// Double delete is an error (row already gone)
	if err := repo.SoftDelete(ctx, "PROJ-001"); err == nil {
		t.Error("expected error deleting already-deleted project")
	}
}

func TestProjectRepository_List_StatusFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewProjectRepository(db)
	ctx := context.Background()

	seedProject(t, db, "PROJ-001", "Checkout")
	seedProject(t, db, "PROJ-002", "Mobile")
	if err := repo.UpdateStatus(ctx, "PROJ-002", "archived"); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	active, err := repo.List(ctx, secondary.ProjectFilters{Status: "active"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(active) != 1 || active[0].ID != "PROJ-001" {
		t.Errorf("expected only PROJ-001 active, got %+v", active)
	}
}

func TestProjectRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewProjectRepository(db)
	ctx := context.Background()

	seedProject(t, db, "PROJ-001", "Checkout")

	err := repo.Update(ctx, &secondary.ProjectRecord{ID: "PROJ-001", Description: "Updated description"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	retrieved, _ := repo.GetByID(ctx, "PROJ-001")
	if retrieved.Description != "Updated description" {
		t.Errorf("expected updated description, got '%s'", retrieved.Description)
	}
	if retrieved.Name != "Checkout" {
		t.Errorf("name should be unchanged, got '%s'", retrieved.Name)
	}
}

func TestProjectRepository_GetNextID(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewProjectRepository(db)
	ctx := context.Background()

	id, err := repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if id != "PROJ-001" {
		t.Errorf("expected PROJ-001, got %s", id)
	}

	seedProject(t, db, "PROJ-001", "Checkout")

	id, err = repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if id != "PROJ-002" {
		t.Errorf("expected PROJ-002, got %s", id)
	}
}

func TestProjectRepository_Members(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewProjectRepository(db)
	ctx := context.Background()

	seedProject(t, db, "PROJ-001", "Checkout")

	member := &secondary.MemberRecord{
		ID:        "PM-001",
		ProjectID: "PROJ-001",
		Member:    "alex",
		Role:      "editor",
	}
	if err := repo.AddMember(ctx, member); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}

	// Duplicate membership is rejected by the unique constraint
	if err := repo.AddMember(ctx, &secondary.MemberRecord{ID: "PM-002", ProjectID: "PROJ-001", Member: "alex", Role: "viewer"}); err == nil {
		t.Error("expected error adding duplicate member")
	}

	members, err := repo.ListMembers(ctx, "PROJ-001")
	if err != nil {
		t.Fatalf("ListMembers failed: %v", err)
	}
	if len(members) != 1 || members[0].Member != "alex" {
		t.Errorf("unexpected members: %+v", members)
	}

	if err := repo.RemoveMember(ctx, "PROJ-001", "alex"); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	if err := repo.RemoveMember(ctx, "PROJ-001", "alex"); err == nil {
		t.Error("expected error removing missing member")
	}
}
