package app

import (
	"context"
	"strings"
	"testing"

	"github.com/example/testdeck/internal/ports/primary"
	"github.com/example/testdeck/internal/ports/secondary"
)

func TestCreateTestCase(t *testing.T) {
	repo := newMockTestCaseRepository()
	svc := NewTestCaseService(repo, newMockLogWriter())

	resp, err := svc.CreateTestCase(context.Background(), primary.CreateTestCaseRequest{
		ProjectID:   "PROJ-001",
		UserStoryID: "US-001",
		Title:       "Checkout with valid card",
		Steps:       "Add item\nPay\nConfirm",
		Priority:    "high",
	})
	if err != nil {
		t.Fatalf("CreateTestCase failed: %v", err)
	}
	if resp.TestCaseID != "TC-001" {
		t.Errorf("expected TC-001, got %s", resp.TestCaseID)
	}
	if resp.TestCase.Status != "not_run" {
		t.Errorf("expected status 'not_run', got %q", resp.TestCase.Status)
	}
	if resp.TestCase.Steps != "Add item\nPay\nConfirm" {
		t.Errorf("steps not preserved: %q", resp.TestCase.Steps)
	}
}

func TestCreateTestCase_Validation(t *testing.T) {
	repo := newMockTestCaseRepository()
	svc := NewTestCaseService(repo, newMockLogWriter())
	ctx := context.Background()

	if _, err := svc.CreateTestCase(ctx, primary.CreateTestCaseRequest{ProjectID: "PROJ-001"}); err == nil {
		t.Error("expected error for missing title")
	}

	repo.storyExistsResult = false
	_, err := svc.CreateTestCase(ctx, primary.CreateTestCaseRequest{ProjectID: "PROJ-001", UserStoryID: "US-404", Title: "A"})
	if err == nil {
		t.Error("expected error for missing story")
	}

	repo.projectExistsResult = false
	_, err = svc.CreateTestCase(ctx, primary.CreateTestCaseRequest{ProjectID: "PROJ-404", Title: "A"})
	if err == nil {
		t.Error("expected error for missing project")
	}
}

func TestSetExecutionStatus(t *testing.T) {
	repo := newMockTestCaseRepository()
	repo.Create(context.Background(), &secondary.TestCaseRecord{ID: "TC-001", ProjectID: "PROJ-001", Title: "A"})
	svc := NewTestCaseService(repo, newMockLogWriter())
	ctx := context.Background()

	if err := svc.SetExecutionStatus(ctx, "TC-001", "passed"); err != nil {
		t.Fatalf("SetExecutionStatus failed: %v", err)
	}
	if repo.cases["TC-001"].Status != "passed" {
		t.Errorf("expected status 'passed', got %q", repo.cases["TC-001"].Status)
	}
	if repo.cases["TC-001"].ExecutedAt == "" {
		t.Error("expected executed_at stamped for passed")
	}

	// Resetting to not_run clears the execution timestamp
	if err := svc.SetExecutionStatus(ctx, "TC-001", "not_run"); err != nil {
		t.Fatalf("SetExecutionStatus failed: %v", err)
	}
	if repo.cases["TC-001"].ExecutedAt != "" {
		t.Error("expected executed_at cleared for not_run")
	}
}

func TestSetExecutionStatus_InvalidStatus(t *testing.T) {
	repo := newMockTestCaseRepository()
	repo.Create(context.Background(), &secondary.TestCaseRecord{ID: "TC-001", ProjectID: "PROJ-001", Title: "A"})
	svc := NewTestCaseService(repo, newMockLogWriter())

	err := svc.SetExecutionStatus(context.Background(), "TC-001", "skipped")
	if err == nil {
		t.Fatal("expected error for unknown status")
	}
	if !strings.Contains(err.Error(), "invalid status") {
		t.Errorf("expected invalid status message, got %v", err)
	}
	if repo.cases["TC-001"].Status != "not_run" {
		t.Errorf("status should be unchanged, got %q", repo.cases["TC-001"].Status)
	}
}

func TestDeleteTestCase(t *testing.T) {
	repo := newMockTestCaseRepository()
	repo.Create(context.Background(), &secondary.TestCaseRecord{ID: "TC-001", ProjectID: "PROJ-001", Title: "A"})
	logWriter := newMockLogWriter()
	svc := NewTestCaseService(repo, logWriter)

	if err := svc.DeleteTestCase(context.Background(), "TC-001"); err != nil {
		t.Fatalf("DeleteTestCase failed: %v", err)
	}
	if _, ok := repo.cases["TC-001"]; ok {
		t.Error("expected test case to be deleted")
	}
	if err := svc.DeleteTestCase(context.Background(), "TC-001"); err == nil {
		t.Error("expected error deleting missing test case")
	}
}
