package app

import (
	"context"
	"testing"

	"github.com/example/testdeck/internal/ctxutil"
	"github.com/example/testdeck/internal/ports/primary"
	"github.com/example/testdeck/internal/ports/secondary"
)

func TestCreateProject(t *testing.T) {
	repo := newMockProjectRepository()
	svc := NewProjectService(repo, newMockLogWriter())
	ctx := ctxutil.WithActor(context.Background(), "qa-lead")

	resp, err := svc.CreateProject(ctx, primary.CreateProjectRequest{
		Name:        "Checkout",
		Description: "Web checkout flow",
	})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if resp.ProjectID != "PROJ-001" {
		t.Errorf("expected PROJ-001, got %s", resp.ProjectID)
	}
	if resp.Project.CreatedBy != "qa-lead" {
		t.Errorf("expected created_by from context actor, got %q", resp.Project.CreatedBy)
	}
	if resp.Project.Status != "active" {
		t.Errorf("expected status 'active', got %q", resp.Project.Status)
	}
}

func TestCreateProject_RequiresName(t *testing.T) {
	svc := NewProjectService(newMockProjectRepository(), newMockLogWriter())

	_, err := svc.CreateProject(context.Background(), primary.CreateProjectRequest{})
	if err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestUpdateProject_NothingToUpdate(t *testing.T) {
	repo := newMockProjectRepository()
	repo.projects["PROJ-001"] = &secondary.ProjectRecord{ID: "PROJ-001", Name: "Checkout", Status: "active"}
	svc := NewProjectService(repo, newMockLogWriter())

	err := svc.UpdateProject(context.Background(), primary.UpdateProjectRequest{ProjectID: "PROJ-001"})
	if err == nil {
		t.Fatal("expected error for empty update")
	}
}

func TestUpdateProject_LogsFieldChanges(t *testing.T) {
	repo := newMockProjectRepository()
	repo.projects["PROJ-001"] = &secondary.ProjectRecord{ID: "PROJ-001", Name: "Checkout", Status: "active"}
	logWriter := newMockLogWriter()
	svc := NewProjectService(repo, logWriter)

	err := svc.UpdateProject(context.Background(), primary.UpdateProjectRequest{
		ProjectID: "PROJ-001",
		Name:      "Checkout v2",
	})
	if err != nil {
		t.Fatalf("UpdateProject failed: %v", err)
	}
	if len(logWriter.entries) != 1 || logWriter.entries[0] != "update project PROJ-001 name" {
		t.Errorf("unexpected audit entries: %v", logWriter.entries)
	}
}

func TestArchiveProject(t *testing.T) {
	repo := newMockProjectRepository()
	repo.projects["PROJ-001"] = &secondary.ProjectRecord{ID: "PROJ-001", Name: "Checkout", Status: "active"}
	svc := NewProjectService(repo, newMockLogWriter())
	ctx := context.Background()

	if err := svc.ArchiveProject(ctx, "PROJ-001"); err != nil {
		t.Fatalf("ArchiveProject failed: %v", err)
	}
	if repo.projects["PROJ-001"].Status != "archived" {
		t.Errorf("expected status 'archived', got %q", repo.projects["PROJ-001"].Status)
	}

	if err := svc.ArchiveProject(ctx, "PROJ-001"); err == nil {
		t.Error("expected error archiving an archived project")
	}
}

func TestDeleteProject(t *testing.T) {
	repo := newMockProjectRepository()
	repo.projects["PROJ-001"] = &secondary.ProjectRecord{ID: "PROJ-001", Name: "Checkout", Status: "active"}
	logWriter := newMockLogWriter()
	svc := NewProjectService(repo, logWriter)

	if err := svc.DeleteProject(context.Background(), "PROJ-001"); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}
	if _, err := svc.GetProject(context.Background(), "PROJ-001"); err == nil {
		t.Error("expected deleted project to be invisible")
	}
	if len(logWriter.entries) != 1 || logWriter.entries[0] != "delete project PROJ-001" {
		t.Errorf("unexpected audit entries: %v", logWriter.entries)
	}
}

func TestAddMember(t *testing.T) {
	repo := newMockProjectRepository()
	repo.projects["PROJ-001"] = &secondary.ProjectRecord{ID: "PROJ-001", Name: "Checkout", Status: "active"}
	svc := NewProjectService(repo, newMockLogWriter())
	ctx := context.Background()

	err := svc.AddMember(ctx, primary.AddMemberRequest{ProjectID: "PROJ-001", Member: "alex", Role: "editor"})
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}

	members, err := svc.ListMembers(ctx, "PROJ-001")
	if err != nil {
		t.Fatalf("ListMembers failed: %v", err)
	}
	if len(members) != 1 || members[0].Member != "alex" || members[0].Role != "editor" {
		t.Errorf("unexpected members: %+v", members)
	}
}

func TestAddMember_DefaultsRoleToViewer(t *testing.T) {
	repo := newMockProjectRepository()
	repo.projects["PROJ-001"] = &secondary.ProjectRecord{ID: "PROJ-001", Name: "Checkout", Status: "active"}
	svc := NewProjectService(repo, newMockLogWriter())

	err := svc.AddMember(context.Background(), primary.AddMemberRequest{ProjectID: "PROJ-001", Member: "sam"})
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}

	members, _ := svc.ListMembers(context.Background(), "PROJ-001")
	if members[0].Role != "viewer" {
		t.Errorf("expected default role 'viewer', got %q", members[0].Role)
	}
}

func TestAddMember_InvalidRole(t *testing.T) {
	repo := newMockProjectRepository()
	repo.projects["PROJ-001"] = &secondary.ProjectRecord{ID: "PROJ-001", Name: "Checkout", Status: "active"}
	svc := NewProjectService(repo, newMockLogWriter())

	err := svc.AddMember(context.Background(), primary.AddMemberRequest{ProjectID: "PROJ-001", Member: "sam", Role: "owner"})
	if err == nil {
		t.Fatal("expected error for unknown role")
	}
}
