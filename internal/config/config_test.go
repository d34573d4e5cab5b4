package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Missing(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(dir)
	if err == nil {
		t.Fatal("expected error for missing config")
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg := &Config{
		Version:        "1",
		Actor:          "qa-lead",
		DefaultProject: "PROJ-001",
	}
	if err := SaveConfig(dir, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Actor != "qa-lead" {
		t.Errorf("expected actor 'qa-lead', got '%s'", loaded.Actor)
	}
	if loaded.DefaultProject != "PROJ-001" {
		t.Errorf("expected default project 'PROJ-001', got '%s'", loaded.DefaultProject)
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	dir := t.TempDir()
	tdDir := filepath.Join(dir, ".testdeck")
	if err := os.MkdirAll(tdDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tdDir, "config.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(dir)
	if err == nil {
		t.Fatal("expected error for malformed config")
	}
}
