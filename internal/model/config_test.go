package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Storage.Backend != "json" {
		t.Fatalf("expected json backend by default, got %s", cfg.Storage.Backend)
	}
	if cfg.Storage.Path == "" {
		t.Fatal("expected a default data path")
	}
	if !cfg.Display.ShowCompleted {
		t.Fatal("completed tasks are shown by default")
	}
}

func TestLoadConfigReadsYaml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "storage:\n  backend: sqlite\n  path: " + filepath.Join(dir, "data.db") + "\ndisplay:\n  show_completed: false\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Fatalf("expected sqlite backend, got %s", cfg.Storage.Backend)
	}
	if cfg.Storage.Path != filepath.Join(dir, "data.db") {
		t.Fatalf("expected configured path, got %s", cfg.Storage.Path)
	}
	if cfg.Display.ShowCompleted {
		t.Fatal("show_completed false must be honored")
	}
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage:\n  backend: postgres\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for unsupported backend")
	}
}
