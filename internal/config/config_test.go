package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bazelproj.yaml")
	content := `
workspace: /ws/monorepo
build_file_names: ["BUILD.bazel"]
cache:
  enabled: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workspace != "/ws/monorepo" {
		t.Errorf("Workspace = %q", cfg.Workspace)
	}
	if len(cfg.BuildFileNames) != 1 || cfg.BuildFileNames[0] != "BUILD.bazel" {
		t.Errorf("BuildFileNames = %v", cfg.BuildFileNames)
	}
	if cfg.Cache.Enabled {
		t.Error("cache should be disabled")
	}
	// Unset fields fall back to defaults.
	if cfg.Cache.Path == "" || cfg.Output.Dir == "" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestIsBuildFile(t *testing.T) {
	cfg := Default()
	if !cfg.IsBuildFile("BUILD.bazel") || !cfg.IsBuildFile("BUILD") {
		t.Error("default BUILD file names not recognized")
	}
	if cfg.IsBuildFile("WORKSPACE") {
		t.Error("WORKSPACE is not a BUILD file")
	}
}
