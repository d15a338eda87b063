package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFindsFileInParentDirectory(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	rc := "debug: true\nsearchPaths:\n  - ./vendor\n  - ./lib\n"
	if err := os.WriteFile(filepath.Join(root, fileName), []byte(rc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(sub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Debug {
		t.Fatalf("expected Debug true, got false")
	}
	if len(cfg.SearchPaths) != 2 || cfg.SearchPaths[0] != "./vendor" || cfg.SearchPaths[1] != "./lib" {
		t.Fatalf("got SearchPaths %v", cfg.SearchPaths)
	}
}

func TestLoadReturnsZeroConfigWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Debug || cfg.SearchPaths != nil {
		t.Fatalf("expected zero Config, got %+v", cfg)
	}
}

func TestMergeFlagsWinOverConfig(t *testing.T) {
	cfg := Config{Debug: false, SearchPaths: []string{"./from-file"}}

	merged := Merge(cfg, true, true, []string{"./from-flag"})
	if !merged.Debug {
		t.Fatalf("expected flag-set Debug to win")
	}
	if len(merged.SearchPaths) != 1 || merged.SearchPaths[0] != "./from-flag" {
		t.Fatalf("expected flag SearchPaths to win, got %v", merged.SearchPaths)
	}
}

func TestMergeKeepsConfigWhenFlagsUnset(t *testing.T) {
	cfg := Config{Debug: true, SearchPaths: []string{"./from-file"}}

	merged := Merge(cfg, false, false, nil)
	if !merged.Debug {
		t.Fatalf("expected config Debug to survive when flag unset")
	}
	if len(merged.SearchPaths) != 1 || merged.SearchPaths[0] != "./from-file" {
		t.Fatalf("expected config SearchPaths to survive when flag unset, got %v", merged.SearchPaths)
	}
}
