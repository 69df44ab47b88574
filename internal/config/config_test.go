package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileIsZeroConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if len(cfg.SearchPaths) != 0 || cfg.Trace {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestLoadParsesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	content := "searchPaths:\n  - ./lib\n  - ./vendor\ncolor: false\ntrace: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if len(cfg.SearchPaths) != 2 || cfg.SearchPaths[0] != "./lib" {
		t.Errorf("unexpected search paths: %v", cfg.SearchPaths)
	}
	if cfg.Color == nil || *cfg.Color {
		t.Error("expected color: false")
	}
	if !cfg.Trace {
		t.Error("expected trace: true")
	}
}

func TestLoadRejectsBrokenYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte("searchPaths: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
