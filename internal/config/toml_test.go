package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `[practice]
mode = "lenient"
words = 40
caps = 0.5
strict-accents = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Practice.Mode == nil || *cfg.Practice.Mode != "lenient" {
		t.Fatalf("unexpected mode: %v", cfg.Practice.Mode)
	}
	if cfg.Practice.Words == nil || *cfg.Practice.Words != 40 {
		t.Fatalf("unexpected words: %v", cfg.Practice.Words)
	}
	if cfg.Practice.CapsPct == nil || *cfg.Practice.CapsPct != 0.5 {
		t.Fatalf("unexpected caps: %v", cfg.Practice.CapsPct)
	}
	if cfg.Practice.StrictAccents == nil || *cfg.Practice.StrictAccents {
		t.Fatalf("unexpected strict-accents: %v", cfg.Practice.StrictAccents)
	}
	// Unset keys stay nil so flags keep their defaults.
	if cfg.Practice.PunctSet != nil {
		t.Fatalf("expected nil punct-set, got %v", *cfg.Practice.PunctSet)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing config must not error, got %v", err)
	}
	if cfg.Practice.Mode != nil {
		t.Fatalf("missing config must decode empty")
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
