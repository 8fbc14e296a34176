package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Practice.Source != nil || cfg.Server.Addr != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigParsesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[practice]
source = "vocabulary"
length = "long"
difficulty = "hard"

[server]
addr = ":8085"
user-id = "abc-123"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Practice.Source == nil || *cfg.Practice.Source != "vocabulary" {
		t.Errorf("source = %v, want vocabulary", cfg.Practice.Source)
	}
	if cfg.Practice.Length == nil || *cfg.Practice.Length != "long" {
		t.Errorf("length = %v, want long", cfg.Practice.Length)
	}
	if cfg.Practice.Category != nil {
		t.Errorf("category should stay unset, got %v", *cfg.Practice.Category)
	}
	if cfg.Server.Addr == nil || *cfg.Server.Addr != ":8085" {
		t.Errorf("addr = %v, want :8085", cfg.Server.Addr)
	}
	if cfg.Server.UserID == nil || *cfg.Server.UserID != "abc-123" {
		t.Errorf("user-id = %v, want abc-123", cfg.Server.UserID)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
