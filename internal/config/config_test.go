package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tunetrace/internal/config"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := config.Default()
	base := t.TempDir()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ReviewDir = filepath.Join(base, "review")

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Resolve.Workers != 8 {
		t.Fatalf("expected default worker width 8, got %d", cfg.Resolve.Workers)
	}
	if cfg.Search.TimeoutSeconds != 12 {
		t.Fatalf("expected default search timeout 12, got %d", cfg.Search.TimeoutSeconds)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")
	cfg, resolved, exists, err := config.Load(missing)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if resolved != missing {
		t.Fatalf("expected resolved path %q, got %q", missing, resolved)
	}
	if cfg.Search.Binary != "yt-dlp" {
		t.Fatalf("expected default binary, got %q", cfg.Search.Binary)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`data_dir = "` + filepath.Join(dir, "data") + `"`,
		`log_dir = "` + filepath.Join(dir, "logs") + `"`,
		`review_dir = "` + filepath.Join(dir, "review") + `"`,
		"[search]",
		`result_host = "https://www.youtube.com/"`,
		"timeout_seconds = 0",
		"[resolve]",
		"workers = 4",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if cfg.Search.ResultHost != "https://www.youtube.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Search.ResultHost)
	}
	if cfg.Search.TimeoutSeconds != 12 {
		t.Fatalf("expected zero timeout replaced by default, got %d", cfg.Search.TimeoutSeconds)
	}
	if cfg.Resolve.Workers != 4 {
		t.Fatalf("expected workers=4, got %d", cfg.Resolve.Workers)
	}
	if cfg.Verify.Workers != 8 {
		t.Fatalf("expected default verify workers, got %d", cfg.Verify.Workers)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.DataDir = t.TempDir()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Paths.ReviewDir = t.TempDir()

	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
	cfg.Logging.Format = "json"

	cfg.Search.ResultHost = "www.youtube.com"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for schemeless result host")
	}
}

func TestCreateSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[search]") {
		t.Fatal("sample config missing [search] section")
	}
}
