package testsupport

import (
	"path/filepath"
	"testing"

	"tunetrace/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ReviewDir = filepath.Join(base, "review")
	cfg.Catalog.ClientID = "test-client"
	cfg.Catalog.ClientSecret = "test-secret"

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithWorkers overrides both resolve and verify worker counts.
func WithWorkers(n int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Resolve.Workers = n
		cfg.Verify.Workers = n
	}
}

// WithSearchTimeout overrides the external search timeout.
func WithSearchTimeout(seconds int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Search.TimeoutSeconds = seconds
	}
}
