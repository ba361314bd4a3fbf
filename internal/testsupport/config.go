package testsupport

import (
	"path/filepath"
	"testing"

	"filesort/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config whose source and output directories live in a
// per-test temp directory. The source directory is created; the output
// directory is not.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.SourceDir = filepath.Join(base, "source")
	cfg.OutputDir = filepath.Join(base, "output")
	MkdirAll(t, cfg.SourceDir)

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithCategories replaces the category table.
func WithCategories(table map[string][]string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Categories = table
	}
}

// WithOutputLock enables lock_output_dir.
func WithOutputLock() ConfigOption {
	return func(cfg *config.Config) {
		cfg.LockOutputDir = true
	}
}

// WithRelativePaths disables absolute_paths.
func WithRelativePaths() ConfigOption {
	return func(cfg *config.Config) {
		cfg.AbsolutePaths = false
	}
}
