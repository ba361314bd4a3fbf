package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"filesort/internal/classify"
	"filesort/internal/config"
	"filesort/internal/logging"
	"filesort/internal/metrics"
	"filesort/internal/movelog"
	"filesort/internal/outputlock"
)

type commandContext struct {
	configFlag *string
	outputFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	metricsOnce sync.Once
	metrics     *metrics.Recorder
}

func newCommandContext(configFlag, outputFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		outputFlag: outputFlag,
	}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = fmt.Errorf("init logger: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// outputDir prefers --output over the configured output_dir.
func (c *commandContext) outputDir(cfg *config.Config) (string, error) {
	if c.outputFlag != nil {
		if flag := strings.TrimSpace(*c.outputFlag); flag != "" {
			return expandHome(flag)
		}
	}
	return cfg.OutputDir, nil
}

func sourceDir(cfg *config.Config, args []string) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return expandHome(strings.TrimSpace(args[0]))
	}
	return cfg.SourceDir, nil
}

// expandHome resolves a leading "~" and leaves other paths as typed, so
// relative paths reach the move log unchanged when absolute_paths is off.
func expandHome(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		return config.ExpandPath(path)
	}
	return path, nil
}

func (c *commandContext) classifier(cfg *config.Config) *classify.Classifier {
	return classify.New(cfg.CategoryTable())
}

func (c *commandContext) store(logger *slog.Logger) *movelog.Store {
	return movelog.NewStore(logger)
}

// withOutputLock runs fn while holding the output directory lock when
// lock_output_dir is enabled.
func (c *commandContext) withOutputLock(ctx context.Context, cfg *config.Config, outputDir string, logger *slog.Logger, fn func(context.Context) error) error {
	if !cfg.LockOutputDir {
		return fn(ctx)
	}
	lock, err := outputlock.Acquire(outputDir, logger)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil {
			logging.WarnWithContext(logger, "output lock release failed", "lock_release_failed", logging.Error(releaseErr))
		}
	}()
	return fn(ctx)
}

// recordMetrics hands the process recorder to observe and rewrites the
// metrics textfile. It does nothing unless metrics_file is configured; write
// failures are logged, never returned.
func (c *commandContext) recordMetrics(cfg *config.Config, logger *slog.Logger, observe func(*metrics.Recorder)) {
	if cfg == nil || cfg.MetricsFile == "" {
		return
	}
	c.metricsOnce.Do(func() {
		c.metrics = metrics.NewRecorder()
	})
	observe(c.metrics)
	if err := c.metrics.WriteTextfile(cfg.MetricsFile); err != nil {
		logging.WarnWithContext(logger, "metrics export failed", "metrics_write_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check metrics_file is writable"),
		)
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
