package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filesort/internal/config"
	"filesort/internal/failures"
	"filesort/internal/logging"
)

func TestConsoleLoggerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf})
	require.NoError(t, err)

	logging.NewComponentLogger(logger, "organizer").Info("moved file", logging.String("dest", "a b.txt"), logging.Int("count", 2))

	line := buf.String()
	assert.Contains(t, line, " INFO organizer: moved file")
	assert.Contains(t, line, `dest="a b.txt"`)
	assert.Contains(t, line, "count=2")
	assert.NotContains(t, line, "component=")
	assert.NotContains(t, line, ".go:", "info logs should not carry caller info")
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Writer: &buf})
	require.NoError(t, err)

	logger.Debug("with caller")
	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestConsoleLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Writer: &buf})
	require.NoError(t, err)

	logger.Info("hidden")
	assert.Empty(t, buf.String())
	logger.Warn("shown")
	assert.Contains(t, buf.String(), "WARN shown")
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Writer: &buf})
	require.NoError(t, err)

	logger.Info("hello", logging.String("src", "a.txt"))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	assert.Equal(t, "hello", payload["msg"])
	assert.Equal(t, "info", payload["level"])
	assert.Equal(t, "a.txt", payload["src"])
	assert.Contains(t, payload, "ts")
}

func TestNewRejectsUnknownFormatAndLevel(t *testing.T) {
	_, err := logging.New(logging.Options{Format: "xml"})
	assert.Error(t, err)
	_, err = logging.New(logging.Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "info"
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "filesort.log")

	logger, err := logging.NewFromConfig(&cfg)
	require.NoError(t, err)
	logger.Info("persisted line")

	content, err := os.ReadFile(cfg.Logging.File)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(content), "persisted line"))
}

func TestWithContextAddsRunID(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Writer: &buf})
	require.NoError(t, err)

	ctx := failures.WithRunID(context.Background(), "run-42")
	logging.WithContext(ctx, logger).Info("tagged")
	assert.Contains(t, buf.String(), "run_id=run-42")
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Writer: &buf})
	require.NoError(t, err)

	logging.WarnWithContext(logger, "log unreadable", "movelog_corrupt", logging.String(logging.FieldImpact, "log ignored"))

	line := buf.String()
	assert.Contains(t, line, "event_type=movelog_corrupt")
	assert.Contains(t, line, `error_hint="check logs for details"`)
	assert.Contains(t, line, `impact="log ignored"`)
}
