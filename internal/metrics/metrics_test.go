package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filesort/internal/movelog"
	"filesort/internal/organizer"
	"filesort/internal/undo"
)

func TestObserveOrganize(t *testing.T) {
	rec := NewRecorder()
	rec.now = func() time.Time { return time.Unix(1700000000, 0) }

	rec.ObserveOrganize(&organizer.Result{
		Counts:     map[string]int{"Images": 2, "Others": 1},
		Skipped:    1,
		BytesMoved: 2048,
	}, false)
	rec.ObserveOrganize(&organizer.Result{
		Counts:  map[string]int{},
		Planned: []organizer.PlannedMove{{Category: "Music"}},
	}, true)

	assert.Equal(t, float64(1), testutil.ToFloat64(rec.Runs.WithLabelValues("organize")))
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.Runs.WithLabelValues("dry_run")))
	assert.Equal(t, float64(2), testutil.ToFloat64(rec.FilesProcessed.WithLabelValues("Images", "moved")))
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.FilesProcessed.WithLabelValues("Music", "planned")))
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.FilesProcessed.WithLabelValues("", "failed")))
	assert.Equal(t, float64(2048), testutil.ToFloat64(rec.BytesMoved))
	assert.Equal(t, float64(1700000000), testutil.ToFloat64(rec.LastRun))
}

func TestObserveUndo(t *testing.T) {
	rec := NewRecorder()
	rec.ObserveUndo(&undo.Result{
		Restored: make([]movelog.Record, 3),
		Skipped:  make([]movelog.Record, 1),
		Failed:   []undo.Failure{{Err: errors.New("boom")}},
	})

	assert.Equal(t, float64(1), testutil.ToFloat64(rec.Runs.WithLabelValues("undo")))
	assert.Equal(t, float64(3), testutil.ToFloat64(rec.Restores.WithLabelValues("restored")))
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.Restores.WithLabelValues("failed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.PendingUndo))
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.ObserveOrganize(&organizer.Result{}, false)
	rec.ObserveUndo(&undo.Result{})
	assert.NoError(t, rec.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestWriteTextfile(t *testing.T) {
	rec := NewRecorder()
	rec.ObserveOrganize(&organizer.Result{Counts: map[string]int{"Documents": 1}, BytesMoved: 10}, false)

	path := filepath.Join(t.TempDir(), "textfile", "filesort.prom")
	require.NoError(t, rec.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, `filesort_files_processed_total{category="Documents",status="moved"} 1`), text)
	assert.Contains(t, text, "filesort_bytes_moved_total 10")
	assert.Contains(t, text, `filesort_runs_total{mode="organize"} 1`)
}
