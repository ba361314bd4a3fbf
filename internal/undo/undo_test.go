package undo_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filesort/internal/classify"
	"filesort/internal/console"
	"filesort/internal/movelog"
	"filesort/internal/organizer"
	"filesort/internal/testsupport"
	"filesort/internal/undo"
)

func newEngine() (*undo.Engine, *bytes.Buffer) {
	var out bytes.Buffer
	return undo.New(movelog.NewStore(nil), console.New(&out), nil), &out
}

func TestUndoRestoresOrganizedFiles(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	files := map[string]string{
		"photo.png":  "png",
		"report.txt": "txt",
		"data.xyz":   "xyz",
	}
	for name, content := range files {
		testsupport.WriteFile(t, filepath.Join(src, name), content)
	}
	// Pre-existing file forces report(1).txt.
	testsupport.WriteFile(t, filepath.Join(out, "Documents", "report.txt"), "keep")

	org := organizer.New(classify.Default(), movelog.NewStore(nil), console.Discard(), nil)
	organized, err := org.Organize(context.Background(), organizer.Options{Source: src, Output: out})
	require.NoError(t, err)
	require.Len(t, organized.Records, 3)

	engine, report := newEngine()
	result, err := engine.Undo(context.Background(), out)
	require.NoError(t, err)

	assert.True(t, result.Complete)
	assert.Len(t, result.Restored, 3)
	assert.Empty(t, result.Failed)
	for name, content := range files {
		assert.Equal(t, content, testsupport.ReadFile(t, filepath.Join(src, name)))
	}
	assert.Equal(t, "keep", testsupport.ReadFile(t, filepath.Join(out, "Documents", "report.txt")))
	assert.NoFileExists(t, filepath.Join(out, "Documents", "report(1).txt"))
	assert.NoFileExists(t, movelog.Path(out))
	assert.Contains(t, report.String(), "Restored: "+filepath.Join(out, "Documents", "report(1).txt")+" -> "+filepath.Join(src, "report.txt"))
	assert.Contains(t, report.String(), "Undo complete. Log removed.")
}

func TestUndoWithoutLog(t *testing.T) {
	engine, report := newEngine()
	result, err := engine.Undo(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.True(t, result.Empty)
	assert.Equal(t, "No log entries found to undo.\n", report.String())
}

func TestUndoTreatsCorruptLogAsEmpty(t *testing.T) {
	out := t.TempDir()
	testsupport.WriteFile(t, movelog.Path(out), "{not json")

	engine, report := newEngine()
	result, err := engine.Undo(context.Background(), out)
	require.NoError(t, err)
	assert.True(t, result.Empty)
	assert.Contains(t, report.String(), "No log entries found to undo.")
	assert.Equal(t, "{not json", testsupport.ReadFile(t, movelog.Path(out)))
}

func TestUndoSkipsMissingDestinations(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "out")
	present := filepath.Join(out, "Documents", "a.txt")
	testsupport.WriteFile(t, present, "a")
	store := movelog.NewStore(nil)
	_, err := store.Append(out, []movelog.Record{
		{Timestamp: "t1", Src: filepath.Join(root, "src", "a.txt"), Dest: present},
		{Timestamp: "t2", Src: filepath.Join(root, "src", "gone.txt"), Dest: filepath.Join(out, "Documents", "gone.txt")},
	})
	require.NoError(t, err)

	engine, report := newEngine()
	result, err := engine.Undo(context.Background(), out)
	require.NoError(t, err)

	assert.True(t, result.Complete)
	assert.Len(t, result.Restored, 1)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "t2", result.Skipped[0].Timestamp)
	assert.Equal(t, "a", testsupport.ReadFile(t, filepath.Join(root, "src", "a.txt")))
	assert.Contains(t, report.String(), "Skipped (missing destination): "+filepath.Join(out, "Documents", "gone.txt"))
	assert.NoFileExists(t, movelog.Path(out))
}

func TestUndoReplaysNewestFirst(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "out")
	original := filepath.Join(root, "a.txt")
	middle := filepath.Join(root, "stage", "a.txt")
	final := filepath.Join(out, "Documents", "a.txt")
	testsupport.WriteFile(t, final, "payload")

	// The file travelled original -> middle -> final.
	_, err := movelog.NewStore(nil).Append(out, []movelog.Record{
		{Timestamp: "t1", Src: original, Dest: middle},
		{Timestamp: "t2", Src: middle, Dest: final},
	})
	require.NoError(t, err)

	engine, _ := newEngine()
	result, err := engine.Undo(context.Background(), out)
	require.NoError(t, err)
	assert.True(t, result.Complete)
	assert.Equal(t, "payload", testsupport.ReadFile(t, original))
	assert.NoFileExists(t, middle)
	assert.NoFileExists(t, final)
}

func TestUndoPartialFailureKeepsOnlyFailedEntries(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "out")
	srcDir := filepath.Join(root, "src")
	records := make([]movelog.Record, 0, 3)
	for i, name := range []string{"one.txt", "two.txt", "three.txt"} {
		dest := filepath.Join(out, "Documents", name)
		testsupport.WriteFile(t, dest, name)
		records = append(records, movelog.Record{
			Timestamp: []string{"t1", "t2", "t3"}[i],
			Src:       filepath.Join(srcDir, name),
			Dest:      dest,
		})
	}
	// Something new now lives where two.txt came from.
	testsupport.WriteFile(t, filepath.Join(srcDir, "two.txt"), "newer")

	store := movelog.NewStore(nil)
	_, err := store.Append(out, records)
	require.NoError(t, err)

	engine, report := newEngine()
	result, err := engine.Undo(context.Background(), out)
	require.NoError(t, err)

	assert.False(t, result.Complete)
	assert.Len(t, result.Restored, 2)
	require.Len(t, result.Failed, 1)
	assert.True(t, errors.Is(result.Failed[0].Err, undo.ErrDestinationOccupied))

	remaining, err := store.Load(out)
	require.NoError(t, err)
	assert.Equal(t, []movelog.Record{records[1]}, remaining)

	assert.Equal(t, "newer", testsupport.ReadFile(t, filepath.Join(srcDir, "two.txt")))
	assert.Equal(t, "two.txt", testsupport.ReadFile(t, filepath.Join(out, "Documents", "two.txt")))
	assert.Equal(t, "one.txt", testsupport.ReadFile(t, filepath.Join(srcDir, "one.txt")))
	assert.Contains(t, report.String(), "Failed to restore "+records[1].Dest+" -> "+records[1].Src)
	assert.Contains(t, report.String(), "Undo finished with some failures. Remaining failed entries saved to log.")
}

func TestUndoFailedEntriesStayChronological(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "out")
	var records []movelog.Record
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		dest := filepath.Join(out, "Documents", name)
		src := filepath.Join(root, "src", name)
		testsupport.WriteFile(t, dest, name)
		records = append(records, movelog.Record{Timestamp: name, Src: src, Dest: dest})
	}
	testsupport.WriteFile(t, records[0].Src, "occupied")
	testsupport.WriteFile(t, records[2].Src, "occupied")

	store := movelog.NewStore(nil)
	_, err := store.Append(out, records)
	require.NoError(t, err)

	engine, _ := newEngine()
	_, err = engine.Undo(context.Background(), out)
	require.NoError(t, err)

	remaining, err := store.Load(out)
	require.NoError(t, err)
	assert.Equal(t, []movelog.Record{records[0], records[2]}, remaining)

	// A second undo after clearing the blockers finishes the job.
	require.NoError(t, os.Remove(records[0].Src))
	require.NoError(t, os.Remove(records[2].Src))
	result, err := engine.Undo(context.Background(), out)
	require.NoError(t, err)
	assert.True(t, result.Complete)
	assert.NoFileExists(t, movelog.Path(out))
}
