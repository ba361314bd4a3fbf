package undo

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filesort/internal/console"
	"filesort/internal/movelog"
	"filesort/internal/testsupport"
)

func TestUndoCompletesWhenLogRemovalFails(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	dest := filepath.Join(out, "Documents", "notes.txt")
	testsupport.WriteFile(t, dest, "notes")

	store := movelog.NewStore(nil)
	record := movelog.NewRecord(time.Now(), filepath.Join(src, "notes.txt"), dest, "run-1")
	_, err := store.Append(out, []movelog.Record{record})
	require.NoError(t, err)

	var buf bytes.Buffer
	engine := New(store, console.New(&buf), nil)
	removeErr := errors.New("read-only file system")
	engine.removeLog = func(string) error { return removeErr }

	result, err := engine.Undo(context.Background(), out)
	require.NoError(t, err)

	assert.True(t, result.Complete)
	assert.ErrorIs(t, result.LogRemoveErr, removeErr)
	assert.Len(t, result.Restored, 1)
	assert.Empty(t, result.Failed)
	assert.Equal(t, "notes", testsupport.ReadFile(t, filepath.Join(src, "notes.txt")))
	assert.Contains(t, buf.String(), "Undo complete, but failed to remove log file.")
	assert.NotContains(t, buf.String(), "Log removed.")

	records, err := store.Load(out)
	require.NoError(t, err)
	assert.Len(t, records, 1, "log stays in place when removal fails")
}
