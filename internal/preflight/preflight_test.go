package preflight_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filesort/internal/movelog"
	"filesort/internal/preflight"
)

func TestCheckSourceDirectory(t *testing.T) {
	dir := t.TempDir()
	res := preflight.CheckSourceDirectory(dir)
	assert.True(t, res.Passed, res.Detail)

	res = preflight.CheckSourceDirectory(filepath.Join(dir, "missing"))
	assert.False(t, res.Passed)
	assert.Contains(t, res.Detail, "does not exist")

	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	res = preflight.CheckSourceDirectory(file)
	assert.False(t, res.Passed)
	assert.Contains(t, res.Detail, "is not a directory")
}

func TestCheckOutputDirectory(t *testing.T) {
	dir := t.TempDir()
	res := preflight.CheckOutputDirectory(dir)
	assert.True(t, res.Passed)
	assert.Contains(t, res.Detail, "writable")

	res = preflight.CheckOutputDirectory(filepath.Join(dir, "a", "b"))
	assert.True(t, res.Passed)
	assert.Contains(t, res.Detail, "will be created")

	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	res = preflight.CheckOutputDirectory(filepath.Join(file, "nested"))
	assert.False(t, res.Passed)
}

func TestCheckMoveLog(t *testing.T) {
	dir := t.TempDir()
	store := movelog.NewStore(nil)

	res := preflight.CheckMoveLog(store, dir)
	assert.True(t, res.Passed)
	assert.Equal(t, "no pending moves", res.Detail)

	_, err := store.Append(dir, []movelog.Record{{Timestamp: "t", Src: "a", Dest: "b"}})
	require.NoError(t, err)
	res = preflight.CheckMoveLog(store, dir)
	assert.True(t, res.Passed)
	assert.Contains(t, res.Detail, "1 move(s)")

	require.NoError(t, os.WriteFile(movelog.Path(dir), []byte("oops"), 0o644))
	res = preflight.CheckMoveLog(store, dir)
	assert.False(t, res.Passed)
}

func TestRunAllAndAllPassed(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	results := preflight.RunAll(src, out, movelog.NewStore(nil))
	require.Len(t, results, 3)
	assert.True(t, preflight.AllPassed(results))

	results = preflight.RunAll(filepath.Join(src, "nope"), out, movelog.NewStore(nil))
	assert.False(t, preflight.AllPassed(results))
}
