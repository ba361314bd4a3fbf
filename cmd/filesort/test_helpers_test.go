package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type cliTestEnv struct {
	baseDir    string
	sourceDir  string
	outputDir  string
	configPath string
}

// setupCLITestEnv isolates HOME and the working directory so no real
// configuration leaks into a test.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	home := filepath.Join(base, "home")
	require.NoError(t, os.MkdirAll(home, 0o755))
	t.Setenv("HOME", home)
	t.Chdir(base)

	env := &cliTestEnv{
		baseDir:    base,
		sourceDir:  filepath.Join(base, "incoming"),
		outputDir:  filepath.Join(base, "sorted"),
		configPath: filepath.Join(base, "filesort-test.toml"),
	}
	require.NoError(t, os.MkdirAll(env.sourceDir, 0o755))
	return env
}

func (e *cliTestEnv) writeConfig(t *testing.T, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(e.configPath, []byte(body), 0o644))
}

func (e *cliTestEnv) addSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.sourceDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
