package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// testEnv is an isolated config and data directory pair for running the
// command tree in-process.
type testEnv struct {
	t         *testing.T
	ConfigDir string
	DataDir   string
}

// cmdResult captures the outcome of one command invocation.
type cmdResult struct {
	Stdout   string
	Stderr   string
	Err      error
	ExitCode int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(envPrefix+"_"+strings.ToUpper(key), "")
	}
	tempDir := t.TempDir()
	return &testEnv{
		t:         t,
		ConfigDir: filepath.Join(tempDir, "config"),
		DataDir:   filepath.Join(tempDir, "data"),
	}
}

// run executes semval with the env's directories and the given arguments.
func (e *testEnv) run(args ...string) cmdResult {
	return e.runWithInput("", args...)
}

func (e *testEnv) runWithInput(stdin string, args ...string) cmdResult {
	e.t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config-dir", e.ConfigDir, "--data-dir", e.DataDir}, args...))
	err := root.Execute()
	return cmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Err:      err,
		ExitCode: exitCode(err),
	}
}

// mustRun executes semval and fails the test on a non-zero exit code.
func (e *testEnv) mustRun(args ...string) cmdResult {
	e.t.Helper()
	res := e.run(args...)
	require.NoError(e.t, res.Err, "semval %v\nstdout: %s\nstderr: %s", args, res.Stdout, res.Stderr)
	return res
}

// writeConfig writes config.yaml into the env's config directory.
func (e *testEnv) writeConfig(content string) {
	e.t.Helper()
	require.NoError(e.t, os.MkdirAll(e.ConfigDir, 0o755))
	require.NoError(e.t, os.WriteFile(filepath.Join(e.ConfigDir, configFileExt), []byte(content), 0o644))
}

// writeFile writes a file under the env's config directory and returns its path.
func (e *testEnv) writeFile(name, content string) string {
	e.t.Helper()
	require.NoError(e.t, os.MkdirAll(e.ConfigDir, 0o755))
	path := filepath.Join(e.ConfigDir, name)
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// parseJSON decodes command output into T.
func parseJSON[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v), "output: %s", s)
	return v
}
