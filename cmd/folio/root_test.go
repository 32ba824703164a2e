package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootRendersStaticPageWhenNotATerminal(t *testing.T) {
	dir := t.TempDir()

	output, err := executeCommand(t, newRootCmd(), "--state-dir", dir, "--seed", "5")
	require.NoError(t, err)
	assert.Contains(t, output, "Featured Projects")
	assert.Contains(t, output, "All rights reserved.")

	_, statErr := os.Stat(filepath.Join(dir, "folio.log"))
	assert.NoError(t, statErr, "log file is created in the state directory")
}

func TestRootNeverStartsProgramForBuffers(t *testing.T) {
	original := programRunner
	t.Cleanup(func() { programRunner = original })
	programRunner = func(context.Context, runOptions, *os.File) error {
		t.Fatal("program must not start without a terminal")
		return nil
	}

	_, err := executeCommand(t, newRootCmd(), "--state-dir", t.TempDir())
	require.NoError(t, err)
}

func TestRootUsesContentFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`version: "1.0"
profile:
  name: Rana
  headline: Hello from the test
projects:
  - title: Lighthouse
    summary: A tiny project
`), 0o644))

	output, err := executeCommand(t, newRootCmd(), "--state-dir", dir, "--content", path)
	require.NoError(t, err)
	assert.Contains(t, output, "Lighthouse")
	assert.Contains(t, output, "© ")
	assert.Contains(t, output, "Rana. All rights reserved.")
}

func TestRootReportsInvalidContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: [\n"), 0o644))

	_, err := executeCommand(t, newRootCmd(), "--state-dir", dir, "--content", path)
	require.Error(t, err)

	var cmdErr *commandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Contains(t, err.Error(), "Failed to load content")
	assert.Contains(t, err.Error(), "Suggestion:")
}

func TestRootWatchRequiresContent(t *testing.T) {
	_, err := executeCommand(t, newRootCmd(), "--state-dir", t.TempDir(), "--watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--watch requires --content")
}

func TestStateDirPrecedence(t *testing.T) {
	t.Setenv(homeEnv, "/tmp/folio-env")

	dir, err := stateDir("/tmp/folio-flag")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/folio-flag", dir)

	dir, err = stateDir("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/folio-env", dir)

	t.Setenv(homeEnv, "")
	dir, err = stateDir("")
	require.NoError(t, err)
	assert.Equal(t, ".folio", filepath.Base(dir))
}

func TestOpenLoggerFallsBackOnBadLevel(t *testing.T) {
	dir := t.TempDir()
	stderr := &bytes.Buffer{}

	log, closeLog := openLogger(&rootFlags{logLevel: "loud"}, dir, stderr)
	defer closeLog()

	require.NotNil(t, log)
	assert.Contains(t, stderr.String(), `invalid log level "loud"`)
}
