package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeSetGetToggle(t *testing.T) {
	t.Setenv("FOLIO_COLOR_SCHEME", "light")
	dir := t.TempDir()

	output, err := executeCommand(t, newRootCmd(), "--state-dir", dir, "theme", "get")
	require.NoError(t, err)
	assert.Equal(t, "light", strings.TrimSpace(output))

	output, err = executeCommand(t, newRootCmd(), "--state-dir", dir, "theme", "set", "dark")
	require.NoError(t, err)
	assert.Equal(t, "dark", strings.TrimSpace(output))

	data, err := os.ReadFile(filepath.Join(dir, "preferences.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"theme": "dark"`)

	output, err = executeCommand(t, newRootCmd(), "--state-dir", dir, "theme", "get")
	require.NoError(t, err)
	assert.Equal(t, "dark", strings.TrimSpace(output))

	output, err = executeCommand(t, newRootCmd(), "--state-dir", dir, "theme", "toggle")
	require.NoError(t, err)
	assert.Equal(t, "light", strings.TrimSpace(output))
}

func TestThemeSetRejectsUnknownMode(t *testing.T) {
	_, err := executeCommand(t, newRootCmd(), "--state-dir", t.TempDir(), "theme", "set", "sepia")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Use light or dark.")
}

func TestThemeReportsUnusableStateDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := executeCommand(t, newRootCmd(), "--state-dir", blocker, "theme", "set", "dark")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Suggestion:")
}
