package logging

import (
	"bytes"
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_NotTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Options{Level: slog.LevelInfo, Stderr: &buf})
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, closer.Close())
	}()

	logger.Debug("hidden")
	logger.Info("shown", "key", "value")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record), "Non-terminal output should be JSON")
	assert.Equal(t, "shown", record["msg"])
	assert.Equal(t, "value", record["key"])
}

func TestNew_File(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "httpnotifier.log")
	logger, closer, err := New(Options{Level: slog.LevelDebug, File: path, Stderr: &buf})
	require.NoError(t, err)
	logger.With("component", "test").Debug("to both")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"to both"`)
	assert.Contains(t, string(data), `"component":"test"`)
	assert.Contains(t, buf.String(), `"msg":"to both"`)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()
	assert.False(t, IsTerminal(f), "A regular file isn't a terminal")
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.False(t, logger.Enabled(t.Context(), slog.LevelError))
}
