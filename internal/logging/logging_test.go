package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, LevelWarn)

	l.Debug("debug %d", 1)
	l.Info("info %d", 2)
	l.Warn("warn %d", 3)
	l.Error("error %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "debug 1")
	assert.NotContains(t, out, "info 2")
	assert.Contains(t, out, "warn 3")
	assert.Contains(t, out, "error 4")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "verbose"})
	assert.Error(t, err)
}

func TestNewWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "contact.log")

	l, err := New(Config{Level: LevelInfo, File: path})
	require.NoError(t, err)
	l.Info("hello %s", "file")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello file")
}
