package watcher

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCreated_LogsUnwatchableDirectory(t *testing.T) {
	root := t.TempDir()
	created := filepath.Join(root, "partials")
	require.NoError(t, os.Mkdir(created, 0755))

	fw, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	require.NoError(t, fw.Close())

	var buf bytes.Buffer
	w := New(root, 0).WithLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	w.watchCreated(fw, created)

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), created)
}

func TestWatchCreated_IgnoresFiles(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "a.scss")
	require.NoError(t, os.WriteFile(file, []byte(".a {}"), 0644))

	fw, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	require.NoError(t, fw.Close())

	var buf bytes.Buffer
	w := New(root, 0).WithLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	w.watchCreated(fw, file)

	assert.Empty(t, buf.String())
}
