package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "trace.yaml")
	other := filepath.Join(dir, "other.yaml")
	writeFile(t, watched, "signals: []\n")

	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.AddFile(watched))
	require.NoError(t, w.Start())
	defer w.Stop()
	assert.True(t, w.IsRunning())
	assert.Len(t, w.Files(), 1)

	// Allow a brief moment for fsnotify to initialize watches
	time.Sleep(100 * time.Millisecond)

	// Writes to siblings are not reported
	writeFile(t, other, "x")
	select {
	case change := <-w.Changes():
		t.Fatalf("unexpected change for %s", change.Path)
	case <-time.After(300 * time.Millisecond):
	}

	writeFile(t, watched, "signals: [{signal: drag-end}]\n")
	select {
	case change, ok := <-w.Changes():
		require.True(t, ok)
		assert.Equal(t, filepath.Base(watched), filepath.Base(change.Path))
	case <-time.After(3 * time.Second):
		t.Fatal("Timeout waiting for change")
	}
}

func TestWatcherLifecycle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	writeFile(t, path, "")

	w, err := New()
	require.NoError(t, err)

	assert.Error(t, w.AddFile(dir), "directories are rejected")
	assert.Error(t, w.AddFile(filepath.Join(dir, "missing")))
	require.NoError(t, w.AddFile(path))

	require.NoError(t, w.Start())
	assert.Error(t, w.Start(), "already running")

	w.Stop()
	assert.False(t, w.IsRunning())
	w.Stop() // Stopping twice is harmless

	select {
	case _, ok := <-w.Changes():
		assert.False(t, ok, "changes channel is closed after stop")
	case <-time.After(3 * time.Second):
		t.Fatal("changes channel was not closed")
	}
	assert.Error(t, w.Start(), "stopped watchers do not restart")
}

func TestStopWithoutStart(t *testing.T) {
	w, err := New()
	require.NoError(t, err)

	w.Stop()
	assert.False(t, w.IsRunning())
	assert.Error(t, w.fsWatcher.Add(t.TempDir()), "fsnotify handle is released")

	_, ok := <-w.Changes()
	assert.False(t, ok, "changes channel is closed")
	assert.Error(t, w.Start(), "stopped watchers do not restart")
	w.Stop()
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.yaml")
	writeFile(t, path, "v1")

	var mu sync.Mutex
	calls := 0
	called := make(chan struct{}, 10)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, path, func(string) {
			mu.Lock()
			calls++
			mu.Unlock()
			called <- struct{}{}
		})
	}()

	// Initial run
	select {
	case <-called:
	case <-time.After(3 * time.Second):
		t.Fatal("initial run did not happen")
	}

	time.Sleep(100 * time.Millisecond)
	writeFile(t, path, "v2")
	select {
	case <-called:
	case <-time.After(3 * time.Second):
		t.Fatal("change did not trigger a run")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	mu.Lock()
	assert.GreaterOrEqual(t, calls, 2)
	mu.Unlock()
}

func TestRunMissingFile(t *testing.T) {
	err := Run(context.Background(), filepath.Join(t.TempDir(), "absent"), func(string) {})
	assert.Error(t, err)
}
