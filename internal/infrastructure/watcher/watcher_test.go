package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, path string) *Watcher {
	t.Helper()
	w, err := New(path, 20*time.Millisecond, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	t.Cleanup(w.Stop)
	return w
}

func waitChange(t *testing.T, w *Watcher) Change {
	t.Helper()
	select {
	case c := <-w.Changes:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
		return Change{}
	}
}

func TestWatcher_AtomicSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")
	w := startWatcher(t, path)

	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(`{}`), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	c := waitChange(t, w)
	assert.Equal(t, w.Path, c.Path)
	assert.False(t, c.Removed)
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")
	w := startWatcher(t, path)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i)}, 0o644))
	}

	waitChange(t, w)
	select {
	case c := <-w.Changes:
		t.Fatalf("unexpected second change: %+v", c)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")
	w := startWatcher(t, path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "archive.db"), []byte("x"), 0o644))

	select {
	case c := <-w.Changes:
		t.Fatalf("unexpected change: %+v", c)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_Removal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))
	w := startWatcher(t, path)

	require.NoError(t, os.Remove(path))

	c := waitChange(t, w)
	assert.True(t, c.Removed)
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "nope", "session.json"), 0, nil)
	require.NoError(t, err)
	defer w.watcher.Close()

	assert.Equal(t, DefaultDebounce, w.debounce)
	require.Error(t, w.Start())
}
