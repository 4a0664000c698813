package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeChapter(t *testing.T, dir, name, title, slug string) {
	t.Helper()
	data := "---\ntitle: " + title + "\nslug: " + slug + "\nweight: 1\n---\n\nbody\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(25 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	writeChapter(t, dir, "a.md", "A", "a")

	store := NewStore(os.DirFS(dir), nil)
	require.NoError(t, store.Load(context.Background()))
	require.Equal(t, 1, store.Len())

	w, err := NewWatcher(dir, store)
	require.NoError(t, err)
	defer w.Close()

	writeChapter(t, dir, "b.md", "B", "b")

	waitFor(t, func() bool { return store.Len() == 2 })
	_, ok := store.Page("b")
	assert.True(t, ok)
}

func TestWatcherReloadsOnSubdirectoryChange(t *testing.T) {
	dir := t.TempDir()
	writeChapter(t, dir, "a.md", "A", "a")
	sub := filepath.Join(dir, "advanced")
	require.NoError(t, os.Mkdir(sub, 0o755))

	store := NewStore(os.DirFS(dir), nil)
	require.NoError(t, store.Load(context.Background()))
	require.Equal(t, 1, store.Len())

	w, err := NewWatcher(dir, store)
	require.NoError(t, err)
	defer w.Close()

	writeChapter(t, sub, "b.md", "B", "b")

	waitFor(t, func() bool { return store.Len() == 2 })
	_, ok := store.Page("b")
	assert.True(t, ok)
}

func TestWatcherPicksUpNewSubdirectory(t *testing.T) {
	dir := t.TempDir()
	writeChapter(t, dir, "a.md", "A", "a")

	store := NewStore(os.DirFS(dir), nil)
	require.NoError(t, store.Load(context.Background()))

	w, err := NewWatcher(dir, store)
	require.NoError(t, err)
	defer w.Close()

	sub := filepath.Join(dir, "advanced")
	require.NoError(t, os.Mkdir(sub, 0o755))
	// Let the create event land so the subdirectory is registered.
	time.Sleep(250 * time.Millisecond)

	writeChapter(t, sub, "b.md", "B", "b")

	waitFor(t, func() bool { return store.Len() == 2 })
	_, ok := store.Page("b")
	assert.True(t, ok)
}

func TestWatcherIgnoresNonMarkdown(t *testing.T) {
	dir := t.TempDir()
	writeChapter(t, dir, "a.md", "A", "a")

	store := NewStore(os.DirFS(dir), nil)
	require.NoError(t, store.Load(context.Background()))

	w, err := NewWatcher(dir, store)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	// Give a would-be reload time to fire; the chapter count must not move.
	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, 1, store.Len())
}

func TestWatcherKeepsSnapshotOnBadEdit(t *testing.T) {
	dir := t.TempDir()
	writeChapter(t, dir, "a.md", "A", "a")
	writeChapter(t, dir, "b.md", "B", "b")

	store := NewStore(os.DirFS(dir), nil)
	require.NoError(t, store.Load(context.Background()))
	require.Equal(t, 2, store.Len())

	w, err := NewWatcher(dir, store)
	require.NoError(t, err)
	defer w.Close()

	// Duplicate slug makes the reload fail; the old snapshot stays up.
	writeChapter(t, dir, "c.md", "C", "a")

	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, 2, store.Len())
	_, ok := store.Page("b")
	assert.True(t, ok)
}

func TestWatcherClose(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(os.DirFS(dir), nil)

	w, err := NewWatcher(dir, store)
	require.NoError(t, err)
	assert.NoError(t, w.Close())
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope"), NewStore(os.DirFS("."), nil))
	assert.Error(t, err)
}
