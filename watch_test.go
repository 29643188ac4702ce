package glassblog

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchFileFiresOnWrite(t *testing.T) {
	path := writePosts(t, samplePosts)
	changed := make(chan struct{}, 4)
	w, err := WatchFile(path, NewLogger(io.Discard, 0), func() { changed <- struct{}{} })
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("expected change notification")
	}
}

func TestWatchFileIgnoresSiblings(t *testing.T) {
	path := writePosts(t, samplePosts)
	changed := make(chan struct{}, 4)
	w, err := WatchFile(path, NewLogger(io.Discard, 0), func() { changed <- struct{}{} })
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.json"), []byte(`[]`), 0o644))

	select {
	case <-changed:
		t.Fatal("sibling file should not trigger a change")
	case <-time.After(4 * watchDebounce):
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	w, err := WatchDir(t.TempDir(), ".md", NewLogger(io.Discard, 0), func() {})
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.NotPanics(t, func() { assert.NoError(t, w.Close()) })
}

func TestAppInvalidatesCacheOnDataChange(t *testing.T) {
	path := writePosts(t, samplePosts)
	a := New(SiteConfig{DataSource: path, Watch: true}, nil, stubViews(),
		WithLogger(NewLogger(io.Discard, 0)))
	require.NoError(t, a.Setup(t.Context()))
	defer a.Close()

	posts, err := a.Cache.ListPosts(t.Context(), "")
	require.NoError(t, err)
	require.Len(t, posts, 3)

	require.NoError(t, os.WriteFile(path, []byte(`[{"slug": "only"}]`), 0o644))

	require.Eventually(t, func() bool {
		posts, err := a.Cache.ListPosts(t.Context(), "")
		return err == nil && len(posts) == 1
	}, 3*time.Second, 20*time.Millisecond)
}
