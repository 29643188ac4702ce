package glassblog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePosts = `[
  {"slug": "older", "title": "Older", "author": "Ada", "date": "2024-01-15", "readTime": "2 min read",
   "excerpt": "old", "content": "# Old\n- item", "tags": ["Go", "Web"]},
  {"slug": "newer", "title": "Newer", "author": "Bob", "date": "2024-03-01T10:00:00Z", "readTime": "5 min read",
   "excerpt": "new", "content": "plain", "tags": ["react"]},
  {"slug": "undated", "title": "Undated", "date": "someday", "content": "", "tags": ["go"]}
]`

func writePosts(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "posts.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDecodePosts(t *testing.T) {
	posts, err := DecodePosts(strings.NewReader(samplePosts))
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "older", posts[0].Slug)
	assert.Equal(t, "2 min read", posts[0].ReadTime)
	assert.Equal(t, []string{"Go", "Web"}, posts[0].Tags)
	assert.Equal(t, "# Old\n- item", posts[0].Content)
}

func TestDecodePostsRejectsBadData(t *testing.T) {
	tests := map[string]string{
		"not json":       `{"slug":`,
		"not an array":   `{"slug": "a"}`,
		"missing slug":   `[{"title": "x"}]`,
		"duplicate slug": `[{"slug": "a"}, {"slug": "a"}]`,
	}
	for name, body := range tests {
		_, err := DecodePosts(strings.NewReader(body))
		assert.Error(t, err, name)
	}
}

func TestFileSourceLoad(t *testing.T) {
	src := &FileSource{Path: writePosts(t, samplePosts)}
	posts, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 3)
}

func TestFileSourceMissingFile(t *testing.T) {
	src := &FileSource{Path: filepath.Join(t.TempDir(), "nope.json")}
	_, err := src.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLoadFailed))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFileSourceMalformed(t *testing.T) {
	src := &FileSource{Path: writePosts(t, `[{"slug": "a"}, {"slug": "a"}]`)}
	_, err := src.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLoadFailed))
	assert.Contains(t, err.Error(), "duplicate slug")
}

func TestHTTPSourceLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/posts.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(samplePosts))
	}))
	defer srv.Close()

	src := NewSource(srv.URL + "/data/posts.json")
	require.IsType(t, &HTTPSource{}, src)
	posts, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 3)
}

func TestHTTPSourceStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := (&HTTPSource{URL: srv.URL}).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLoadFailed))
	assert.Contains(t, err.Error(), "status 404")
}

func TestHTTPSourceCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePosts))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&HTTPSource{URL: srv.URL}).Load(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLoadFailed))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNewSourcePicksFile(t *testing.T) {
	src := NewSource("data/posts.json")
	fs, ok := src.(*FileSource)
	require.True(t, ok)
	assert.Equal(t, "data/posts.json", fs.Path)
}
