package glassblog

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource counts loads and returns fixed posts or an error.
type stubSource struct {
	posts []Post
	err   error
	loads atomic.Int32
}

func (s *stubSource) Load(ctx context.Context) ([]Post, error) {
	s.loads.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	out := make([]Post, len(s.posts))
	copy(out, s.posts)
	return out, nil
}

func testPosts() []Post {
	return []Post{
		{Slug: "older", Title: "Older", Author: "Ada", Date: "2024-01-15", Tags: []string{"Go", "Web"}},
		{Slug: "undated", Title: "Undated", Date: "someday", Tags: []string{"go "}},
		{Slug: "newer", Title: "Newer", Date: "2024-03-01T10:00:00Z", Tags: []string{"React"}},
	}
}

func slugs(posts []Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Slug
	}
	return out
}

func TestPostCacheSortsNewestFirst(t *testing.T) {
	c := NewPostCache(&stubSource{posts: testPosts()}, time.Minute)
	posts, err := c.ListPosts(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"newer", "older", "undated"}, slugs(posts))
}

func TestPostCacheFiltersByTagCaseInsensitive(t *testing.T) {
	c := NewPostCache(&stubSource{posts: testPosts()}, time.Minute)
	ctx := context.Background()

	posts, err := c.ListPosts(ctx, "GO")
	require.NoError(t, err)
	assert.Equal(t, []string{"older", "undated"}, slugs(posts))

	posts, err = c.ListPosts(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostCacheTags(t *testing.T) {
	c := NewPostCache(&stubSource{posts: testPosts()}, time.Minute)
	tags, err := c.ListTags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "react", "web"}, tags)
}

func TestPostCacheGetPost(t *testing.T) {
	c := NewPostCache(&stubSource{posts: testPosts()}, time.Minute)
	ctx := context.Background()

	p, err := c.GetPost(ctx, "older")
	require.NoError(t, err)
	assert.Equal(t, "Older", p.Title)

	_, err = c.GetPost(ctx, "nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestPostCacheLoadsOncePerTTL(t *testing.T) {
	src := &stubSource{posts: testPosts()}
	c := NewPostCache(src, time.Minute)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := c.ListPosts(ctx, "")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), src.loads.Load())

	c.Invalidate()
	_, err := c.ListTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.loads.Load())
}

func TestPostCacheExpires(t *testing.T) {
	src := &stubSource{posts: testPosts()}
	c := NewPostCache(src, 20*time.Millisecond)
	ctx := context.Background()
	require.NoError(t, c.Warm(ctx))
	time.Sleep(40 * time.Millisecond)
	require.NoError(t, c.Warm(ctx))
	assert.Equal(t, int32(2), src.loads.Load())
}

func TestPostCacheEmptySourceIsCached(t *testing.T) {
	src := &stubSource{}
	c := NewPostCache(src, time.Minute)
	ctx := context.Background()
	posts, err := c.ListPosts(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, posts)
	_, _ = c.ListPosts(ctx, "")
	assert.Equal(t, int32(1), src.loads.Load())
}

func TestPostCacheLoadErrorNotCached(t *testing.T) {
	src := &stubSource{err: ErrLoadFailed}
	c := NewPostCache(src, time.Minute)
	ctx := context.Background()

	_, err := c.ListPosts(ctx, "")
	assert.True(t, errors.Is(err, ErrLoadFailed))
	_, err = c.GetPost(ctx, "x")
	assert.True(t, errors.Is(err, ErrLoadFailed))
	assert.Equal(t, int32(2), src.loads.Load())
}
