package glassblog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "https://example.com", BuildURL("https://example.com"))
	assert.Equal(t, "https://example.com/post/hello/", BuildURL("https://example.com", "post", "hello"))
	assert.Equal(t, "https://example.com/sub/post/x/", BuildURL("https://example.com/sub", "post", "x"))
}

func TestFilterRelatedPosts(t *testing.T) {
	current := Post{Slug: "a", Tags: []string{"Go"}}
	posts := []Post{
		current,
		{Slug: "b", Tags: []string{"go"}},
		{Slug: "c", Tags: []string{"rust"}},
		{Slug: "d", Tags: []string{" GO ", "go"}},
	}
	assert.Equal(t, []string{"b", "d"}, slugs(FilterRelatedPosts(current, posts)))
	assert.Empty(t, FilterRelatedPosts(Post{Slug: "z"}, posts))
}

func TestBlogPostingJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "CoolBlog", URL: "https://example.com", Author: "Site Owner"}
	post := Post{Slug: "hello", Title: "Hello", Excerpt: "hi", Date: "2024-01-01", Author: "Ada", Tags: []string{"go", "web"}}

	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(BlogPostingJsonLD(post, cfg)), &data))
	assert.Equal(t, "BlogPosting", data["@type"])
	assert.Equal(t, "https://example.com/post/hello/", data["url"])
	assert.Equal(t, "Ada", data["author"].(map[string]any)["name"])
	assert.Equal(t, "go, web", data["keywords"])

	post.Author = ""
	require.NoError(t, json.Unmarshal([]byte(BlogPostingJsonLD(post, cfg)), &data))
	assert.Equal(t, "Site Owner", data["author"].(map[string]any)["name"])
}

func TestWebsiteJsonLDEscapesMarkup(t *testing.T) {
	out := WebsiteJsonLD(SiteConfig{Name: "</script>", URL: "https://example.com"})
	assert.NotContains(t, out, "</script>")
}

func TestPostAccessors(t *testing.T) {
	p := Post{Slug: "hello world", Date: "2024-01-15", Content: "# Hi\ntext"}
	assert.Equal(t, "/post/hello%20world/", p.Link())
	assert.Equal(t, "January 15, 2024", p.DisplayDate())
	assert.Len(t, p.Fragments(), 2)

	for _, date := range []string{"2024-01-15T08:00:00Z", "2024-01-15T08:00:00"} {
		_, ok := Post{Date: date}.Published()
		assert.True(t, ok, date)
	}
	_, ok := Post{Date: "soon"}.Published()
	assert.False(t, ok)
	assert.Equal(t, "soon", Post{Date: "soon"}.DisplayDate())
}
