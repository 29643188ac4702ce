package views

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/glassblog"
	"github.com/eringen/glassblog/content"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestBodyFragments(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"# Title", `<h1 id="line-0" class="` + classH1 + `">Title</h1>`},
		{"## Sub", `<h2 id="line-0" class="` + classH2 + `">Sub</h2>`},
		{"### Small", `<h3 id="line-0" class="` + classH3 + `">Small</h3>`},
		{"> quote", `<blockquote id="line-0" class="` + classBlockquote + `">quote</blockquote>`},
		{"- eat", `<li id="line-0" class="` + classListItem + `">eat</li>`},
		{"2. sleep", `<li id="line-0" class="` + classListItem + `">sleep</li>`},
		{"```", ``},
		{"```go x := 1", `<pre id="line-0" class="` + classPre + `"><code class="text-green-300"> x := 1</code></pre>`},
		{"", `<br id="line-0">`},
		{"plain text", `<p id="line-0" class="` + classParagraph + `">plain text</p>`},
	}
	for _, tt := range tests {
		got := renderString(t, Markdown(tt.input))
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestBodyInlineCode(t *testing.T) {
	got := renderString(t, Markdown("Use `foo()` here"))
	want := `<p id="line-0" class="` + classParagraph + `">Use <code class="` + classInlineCode + `">foo()</code> here</p>`
	assert.Equal(t, want, got)
}

func TestBodyEscapesText(t *testing.T) {
	got := renderString(t, Markdown("# <script>alert(1)</script>\nUse `<b>` & more"))
	assert.NotContains(t, got, "<script>")
	assert.Contains(t, got, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, got, "&lt;b&gt;</code>")
	assert.Contains(t, got, " &amp; more")
}

func TestBodyKeepsLineOrder(t *testing.T) {
	got := renderString(t, Body(content.Render("# Title\n\n- item1\n- item2\nplain text")))
	order := []string{`id="line-0"`, `id="line-1"`, `id="line-2"`, `id="line-3"`, `id="line-4"`}
	last := -1
	for _, id := range order {
		idx := strings.Index(got, id)
		require.Greater(t, idx, last, "%s out of order in %q", id, got)
		last = idx
	}
}

func TestTagHelpers(t *testing.T) {
	assert.Equal(t, "#go", TagLabel("Go"))
	assert.Equal(t, "#émile", TagLabel("ÉMILE"))
	assert.Contains(t, TagChipClass("Go", true), content.TagGradient("Go"))
	assert.Contains(t, TagChipClass("", false), content.Palette[0])
	assert.Equal(t, "/", TagFilterURL(""))
	assert.Equal(t, "/?tag=c%2B%2B", TagFilterURL("c++"))
	assert.Equal(t, "/?tag=react", TagFilterURL("React"))
	assert.Equal(t, "/?partial=home", TagPartialURL(""))
	assert.Equal(t, "/?tag=react&partial=home", TagPartialURL("React"))
	assert.Equal(t, "/post/x/?partial=post", PostPartialURL(glassblog.Post{Slug: "x"}))
	assert.Contains(t, TagFilterClass(true), "ring-2")
	assert.NotContains(t, TagFilterClass(false), "ring-2")
}

func testConfig() glassblog.SiteConfig {
	return glassblog.SiteConfig{Name: "CoolBlog", URL: "https://example.com", Description: "Ideas", Author: "Ada"}
}

func TestHomeListsPosts(t *testing.T) {
	posts := []glassblog.Post{
		{Slug: "b", Title: "Second", Date: "2024-02-01", Excerpt: "two", Tags: []string{"Go"}},
		{Slug: "a", Title: "First & Best", Date: "2024-01-01", Excerpt: "one"},
	}
	got := renderString(t, Home(testConfig(), posts, "", []string{"go"}))
	assert.Contains(t, got, "<title>CoolBlog</title>")
	assert.Contains(t, got, `href="/post/b/"`)
	assert.Contains(t, got, "First &amp; Best")
	assert.Contains(t, got, "February 1, 2024")
	assert.Contains(t, got, "#go")
	assert.Contains(t, got, content.TagGradient("Go"))
	assert.Contains(t, got, `<div class="text-2xl font-bold text-white">2</div>`)
	assert.Contains(t, got, `application/ld+json`)
	assert.Less(t, strings.Index(got, "Second"), strings.Index(got, "First"))
}

func TestListingTagPills(t *testing.T) {
	posts := []glassblog.Post{{Slug: "a", Title: "A", Tags: []string{"React"}}}
	got := renderString(t, Listing(posts, "react", []string{"go", "react"}))
	assert.Contains(t, got, `<a href="/?tag=react" hx-get="/?tag=react&amp;partial=home" hx-target="#listing" hx-push-url="/?tag=react" class="`+TagFilterClass(true)+`">react</a>`)
	assert.Contains(t, got, `<a href="/?tag=go" hx-get="/?tag=go&amp;partial=home" hx-target="#listing" hx-push-url="/?tag=go" class="`+TagFilterClass(false)+`">go</a>`)
	assert.Contains(t, got, `class="`+TagFilterClass(false)+`">all</a>`)
	// chips on the card link to the lowercase filter
	assert.Contains(t, got, `href="/?tag=react" class="`+TagChipClass("React", true)+`"`)
	assert.Contains(t, got, `style="animation-delay: 0.0s;"`)
}

func TestLayoutLoadsHtmx(t *testing.T) {
	got := renderString(t, NotFound(testConfig()))
	assert.True(t, strings.HasPrefix(got, "<!doctype html>"))
	assert.Contains(t, got, `<script src="https://unpkg.com/htmx.org@2.0.4"></script>`)
	assert.Contains(t, got, "<title>Post Not Found | CoolBlog</title>")
	assert.NotContains(t, got, "application/ld+json")
}

func TestListingEmpty(t *testing.T) {
	got := renderString(t, Listing(nil, "", nil))
	assert.Contains(t, got, "No posts yet")
}

func TestPostPage(t *testing.T) {
	post := glassblog.Post{
		Slug:     "hello",
		Title:    "Hello",
		Author:   "Ada",
		Date:     "2024-03-05",
		ReadTime: "3 min read",
		Content:  "## Intro\n- one",
		Tags:     []string{"Go"},
	}
	related := []glassblog.Post{{Slug: "other", Title: "Other"}}
	got := renderString(t, PostPage(testConfig(), post, related))
	assert.Contains(t, got, "<title>Hello | CoolBlog</title>")
	assert.Contains(t, got, "March 5, 2024")
	assert.Contains(t, got, "3 min read")
	assert.Contains(t, got, `>Intro</h2>`)
	assert.Contains(t, got, `>one</li>`)
	assert.Contains(t, got, `<a href="/post/other/" hx-get="/post/other/?partial=post" hx-target="#post" hx-push-url="/post/other/"`)
	assert.Contains(t, got, `<p class="text-white/70 mt-6">&copy; Ada</p>`)
	assert.Contains(t, got, `<link rel="canonical" href="https://example.com/post/hello/">`)
}

func TestStatusPages(t *testing.T) {
	assert.Contains(t, renderString(t, NotFound(testConfig())), "Post Not Found")
	assert.Contains(t, renderString(t, ServerError(testConfig())), "Error Loading Post")
}

func TestNewProvidesEveryView(t *testing.T) {
	v := New(testConfig())
	post := glassblog.Post{Slug: "x", Title: "X"}
	for name, c := range map[string]templ.Component{
		"Home":        v.Home(nil, "", nil),
		"HomePartial": v.HomePartial(nil, "", nil),
		"Post":        v.Post(post, nil),
		"PostPartial": v.PostPartial(post),
		"NotFound":    v.NotFound(),
		"ServerError": v.ServerError(),
	} {
		assert.NotEmpty(t, renderString(t, c), name)
	}
}

type staticSource []glassblog.Post

func (s staticSource) Load(context.Context) ([]glassblog.Post, error) {
	return s, nil
}

func TestAppMarksActiveTagCaseInsensitively(t *testing.T) {
	cfg := testConfig()
	src := staticSource{
		{Slug: "hooks", Title: "Hooks", Date: "2024-02-01", Tags: []string{"React"}},
		{Slug: "chan", Title: "Channels", Date: "2024-01-01", Tags: []string{"Go"}},
	}
	a := glassblog.New(cfg, src, New(cfg), glassblog.WithLogger(glassblog.NewLogger(io.Discard, 0)))
	require.NoError(t, a.Setup(context.Background()))
	t.Cleanup(func() { a.Close() })

	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?tag=React", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `hx-push-url="/?tag=react" class="`+TagFilterClass(true)+`">react</a>`)
	assert.Contains(t, body, `class="`+TagFilterClass(false)+`">all</a>`)
	assert.Contains(t, body, "Hooks")
	assert.NotContains(t, body, "Channels")

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, TagPartialURL("Go"), nil)
	req.Header.Set("HX-Request", "true")
	a.Echo.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, strings.HasPrefix(rec.Body.String(), "<!doctype html>"))
	assert.Contains(t, rec.Body.String(), "Channels")
}
