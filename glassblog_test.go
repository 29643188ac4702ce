package glassblog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textComponent(format string, args ...any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, format, args...)
		return err
	})
}

// stubViews renders short plain-text markers so handler tests can assert
// which view ran and with what data.
func stubViews() ViewFuncs {
	return ViewFuncs{
		Home: func(posts []Post, activeTag string, tags []string) templ.Component {
			return textComponent("home tag=%s posts=%s tags=%s", activeTag, strings.Join(slugs(posts), ","), strings.Join(tags, ","))
		},
		HomePartial: func(posts []Post, activeTag string, tags []string) templ.Component {
			return textComponent("partial posts=%s", strings.Join(slugs(posts), ","))
		},
		Post: func(post Post, related []Post) templ.Component {
			return textComponent("post %s related=%s", post.Slug, strings.Join(slugs(related), ","))
		},
		PostPartial: func(post Post) templ.Component {
			return textComponent("article %s", post.Slug)
		},
		NotFound:    func() templ.Component { return textComponent("not found") },
		ServerError: func() templ.Component { return textComponent("error loading") },
	}
}

func newTestApp(t *testing.T, src PostSource) *App {
	t.Helper()
	a := New(SiteConfig{URL: "https://example.com/", Name: "CoolBlog"}, src, stubViews(),
		WithLogger(NewLogger(io.Discard, 0)))
	require.NoError(t, a.Setup(context.Background()))
	t.Cleanup(func() { a.Close() })
	return a
}

func get(t *testing.T, a *App, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func TestSetupRequiresViews(t *testing.T) {
	views := stubViews()
	views.NotFound = nil
	a := New(SiteConfig{}, &stubSource{}, views, WithLogger(NewLogger(io.Discard, 0)))
	err := a.Setup(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NotFound")

	select {
	case <-a.Ready():
		t.Fatal("app should not be ready after failed setup")
	default:
	}
}

func TestReadyAfterSetup(t *testing.T) {
	a := newTestApp(t, &stubSource{posts: testPosts()})
	select {
	case <-a.Ready():
	default:
		t.Fatal("app should be ready")
	}
	rec := get(t, a, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestHomeListsNewestFirst(t *testing.T) {
	a := newTestApp(t, &stubSource{posts: testPosts()})
	rec := get(t, a, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "home tag= posts=newer,older,undated tags=go,react,web", rec.Body.String())
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentSecurityPolicy), "script-src 'self' https://cdn.tailwindcss.com https://unpkg.com;")
}

func TestHomeTagFilterAndPartial(t *testing.T) {
	a := newTestApp(t, &stubSource{posts: testPosts()})

	rec := get(t, a, "/?tag=react")
	assert.Equal(t, "home tag=react posts=newer tags=go,react,web", rec.Body.String())

	rec = get(t, a, "/?tag=%20React%20")
	assert.Equal(t, "home tag=react posts=newer tags=go,react,web", rec.Body.String())

	rec = get(t, a, "/?partial=home&tag=go", "HX-Request", "true")
	assert.Equal(t, "partial posts=older,undated", rec.Body.String())
	assert.Contains(t, rec.Header().Values(echo.HeaderVary), "HX-Request")

	rec = get(t, a, "/?partial=home")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "home "), "partial needs HX-Request")
}

func TestPostPage(t *testing.T) {
	a := newTestApp(t, &stubSource{posts: testPosts()})

	rec := get(t, a, "/post/older/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "post older related=undated", rec.Body.String())

	rec = get(t, a, "/post/older/?partial=post", "HX-Request", "true")
	assert.Equal(t, "article older", rec.Body.String())
}

func TestPostTrailingSlashRedirect(t *testing.T) {
	a := newTestApp(t, &stubSource{posts: testPosts()})
	rec := get(t, a, "/post/older")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/post/older/", rec.Header().Get("Location"))
}

func TestPostNotFound(t *testing.T) {
	a := newTestApp(t, &stubSource{posts: testPosts()})
	rec := get(t, a, "/post/missing/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", rec.Body.String())
}

func TestUnknownRouteNotFound(t *testing.T) {
	a := newTestApp(t, &stubSource{posts: testPosts()})
	rec := get(t, a, "/nowhere/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", rec.Body.String())
}

func TestLoadFailureIsDistinctFromNotFound(t *testing.T) {
	a := newTestApp(t, &stubSource{err: fmt.Errorf("%w: boom", ErrLoadFailed)})

	for _, target := range []string{"/", "/post/older/", "/data/posts.json", "/feed.xml"} {
		rec := get(t, a, target)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
		assert.Equal(t, "error loading", rec.Body.String(), target)
	}
}

func TestBlogRedirect(t *testing.T) {
	a := newTestApp(t, &stubSource{posts: testPosts()})
	rec := get(t, a, "/blog")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestDataEndpoint(t *testing.T) {
	a := newTestApp(t, &stubSource{posts: testPosts()})
	rec := get(t, a, "/data/posts.json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=60", rec.Header().Get("Cache-Control"))

	var posts []Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	assert.Equal(t, []string{"newer", "older", "undated"}, slugs(posts))
}

func TestFeedAndSitemap(t *testing.T) {
	a := newTestApp(t, &stubSource{posts: testPosts()})

	rec := get(t, a, "/feed.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>CoolBlog</title>")
	assert.Contains(t, body, "<link>https://example.com/post/newer/</link>")
	assert.Contains(t, body, "<category>React</category>")
	assert.Contains(t, body, "<pubDate>Fri, 01 Mar 2024 10:00:00 +0000</pubDate>")
	assert.Contains(t, body, "<lastBuildDate>Fri, 01 Mar 2024 10:00:00 +0000</lastBuildDate>")
	assert.Contains(t, body, `<guid isPermaLink="true">https://example.com/post/older/</guid>`)
	assert.Contains(t, body, "<dc:creator>Ada</dc:creator>")

	rec = get(t, a, "/feed.xml?tag=GO")
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Contains(t, body, "<title>CoolBlog - #go</title>")
	assert.Contains(t, body, `href="https://example.com/feed.xml?tag=go"`)
	assert.Contains(t, body, "/post/older/")
	assert.NotContains(t, body, "/post/newer/")

	rec = get(t, a, "/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Contains(t, body, "<loc>https://example.com</loc><lastmod>2024-03-01</lastmod>")
	assert.Contains(t, body, "<loc>https://example.com/?tag=go</loc><lastmod>2024-01-15</lastmod>")
	assert.Contains(t, body, "<loc>https://example.com/?tag=react</loc><lastmod>2024-03-01</lastmod>")
	assert.Contains(t, body, "<loc>https://example.com/post/older/</loc><lastmod>2024-01-15</lastmod>")
}

func TestRobots(t *testing.T) {
	a := newTestApp(t, &stubSource{posts: testPosts()})
	rec := get(t, a, "/robots.txt")
	assert.Contains(t, rec.Body.String(), "Sitemap: https://example.com/sitemap.xml")
}

func TestEmbeddedStylesheet(t *testing.T) {
	a := newTestApp(t, &stubSource{posts: testPosts()})
	rec := get(t, a, "/public/glassblog.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".glassmorphism")
	assert.Equal(t, "public, max-age=31536000, immutable", rec.Header().Get("Cache-Control"))
}

func TestCustomRoutes(t *testing.T) {
	a := New(SiteConfig{}, &stubSource{}, stubViews(),
		WithLogger(NewLogger(io.Discard, 0)),
		WithCustomRoutes(func(a *App) {
			a.Echo.GET("/about/", func(c echo.Context) error { return c.String(http.StatusOK, "about") })
		}))
	require.NoError(t, a.Setup(context.Background()))
	rec := get(t, a, "/about/")
	assert.Equal(t, "about", rec.Body.String())
}

func TestStartServesUntilCancelled(t *testing.T) {
	a := New(SiteConfig{Addr: "127.0.0.1:0", Name: "CoolBlog"}, &stubSource{posts: testPosts()}, stubViews(),
		WithLogger(NewLogger(io.Discard, 0)))
	t.Cleanup(func() { a.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- a.Start(ctx) }()

	require.Eventually(t, func() bool {
		return a.Echo.ListenerAddr() != nil
	}, 3*time.Second, 10*time.Millisecond)
	addr := a.Echo.ListenerAddr().(*net.TCPAddr)

	res, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/healthz", addr.Port))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after the context was cancelled")
	}

	_, err = http.Get(fmt.Sprintf("http://127.0.0.1:%d/healthz", addr.Port))
	assert.Error(t, err)
}

func TestStartReportsListenError(t *testing.T) {
	a := New(SiteConfig{Addr: "127.0.0.1:99999"}, &stubSource{posts: testPosts()}, stubViews(),
		WithLogger(NewLogger(io.Discard, 0)))
	t.Cleanup(func() { a.Close() })

	assert.Error(t, a.Start(context.Background()))
}
