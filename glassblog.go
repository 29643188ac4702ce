// Package glassblog is a small blog front-end built with Go, Echo, and templ.
// It reads posts from a JSON file, a JSON URL, or a directory of markdown
// files with front matter, renders a listing page and one page per post,
// and turns each post's lightweight markdown-like body into styled HTML
// fragments.
//
// Templates are supplied through the ViewFuncs struct; the views package
// ships the default set.
package glassblog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
)

// ViewFuncs holds the templ components the App calls when rendering pages.
type ViewFuncs struct {
	Home        func(posts []Post, activeTag string, tags []string) templ.Component
	HomePartial func(posts []Post, activeTag string, tags []string) templ.Component
	Post        func(post Post, related []Post) templ.Component
	PostPartial func(post Post) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

func (v ViewFuncs) validate() error {
	switch {
	case v.Home == nil:
		return errors.New("view Home is required")
	case v.HomePartial == nil:
		return errors.New("view HomePartial is required")
	case v.Post == nil:
		return errors.New("view Post is required")
	case v.PostPartial == nil:
		return errors.New("view PostPartial is required")
	case v.NotFound == nil:
		return errors.New("view NotFound is required")
	case v.ServerError == nil:
		return errors.New("view ServerError is required")
	}
	return nil
}

// App wires together the post source, cache, handlers, middleware, and
// templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Source PostSource
	Cache  *PostCache
	Views  ViewFuncs
	Logger *log.Logger

	customRoutes []func(*App)
	watcher      *FileWatcher
	limiter      *RequestLimiter

	setupOnce sync.Once
	setupErr  error
	ready     chan struct{}
}

// New creates an App. A nil source is resolved from cfg.DataSource.
func New(cfg SiteConfig, source PostSource, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Source: source,
		Views:  views,
		ready:  make(chan struct{}),
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}
	if a.Logger == nil {
		a.Logger = NewLogger(os.Stderr, a.Config.Level())
	}
	if a.Source == nil {
		a.Source = NewSource(a.Config.DataSource)
	}
	return a
}

// Ready is closed once every collaborator is wired and the first load of
// the posts data has been attempted.
func (a *App) Ready() <-chan struct{} {
	return a.ready
}

// Setup validates the views, builds the cache, and registers middleware and
// routes. It runs once; later calls return the first result.
func (a *App) Setup(ctx context.Context) error {
	a.setupOnce.Do(func() {
		a.setupErr = a.setup(ctx)
	})
	return a.setupErr
}

func (a *App) setup(ctx context.Context) error {
	if err := a.Views.validate(); err != nil {
		return fmt.Errorf("glassblog: %w", err)
	}

	a.Cache = NewPostCache(a.Source, a.Config.CacheTTL)
	if err := a.Cache.Warm(ctx); err != nil {
		// Serving continues; each request reports the failure itself.
		a.Logger.Error("initial load failed", "source", a.Config.DataSource, "err", err)
	} else {
		posts, _ := a.Cache.ListPosts(ctx, "")
		a.Logger.Info("posts loaded", "source", a.Config.DataSource, "count", len(posts))
	}

	if a.Config.Watch {
		a.startWatcher()
	}

	if a.Config.RateLimit > 0 {
		a.limiter = NewRequestLimiter(a.Config.RateLimit, time.Minute)
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}

	close(a.ready)
	return nil
}

// startWatcher invalidates the cache when local posts data changes. Remote
// sources are not watched.
func (a *App) startWatcher() {
	invalidate := func() {
		a.Logger.Info("posts data changed, invalidating cache", "source", a.Config.DataSource)
		a.Cache.Invalidate()
	}
	var (
		w   *FileWatcher
		err error
	)
	switch src := a.Source.(type) {
	case *FileSource:
		w, err = WatchFile(src.Path, a.Logger, invalidate)
	case *DirSource:
		w, err = WatchDir(src.Dir, ".md", a.Logger, invalidate)
	default:
		return
	}
	if err != nil {
		a.Logger.Warn("cannot watch posts data", "source", a.Config.DataSource, "err", err)
		return
	}
	a.watcher = w
}

// Start sets the App up and serves until ctx is cancelled, then shuts the
// server down gracefully.
func (a *App) Start(ctx context.Context) error {
	if err := a.Setup(ctx); err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() {
		a.Logger.Info("listening", "addr", a.Config.Addr, "url", a.Config.URL)
		errc <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	a.Logger.Info("shutting down")
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("glassblog: shutdown: %w", err)
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework stylesheet, then the user's static dir.
	e.GET("/public/glassblog.css", echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(embeddedFS())))))
	e.Static("/public", a.Config.StaticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/healthz", a.handleHealth)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/data/posts.json", a.handleData)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/post/:slug/", a.handlePost)
}

// Close releases the file watcher and rate limiter. Call this when the app
// is shutting down.
func (a *App) Close() error {
	if a.limiter != nil {
		a.limiter.Close()
	}
	if a.watcher != nil {
		return a.watcher.Close()
	}
	return nil
}
