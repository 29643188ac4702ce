package views

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.960 generate

import (
	"github.com/a-h/templ"

	"github.com/eringen/glassblog"
)

// New returns the default page set for cfg.
func New(cfg glassblog.SiteConfig) glassblog.ViewFuncs {
	return glassblog.ViewFuncs{
		Home: func(posts []glassblog.Post, activeTag string, tags []string) templ.Component {
			return Home(cfg, posts, activeTag, tags)
		},
		HomePartial: func(posts []glassblog.Post, activeTag string, tags []string) templ.Component {
			return Listing(posts, activeTag, tags)
		},
		Post: func(post glassblog.Post, related []glassblog.Post) templ.Component {
			return PostPage(cfg, post, related)
		},
		PostPartial: Article,
		NotFound: func() templ.Component {
			return NotFound(cfg)
		},
		ServerError: func() templ.Component {
			return ServerError(cfg)
		},
	}
}

func homeMeta(cfg glassblog.SiteConfig) glassblog.PageMeta {
	return glassblog.PageMeta{
		Title:       cfg.Name,
		Description: cfg.Description,
		URL:         glassblog.BuildURL(cfg.URL),
		OGType:      "website",
	}
}

func postMeta(cfg glassblog.SiteConfig, post glassblog.Post) glassblog.PageMeta {
	return glassblog.PageMeta{
		Title:       post.Title,
		Description: post.Excerpt,
		URL:         glassblog.BuildURL(cfg.URL, "post", post.Slug),
		OGType:      "article",
	}
}
