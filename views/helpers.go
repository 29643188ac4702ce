package views

import (
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eringen/glassblog"
	"github.com/eringen/glassblog/content"
)

var lower = cases.Lower(language.Und)

// TagLabel formats a tag for display, e.g. "Go" -> "#go".
func TagLabel(tag string) string {
	return "#" + lower.String(tag)
}

// TagChipClass returns the classes of a tag chip. Small chips are used on
// listing cards.
func TagChipClass(tag string, small bool) string {
	size := "px-4 py-2 text-sm hover-scale"
	if small {
		size = "px-3 py-1 text-xs"
	}
	return size + " bg-gradient-to-r " + content.TagGradient(tag) + " text-white rounded-full font-medium"
}

// TagFilterClass returns classes for a tag filter pill, with active variant.
func TagFilterClass(active bool) string {
	base := "inline-flex items-center rounded-full glassmorphism-dark px-3 py-1 text-xs font-semibold uppercase tracking-wider text-white/80 hover:text-white transition"
	if active {
		base += " ring-2 ring-white text-white"
	}
	return base
}

// TagFilterURL returns the listing URL filtered by tag. Tags are matched
// case-insensitively, so the link always carries the lowercase form.
func TagFilterURL(tag string) string {
	if tag == "" {
		return "/"
	}
	return "/?tag=" + url.QueryEscape(lower.String(tag))
}

// TagPartialURL is TagFilterURL asking for the listing fragment only.
func TagPartialURL(tag string) string {
	if tag == "" {
		return "/?partial=home"
	}
	return TagFilterURL(tag) + "&partial=home"
}

// PostPartialURL returns the URL of the article fragment of post.
func PostPartialURL(post glassblog.Post) string {
	return post.Link() + "?partial=post"
}

// pageTitle suffixes the site name unless the page is the site itself.
func pageTitle(cfg glassblog.SiteConfig, meta glassblog.PageMeta) string {
	switch meta.Title {
	case "":
		return cfg.Name
	case cfg.Name:
		return meta.Title
	}
	return meta.Title + " | " + cfg.Name
}

// byline lists the non-empty author, date and read time of a post.
func byline(post glassblog.Post) []string {
	var items []string
	for _, item := range []string{post.Author, post.DisplayDate(), post.ReadTime} {
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// animationDelay staggers the zoom-in of listing cards.
func animationDelay(i int) templ.SafeCSS {
	return templ.SafeCSS("animation-delay: " + strconv.FormatFloat(float64(i)*0.1, 'f', 1, 64) + "s;")
}
