package glassblog

import (
	"time"

	"github.com/eringen/glassblog/content"
)

// Post is the core content type read from the posts data file and rendered
// by templates. Posts are never modified after they are loaded.
type Post struct {
	Slug     string   `json:"slug"`
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Date     string   `json:"date"`
	ReadTime string   `json:"readTime"`
	Excerpt  string   `json:"excerpt"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
}

// Accepted layouts for Post.Date, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Link returns the site-relative URL of the post page.
func (p Post) Link() string {
	return "/post/" + PathEscape(p.Slug) + "/"
}

// Published parses Date. The bool is false when Date is not ISO formatted.
func (p Post) Published() (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, p.Date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DisplayDate formats Date as "January 2, 2006", falling back to the raw value.
func (p Post) DisplayDate() string {
	if t, ok := p.Published(); ok {
		return t.Format("January 2, 2006")
	}
	return p.Date
}

// Fragments renders the post body.
func (p Post) Fragments() []content.Fragment {
	return content.Render(p.Content)
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}
