package glassblog

import (
	"encoding/xml"
	"net/url"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// buildSitemap lists the home page, every tag listing and every post.
// Listings take the date of their newest dated post.
func (a *App) buildSitemap(posts []Post, tags []string) sitemapURLSet {
	base := a.Config.URL
	newest := make(map[string]string, len(tags)+1)
	var postURLs []sitemapURL
	for _, p := range posts {
		lastMod := ""
		if t, ok := p.Published(); ok {
			lastMod = t.Format("2006-01-02")
			if newest[""] < lastMod {
				newest[""] = lastMod
			}
			for _, tag := range p.Tags {
				if k := normalizeTag(tag); newest[k] < lastMod {
					newest[k] = lastMod
				}
			}
		}
		postURLs = append(postURLs, sitemapURL{
			Loc:     BuildURL(base, "post", p.Slug),
			LastMod: lastMod,
		})
	}

	urls := []sitemapURL{{Loc: BuildURL(base), LastMod: newest[""]}}
	for _, tag := range tags {
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base) + "/?tag=" + url.QueryEscape(tag),
			LastMod: newest[tag],
		})
	}
	return sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  append(urls, postURLs...),
	}
}
