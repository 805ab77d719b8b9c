// Package content inspects article HTML to fill in SmartFormat fields the publisher left out.
package content

import (
	"log/slog"
	"strings"

	"golang.org/x/net/html"

	"github.com/lepinkainen/smartformat/pkg/feed"
	"github.com/lepinkainen/smartformat/pkg/urlutils"
)

const (
	thumbnailTag = "media:thumbnail"
	bodyTag      = "content:encoded"
	linkTag      = "link"
)

// FirstImage returns the src of the first <img> in htmlContent that has one
func FirstImage(htmlContent string) (string, bool) {
	if strings.TrimSpace(htmlContent) == "" {
		return "", false
	}

	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", false
	}

	var find func(*html.Node) string
	find = func(n *html.Node) string {
		if n.Type == html.ElementNode && n.Data == "img" {
			for _, attr := range n.Attr {
				if attr.Key == "src" && strings.TrimSpace(attr.Val) != "" {
					return strings.TrimSpace(attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if src := find(c); src != "" {
				return src
			}
		}
		return ""
	}

	src := find(doc)
	return src, src != ""
}

// DeriveThumbnails appends a media:thumbnail to articles that have none, using the
// first image of content:encoded. Relative sources are resolved against the article link.
// Articles that already carry the tag, even as null, are left alone.
// Returns the number of articles changed.
func DeriveThumbnails(articles []feed.Article) int {
	changed := 0
	for i := range articles {
		if _, ok := articles[i].Get(thumbnailTag); ok {
			continue
		}

		src, ok := FirstImage(articles[i].Text(bodyTag))
		if !ok {
			continue
		}
		if !urlutils.IsValidURL(src) {
			resolved, err := urlutils.ResolveURL(articles[i].Text(linkTag), src)
			if err != nil || !urlutils.IsValidURL(resolved) {
				slog.Debug("Skipping relative image without a usable article link", "src", src)
				continue
			}
			src = resolved
		}

		articles[i].Set(thumbnailTag, feed.String(src))
		changed++
	}

	if changed > 0 {
		slog.Debug("Derived thumbnails from article content", "count", changed)
	}
	return changed
}
