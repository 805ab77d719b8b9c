package feed

import (
	"fmt"
	"time"

	"github.com/gorilla/feeds"
)

// pubDateLayouts are tried in order when reading an article's pubDate
var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// GorillaFeed converts the channel and articles to a generic feed for non-SmartFormat output.
// Only the tags common to RSS and Atom survive the conversion.
func (w *Writer) GorillaFeed(now time.Time) *feeds.Feed {
	title, _ := w.channel.Get("title")
	link, _ := w.channel.Get("link")
	description, _ := w.channel.Get("description")

	f := &feeds.Feed{
		Title:       title,
		Link:        &feeds.Link{Href: link},
		Description: description,
		Id:          link,
		Created:     now,
		Updated:     now,
	}
	if copyright, ok := w.channel.Get("copyright"); ok {
		f.Copyright = copyright
	}

	for _, a := range w.articles {
		item := &feeds.Item{
			Title:       a.Text("title"),
			Link:        &feeds.Link{Href: a.Text("link")},
			Description: a.Text("description"),
			Content:     a.Text("content:encoded"),
			Id:          a.Text("guid"),
			Created:     ParsePubDate(a.Text("pubDate")),
		}
		if creator := a.Text("dc:creator"); creator != "" {
			item.Author = &feeds.Author{Name: creator}
		}
		f.Items = append(f.Items, item)
	}

	return f
}

// Atom renders the feed as an Atom document
func (w *Writer) Atom(now time.Time) (string, error) {
	atom, err := w.GorillaFeed(now).ToAtom()
	if err != nil {
		return "", fmt.Errorf("failed to generate atom feed: %w", err)
	}
	return atom, nil
}

// ParsePubDate reads an RSS pubDate. Unparseable values give the zero time.
func ParsePubDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
