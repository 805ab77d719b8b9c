// Package feed renders channel metadata and articles as a SmartFormat (RSS 2.0) document.
package feed

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
)

const (
	xmlDeclaration = `<?xml version="1.0" encoding="utf-8"?>`
	rssOpen        = `<rss version="2.0"`
)

// Writer holds the namespaces, channel metadata and articles of one feed.
// It is meant to be filled and rendered by a single goroutine.
type Writer struct {
	namespaces Namespaces
	channel    Channel
	articles   []Article
}

// New creates a Writer with the default SmartFormat namespaces and the given channel metadata
func New(channel Channel) *Writer {
	return &Writer{
		namespaces: DefaultNamespaces(),
		channel:    slices.Clone(channel),
	}
}

// Namespaces returns a copy of the namespace table
func (w *Writer) Namespaces() Namespaces {
	return slices.Clone(w.namespaces)
}

// Channel returns a copy of the channel metadata
func (w *Writer) Channel() Channel {
	return slices.Clone(w.channel)
}

// Articles returns a copy of the article list. The articles themselves are shared.
func (w *Writer) Articles() []Article {
	return slices.Clone(w.articles)
}

// SetNamespaces replaces the whole namespace table, defaults included
func (w *Writer) SetNamespaces(ns Namespaces) *Writer {
	w.namespaces = slices.Clone(ns)
	return w
}

// SetChannel replaces the channel metadata
func (w *Writer) SetChannel(c Channel) *Writer {
	w.channel = slices.Clone(c)
	return w
}

// SetArticles replaces the article list
func (w *Writer) SetArticles(articles []Article) *Writer {
	w.articles = slices.Clone(articles)
	return w
}

// AddNamespace declares prefix, overwriting the URI if the prefix already exists
func (w *Writer) AddNamespace(prefix, uri string) *Writer {
	w.namespaces.Set(prefix, uri)
	return w
}

// AppendArticle adds an article after the existing ones
func (w *Writer) AppendArticle(a Article) *Writer {
	w.articles = append(w.articles, a)
	return w
}

// Preamble renders the XML declaration and the rss root tag with its namespace declarations
func (w *Writer) Preamble() string {
	var b strings.Builder
	b.WriteString(xmlDeclaration + "\n")
	b.WriteString(rssOpen + "\n")
	for _, ns := range w.namespaces {
		fmt.Fprintf(&b, "     xmlns:%s=\"%s\"\n", ns.Prefix, ns.URI)
	}
	b.WriteString(">\n\n")
	return b.String()
}

// ChannelXML renders the opening channel tag and the channel metadata
func (w *Writer) ChannelXML() string {
	var b strings.Builder
	b.WriteString("  <channel>\n")
	for _, f := range w.channel {
		channelFormatter(f.Tag)(&b, channelIndent, f.Tag, f.Value)
	}
	return b.String()
}

// ItemsXML renders every article as an <item> block, in order
func (w *Writer) ItemsXML() string {
	var b strings.Builder
	for _, a := range w.articles {
		writeItem(&b, a)
	}
	return b.String()
}

// ItemXML renders a single article as an <item> block
func ItemXML(a Article) string {
	var b strings.Builder
	writeItem(&b, a)
	return b.String()
}

func writeItem(b *strings.Builder, a Article) {
	b.WriteString("    <item>\n")
	for _, f := range a {
		if f.IsNull() {
			continue
		}
		itemFormatter(f.Tag)(b, itemIndent, f.Tag, *f.Value)
	}
	b.WriteString("    </item>\n")
}

// Postamble renders the closing channel and rss tags
func (w *Writer) Postamble() string {
	return "  </channel>\n</rss>\n"
}

// XML renders the complete document
func (w *Writer) XML() string {
	return w.Preamble() + w.ChannelXML() + w.ItemsXML() + w.Postamble()
}

// WriteTo streams the complete document to out, one stage at a time
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	var total int64
	for _, stage := range []func() string{w.Preamble, w.ChannelXML, w.ItemsXML, w.Postamble} {
		n, err := io.WriteString(out, stage())
		total += int64(n)
		if err != nil {
			return total, fmt.Errorf("failed to write feed: %w", err)
		}
	}
	return total, nil
}

// WriteFile writes the complete document to path and returns the number of bytes written
func (w *Writer) WriteFile(path string) (int, error) {
	slog.Debug("Writing feed", "path", path, "items", len(w.articles))

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}

	n, err := file.WriteString(w.XML())
	if err != nil {
		_ = file.Close()
		return n, fmt.Errorf("failed to write feed to %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return n, fmt.Errorf("failed to close %s: %w", path, err)
	}

	slog.Info("RSS feed saved", "count", len(w.articles), "filename", path, "bytes", n)
	return n, nil
}
