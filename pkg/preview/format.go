// Package preview provides interactive article preview functionality using Bubble Tea TUI.
package preview

import (
	"fmt"
	"strings"
	"time"

	"github.com/lepinkainen/smartformat/pkg/feed"
)

const (
	maxTitleLength   = 70
	maxContentLength = 1000
	separator        = "═══════════════════════════════════════════════════════════════════════\n"
)

// wrapText wraps text to the specified width, breaking at word boundaries when possible
func wrapText(text string, width int) string {
	if width <= 0 {
		width = 70
	}

	var result strings.Builder
	var line strings.Builder
	lineLen := 0

	for _, word := range strings.Fields(text) {
		if lineLen > 0 && lineLen+1+len(word) > width {
			result.WriteString(line.String())
			result.WriteString("\n")
			line.Reset()
			lineLen = 0
		}
		if lineLen > 0 {
			line.WriteString(" ")
			lineLen++
		}
		line.WriteString(word)
		lineLen += len(word)
	}
	result.WriteString(line.String())

	return result.String()
}

// FormatCompactListItem formats a single article in compact list format
// Example: " 1. 2024-01-02T15:04:05Z  Article Title"
func FormatCompactListItem(index int, a feed.Article) string {
	title := a.Text("title")
	if title == "" {
		title = "(untitled)"
	}
	runes := []rune(title)
	if len(runes) > maxTitleLength {
		title = string(runes[:maxTitleLength-3]) + "..."
	}

	date := "no date"
	if t := feed.ParsePubDate(a.Text("pubDate")); !t.IsZero() {
		date = t.UTC().Format(time.RFC3339)
	}

	return fmt.Sprintf("%2d. %-20s  %s", index+1, date, title)
}

// FormatDetailedItem lists every field of an article in document order
func FormatDetailedItem(a feed.Article) string {
	var b strings.Builder

	b.WriteString(separator)
	for _, f := range a {
		switch {
		case f.IsNull():
			fmt.Fprintf(&b, "%s: (null)\n", f.Tag)
		case f.Tag == "content:encoded":
			continue
		case feed.IsSkippedTag(f.Tag):
			fmt.Fprintf(&b, "%s: %s (not rendered)\n", f.Tag, *f.Value)
		default:
			fmt.Fprintf(&b, "%s: %s\n", f.Tag, *f.Value)
		}
	}

	if t := feed.ParsePubDate(a.Text("pubDate")); !t.IsZero() {
		fmt.Fprintf(&b, "Posted: %s\n", formatTimeAgo(t))
	}

	if content := a.Text("content:encoded"); content != "" {
		if len(content) > maxContentLength {
			content = content[:maxContentLength] + "..."
		}
		fmt.Fprintf(&b, "\nContent:\n%s\n", wrapText(content, 70))
	}

	b.WriteString(separator)
	return b.String()
}

// FormatXMLItem renders the article's <item> block exactly as the feed writer emits it
func FormatXMLItem(a feed.Article) string {
	return wrapXMLContent(strings.TrimRight(feed.ItemXML(a), "\n"), 80)
}

// wrapXMLContent breaks long lines for display without touching short ones
func wrapXMLContent(xml string, width int) string {
	var result strings.Builder

	for _, line := range strings.Split(xml, "\n") {
		remaining := line
		for len(remaining) > width {
			breakPoint := width
			for i := width; i > width-20 && i > 0; i-- {
				if remaining[i] == ' ' || remaining[i] == '>' {
					breakPoint = i + 1
					break
				}
			}
			result.WriteString(remaining[:breakPoint])
			result.WriteString("\n")
			remaining = remaining[breakPoint:]
		}
		if remaining != "" {
			result.WriteString(remaining)
			result.WriteString("\n")
		}
	}

	return result.String()
}

// formatTimeAgo formats a time.Time as a human-readable "X ago" string
func formatTimeAgo(t time.Time) string {
	return formatTimeAgoFrom(t, time.Now())
}

func formatTimeAgoFrom(t, now time.Time) string {
	duration := now.Sub(t)

	plural := func(n int, unit string) string {
		if n == 1 {
			return "1 " + unit + " ago"
		}
		return fmt.Sprintf("%d %ss ago", n, unit)
	}

	switch {
	case duration < 0:
		return t.Format("2006-01-02")
	case duration < time.Minute:
		return "just now"
	case duration < time.Hour:
		return plural(int(duration.Minutes()), "minute")
	case duration < 24*time.Hour:
		return plural(int(duration.Hours()), "hour")
	case duration < 7*24*time.Hour:
		return plural(int(duration.Hours()/24), "day")
	default:
		return t.Format("2006-01-02")
	}
}
