package feed

import (
	"strings"
	"testing"
	"time"
)

func TestWriter_Atom(t *testing.T) {
	w := New(Channel{
		{Tag: "title", Value: "Example News"},
		{Tag: "link", Value: "https://example.com/"},
		{Tag: "description", Value: "News"},
	}).AppendArticle(Article{
		{Tag: "title", Value: String("Hello")},
		{Tag: "link", Value: String("https://example.com/1")},
		{Tag: "guid", Value: String("urn:example:1")},
		{Tag: "pubDate", Value: String("Mon, 02 Jan 2006 15:04:05 +0000")},
		{Tag: "dc:creator", Value: String("Alice")},
		{Tag: "media:thumbnail", Value: String("https://example.com/t.jpg")},
	})

	out, err := w.Atom(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Atom() error = %v", err)
	}

	expected := []string{
		`<feed xmlns="http://www.w3.org/2005/Atom">`,
		"<title>Example News</title>",
		"<updated>2024-01-01T00:00:00Z</updated>",
		"<id>urn:example:1</id>",
		"<name>Alice</name>",
		`href="https://example.com/1"`,
	}
	for _, e := range expected {
		if !strings.Contains(out, e) {
			t.Errorf("Atom() output missing %q:\n%s", e, out)
		}
	}
	if strings.Contains(out, "media:thumbnail") {
		t.Error("Atom() should not carry SmartFormat-only tags")
	}
}

func TestParsePubDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"RFC1123Z", "Mon, 02 Jan 2006 15:04:05 +0000", time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)},
		{"RFC3339", "2006-01-02T15:04:05Z", time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)},
		{"plain", "2006-01-02 15:04:05", time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)},
		{"empty", "", time.Time{}},
		{"garbage", "yesterday", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePubDate(tt.in); !got.Equal(tt.want) {
				t.Errorf("ParsePubDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
