package content

import (
	"testing"

	"github.com/lepinkainen/smartformat/pkg/feed"
)

func TestFirstImage(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantHit bool
	}{
		{
			name:    "single image",
			input:   `<p>Hello</p><img src="https://ex.com/a.jpg" alt="a">`,
			want:    "https://ex.com/a.jpg",
			wantHit: true,
		},
		{
			name:    "first of several, nested",
			input:   `<div><figure><img src="https://ex.com/1.jpg"></figure></div><img src="https://ex.com/2.jpg">`,
			want:    "https://ex.com/1.jpg",
			wantHit: true,
		},
		{
			name:    "image without src is skipped",
			input:   `<img data-src="lazy.jpg"><img src=" https://ex.com/b.png ">`,
			want:    "https://ex.com/b.png",
			wantHit: true,
		},
		{
			name:    "entities in src are decoded",
			input:   `<img src="https://ex.com/c.jpg?w=1&amp;h=2">`,
			want:    "https://ex.com/c.jpg?w=1&h=2",
			wantHit: true,
		},
		{
			name:  "no image",
			input: `<p>Text only</p>`,
		},
		{
			name:  "empty content",
			input: "  ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FirstImage(tt.input)
			if got != tt.want || ok != tt.wantHit {
				t.Errorf("FirstImage() = %q, %v, want %q, %v", got, ok, tt.want, tt.wantHit)
			}
		})
	}
}

func TestDeriveThumbnails(t *testing.T) {
	articles := []feed.Article{
		{
			{Tag: "title", Value: feed.String("derive")},
			{Tag: "content:encoded", Value: feed.String(`<img src="https://ex.com/derived.jpg">`)},
		},
		{
			{Tag: "title", Value: feed.String("keep")},
			{Tag: "media:thumbnail", Value: feed.String("https://ex.com/own.jpg")},
			{Tag: "content:encoded", Value: feed.String(`<img src="https://ex.com/other.jpg">`)},
		},
		{
			{Tag: "title", Value: feed.String("explicit null")},
			{Tag: "media:thumbnail", Value: nil},
			{Tag: "content:encoded", Value: feed.String(`<img src="https://ex.com/other.jpg">`)},
		},
		{
			{Tag: "title", Value: feed.String("no body")},
		},
		{
			{Tag: "link", Value: feed.String("https://ex.com/news/5")},
			{Tag: "content:encoded", Value: feed.String(`<img src="/img/5.jpg">`)},
		},
		{
			{Tag: "title", Value: feed.String("relative without link")},
			{Tag: "content:encoded", Value: feed.String(`<img src="img/6.jpg">`)},
		},
	}

	if got := DeriveThumbnails(articles); got != 2 {
		t.Fatalf("DeriveThumbnails() = %d, want 2", got)
	}

	last := articles[0][len(articles[0])-1]
	if last.Tag != "media:thumbnail" || *last.Value != "https://ex.com/derived.jpg" {
		t.Errorf("derived field = %+v, want appended thumbnail", last)
	}
	if got := articles[1].Text("media:thumbnail"); got != "https://ex.com/own.jpg" {
		t.Errorf("existing thumbnail overwritten with %q", got)
	}
	if v, _ := articles[2].Get("media:thumbnail"); v != nil {
		t.Errorf("null thumbnail replaced with %q", *v)
	}
	if _, ok := articles[3].Get("media:thumbnail"); ok {
		t.Error("article without content should not get a thumbnail")
	}
	if got := articles[4].Text("media:thumbnail"); got != "https://ex.com/img/5.jpg" {
		t.Errorf("relative thumbnail = %q, want resolved against link", got)
	}
	if _, ok := articles[5].Get("media:thumbnail"); ok {
		t.Error("relative image without a link should be skipped")
	}
}
