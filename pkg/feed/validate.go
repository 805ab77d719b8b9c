package feed

import (
	"fmt"
	"strings"

	"github.com/lepinkainen/smartformat/pkg/urlutils"
)

// requiredChannelTags must be present for the feed to be accepted by SmartNews
var requiredChannelTags = []string{"title", "link", "description"}

// urlTags hold URLs that SmartNews fetches and must be absolute
var urlTags = map[string]bool{
	"link":            true,
	"snf:logo":        true,
	"media:thumbnail": true,
}

// Issue is a problem found in the feed contents. Issues never stop rendering.
type Issue struct {
	Where   string
	Message string
}

func (i Issue) String() string {
	return i.Where + ": " + i.Message
}

// Validate checks the channel and articles for content the publisher spec rejects
// or that would render as broken XML
func (w *Writer) Validate() []Issue {
	var issues []Issue

	for _, tag := range requiredChannelTags {
		if v, ok := w.channel.Get(tag); !ok || strings.TrimSpace(v) == "" {
			issues = append(issues, Issue{Where: "channel", Message: fmt.Sprintf("missing required tag <%s>", tag)})
		}
	}

	for _, f := range w.channel {
		issues = append(issues, w.checkPrefix("channel", f.Tag)...)
		issues = append(issues, checkURL("channel", f.Tag, f.Value)...)
	}

	for i, a := range w.articles {
		where := fmt.Sprintf("item %d", i)

		for _, tag := range []string{"title", "link"} {
			if strings.TrimSpace(a.Text(tag)) == "" {
				issues = append(issues, Issue{Where: where, Message: fmt.Sprintf("missing <%s>", tag)})
			}
		}

		for _, f := range a {
			issues = append(issues, w.checkPrefix(where, f.Tag)...)
			if f.IsNull() {
				continue
			}
			issues = append(issues, checkURL(where, f.Tag, *f.Value)...)
			if IsSkippedTag(f.Tag) {
				issues = append(issues, Issue{Where: where, Message: fmt.Sprintf("<%s> is not supported and will be dropped", f.Tag)})
			}
			if IsCDATATag(f.Tag) && strings.Contains(*f.Value, "]]>") {
				issues = append(issues, Issue{Where: where, Message: fmt.Sprintf("<%s> contains \"]]>\" which ends the CDATA section early", f.Tag)})
			}
		}
	}

	return issues
}

// checkPrefix reports tags whose namespace prefix is not declared
func (w *Writer) checkPrefix(where, tag string) []Issue {
	prefix, _, found := strings.Cut(tag, ":")
	if !found {
		return nil
	}
	if _, ok := w.namespaces.Lookup(prefix); ok {
		return nil
	}
	return []Issue{{Where: where, Message: fmt.Sprintf("undeclared namespace prefix %q in <%s>", prefix, tag)}}
}

func checkURL(where, tag, value string) []Issue {
	if !urlTags[tag] || strings.TrimSpace(value) == "" || urlutils.IsValidURL(value) {
		return nil
	}
	return []Issue{{Where: where, Message: fmt.Sprintf("<%s> is not an absolute URL: %q", tag, value)}}
}
