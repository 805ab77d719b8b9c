package feed

import (
	"strings"
	"testing"
)

func TestItemFields_FlagsMatchOutput(t *testing.T) {
	tags := []string{"link", "guid", "dc:creator"}
	for tag := range itemFields {
		tags = append(tags, tag)
	}

	for _, tag := range tags {
		t.Run(tag, func(t *testing.T) {
			out := ItemXML(Article{{Tag: tag, Value: String("a<b")}})

			if IsSkippedTag(tag) {
				if strings.Contains(out, "<"+tag) {
					t.Errorf("skipped tag was written:\n%s", out)
				}
				return
			}
			if !strings.Contains(out, "<"+tag) {
				t.Fatalf("tag missing from output:\n%s", out)
			}

			gotCDATA := strings.Contains(out, "<![CDATA[")
			if gotCDATA != IsCDATATag(tag) {
				t.Errorf("IsCDATATag(%q) = %v, but CDATA in output = %v:\n%s", tag, IsCDATATag(tag), gotCDATA, out)
			}
			if !gotCDATA && strings.Contains(out, "a<b") {
				t.Errorf("non-CDATA value was not escaped:\n%s", out)
			}
		})
	}
}

func TestIsSkippedTag(t *testing.T) {
	for tag, want := range map[string]bool{
		"snf:video":         true,
		"snf:advertisement": true,
		"title":             false,
		"link":              false,
	} {
		if got := IsSkippedTag(tag); got != want {
			t.Errorf("IsSkippedTag(%q) = %v, want %v", tag, got, want)
		}
	}
}
