package feed

import "strings"

// xmlEscaper mirrors htmlspecialchars with ENT_QUOTES: existing entities are encoded again.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// Escape makes s safe for inclusion as XML character data or a quoted attribute value.
// Invalid UTF-8 sequences become U+FFFD so the output stays well-formed.
func Escape(s string) string {
	return xmlEscaper.Replace(strings.ToValidUTF8(s, "\uFFFD"))
}
