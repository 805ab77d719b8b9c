package feed

import "strings"

const (
	channelIndent = "    "
	itemIndent    = "      "
)

// fieldFormatter writes one tag line (indent included, trailing newline included) to b
type fieldFormatter func(b *strings.Builder, indent, tag, value string)

// channelFormatters holds the channel tags that do not render as plain escaped text
var channelFormatters = map[string]fieldFormatter{
	"snf:logo": logoField,
}

// itemField describes how an item tag renders when it is not plain escaped text
type itemField struct {
	format fieldFormatter
	cdata  bool // value is written raw inside a CDATA section
	skip   bool // accepted in documents but never written
}

// itemFields holds the item tags that do not render as plain escaped text.
// snf:video and snf:advertisement have no output format yet; they are dropped on purpose.
var itemFields = map[string]itemField{
	"title":             {format: cdataField, cdata: true},
	"description":       {format: cdataField, cdata: true},
	"content:encoded":   {format: cdataField, cdata: true},
	"media:thumbnail":   {format: thumbnailField},
	"snf:video":         {format: skipField, skip: true},
	"snf:advertisement": {format: skipField, skip: true},
	"snf:analytics":     {format: analyticsField, cdata: true},
}

func channelFormatter(tag string) fieldFormatter {
	if f, ok := channelFormatters[tag]; ok {
		return f
	}
	return textField
}

func itemFormatter(tag string) fieldFormatter {
	if f, ok := itemFields[tag]; ok {
		return f.format
	}
	return textField
}

// IsSkippedTag reports whether an item tag is accepted but never written
func IsSkippedTag(tag string) bool {
	return itemFields[tag].skip
}

// IsCDATATag reports whether an item tag is written verbatim inside a CDATA section
func IsCDATATag(tag string) bool {
	return itemFields[tag].cdata
}

// textField: <tag>escaped</tag>
func textField(b *strings.Builder, indent, tag, value string) {
	b.WriteString(indent)
	b.WriteString("<" + tag + ">")
	b.WriteString(Escape(value))
	b.WriteString("</" + tag + ">\n")
}

// logoField: <snf:logo><url>escaped</url></snf:logo>
func logoField(b *strings.Builder, indent, tag, value string) {
	b.WriteString(indent)
	b.WriteString("<" + tag + "><url>")
	b.WriteString(Escape(value))
	b.WriteString("</url></" + tag + ">\n")
}

// cdataField: <tag><![CDATA[raw]]></tag>
func cdataField(b *strings.Builder, indent, tag, value string) {
	b.WriteString(indent)
	b.WriteString("<" + tag + "><![CDATA[")
	b.WriteString(value)
	b.WriteString("]]></" + tag + ">\n")
}

// analyticsField wraps the raw tracking snippet in a CDATA section on lines of its own
func analyticsField(b *strings.Builder, indent, tag, value string) {
	b.WriteString(indent)
	b.WriteString("<" + tag + "><![CDATA[\n")
	b.WriteString(value)
	b.WriteString("\n]]></" + tag + ">\n")
}

// thumbnailField: <media:thumbnail url="escaped" />
func thumbnailField(b *strings.Builder, indent, tag, value string) {
	b.WriteString(indent)
	b.WriteString("<" + tag + ` url="`)
	b.WriteString(Escape(value))
	b.WriteString("\" />\n")
}

func skipField(*strings.Builder, string, string, string) {}
