package feed

// Namespace is a single xmlns declaration on the rss root element
type Namespace struct {
	Prefix string
	URI    string
}

// Namespaces is an ordered prefix -> URI table. Declaration order follows insertion order.
type Namespaces []Namespace

// DefaultNamespaces returns the namespaces every SmartFormat feed declares
func DefaultNamespaces() Namespaces {
	return Namespaces{
		{Prefix: "content", URI: "http://purl.org/rss/1.0/modules/content/"},
		{Prefix: "dc", URI: "http://purl.org/dc/elements/1.1/"},
		{Prefix: "media", URI: "http://search.yahoo.com/mrss/"},
		{Prefix: "snf", URI: "http://www.smartnews.be/snf"},
	}
}

// Set inserts or overwrites a namespace. An existing prefix keeps its position.
func (ns *Namespaces) Set(prefix, uri string) {
	for i := range *ns {
		if (*ns)[i].Prefix == prefix {
			(*ns)[i].URI = uri
			return
		}
	}
	*ns = append(*ns, Namespace{Prefix: prefix, URI: uri})
}

// Lookup returns the URI bound to prefix
func (ns Namespaces) Lookup(prefix string) (string, bool) {
	for _, n := range ns {
		if n.Prefix == prefix {
			return n.URI, true
		}
	}
	return "", false
}

// ChannelField is one tag of the channel metadata block
type ChannelField struct {
	Tag   string
	Value string
}

// Channel is the ordered channel metadata, keyed by XML tag name (e.g. "title", "snf:logo")
type Channel []ChannelField

// Set inserts or overwrites a channel tag. An existing tag keeps its position.
func (c *Channel) Set(tag, value string) {
	for i := range *c {
		if (*c)[i].Tag == tag {
			(*c)[i].Value = value
			return
		}
	}
	*c = append(*c, ChannelField{Tag: tag, Value: value})
}

// Get returns the value of a channel tag
func (c Channel) Get(tag string) (string, bool) {
	for _, f := range c {
		if f.Tag == tag {
			return f.Value, true
		}
	}
	return "", false
}

// Field is one tag of an article. A nil Value is null and is left out of the output.
type Field struct {
	Tag   string
	Value *string
}

// IsNull reports whether the field is omitted on output
func (f Field) IsNull() bool {
	return f.Value == nil
}

// Article is an ordered tag -> value mapping rendered as one <item>
type Article []Field

// Set inserts or overwrites an article tag. An existing tag keeps its position.
func (a *Article) Set(tag string, value *string) {
	for i := range *a {
		if (*a)[i].Tag == tag {
			(*a)[i].Value = value
			return
		}
	}
	*a = append(*a, Field{Tag: tag, Value: value})
}

// Get returns the value of an article tag. The value is nil when the tag is absent or null.
func (a Article) Get(tag string) (*string, bool) {
	for _, f := range a {
		if f.Tag == tag {
			return f.Value, true
		}
	}
	return nil, false
}

// Text returns the value of an article tag, or "" when absent or null
func (a Article) Text(tag string) string {
	if v, _ := a.Get(tag); v != nil {
		return *v
	}
	return ""
}

// String returns a pointer to s, for building article values inline
func String(s string) *string {
	return &s
}
