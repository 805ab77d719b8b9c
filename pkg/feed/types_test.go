package feed

import "testing"

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"ampersand", "A&B", "A&amp;B"},
		{"angle brackets", "<b>", "&lt;b&gt;"},
		{"quotes", `say "hi" it's`, "say &quot;hi&quot; it&#039;s"},
		{"double encodes entities", "&amp;", "&amp;amp;"},
		{"empty", "", ""},
		{"non-ascii untouched", "日本語 ©", "日本語 ©"},
		{"invalid utf-8 replaced", "caf\xe9 & co", "caf\uFFFD &amp; co"},
		{"truncated sequence replaced", "日本\xe8\xaa", "日本\uFFFD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Escape(tt.in); got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNamespaces_SetKeepsPosition(t *testing.T) {
	ns := DefaultNamespaces()
	ns.Set("dc", "urn:dc")
	ns.Set("atom", "http://www.w3.org/2005/Atom")

	wantOrder := []string{"content", "dc", "media", "snf", "atom"}
	if len(ns) != len(wantOrder) {
		t.Fatalf("len = %d, want %d", len(ns), len(wantOrder))
	}
	for i, prefix := range wantOrder {
		if ns[i].Prefix != prefix {
			t.Errorf("ns[%d] = %q, want %q", i, ns[i].Prefix, prefix)
		}
	}

	if uri, ok := ns.Lookup("dc"); !ok || uri != "urn:dc" {
		t.Errorf("Lookup(dc) = %q, %v", uri, ok)
	}
	if _, ok := ns.Lookup("missing"); ok {
		t.Error("Lookup(missing) should fail")
	}
}

func TestChannel_SetGet(t *testing.T) {
	var c Channel
	c.Set("title", "A")
	c.Set("link", "http://ex.com")
	c.Set("title", "B")

	if len(c) != 2 || c[0].Tag != "title" || c[0].Value != "B" {
		t.Errorf("Channel = %+v, want title overwritten in place", c)
	}
	if v, ok := c.Get("link"); !ok || v != "http://ex.com" {
		t.Errorf("Get(link) = %q, %v", v, ok)
	}
	if _, ok := c.Get("description"); ok {
		t.Error("Get(description) should fail")
	}
}

func TestArticle_GetText(t *testing.T) {
	a := Article{
		{Tag: "title", Value: String("T")},
		{Tag: "dc:creator", Value: nil},
	}

	if v, ok := a.Get("title"); !ok || *v != "T" {
		t.Errorf("Get(title) = %v, %v", v, ok)
	}
	if v, ok := a.Get("dc:creator"); !ok || v != nil {
		t.Errorf("Get(dc:creator) = %v, %v, want nil, true", v, ok)
	}
	if _, ok := a.Get("link"); ok {
		t.Error("Get(link) should fail")
	}
	if got := a.Text("dc:creator"); got != "" {
		t.Errorf("Text(null) = %q", got)
	}
	if !a[1].IsNull() || a[0].IsNull() {
		t.Error("IsNull() mismatch")
	}
}
