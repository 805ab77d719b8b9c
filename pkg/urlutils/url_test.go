package urlutils

import "testing"

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.com/a", true},
		{"http://example.com", true},
		{"/relative/path", false},
		{"example.com", false},
		{"", false},
		{"://bad", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := IsValidURL(tt.in); got != tt.want {
				t.Errorf("IsValidURL(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		relative string
		want     string
		wantErr  bool
	}{
		{"absolute unchanged", "https://example.com/a/", "https://cdn.example.com/i.jpg", "https://cdn.example.com/i.jpg", false},
		{"root relative", "https://example.com/news/1", "/img/a.jpg", "https://example.com/img/a.jpg", false},
		{"path relative", "https://example.com/news/1", "a.jpg", "https://example.com/news/a.jpg", false},
		{"protocol relative", "https://example.com/", "//cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg", false},
		{"bad relative", "https://example.com/", "%zz", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveURL(tt.base, tt.relative)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ResolveURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
