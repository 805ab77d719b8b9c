// Package urlutils provides URL helpers shared by validation and content inspection.
package urlutils

import "net/url"

// IsValidURL reports whether urlStr is an absolute URL with a host
func IsValidURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// ResolveURL resolves a relative URL against a base URL.
// Absolute URLs are returned unchanged.
func ResolveURL(baseURL, relativeURL string) (string, error) {
	rel, err := url.Parse(relativeURL)
	if err != nil {
		return "", err
	}
	if rel.IsAbs() {
		return relativeURL, nil
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(rel).String(), nil
}
