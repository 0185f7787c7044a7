package insight

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeStoreURL standardizes a storefront base URL so derived fetch
// URLs (feed, policies, about) join cleanly. It requires a scheme and host
// and strips any trailing slash.
func NormalizeStoreURL(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", fmt.Errorf("store url is empty")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse store url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("store url %q must use http or https", rawURL)
	}
	if u.Host == "" {
		return "", fmt.Errorf("store url %q has no host", rawURL)
	}
	return strings.TrimRight(trimmed, "/"), nil
}

// ResolveRef resolves an anchor href against the store's base URL.
// Absolute hrefs pass through untouched; anything else is prefixed with
// the base.
func ResolveRef(baseURL, href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(href, "/")
}
