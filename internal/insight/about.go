package insight

import (
	"context"
	"net/http"
	"strings"
)

const aboutPreviewLimit = 400

// ExtractAbout finds the first anchor whose visible text mentions "about",
// resolves its href against the store's base URL, and fetches that page
// for a short text preview. Link discovery and content retrieval fail
// independently: a failed secondary fetch keeps the URL with a nil
// preview, and a page with no "about" anchor yields nil for both.
func ExtractAbout(ctx context.Context, fetcher Fetcher, storeURL string, anchors []Anchor) AboutInfo {
	for _, a := range anchors {
		if a.Text == "" || !strings.Contains(strings.ToLower(a.Text), "about") {
			continue
		}
		aboutURL := ResolveRef(storeURL, a.Href)
		return AboutInfo{
			URL:     &aboutURL,
			Preview: fetchAboutPreview(ctx, fetcher, aboutURL),
		}
	}
	return AboutInfo{}
}

func fetchAboutPreview(ctx context.Context, fetcher Fetcher, aboutURL string) *string {
	resp, err := fetcher.Fetch(ctx, aboutURL)
	if err != nil || resp.StatusCode != http.StatusOK {
		return nil
	}
	doc, err := ParseDocument(resp.Body)
	if err != nil {
		return nil
	}
	preview := doc.StrippedText()
	// The limit counts characters, not bytes; slicing bytes would split a
	// multi-byte rune at the boundary.
	if runes := []rune(preview); len(runes) > aboutPreviewLimit {
		preview = string(runes[:aboutPreviewLimit])
	}
	return &preview
}
