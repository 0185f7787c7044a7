package insight

import (
	"context"
	"encoding/json"
	"net/http"
)

const sampleProductLimit = 5

type productFeed struct {
	Products []ProductSummary `json:"products"`
}

// ExtractProducts pulls the store's machine-readable product feed at
// {store}/products.json. Any failure mode (fetch error, non-200 status,
// malformed JSON) degrades to an empty catalog; the feed is never a hard
// dependency.
func ExtractProducts(ctx context.Context, fetcher Fetcher, storeURL string) []ProductSummary {
	resp, err := fetcher.Fetch(ctx, storeURL+"/products.json")
	if err != nil || resp.StatusCode != http.StatusOK {
		return nil
	}
	var feed productFeed
	if err := json.Unmarshal(resp.Body, &feed); err != nil {
		return nil
	}
	return feed.Products
}

// SampleTitles projects the first few product titles in feed order. A
// product without a title keeps its slot as a nil entry rather than being
// dropped.
func SampleTitles(products []ProductSummary) []*string {
	n := len(products)
	if n > sampleProductLimit {
		n = sampleProductLimit
	}
	titles := make([]*string, 0, n)
	for _, p := range products[:n] {
		titles = append(titles, p.Title)
	}
	return titles
}
