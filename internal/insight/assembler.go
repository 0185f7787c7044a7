package insight

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Assembler orchestrates the extractors against a single store URL and
// merges their outputs into one InsightRecord.
type Assembler struct {
	fetcher Fetcher
	logger  *zap.Logger
}

// NewAssembler constructs an Assembler.
func NewAssembler(fetcher Fetcher, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{fetcher: fetcher, logger: logger}
}

// Scrape produces one InsightRecord for the given store URL. The homepage
// fetch and parse are the only fatal steps; every other facet degrades to
// its empty value on failure. The returned record is complete on success
// and nil on failure, never partial.
func (a *Assembler) Scrape(ctx context.Context, rawURL string) (*InsightRecord, error) {
	storeURL, err := NormalizeStoreURL(rawURL)
	if err != nil {
		return nil, err
	}

	products := ExtractProducts(ctx, a.fetcher, storeURL)

	resp, err := a.fetcher.Fetch(ctx, storeURL)
	if err != nil {
		return nil, fmt.Errorf("fetch homepage %s: %w", storeURL, err)
	}
	doc, err := ParseDocument(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse homepage %s: %w", storeURL, err)
	}

	anchors := doc.Anchors()
	record := &InsightRecord{
		StoreURL:       storeURL,
		PageTitle:      doc.Title(),
		ProductsCount:  len(products),
		SampleProducts: SampleTitles(products),
		Policies:       ExtractPolicies(storeURL),
		FAQs:           ExtractFAQs(doc.LowerText()),
		Socials:        ExtractSocials(anchors),
		Contact:        ExtractContact(doc.RawHTML()),
		About:          ExtractAbout(ctx, a.fetcher, storeURL, anchors),
		ImportantLinks: ExtractImportantLinks(anchors),
	}

	a.logger.Debug("store scraped",
		zap.String("store_url", storeURL),
		zap.Int("products_count", record.ProductsCount),
		zap.Int("anchors", len(anchors)),
	)
	return record, nil
}
