package insight

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BatchRunner applies the Assembler to a list of competitor URLs. Each
// competitor is evaluated in isolation: one bad URL produces an error slot
// and the batch carries on.
type BatchRunner struct {
	assembler   *Assembler
	concurrency int
	logger      *zap.Logger
}

// NewBatchRunner constructs a BatchRunner. Concurrency bounds how many
// competitors are scraped at once; values below one fall back to serial
// processing.
func NewBatchRunner(assembler *Assembler, concurrency int, logger *zap.Logger) *BatchRunner {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchRunner{assembler: assembler, concurrency: concurrency, logger: logger}
}

// Run scrapes every competitor URL and returns one slot per input URL, in
// input order. A failed competitor contributes an error slot; the batch
// itself never fails.
func (b *BatchRunner) Run(ctx context.Context, brandURL string, competitorURLs []string) CompetitorBatchResult {
	results := make([]CompetitorResult, len(competitorURLs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i, compURL := range competitorURLs {
		g.Go(func() error {
			record, err := b.assembler.Scrape(gctx, compURL)
			if err != nil {
				b.logger.Warn("competitor scrape failed",
					zap.String("brand_url", brandURL),
					zap.String("competitor_url", compURL),
					zap.Error(err),
				)
				results[i] = CompetitorResult{CompetitorURL: compURL, Error: err.Error()}
				return nil
			}
			results[i] = CompetitorResult{Record: record}
			return nil
		})
	}
	// Workers never return errors; Wait only orders the writes above.
	_ = g.Wait()

	return CompetitorBatchResult{BrandURL: brandURL, Competitors: results}
}
