package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func storeFixture(fetcher *fakeFetcher, base string) {
	fetcher.respond(base+"/products.json", 200, `{"products":[{"title":"P"}]}`)
	fetcher.respond(base, 200, "<html><head><title>"+base+"</title></head><body></body></html>")
}

func TestBatchRunner_IsolatesPerURLFailure(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher()
	storeFixture(fetcher, "https://a.com")
	storeFixture(fetcher, "https://b.com")
	fetcher.fail("https://bad.com", errors.New("connection refused"))
	fetcher.fail("https://bad.com/products.json", errors.New("connection refused"))

	runner := NewBatchRunner(NewAssembler(fetcher, zap.NewNop()), 2, zap.NewNop())
	result := runner.Run(context.Background(), "https://brand.com",
		[]string{"https://a.com", "https://bad.com", "https://b.com"})

	require.Equal(t, "https://brand.com", result.BrandURL)
	require.Len(t, result.Competitors, 3)

	require.NotNil(t, result.Competitors[0].Record)
	require.Equal(t, "https://a.com", result.Competitors[0].Record.StoreURL)

	require.Nil(t, result.Competitors[1].Record)
	require.Equal(t, "https://bad.com", result.Competitors[1].CompetitorURL)
	require.NotEmpty(t, result.Competitors[1].Error)

	require.NotNil(t, result.Competitors[2].Record)
	require.Equal(t, "https://b.com", result.Competitors[2].Record.StoreURL)
}

func TestBatchRunner_PreservesInputOrder(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher()
	var urls []string
	for i := 0; i < 8; i++ {
		base := fmt.Sprintf("https://s%d.com", i)
		storeFixture(fetcher, base)
		urls = append(urls, base)
	}

	runner := NewBatchRunner(NewAssembler(fetcher, zap.NewNop()), 4, zap.NewNop())
	result := runner.Run(context.Background(), "https://brand.com", urls)

	require.Len(t, result.Competitors, len(urls))
	for i, slot := range result.Competitors {
		require.NotNil(t, slot.Record)
		require.Equal(t, urls[i], slot.Record.StoreURL)
	}
}

func TestBatchRunner_EmptyInput(t *testing.T) {
	t.Parallel()

	runner := NewBatchRunner(NewAssembler(newFakeFetcher(), zap.NewNop()), 2, zap.NewNop())
	result := runner.Run(context.Background(), "https://brand.com", nil)

	require.Equal(t, "https://brand.com", result.BrandURL)
	require.Empty(t, result.Competitors)
}

func TestCompetitorResult_MarshalShapes(t *testing.T) {
	t.Parallel()

	errSlot := CompetitorResult{CompetitorURL: "https://bad.com", Error: "boom"}
	data, err := json.Marshal(errSlot)
	require.NoError(t, err)
	require.JSONEq(t, `{"competitor_url":"https://bad.com","error":"boom"}`, string(data))

	okSlot := CompetitorResult{Record: &InsightRecord{StoreURL: "https://a.com"}}
	data, err = json.Marshal(okSlot)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, "https://a.com", decoded["store_url"])
	require.NotContains(t, decoded, "competitor_url")
	require.NotContains(t, decoded, "error")
}
