package insight

import (
	"context"
	"fmt"
	"sync"
)

// fakeFetcher serves canned responses keyed by URL. URLs without an entry
// fail with a connection-style error.
type fakeFetcher struct {
	mu        sync.Mutex
	responses map[string]FetchResponse
	failures  map[string]error
	calls     []string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		responses: make(map[string]FetchResponse),
		failures:  make(map[string]error),
	}
}

func (f *fakeFetcher) respond(url string, status int, body string) {
	f.responses[url] = FetchResponse{StatusCode: status, Body: []byte(body)}
}

func (f *fakeFetcher) fail(url string, err error) {
	f.failures[url] = err
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (FetchResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()

	if err, ok := f.failures[url]; ok {
		return FetchResponse{}, err
	}
	if resp, ok := f.responses[url]; ok {
		return resp, nil
	}
	return FetchResponse{}, fmt.Errorf("connection refused: %s", url)
}
