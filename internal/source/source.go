package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"contentsmith/internal/cache"
	"contentsmith/internal/model"
)

// Source fetches candidate items from one external endpoint. Implementations
// return partial results with an error only when nothing usable was fetched;
// the collector isolates each source's failure from the rest of the run.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]model.CollectedItem, error)
}

// fetcher wraps an http.Client with bounded retry, linear backoff, and the
// optional redis payload cache shared by all source clients.
type fetcher struct {
	client  *http.Client
	retries int
	cache   *cache.FetchCache
}

func newFetcher(timeout time.Duration, retries int, fc *cache.FetchCache) fetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if retries < 0 {
		retries = 0
	}
	if retries > 2 {
		retries = 2
	}
	return fetcher{
		client:  &http.Client{Timeout: timeout},
		retries: retries,
		cache:   fc,
	}
}

// get fetches a URL body, consulting the cache first. Retries are linear:
// attempt n waits n seconds before retrying.
func (f fetcher) get(ctx context.Context, source, u string) ([]byte, error) {
	if b, ok := f.cache.Get(ctx, source, u); ok {
		return b, nil
	}
	var lastErr error
	for attempt := 0; attempt <= f.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}
		b, err := f.getOnce(ctx, u)
		if err == nil {
			f.cache.Set(ctx, source, u, b)
			return b, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%s: %w", source, lastErr)
}

func (f fetcher) getOnce(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "contentsmith/1.0")
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
