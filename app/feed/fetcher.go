package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

const maxRetryDelay = 30 * time.Second

// Fetcher downloads and parses a single feed with bounded retries. Every
// attempt tries a direct HTTP fetch first and falls back to the parser's
// own fetching before the next backoff.
type Fetcher struct {
	client    *http.Client
	parser    *gofeed.Parser
	userAgent string
	timeout   time.Duration
	attempts  int
	sleep     func(ctx context.Context, d time.Duration) error
}

func NewFetcher(userAgent string, timeout time.Duration, attempts int) *Fetcher {
	client := &http.Client{}

	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = userAgent

	return &Fetcher{
		client:    client,
		parser:    parser,
		userAgent: userAgent,
		timeout:   timeout,
		attempts:  attempts,
		sleep:     sleepContext,
	}
}

func (f *Fetcher) Run(ctx context.Context, url string) (*gofeed.Feed, error) {
	var lastErr error

	for attempt := 1; attempt <= f.attempts; attempt++ {
		if attempt > 1 {
			// 1<<5 seconds already exceeds maxRetryDelay
			shift := uint(attempt - 2)
			if shift > 5 {
				shift = 5
			}
			delay := time.Duration(1<<shift) * time.Second
			if delay > maxRetryDelay {
				delay = maxRetryDelay
			}

			slog.Debug("Fetch retry scheduled", "url", url, "attempt", attempt, "delay", delay.String())

			if err := f.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}

		parsed, err := f.fetchDirect(ctx, url)
		if err == nil {
			return parsed, nil
		}
		lastErr = err

		slog.Debug("Direct fetch failed, falling back to parser fetch", "url", url, "error", err)

		parsed, err = f.fetchWithParser(ctx, url)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("fetch failed after %d attempts: %w", f.attempts, lastErr)
}

func (f *Fetcher) fetchDirect(ctx context.Context, url string) (*gofeed.Feed, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	parsed, err := f.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	return parsed, nil
}

func (f *Fetcher) fetchWithParser(ctx context.Context, url string) (*gofeed.Feed, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	parsed, err := f.parser.ParseURLWithContext(url, timeoutCtx)
	if err != nil {
		return nil, fmt.Errorf("parser fetch failed: %w", err)
	}

	return parsed, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
