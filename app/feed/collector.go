package feed

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/thenullpointer/builder/app/sources"
)

// Collector walks the source list sequentially and gathers normalized
// items. Failures stay local: a bad entry skips that entry, a fetch error
// or panic skips that feed, and the run continues.
type Collector struct {
	sources   []sources.Source
	fetcher   *Fetcher
	extractor *Extractor
	loc       *time.Location
	now       func() time.Time
}

func NewCollector(srcs []sources.Source, fetcher *Fetcher, extractor *Extractor, loc *time.Location) *Collector {
	return &Collector{
		sources:   srcs,
		fetcher:   fetcher,
		extractor: extractor,
		loc:       loc,
		now:       time.Now,
	}
}

// Run collects every source once. The returned stats carry the run start
// time, which also anchors the recency window and the published fallback.
func (c *Collector) Run(ctx context.Context) ([]Item, Stats) {
	runStart := c.now().In(c.loc)
	stats := Stats{RunStart: runStart}

	var items []Item
	for _, src := range c.sources {
		collected, entries, err := c.collectFeed(ctx, src, runStart)
		if err != nil {
			slog.Warn("Feed skipped", "source", cmp.Or(src.Name, src.URL), "error", err)
			stats.FeedsFailed++
			continue
		}

		stats.FeedsOK++
		stats.Entries += entries
		stats.Skipped += entries - len(collected)
		items = append(items, collected...)

		slog.Info("Feed collected", "source", cmp.Or(src.Name, src.URL), "entries", entries, "items", len(collected))
	}

	return items, stats
}

func (c *Collector) collectFeed(ctx context.Context, src sources.Source, runStart time.Time) (items []Item, entries int, err error) {
	defer func() {
		if r := recover(); r != nil {
			debug.PrintStack()
			items, entries = nil, 0
			err = fmt.Errorf("panic while collecting feed: %v", r)
		}
	}()

	parsed, err := c.fetcher.Run(ctx, src.URL)
	if err != nil {
		return nil, 0, err
	}

	for _, entry := range parsed.Items {
		item, extractErr := c.extractEntry(entry, parsed.Title, runStart)
		if extractErr != nil {
			slog.Debug("Entry skipped", "url", src.URL, "error", extractErr)
			continue
		}
		items = append(items, item)
	}

	return items, len(parsed.Items), nil
}

// extractEntry shields the loop from a single bad entry: a panic during
// extraction skips that entry, not the feed.
func (c *Collector) extractEntry(entry *gofeed.Item, feedTitle string, runStart time.Time) (item Item, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while extracting entry: %v", r)
		}
	}()

	return c.extractor.Run(entry, feedTitle, runStart)
}
