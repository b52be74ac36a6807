package feed

import (
	"sort"
	"time"
)

// Aggregator reduces collected items to the final daily list: recency
// filter, link deduplication, newest-first ordering, size cap.
type Aggregator struct {
	window   time.Duration
	maxItems int
}

func NewAggregator(window time.Duration, maxItems int) *Aggregator {
	return &Aggregator{
		window:   window,
		maxItems: maxItems,
	}
}

func (a *Aggregator) Run(items []Item, runStart time.Time) []Item {
	cutoff := runStart.Add(-a.window)

	// Items published exactly at the cutoff are kept.
	recent := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Published.Before(cutoff) {
			continue
		}
		recent = append(recent, item)
	}

	// Last occurrence of a link wins, but the item keeps the position of
	// its first occurrence.
	deduped := make([]Item, 0, len(recent))
	position := make(map[string]int, len(recent))
	for _, item := range recent {
		if idx, seen := position[item.Link]; seen {
			deduped[idx] = item
			continue
		}
		position[item.Link] = len(deduped)
		deduped = append(deduped, item)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Published.After(deduped[j].Published)
	})

	if len(deduped) > a.maxItems {
		deduped = deduped[:a.maxItems]
	}

	return deduped
}
