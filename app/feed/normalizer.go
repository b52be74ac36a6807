package feed

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"
)

// Normalizer converts the timestamp variants feeds publish into times in
// the canonical timezone.
type Normalizer struct {
	loc *time.Location
}

func NewNormalizer(loc *time.Location) *Normalizer {
	return &Normalizer{loc: loc}
}

// ParseString parses a free-form date string. Values without timezone
// information are assumed to be UTC. Anything unparsable maps to
// ErrNoDate.
func (n *Normalizer) ParseString(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, ErrNoDate
	}

	parsed, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, ErrNoDate
	}

	return parsed.In(n.loc), nil
}

// FromTime converts an already parsed time into the canonical timezone.
func (n *Normalizer) FromTime(t time.Time) time.Time {
	return t.In(n.loc)
}

// Resolve picks the publication time of an entry: published over updated,
// raw strings over pre-parsed values, and the given fallback when nothing
// yields a date.
func (n *Normalizer) Resolve(entry *gofeed.Item, fallback time.Time) time.Time {
	if parsed, err := n.ParseString(entry.Published); err == nil {
		return parsed
	}
	if parsed, err := n.ParseString(entry.Updated); err == nil {
		return parsed
	}
	if entry.PublishedParsed != nil {
		return n.FromTime(*entry.PublishedParsed)
	}
	if entry.UpdatedParsed != nil {
		return n.FromTime(*entry.UpdatedParsed)
	}
	return fallback
}
