package feed

import (
	"time"
)

// Item is a fully normalized feed entry, ready for rendering. Title,
// Summary and Source are HTML-escaped; Link is the raw canonical URL and
// doubles as the deduplication key.
type Item struct {
	ID        string
	Title     string
	Summary   string
	Link      string
	Source    string
	Published time.Time
}

// Stats carries per-run counters for logging and the preview server.
type Stats struct {
	RunStart    time.Time
	FeedsOK     int
	FeedsFailed int
	Entries     int
	Skipped     int
}
