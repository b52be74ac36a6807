package feed

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// summaryLimit caps the visible summary length in runes, the ellipsis
// marker excluded.
const summaryLimit = 300

const unknownSource = "Unknown source"

// Tag stripping is a plain regexp pass over the text; summaries are
// never parsed as HTML.
var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Extractor turns raw feed entries into normalized items.
type Extractor struct {
	normalizer *Normalizer
}

func NewExtractor(normalizer *Normalizer) *Extractor {
	return &Extractor{normalizer: normalizer}
}

// Run normalizes a single entry. Entries without a usable link or title
// return ErrMissingLink or ErrMissingTitle and are skipped by the caller.
func (e *Extractor) Run(entry *gofeed.Item, feedTitle string, fallback time.Time) (Item, error) {
	link := strings.TrimSpace(entry.Link)
	if link == "" {
		return Item{}, ErrMissingLink
	}

	title := sanitize(entry.Title)
	if title == "" {
		return Item{}, ErrMissingTitle
	}

	summary := sanitize(cmp.Or(entry.Description, entry.Content))
	source := cmp.Or(sanitize(feedTitle), unknownSource)

	return Item{
		ID:        generateID(link),
		Title:     html.EscapeString(title),
		Summary:   html.EscapeString(truncate(summary, summaryLimit)),
		Link:      link,
		Source:    html.EscapeString(source),
		Published: e.normalizer.Resolve(entry, fallback),
	}, nil
}

func sanitize(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func generateID(link string) string {
	hash := sha256.Sum256([]byte(link))
	return hex.EncodeToString(hash[:])
}
