package render

import (
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/feeds"
	"github.com/thenullpointer/builder/app/feed"
)

// FeedWriter emits the aggregated items as a single RSS feed next to the
// rendered pages.
type FeedWriter struct {
	outputDir string
	site      Site
}

func NewFeedWriter(outputDir string, site Site) *FeedWriter {
	return &FeedWriter{
		outputDir: outputDir,
		site:      site,
	}
}

func (w *FeedWriter) Run(items []feed.Item, runStart time.Time) error {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	out := &feeds.Feed{
		Title:       w.site.Title,
		Link:        &feeds.Link{Href: w.site.URL},
		Description: w.site.Description,
		Created:     runStart,
	}

	for _, item := range items {
		// Item text arrives HTML-escaped and the XML writer encodes on
		// its own, so hand over the unescaped form
		out.Items = append(out.Items, &feeds.Item{
			Id:          item.ID,
			Title:       html.UnescapeString(item.Title),
			Link:        &feeds.Link{Href: item.Link},
			Description: html.UnescapeString(item.Summary),
			Author:      &feeds.Author{Name: html.UnescapeString(item.Source)},
			Created:     item.Published,
		})
	}

	path := filepath.Join(w.outputDir, "feed.xml")

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create feed file: %w", err)
	}
	defer file.Close()

	if err := out.WriteRss(file); err != nil {
		return fmt.Errorf("failed to write feed: %w", err)
	}

	slog.Info("Feed written", "path", path, "items", len(items))

	return nil
}
