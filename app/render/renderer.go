package render

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/thenullpointer/builder/app/feed"
)

// Site carries the identity rendered into page headers and the feed.
type Site struct {
	Title       string
	Description string
	URL         string
}

var dayPagePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\.html$`)

// Renderer writes the static site: the daily page, the archive index
// rebuilt from the pages already on disk, and the CNAME placeholder.
type Renderer struct {
	outputDir string
	site      Site
}

func NewRenderer(outputDir string, site Site) *Renderer {
	return &Renderer{
		outputDir: outputDir,
		site:      site,
	}
}

type dayData struct {
	SiteTitle string
	SiteDesc  string
	DayTitle  string
	Items     []feed.Item
}

type indexData struct {
	SiteTitle string
	SiteDesc  string
	Pages     []string
}

// Run renders the page for runStart's date and rebuilds the archive
// index. The day page is written before the directory scan so the fresh
// day is part of the archive.
func (r *Renderer) Run(items []feed.Item, runStart time.Time) error {
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	daySlug := runStart.Format("2006-01-02")

	if err := r.writeDayPage(daySlug, runStart, items); err != nil {
		return err
	}

	pages, err := r.scanDayPages()
	if err != nil {
		return err
	}

	if err := r.writeIndex(pages); err != nil {
		return err
	}

	if err := r.ensureCNAME(); err != nil {
		return err
	}

	slog.Info("Site rendered", "day", daySlug, "items", len(items), "pages", len(pages))

	return nil
}

func (r *Renderer) writeDayPage(daySlug string, runStart time.Time, items []feed.Item) error {
	data := dayData{
		SiteTitle: r.site.Title,
		SiteDesc:  r.site.Description,
		DayTitle:  runStart.Format("2006/01/02"),
		Items:     items,
	}

	return r.writeTemplate("day.html.tmpl", filepath.Join(r.outputDir, daySlug+".html"), data)
}

func (r *Renderer) scanDayPages() ([]string, error) {
	entries, err := os.ReadDir(r.outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	var pages []string
	for _, entry := range entries {
		if entry.IsDir() || !dayPagePattern.MatchString(entry.Name()) {
			continue
		}
		pages = append(pages, strings.TrimSuffix(entry.Name(), ".html"))
	}

	// Day slugs sort lexicographically, newest first after reversing
	sort.Sort(sort.Reverse(sort.StringSlice(pages)))

	return pages, nil
}

func (r *Renderer) writeIndex(pages []string) error {
	data := indexData{
		SiteTitle: r.site.Title,
		SiteDesc:  r.site.Description,
		Pages:     pages,
	}

	return r.writeTemplate("index.html.tmpl", filepath.Join(r.outputDir, "index.html"), data)
}

func (r *Renderer) writeTemplate(name, path string, data interface{}) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := templates.ExecuteTemplate(file, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	return nil
}

// ensureCNAME creates an empty CNAME placeholder unless one exists.
func (r *Renderer) ensureCNAME() error {
	path := filepath.Join(r.outputDir, "CNAME")

	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check CNAME: %w", err)
	}

	if err := os.WriteFile(path, nil, 0644); err != nil {
		return fmt.Errorf("failed to create CNAME: %w", err)
	}

	return nil
}
