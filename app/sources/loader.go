package sources

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults returns the built-in feed list. Order is preserved and drives
// the fetch order.
func Defaults() []Source {
	return []Source{
		// Tech
		{Name: "The Verge", URL: "https://www.theverge.com/rss/index.xml"},
		{Name: "Ars Technica", URL: "http://feeds.arstechnica.com/arstechnica/index"},
		{Name: "TechRadar", URL: "https://www.techradar.com/rss"},
		{Name: "Engadget", URL: "https://www.engadget.com/rss.xml"},
		{Name: "TechCrunch", URL: "https://feeds.feedburner.com/Techcrunch"},
		{Name: "Wired", URL: "https://www.wired.com/feed/rss"},
		{Name: "Tom's Hardware", URL: "https://www.tomshardware.com/feeds/all"},
		// Security
		{Name: "Krebs on Security", URL: "https://krebsonsecurity.com/feed/"},
		{Name: "BleepingComputer", URL: "https://www.bleepingcomputer.com/feed/"},
		{Name: "Dark Reading", URL: "https://www.darkreading.com/rss.xml"},
		{Name: "Threatpost", URL: "https://threatpost.com/feed/"},
		{Name: "SecurityWeek", URL: "https://feeds.feedburner.com/Securityweek"},
		{Name: "The Hacker News", URL: "https://feeds.feedburner.com/TheHackersNews"},
	}
}

// Load reads a YAML sources file. The file replaces the built-in list
// wholesale, so it must define at least one source.
func Load(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var file sourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse sources file: %w", err)
	}

	if err := validate(file.Sources); err != nil {
		return nil, fmt.Errorf("invalid sources file %s: %w", path, err)
	}

	return file.Sources, nil
}

func validate(srcs []Source) error {
	if len(srcs) == 0 {
		return fmt.Errorf("no sources defined")
	}

	for i, src := range srcs {
		if src.URL == "" {
			return fmt.Errorf("source at index %d is missing a URL", i)
		}
	}

	return nil
}
