package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Output configuration
	OutputDir   string `long:"output-dir" env:"OUTPUT_DIR" default:"docs" description:"Directory the generated site is written to"`
	SourcesFile string `long:"sources-file" env:"SOURCES_FILE" description:"YAML file with the feed list, replaces the built-in sources"`

	// Site metadata
	SiteTitle       string `long:"site-title" env:"SITE_TITLE" default:"The Null Pointer" description:"Site title shown on generated pages"`
	SiteDescription string `long:"site-description" env:"SITE_DESCRIPTION" default:"Automated feed of technology and cybersecurity news, updated daily" description:"Site description shown on generated pages"`
	SiteURL         string `long:"site-url" env:"SITE_URL" description:"Public base URL of the site (optional)"`

	// Pipeline configuration
	Timezone    string `long:"timezone" env:"TIMEZONE" default:"Asia/Tehran" description:"Canonical timezone for item timestamps and page dates"`
	RecentHours int    `long:"recent-hours" env:"RECENT_HOURS" default:"36" description:"Only items published within this many hours are kept"`
	MaxItems    int    `long:"max-items" env:"MAX_ITEMS" default:"100" description:"Maximum number of items on the daily page"`
	Timeout     int    `long:"timeout" env:"TIMEOUT" default:"30" description:"Per-attempt fetch timeout in seconds"`
	Attempts    int    `long:"attempts" env:"ATTEMPTS" default:"3" description:"Fetch attempts per feed before the feed is skipped"`
	UserAgent   string `long:"user-agent" env:"USER_AGENT" default:"TheNullPointerBot/1.0 (+https://github.com/thenullpointer/builder)" description:"User agent string for HTTP requests"`

	// Preview server
	Serve bool   `long:"serve" env:"SERVE" description:"Serve the output directory over HTTP after building"`
	Port  string `long:"port" env:"PORT" default:"8080" description:"HTTP server port used with --serve"`

	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := validate(&raw); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	loc, err := time.LoadLocation(raw.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone '%s': %w", raw.Timezone, err)
	}

	cfg := &Cfg{
		OutputDir:       raw.OutputDir,
		SourcesFile:     raw.SourcesFile,
		SiteTitle:       raw.SiteTitle,
		SiteDescription: raw.SiteDescription,
		SiteURL:         raw.SiteURL,
		Timezone:        raw.Timezone,
		Location:        loc,
		RecentHours:     raw.RecentHours,
		MaxItems:        raw.MaxItems,
		Timeout:         raw.Timeout,
		Attempts:        raw.Attempts,
		UserAgent:       raw.UserAgent,
		Serve:           raw.Serve,
		Port:            raw.Port,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	return cfg, nil
}

func validate(raw *rawCfg) error {
	if raw.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if raw.RecentHours <= 0 {
		return fmt.Errorf("recent hours must be positive")
	}
	if raw.MaxItems <= 0 {
		return fmt.Errorf("max items must be positive")
	}
	if raw.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if raw.Attempts <= 0 {
		return fmt.Errorf("attempts must be positive")
	}
	return nil
}
