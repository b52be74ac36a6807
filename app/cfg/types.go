package cfg

import "time"

type Cfg struct {
	// Output configuration
	OutputDir   string
	SourcesFile string

	// Site metadata
	SiteTitle       string
	SiteDescription string
	SiteURL         string

	// Pipeline configuration
	Timezone    string
	Location    *time.Location
	RecentHours int
	MaxItems    int
	Timeout     int
	Attempts    int
	UserAgent   string

	// Preview server
	Serve bool
	Port  string

	// Application metadata
	Debug   bool
	Version string
}
