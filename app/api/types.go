package api

import (
	"time"

	"github.com/thenullpointer/builder/app/feed"
)

type Handler struct {
	version   string
	items     int
	buildTime time.Duration
	stats     feed.Stats
}
