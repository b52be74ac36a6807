package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thenullpointer/builder/app/feed"
)

func NewHandler(version string, items int, buildTime time.Duration, stats feed.Stats) *Handler {
	return &Handler{
		version:   version,
		items:     items,
		buildTime: buildTime,
		stats:     stats,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"version":  h.version,
		"items":    h.items,
		"built_at": h.stats.RunStart.Format(time.RFC3339),
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"feeds_ok":     h.stats.FeedsOK,
		"feeds_failed": h.stats.FeedsFailed,
		"entries":      h.stats.Entries,
		"skipped":      h.stats.Skipped,
		"items":        h.items,
		"build_time":   h.buildTime.String(),
	})
}
