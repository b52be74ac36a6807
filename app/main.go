package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thenullpointer/builder/app/api"
	"github.com/thenullpointer/builder/app/cfg"
	"github.com/thenullpointer/builder/app/feed"
	"github.com/thenullpointer/builder/app/render"
	"github.com/thenullpointer/builder/app/sources"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Configuration error", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	slog.Info("Starting site build", "version", appCfg.Version, "output", appCfg.OutputDir)

	srcs, err := loadSources(appCfg)
	if err != nil {
		slog.Error("Failed to load sources", "file", appCfg.SourcesFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Sources loaded", "count", len(srcs))

	start := time.Now()

	normalizer := feed.NewNormalizer(appCfg.Location)
	extractor := feed.NewExtractor(normalizer)
	fetcher := feed.NewFetcher(appCfg.UserAgent, time.Duration(appCfg.Timeout)*time.Second, appCfg.Attempts)
	collector := feed.NewCollector(srcs, fetcher, extractor, appCfg.Location)
	aggregator := feed.NewAggregator(time.Duration(appCfg.RecentHours)*time.Hour, appCfg.MaxItems)

	collected, stats := collector.Run(context.Background())
	items := aggregator.Run(collected, stats.RunStart)

	site := render.Site{
		Title:       appCfg.SiteTitle,
		Description: appCfg.SiteDescription,
		URL:         appCfg.SiteURL,
	}

	if err := render.NewRenderer(appCfg.OutputDir, site).Run(items, stats.RunStart); err != nil {
		slog.Error("Failed to render site", "error", err)
		os.Exit(1)
	}

	if err := render.NewFeedWriter(appCfg.OutputDir, site).Run(items, stats.RunStart); err != nil {
		slog.Error("Failed to write feed", "error", err)
		os.Exit(1)
	}

	buildTime := time.Since(start)

	slog.Info("Build completed", "items", len(items), "feeds_ok", stats.FeedsOK,
		"feeds_failed", stats.FeedsFailed, "duration", buildTime.Round(time.Millisecond).String())

	if !appCfg.Serve {
		return
	}

	serve(appCfg, len(items), buildTime, stats)
}

// loadSources reads the feed list from the configured YAML file, or falls
// back to the built-in list when no file is given.
func loadSources(appCfg *cfg.Cfg) ([]sources.Source, error) {
	if appCfg.SourcesFile == "" {
		return sources.Defaults(), nil
	}

	return sources.Load(appCfg.SourcesFile)
}

// serve keeps the process running with an HTTP server on top of the
// generated site until an interrupt signal arrives.
func serve(appCfg *cfg.Cfg, items int, buildTime time.Duration, stats feed.Stats) {
	handler := api.NewHandler(appCfg.Version, items, buildTime, stats)
	server := api.NewServer(handler, appCfg.OutputDir)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting preview server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
		return
	}

	slog.Info("Preview server stopped")
}
