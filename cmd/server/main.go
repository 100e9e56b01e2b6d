// Command main is the entry point for the mini social feed server.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"minisocial/internal/config"
	"minisocial/internal/feed"
	"minisocial/internal/middleware"
	"minisocial/internal/notifications"
	"minisocial/internal/observability"
	"minisocial/internal/server"
	"minisocial/internal/service"
	"minisocial/internal/storage"
)

const version = "1.0.0"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	middleware.Logger = middleware.NewLogger(cfg.Env)

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "minisocial",
		ServiceVersion: version,
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExport,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingRatio,
		StorageBackend: cfg.StorageBackend,
	})
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.StorageBackend, err)
	}
	bridge := storage.NewBridge(backend, cfg.StorageKey)

	hub := notifications.NewHub()
	feedSvc := service.NewFeedService(
		feed.NewStore(),
		bridge,
		notifications.NewFeedback(cfg.FeedbackTTL, hub),
		notifications.NewMarkers(cfg.HighlightTTL, hub),
		hub,
	)
	feedSvc.Load(ctx)

	srv := server.NewServer(cfg, feedSvc, middleware.InitMetrics("minisocial-api"))

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		middleware.Logger.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			middleware.Logger.Error("server shutdown error", slog.String("error", err.Error()))
		}
		if err := bridge.Close(); err != nil {
			middleware.Logger.Error("storage close error", slog.String("error", err.Error()))
		}
		if err := shutdownTracing(ctx); err != nil {
			middleware.Logger.Error("tracing shutdown error", slog.String("error", err.Error()))
		}
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
