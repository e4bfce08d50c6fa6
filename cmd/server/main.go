package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"asset-tracker/internal/cache"
	"asset-tracker/internal/config"
	"asset-tracker/internal/controller"
	"asset-tracker/internal/database"
	"asset-tracker/internal/queue"
	"asset-tracker/internal/routes"
	"asset-tracker/internal/worker"
	"asset-tracker/pkg/logger"
)

func main() {
	cfg := config.Get()
	logger.Init(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := database.DB(ctx)
	if db == nil {
		logger.Error(ctx, "Database not available; exiting")
		os.Exit(1)
	}
	if err := database.MigrateOrCreateSchema(ctx); err != nil {
		logger.Error(ctx, "Schema migration failed", "error", err)
		os.Exit(1)
	}

	// Redis and Kafka are optional; both degrade to no-ops when unset.
	lists := cache.NewLists(cache.Client(ctx), time.Duration(cfg.CacheTTL)*time.Second)
	queue.EnsureTopic(ctx)
	events := queue.Producer(ctx)

	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Run(ctx, lists)
	}()

	handler := controller.NewHandler(db, lists, events)
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      routes.Handler(handler, cfg.CORSOrigins),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	go func() {
		logger.Info(ctx, "HTTP server listening", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "Server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info(context.Background(), "Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "Server shutdown error", "error", err)
	}
	<-workerDone
	if err := events.Close(); err != nil {
		logger.Error(shutdownCtx, "Kafka producer close error", "error", err)
	}
	if rdb := cache.Client(shutdownCtx); rdb != nil {
		_ = rdb.Close()
	}
	_ = db.Close()
	logger.Info(shutdownCtx, "Server stopped")
}
