package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sitegauge/engine/internal/common/config"
	logutil "github.com/sitegauge/engine/internal/common/logger"
	"github.com/sitegauge/engine/internal/common/metricsserver"
	"github.com/sitegauge/engine/internal/fetch"
	"github.com/sitegauge/engine/internal/metrics"
	"github.com/sitegauge/engine/internal/rewriter"
	"github.com/sitegauge/engine/internal/server"
)

func main() {
	configPath := flag.String("c", "configs/analyzer-service.yaml",
		"Path to analyzer service configuration file")
	flag.Parse()

	// Initialize logger (will be reconfigured from config)
	initialLogger, err := logutil.NewDefaultLogger()
	if err != nil {
		panic(err)
	}

	initialLogger.Info("Loading configuration", zap.String("path", *configPath))

	cfg, err := config.Load(*configPath)
	if err != nil {
		initialLogger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger, err := logutil.NewLogger(cfg.Log)
	if err != nil {
		initialLogger.Fatal("Failed to create configured logger", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Analyzer service starting",
		zap.String("listen", cfg.Server.Listen),
		zap.Int("relay_sources", len(cfg.Fetch.RelaySources)))

	metricsCollector := metrics.NewPrometheusMetrics("sitegauge", logger)

	metricsServer, err := metricsserver.Start(
		cfg.Metrics.Enabled,
		cfg.Metrics.Listen,
		cfg.Metrics.Path,
		metricsCollector,
		logger,
	)
	if err != nil {
		logger.Fatal("Failed to start metrics server", zap.Error(err))
	}

	fetcher := fetch.New(cfg.Fetch, metricsCollector, logger)
	handlers := server.NewHandlers(fetcher, rewriter.New(nil), metricsCollector, logger)
	apiServer := server.NewServer(cfg.Server, handlers)

	serverErrCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("listen", cfg.Server.Listen))
		if err := apiServer.ListenAndServe(cfg.Server.Listen); err != nil {
			serverErrCh <- err
		}
	}()

	// Wait briefly for the listener to come up
	time.Sleep(100 * time.Millisecond)
	select {
	case err := <-serverErrCh:
		logger.Fatal("HTTP server failed to start", zap.Error(err))
	default:
	}

	// Refresh OS-level gauges in the background
	statsDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metricsCollector.UpdateSystemStats()
			case <-statsDone:
				return
			}
		}
	}()

	logger.Info("Analyzer service ready", zap.String("listen", cfg.Server.Listen))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-serverErrCh:
		logger.Error("Server error", zap.Error(err))
	}

	logger.Info("Shutting down gracefully...")
	close(statsDone)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := apiServer.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("API server shutdown error", zap.Error(err))
	}
	if metricsServer != nil {
		if err := metricsServer.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("Metrics server shutdown error", zap.Error(err))
		}
	}

	logger.Info("Shutdown complete")
}
