package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chain_router/internal/app/port"
	"chain_router/internal/app/provider"
	"chain_router/internal/app/service"
	"chain_router/internal/config"
	clientprovider "chain_router/internal/infrastructure/network/client"
	"chain_router/internal/infrastructure/network/definition"
	"chain_router/internal/infrastructure/overrides"
	"chain_router/internal/infrastructure/restapi"
	"chain_router/internal/pkg/logger"
	"chain_router/pkg/metrics"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	// Bootstrap logger for the phase before config and zap are up.
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck // flush on exit

	// Route slog through zap so the port.Logger adapter and any library slog
	// output share one sink.
	slogHandler := zapslog.NewHandler(zapLogger.Core(), &zapslog.HandlerOptions{})
	slog.SetDefault(slog.New(slogHandler))

	cfgPath := getEnv("CONFIG_PATH", "config/config.yaml")
	cfg := config.LoadConfigOrDefault(cfgPath, log)

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Warnf("Invalid log level in config: %s. Defaulting to Info.", cfg.Logging.Level)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	metrics.MustRegisterMetrics()

	portLogger := logger.NewSlogAdapter()

	registry := provider.NewChainRegistry(portLogger, definition.AllKnownChains(), cfg.Registry.TrackedChains)

	overrideSource := buildOverrideSource(cfg, zapLogger)

	feeClients := clientprovider.NewFeeClientProvider(cfg, portLogger)
	oracle := service.NewGasOracle(zapLogger, cfg, registry, feeClients)
	index := service.NewDeploymentIndex(zapLogger, registry, overrideSource)
	selector := service.NewChainSelector(zapLogger, registry, oracle, index)
	chainRouter := service.NewChainRouter(zapLogger, registry, index)

	handler := restapi.NewChainHandler(registry, oracle, selector, chainRouter, cfg.Selector)
	ginRouter := restapi.SetupRouter(handler)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      ginRouter,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Graceful shutdown failed", zap.Error(err))
	}
	zapLogger.Info("Server stopped")
}

// buildOverrideSource picks the deployed-address override source: remote
// document, local file, or the built-in table, in that order of preference.
func buildOverrideSource(cfg *config.Config, zapLogger *zap.Logger) port.OverrideSource {
	if cfg.Overrides.URL != "" {
		timeout := time.Duration(cfg.Overrides.RequestTimeoutMillis) * time.Millisecond
		src := overrides.NewHTTPSource(cfg.Overrides.URL, timeout, zapLogger)
		if err := src.Load(); err != nil {
			// Lookups fall back to the registry's own contracts map until a
			// later Load succeeds.
			zapLogger.Error("Failed to load remote deployment overrides", zap.Error(err))
		}
		return src
	}

	if cfg.Overrides.File != "" {
		src, err := overrides.NewFileSource(cfg.Overrides.File)
		if err != nil {
			zapLogger.Error("Failed to load overrides file, using built-in table", zap.Error(err))
			return overrides.NewStaticSource(definition.DefaultOverrides())
		}
		return src
	}

	return overrides.NewStaticSource(definition.DefaultOverrides())
}

