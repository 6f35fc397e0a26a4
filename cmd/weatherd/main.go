// Command weatherd serves normalized weather data for display surfaces. It
// fetches from the observation API when one is configured and falls back to
// the bundled snapshots otherwise.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vietmet/weathercore/internal/adapter/httpapi"
	"github.com/vietmet/weathercore/internal/adapter/remote"
	"github.com/vietmet/weathercore/internal/adapter/static"
	"github.com/vietmet/weathercore/internal/config"
	"github.com/vietmet/weathercore/internal/geoindex"
	"github.com/vietmet/weathercore/internal/observability"
	"github.com/vietmet/weathercore/internal/resolver"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	remoteClient := remote.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, cfg.BulkTimeout, metrics, logger)
	bundled := static.NewSource(logger)

	if remoteClient.Enabled() {
		metrics.RemoteEnabled.Set(1)
		logger.Info("remote observation api enabled", "base_url", cfg.APIBaseURL)
	} else {
		logger.Info("remote observation api disabled, serving bundled snapshots")
	}

	index := geoindex.New(remoteClient, bundled, metrics, logger)
	res := resolver.New(remoteClient, bundled, cfg.DefaultLocationID, cfg.DefaultProvider, metrics, logger)

	srv := httpapi.NewServer(cfg.HTTPAddr, res, index, res, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Warm the point cache; first load wins for the process lifetime.
	index.Load(ctx)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
