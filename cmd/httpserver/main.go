package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cinefind/httpserver"
	"cinefind/pkg/bootstrap"
	"cinefind/pkg/config"
	"cinefind/pkg/sentry"

	sentrygo "github.com/getsentry/sentry-go"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	movies, err := bootstrap.NewMovieService(cfg, logger)
	if err != nil {
		slog.Error("Cannot create movie service", "error", err)
		os.Exit(1)
	}

	trend, closeStore, err := bootstrap.NewTrendingService(ctx, cfg, logger)
	if err != nil {
		slog.Error("Cannot create trending service", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	server := httpserver.Default(cfg)
	server.Logger = logger
	server.MovieService = movies
	server.TrendingService = trend

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()
	slog.Info("server started!", "addr", server.Addr, "trending_store", cfg.TrendingStore)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped with error", "error", err)
			sentry.Error(err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
		slog.Info("server stopped")
	}
}
