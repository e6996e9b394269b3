package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"cinefind/movie"
	"cinefind/pkg/bootstrap"
	"cinefind/pkg/config"
	"cinefind/pkg/sentry"

	tea "github.com/charmbracelet/bubbletea"
	sentrygo "github.com/getsentry/sentry-go"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs go to a rotating file.
	logFile := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     14,
		Compress:   true,
	}
	defer logFile.Close()
	logger := slog.New(slog.NewJSONHandler(logFile, nil))
	slog.SetDefault(logger)

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		return fmt.Errorf("init sentry: %w", err)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	movies, err := bootstrap.NewMovieService(cfg, logger)
	if err != nil {
		return err
	}
	trend, closeStore, err := bootstrap.NewTrendingService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	changed := make(chan struct{}, 1)
	session := movie.NewSession(ctx, movies,
		movie.WithTrending(trend),
		movie.WithSessionLogger(logger),
		movie.WithStateListener(func(movie.View) {
			select {
			case changed <- struct{}{}:
			default:
			}
		}),
	)
	defer session.Close()
	logger.Info("browse session started", "session_id", session.ID())

	session.Start()

	p := tea.NewProgram(newModel(ctx, session, trend, movies.Genres, changed),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		sentry.WithTags(map[string]string{"session_id": session.ID()}).Error(err)
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
