package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"cinefind/dynamodb"
	"cinefind/movie"
	"cinefind/pkg/config"
	"cinefind/postgres"
	"cinefind/tmdb"
	"cinefind/trending"
)

// NewMovieService wires the metadata client and the catalog use case. A
// missing API key is not an error here: the use case reports it per request.
func NewMovieService(cfg *config.Config, logger *slog.Logger) (*movie.Usecase, error) {
	client := tmdb.NewClient(tmdb.Options{
		APIKey:    cfg.TMDB.APIKey,
		RateLimit: cfg.TMDB.RateLimit,
		Timeout:   cfg.TMDB.Timeout,
	})

	uc, err := movie.NewUsecase(cfg.Catalog(), client, logger)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: movie service: %w", err)
	}
	if !cfg.Catalog().HasCredential() {
		logger.Warn("TMDB_API_KEY is not set, catalog requests will fail")
	}
	return uc, nil
}

// NewTrendingService selects the counter store named by TRENDING_STORE. An
// empty value, or a selected store whose required settings are unset, yields
// a disabled service. Settings that are present but invalid are an error.
// The returned close function is never nil.
func NewTrendingService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*trending.Usecase, func(), error) {
	noop := func() {}

	switch cfg.TrendingStore {
	case "":
		logger.Warn("trending store not configured")
		return trending.NewUsecase(nil, logger), noop, nil

	case config.TrendingStoreDynamoDB:
		if missing := missingDynamoDBSettings(cfg); len(missing) > 0 {
			logger.Warn("trending store disabled, settings missing", "store", cfg.TrendingStore, "missing", missing)
			return trending.NewUsecase(nil, logger), noop, nil
		}
		repo, err := dynamodb.OpenTrending(ctx, dynamodb.Options{
			Region:        cfg.DynamoDB.Region,
			Endpoint:      cfg.DynamoDB.Endpoint,
			AccessKey:     cfg.DynamoDB.AccessKey,
			SecretKey:     cfg.DynamoDB.SecretKey,
			SessionToken:  cfg.DynamoDB.SessionToken,
			TrendingTable: cfg.DynamoDB.TrendingTable,
			TrendingIndex: cfg.DynamoDB.TrendingIndex,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("bootstrap: trending store: %w", err)
		}
		return trending.NewUsecase(repo, logger), noop, nil

	case config.TrendingStorePostgres:
		if missing := missingPostgresSettings(cfg); len(missing) > 0 {
			logger.Warn("trending store disabled, settings missing", "store", cfg.TrendingStore, "missing", missing)
			return trending.NewUsecase(nil, logger), noop, nil
		}
		db, err := postgres.NewConnection(PostgresOptions(cfg))
		if err != nil {
			return nil, noop, fmt.Errorf("bootstrap: trending store: %w", err)
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return trending.NewUsecase(postgres.NewTrendingRepository(db), logger), closeDB, nil
	}

	return nil, noop, fmt.Errorf("bootstrap: unknown trending store %q", cfg.TrendingStore)
}

func missingDynamoDBSettings(cfg *config.Config) []string {
	var missing []string
	if strings.TrimSpace(cfg.DynamoDB.Region) == "" {
		missing = append(missing, "DDB_REGION")
	}
	if strings.TrimSpace(cfg.DynamoDB.TrendingTable) == "" {
		missing = append(missing, "DDB_TRENDING_TABLE")
	}
	return missing
}

func missingPostgresSettings(cfg *config.Config) []string {
	var missing []string
	if strings.TrimSpace(cfg.DB.Host) == "" {
		missing = append(missing, "DB_HOST")
	}
	if strings.TrimSpace(cfg.DB.Name) == "" {
		missing = append(missing, "DB_NAME")
	}
	if strings.TrimSpace(cfg.DB.User) == "" {
		missing = append(missing, "DB_USER")
	}
	return missing
}

func PostgresOptions(cfg *config.Config) postgres.Options {
	return postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	}
}
