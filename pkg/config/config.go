package config

import (
	"fmt"
	"time"

	"cinefind/movie"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Empty = new(Config)

// Trending store backends.
const (
	TrendingStoreDynamoDB = "dynamodb"
	TrendingStorePostgres = "postgres"
)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV"`
	Port         int    `envconfig:"PORT" default:"8080"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`
	LogFile      string `envconfig:"LOG_FILE" default:"cinefind.log"`

	TMDB struct {
		APIKey    string        `envconfig:"TMDB_API_KEY"`
		BaseURL   string        `envconfig:"TMDB_BASE_URL" default:"https://api.themoviedb.org/3"`
		Language  string        `envconfig:"TMDB_LANGUAGE" default:"it-IT"`
		RateLimit float64       `envconfig:"TMDB_RATE_LIMIT" default:"40"`
		Timeout   time.Duration `envconfig:"TMDB_TIMEOUT" default:"10s"`
	}

	// TrendingStore selects the counter backend. Empty disables the feature.
	TrendingStore string `envconfig:"TRENDING_STORE"`

	DB struct {
		Driver    string `envconfig:"DB_DRIVER"`
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
	DynamoDB struct {
		Region        string `envconfig:"DDB_REGION"`
		Endpoint      string `envconfig:"DDB_ENDPOINT"`
		AccessKey     string `envconfig:"DDB_ACCESS_KEY"`
		SecretKey     string `envconfig:"DDB_SECRET_KEY"`
		SessionToken  string `envconfig:"DDB_SESSION_TOKEN"`
		TrendingTable string `envconfig:"DDB_TRENDING_TABLE"`
		TrendingIndex string `envconfig:"DDB_TRENDING_INDEX" default:"count-index"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}

// Catalog returns the settings the query builder and fetcher are built from.
func (c *Config) Catalog() movie.CatalogConfig {
	return movie.CatalogConfig{
		BaseURL:  c.TMDB.BaseURL,
		Language: c.TMDB.Language,
		APIKey:   c.TMDB.APIKey,
	}
}
