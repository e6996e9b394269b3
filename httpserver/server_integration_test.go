package httpserver_test

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"cinefind/httpserver"
	"cinefind/postgres"
	"cinefind/trending"

	"github.com/docker/go-connections/nat"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

func TestTrendingIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	db := MustCreateTestDatabase(t)
	MigrateTestDatabase(t, db, "../migrations")
	server := MustCreateServer(t, db)

	for _, body := range []string{
		`{"title":"Matrix","poster_path":"/m.jpg"}`,
		`{"title":"Matrix","poster_path":"/m.jpg"}`,
	} {
		rec := serve(server, http.MethodPost, "/api/movies/603/open", body)
		require.Equal(t, http.StatusAccepted, rec.Code)
	}
	rec := serve(server, http.MethodPost, "/api/movies/438631/open", `{"title":"Dune"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	rec = serve(server, http.MethodGet, "/api/trending", "")
	require.Equal(t, http.StatusOK, rec.Code)

	res := decodeResult[struct {
		Data []trending.Entry `json:"data"`
	}](t, rec)
	require.Len(t, res.Data, 2)
	assert.Equal(t, trending.Entry{
		SearchTerm: "Matrix",
		Count:      2,
		MovieID:    603,
		PosterURL:  "https://image.tmdb.org/t/p/w500/m.jpg",
	}, res.Data[0])
	assert.Equal(t, "Dune", res.Data[1].SearchTerm)
	assert.Equal(t, "", res.Data[1].PosterURL)
}

func MustCreateServer(t testing.TB, db *gorm.DB) *httpserver.Server {
	t.Helper()

	trendingService := trending.NewUsecase(postgres.NewTrendingRepository(db), slog.Default())

	server := httpserver.Default(testConfig())
	server.TrendingService = trendingService

	return server
}

// MustCreateTestDatabase creates a new testcontainer PostgreSQL database and returns a GORM DB connection
func MustCreateTestDatabase(t testing.TB) *gorm.DB {
	t.Helper()
	ctx := context.Background()
	dbName, dbUser, dbPass := "test_trending", "test", "testpass"
	postgre, err := pgcontainer.RunContainer(ctx,
		testcontainers.WithImage("docker.io/postgres:15.2-alpine"),
		pgcontainer.WithDatabase(dbName),
		pgcontainer.WithUsername(dbUser),
		pgcontainer.WithPassword(dbPass),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		err := postgre.Terminate(ctx)
		assert.NoError(t, err, "failed to terminate postgres container")
	})

	host, port := extractHostAndPort(t, ctx, postgre)
	db, err := postgres.NewConnection(postgres.Options{
		DBName:   dbName,
		DBUser:   dbUser,
		Password: dbPass,
		Host:     host,
		Port:     port.Port(),
	})
	require.NoError(t, err, "failed to connect to postgres database")

	return db
}

func extractHostAndPort(t testing.TB, ctx context.Context, postgre *pgcontainer.PostgresContainer) (string, nat.Port) {
	t.Helper()
	host, err := postgre.Host(ctx)
	assert.NoError(t, err, "failed to get container host")

	port, err := postgre.MappedPort(ctx, "5432")
	assert.NoError(t, err, "failed to get mapped port")
	return host, port
}

// MigrateTestDatabase runs all migration files against the test database
func MigrateTestDatabase(t testing.TB, db *gorm.DB, migrationPath string) {
	t.Helper()
	migrations := &migrate.FileMigrationSource{
		Dir: migrationPath,
	}

	sqlDB, err := db.DB()
	require.NoError(t, err, "failed to get sql.DB from gorm.DB")

	_, err = migrate.Exec(sqlDB, "postgres", migrations, migrate.Up)
	require.NoError(t, err, "failed to run database migrations")
}
