package postgres_test

import (
	"context"
	"testing"
	"time"

	"cinefind/postgres"

	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

const (
	testImage      = "docker.io/postgres:15.2-alpine"
	testPassword   = "123456"
	migrationsPath = "../migrations"
)

func TestMigrations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	db := newTestDB(t, "migrations")
	applied := migrateTestDB(t, db, migrate.Up)
	assert.Positive(t, applied)

	var user string
	require.NoError(t, db.Raw("SELECT current_user").Scan(&user).Error)
	assert.Equal(t, "migrations", user)

	assert.True(t, db.Migrator().HasTable(&postgres.TrendingModel{}))
	assert.True(t, db.Migrator().HasIndex(&postgres.TrendingModel{}, "trending_searches_count_idx"))

	migrateTestDB(t, db, migrate.Down)
	assert.False(t, db.Migrator().HasTable(&postgres.TrendingModel{}))
}

func TestNewConnection_Error(t *testing.T) {
	_, err := postgres.NewConnection(postgres.Options{
		DBName:   "cinefind",
		DBUser:   "nobody",
		Password: "wrong",
		Host:     "invalidhost",
		Port:     "5432",
		SSLMode:  true,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: open")
}

func TestOptions_DSN(t *testing.T) {
	opts := postgres.Options{
		DBName:   "cinefind",
		DBUser:   "app",
		Password: "secret",
		Host:     "localhost",
		Port:     "5432",
	}
	assert.Equal(t, "host=localhost port=5432 user=app password=secret dbname=cinefind sslmode=disable", opts.DSN())

	opts.SSLMode = true
	assert.Contains(t, opts.DSN(), "sslmode=require")
}

func migrateTestDB(t testing.TB, db *gorm.DB, dir migrate.MigrationDirection) int {
	t.Helper()

	sqlDB, err := db.DB()
	require.NoError(t, err)

	n, err := migrate.Exec(sqlDB, "postgres", &migrate.FileMigrationSource{Dir: migrationsPath}, dir)
	require.NoError(t, err)
	return n
}

// newTestDB starts a throwaway postgres whose database and user are both
// named name.
func newTestDB(t testing.TB, name string) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	cont, err := pgcontainer.RunContainer(ctx,
		testcontainers.WithImage(testImage),
		pgcontainer.WithDatabase(name),
		pgcontainer.WithUsername(name),
		pgcontainer.WithPassword(testPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, cont.Terminate(ctx))
	})

	host, err := cont.Host(ctx)
	require.NoError(t, err)
	port, err := cont.MappedPort(ctx, "5432")
	require.NoError(t, err)

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   name,
		DBUser:   name,
		Password: testPassword,
		Host:     host,
		Port:     port.Port(),
	})
	require.NoError(t, err)
	return db
}
