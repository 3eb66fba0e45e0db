package test_utils

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stay-js/job-keeper/internal/config"
	"github.com/stay-js/job-keeper/internal/database"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	dbName     = "jobkeeper"
	dbUser     = "test_jobkeeper"
	dbPassword = "test_jobkeeper"
)

var (
	startOnce sync.Once
	pool      *pgxpool.Pool
	startErr  error
)

func startPostgres(ctx context.Context) (*pgxpool.Pool, error) {
	container, err := postgres.Run(
		ctx, "postgres:18.1-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Errorf("failed to start container: %s", err)
		return nil, err
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, err
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return nil, err
	}
	log.Infof("Postgres container started at %s:%d", host, port.Int())

	cfg := config.Database{
		Host:   host,
		Port:   port.Int(),
		User:   dbUser,
		Pass:   dbPassword,
		Name:   dbName,
		Schema: "public",
	}
	if err := database.Migrate(cfg); err != nil {
		return nil, err
	}
	return database.Open(ctx, cfg)
}

// TestDB returns a pool connected to a migrated PostgreSQL container shared by the whole
// test binary. All tables are truncated before it is handed out. Tests are skipped in
// -short mode or when no container runtime is available.
func TestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	startOnce.Do(func() {
		pool, startErr = startPostgres(context.Background())
	})
	if startErr != nil {
		t.Fatalf("failed to start postgres: %v", startErr)
	}

	_, err := pool.Exec(context.Background(),
		`TRUNCATE jobs, positions, expenses, user_preferences RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
	return pool
}
