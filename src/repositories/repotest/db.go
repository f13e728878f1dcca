package repotest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// DatabaseURLEnv names the variable holding the connection string of a
// disposable test database. Database tests are skipped when it is unset.
const DatabaseURLEnv = "ASSETS_TEST_DATABASE_URL"

var testDB *pgxpool.Pool

// SetupTestDB connects to the test database, applies the migrations and
// truncates every table.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv(DatabaseURLEnv)
	if dsn == "" {
		t.Skipf("%s not set", DatabaseURLEnv)
	}
	if testDB != nil {
		TruncateTables(t, testDB)
		return testDB
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		t.Fatalf("Failed to parse database config: %v", err)
	}
	config.MaxConns = 5
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		t.Fatalf("Failed to ping database: %v\nPlease check your database configuration and ensure it's running.", err)
	}

	if err := migrate(pool); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	TruncateTables(t, pool)
	testDB = pool
	return pool
}

func migrate(pool *pgxpool.Pool) error {
	root, err := serviceRoot()
	if err != nil {
		return err
	}
	// closing this handle would close the shared pool as well
	db := stdlib.OpenDBFromPool(pool)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, filepath.Join(root, "migrations"))
}

// serviceRoot walks up from the working directory to the one holding go.mod.
func serviceRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(wd, "go.mod")); err == nil {
			return wd, nil
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			return "", fmt.Errorf("go.mod not found in any parent directory")
		}
		wd = parent
	}
}

func TruncateTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	tables := []string{
		"service_records",
		"retail_assets",
		"it_assets",
		"outlets",
	}
	for _, table := range tables {
		if _, err := pool.Exec(context.Background(), fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)); err != nil {
			t.Fatalf("Failed to truncate table %s: %v", table, err)
		}
	}
}
