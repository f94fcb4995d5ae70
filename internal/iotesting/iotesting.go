// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/sparkify/sparkdb/internal/iodb"
	"github.com/sparkify/sparkdb/pkg/config"
	"github.com/sparkify/sparkdb/pkg/db"
	"github.com/sparkify/sparkdb/pkg/schema"
)

const (
	// TestDatabaseName is the database name used for all PostgreSQL
	// integration tests. Tests never touch a production database.
	TestDatabaseName = "sparkdb_test"
)

// GetTestConfig returns a configuration suitable for integration tests.
// Database connection settings can be overridden with SPARKDB_DATABASE_*
// environment variables. The database name is always TestDatabaseName.
func GetTestConfig() *config.Config {
	var opts []config.Option
	if v := os.Getenv("SPARKDB_DATABASE_HOST"); v != "" {
		opts = append(opts, config.OptDatabaseHost(v))
	}
	if v := os.Getenv("SPARKDB_DATABASE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			opts = append(opts, config.OptDatabasePort(port))
		}
	}
	if v := os.Getenv("SPARKDB_DATABASE_USER"); v != "" {
		opts = append(opts, config.OptDatabaseUser(v))
	}
	if v := os.Getenv("SPARKDB_DATABASE_PASSWORD"); v != "" {
		opts = append(opts, config.OptDatabasePassword(v))
	}
	opts = append(opts, config.OptDatabaseDatabase(TestDatabaseName))

	cfg := config.New()
	cfg.Update(opts)
	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}

// CreateSchema creates all sparkdb tables in one transaction.
func CreateSchema(ctx context.Context, op db.Operator) error {
	tx, err := op.Begin(ctx)
	if err != nil {
		return err
	}
	for _, m := range schema.AllModels() {
		if err = tx.Exec(ctx, m.TableDDL()); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}
	}
	return tx.Commit(ctx)
}

// DropSchema removes all sparkdb tables.
func DropSchema(ctx context.Context, op db.Operator) error {
	tx, err := op.Begin(ctx)
	if err != nil {
		return err
	}
	models := schema.AllModels()
	for i := len(models) - 1; i >= 0; i-- {
		q := "DROP TABLE IF EXISTS " + models[i].TableName()
		if err = tx.Exec(ctx, q); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}
	}
	return tx.Commit(ctx)
}

// SQLiteConfig returns a configuration that points the "sqlite" driver to
// a fresh file in a temporary directory of the test.
func SQLiteConfig(t *testing.T) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sparkify.sqlite")
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabaseDriver("sqlite"),
		config.OptDatabasePath(path),
	})
	return cfg
}

// NewSQLite returns a connected SQLite operator with an empty schema.
// The connection is closed when the test finishes.
func NewSQLite(t *testing.T) db.Operator {
	t.Helper()
	ctx := context.Background()

	cfg := SQLiteConfig(t)
	op := iodb.NewSQLiteOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		t.Fatalf("Failed to open SQLite database: %v", err)
	}
	t.Cleanup(func() { op.Close() })

	if err := CreateSchema(ctx, op); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return op
}

// NewPostgres returns a connected PostgreSQL operator with an empty
// schema in TestDatabaseName. The test is skipped in short mode or when
// PostgreSQL cannot be reached. Tables are dropped when the test
// finishes.
func NewPostgres(t *testing.T) db.Operator {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, GetTestDatabaseConfig()); err != nil {
		t.Skipf("PostgreSQL is not available: %v", err)
	}
	if err := DropSchema(ctx, op); err != nil {
		op.Close()
		t.Fatalf("Failed to drop schema: %v", err)
	}
	if err := CreateSchema(ctx, op); err != nil {
		op.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}
	t.Cleanup(func() {
		_ = DropSchema(context.Background(), op)
		op.Close()
	})
	return op
}

// Count returns the number of rows in a table.
func Count(t *testing.T, op db.Operator, table string) int {
	t.Helper()
	rows, err := op.Query(context.Background(), "SELECT COUNT(*) FROM "+table)
	if err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	defer rows.Close()

	var res int
	if rows.Next() {
		if err := rows.Scan(&res); err != nil {
			t.Fatalf("Failed to scan count of %s: %v", table, err)
		}
	}
	return res
}
