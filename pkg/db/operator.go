// Package db defines contracts of the relational store used by sparkdb.
package db

import (
	"context"

	"github.com/sparkify/sparkdb/pkg/config"
)

// Operator defines the interface of a relational store that is used over
// a single connection.
//
// Statements are positional-parameter SQL built with Placeholder. Write
// statements run inside a Tx, so a failed statement leaves no trace.
type Operator interface {
	// Connect opens the connection to the store.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the connection.
	Close() error

	// Placeholder renders positional parameters for this store.
	Placeholder(n int) string

	// Begin starts a transaction.
	Begin(ctx context.Context) (Tx, error)

	// Query runs a read-only statement.
	Query(ctx context.Context, query string, args ...any) (Rows, error)

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// Classify recognizes constraint violations reported by the store.
	// It returns nil for any other error.
	Classify(err error) *Violation
}

// Tx is a store transaction.
type Tx interface {
	Exec(ctx context.Context, query string, args ...any) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Rows iterates over the result of a query.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}
