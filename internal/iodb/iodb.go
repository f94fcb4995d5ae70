// Package iodb implements db.Operator for PostgreSQL (pgx) and SQLite
// (modernc.org/sqlite). Both keep exactly one connection open.
// This is an impure I/O package that implements contracts
// defined in pkg/.
package iodb

import (
	"github.com/sparkify/sparkdb/pkg/db"
)

// New creates an operator for the given driver name (without connecting).
func New(driver string) (db.Operator, error) {
	switch driver {
	case "postgres":
		return NewPgxOperator(), nil
	case "sqlite":
		return NewSQLiteOperator(), nil
	default:
		return nil, UnknownDriverError(driver)
	}
}
