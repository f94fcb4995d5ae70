package iodb

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"

	"github.com/sparkify/sparkdb/pkg/config"
	"github.com/sparkify/sparkdb/pkg/db"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// constraintTarget finds "table.column" in SQLite constraint messages like
// "NOT NULL constraint failed: songplays.song_id".
var constraintTarget = regexp.MustCompile(
	`constraint failed: ([A-Za-z_]\w*)\.([A-Za-z_]\w*)`,
)

// sqliteOperator implements db.Operator over a single SQLite connection.
type sqliteOperator struct {
	db *sql.DB
}

// NewSQLiteOperator creates a new SQLite operator (without connecting).
func NewSQLiteOperator() db.Operator {
	return &sqliteOperator{}
}

// Connect opens the SQLite file given in cfg.Path. The file is created
// if it does not exist.
func (s *sqliteOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	sqlDB, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return SQLiteConnectionError(cfg.Path, err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return SQLiteConnectionError(cfg.Path, err)
	}

	s.db = sqlDB
	return nil
}

// Close releases the database connection.
func (s *sqliteOperator) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *sqliteOperator) Placeholder(int) string {
	return "?"
}

// Begin starts a transaction.
func (s *sqliteOperator) Begin(ctx context.Context) (db.Tx, error) {
	if s.db == nil {
		return nil, NotConnectedError()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return sqlTx{tx: tx}, nil
}

// Query runs a read-only statement.
func (s *sqliteOperator) Query(
	ctx context.Context,
	query string,
	args ...any,
) (db.Rows, error) {
	if s.db == nil {
		return nil, NotConnectedError()
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return sqlRows{Rows: rows}, nil
}

// TableExists checks if a table exists in the SQLite file.
func (s *sqliteOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if s.db == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'table' AND name = ?
	`

	var count int
	err := s.db.QueryRowContext(ctx, query, tableName).Scan(&count)
	if err != nil {
		return false, TableExistsCheckError(tableName, err)
	}

	return count > 0, nil
}

// Classify recognizes SQLITE_CONSTRAINT errors.
func (s *sqliteOperator) Classify(err error) *db.Violation {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return nil
	}
	code := sqliteErr.Code()
	if code&0xff != sqlite3.SQLITE_CONSTRAINT {
		return nil
	}

	msg := sqliteErr.Error()
	res := &db.Violation{Kind: db.OtherViolation, Err: err}
	if m := constraintTarget.FindStringSubmatch(msg); m != nil {
		res.Table, res.Column = m[1], m[2]
	}

	switch {
	case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE,
		code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY,
		strings.Contains(msg, "UNIQUE constraint failed"):
		res.Kind = db.UniqueViolation
	case code == sqlite3.SQLITE_CONSTRAINT_NOTNULL,
		strings.Contains(msg, "NOT NULL constraint failed"):
		res.Kind = db.NotNullViolation
	}
	return res
}

type sqlTx struct {
	tx *sql.Tx
}

func (t sqlTx) Exec(ctx context.Context, query string, args ...any) error {
	_, err := t.tx.ExecContext(ctx, query, args...)
	return err
}

func (t sqlTx) Commit(context.Context) error {
	return t.tx.Commit()
}

func (t sqlTx) Rollback(context.Context) error {
	return t.tx.Rollback()
}

// sqlRows adapts *sql.Rows to db.Rows.
type sqlRows struct {
	*sql.Rows
}

func (r sqlRows) Close() {
	_ = r.Rows.Close()
}
