package iodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sparkify/sparkdb/pkg/config"
	"github.com/sparkify/sparkdb/pkg/db"
)

// SQLSTATE codes of integrity constraint violations.
const (
	pgIntegrityClass   = "23"
	pgUniqueViolation  = "23505"
	pgNotNullViolation = "23502"
)

// pgxOperator implements db.Operator over a single pgx connection.
type pgxOperator struct {
	conn *pgx.Conn
}

// NewPgxOperator creates a new PostgreSQL operator
// (without connecting).
func NewPgxOperator() db.Operator {
	return &pgxOperator{}
}

// Connect establishes a connection to PostgreSQL.
func (p *pgxOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	// Verify connection
	if err := conn.Ping(ctx); err != nil {
		conn.Close(ctx)
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	p.conn = conn
	return nil
}

// Close releases the database connection.
func (p *pgxOperator) Close() error {
	if p.conn == nil {
		return nil
	}
	err := p.conn.Close(context.Background())
	p.conn = nil
	return err
}

func (p *pgxOperator) Placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

// Begin starts a transaction.
func (p *pgxOperator) Begin(ctx context.Context) (db.Tx, error) {
	if p.conn == nil {
		return nil, NotConnectedError()
	}
	tx, err := p.conn.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return pgxTx{tx: tx}, nil
}

// Query runs a read-only statement. pgx.Rows satisfies db.Rows.
func (p *pgxOperator) Query(
	ctx context.Context,
	query string,
	args ...any,
) (db.Rows, error) {
	if p.conn == nil {
		return nil, NotConnectedError()
	}
	return p.conn.Query(ctx, query, args...)
}

// TableExists checks if a table exists in the current
// database.
func (p *pgxOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if p.conn == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)
	`

	var exists bool
	err := p.conn.QueryRow(ctx, query, tableName).Scan(&exists)
	if err != nil {
		return false, TableExistsCheckError(tableName, err)
	}

	return exists, nil
}

// Classify recognizes SQLSTATE class 23 errors.
func (p *pgxOperator) Classify(err error) *db.Violation {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	if len(pgErr.Code) < 2 || pgErr.Code[:2] != pgIntegrityClass {
		return nil
	}

	res := &db.Violation{
		Kind:   db.OtherViolation,
		Table:  pgErr.TableName,
		Column: pgErr.ColumnName,
		Err:    err,
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		res.Kind = db.UniqueViolation
	case pgNotNullViolation:
		res.Kind = db.NotNullViolation
	}
	return res
}

type pgxTx struct {
	tx pgx.Tx
}

func (t pgxTx) Exec(ctx context.Context, query string, args ...any) error {
	_, err := t.tx.Exec(ctx, query, args...)
	return err
}

func (t pgxTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t pgxTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
