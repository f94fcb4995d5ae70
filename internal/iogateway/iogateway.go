// Package iogateway executes single parameterized statements against the
// store. Every write runs in its own transaction and is committed at once.
// Two kinds of constraint violations are recovered from. Every other
// failure is reported to the caller as fatal.
package iogateway

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/sparkify/sparkdb/pkg/db"
	"github.com/sparkify/sparkdb/pkg/schema"
	"github.com/sparkify/sparkdb/pkg/transform"
)

// Status is the result class of a write.
type Status int

const (
	// Committed means the statement was executed and committed.
	Committed Status = iota
	// Skipped means the store rejected the row with a tolerated
	// violation. The transaction was rolled back and the run continues.
	Skipped
	// Failed means the statement could not be executed. The run must
	// stop.
	Failed
)

func (s Status) String() string {
	switch s {
	case Committed:
		return "committed"
	case Skipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Outcome is the result of a single write.
type Outcome struct {
	Status Status

	// Table is the target table, when known.
	Table string

	// Violation is set for Skipped outcomes.
	Violation *db.Violation

	// Err is set for Failed outcomes.
	Err error
}

// Gateway writes rows over one store connection.
type Gateway struct {
	op     db.Operator
	notice io.Writer
}

// New creates a Gateway. A one-line notice is written to notice for
// every skipped row. Nil notice discards them.
func New(op db.Operator, notice io.Writer) *Gateway {
	if notice == nil {
		notice = io.Discard
	}
	return &Gateway{op: op, notice: notice}
}

// Write executes one parameterized statement and commits it.
func (g *Gateway) Write(
	ctx context.Context,
	query string,
	args []any,
) Outcome {
	tx, err := g.op.Begin(ctx)
	if err != nil {
		return Outcome{Status: Failed, Err: WriteError(query, err)}
	}

	if err = tx.Exec(ctx, query, args...); err == nil {
		err = tx.Commit(ctx)
		if err == nil {
			return Outcome{Status: Committed}
		}
	}
	// Rollback error tells nothing new after a failed commit.
	_ = tx.Rollback(ctx)

	v := g.op.Classify(err)
	if !tolerated(v) {
		return Outcome{Status: Failed, Err: WriteError(query, err)}
	}

	slog.Warn("Row skipped",
		"kind", v.Kind.String(),
		"table", v.Table,
		"column", v.Column,
		"error", v.Err,
	)
	fmt.Fprintf(g.notice, "skipped row: %s\n", v)
	return Outcome{Status: Skipped, Table: v.Table, Violation: v}
}

// Insert writes a row into the table of its model.
func (g *Gateway) Insert(ctx context.Context, m schema.Model) Outcome {
	res := g.Write(ctx, schema.InsertSQL(m, g.op.Placeholder), schema.Values(m))
	res.Table = m.TableName()
	return res
}

// Resolve finds the song and artist ids by exact title, artist name and
// duration. Ids are returned only when exactly one pair matches.
func (g *Gateway) Resolve(
	ctx context.Context,
	title, artist string,
	duration float64,
) (transform.SongRef, error) {
	var res transform.SongRef

	q := schema.SongLookupSQL(g.op.Placeholder)
	rows, err := g.op.Query(ctx, q, title, artist, duration)
	if err != nil {
		return res, LookupError(title, artist, duration, err)
	}
	defer rows.Close()

	var matches int
	var songID, artistID string
	for rows.Next() {
		matches++
		if err = rows.Scan(&songID, &artistID); err != nil {
			return res, LookupError(title, artist, duration, err)
		}
	}
	if err = rows.Err(); err != nil {
		return res, LookupError(title, artist, duration, err)
	}

	if matches == 1 {
		res.SongID = &songID
		res.ArtistID = &artistID
	}
	return res, nil
}

// tolerated reports if a violation can be skipped: a unique violation on
// any table, or a NULL in the song_id column of songplays.
func tolerated(v *db.Violation) bool {
	if v == nil {
		return false
	}
	switch v.Kind {
	case db.UniqueViolation:
		return true
	case db.NotNullViolation:
		return v.Column == "song_id" &&
			(v.Table == "" || v.Table == schema.Songplay{}.TableName())
	default:
		return false
	}
}
