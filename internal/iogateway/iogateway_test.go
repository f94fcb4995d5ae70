package iogateway_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/sparkify/sparkdb/internal/iogateway"
	"github.com/sparkify/sparkdb/internal/iotesting"
	"github.com/sparkify/sparkdb/pkg/db"
	"github.com/sparkify/sparkdb/pkg/errcode"
	"github.com/sparkify/sparkdb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestInsert(t *testing.T) {
	op := iotesting.NewSQLite(t)
	ctx := context.Background()
	var notice bytes.Buffer
	gw := iogateway.New(op, &notice)

	song := schema.Song{
		SongID: "S1", Title: "T", ArtistID: "A1", Year: 2000, Duration: 200.5,
	}

	res := gw.Insert(ctx, song)
	assert.Equal(t, iogateway.Committed, res.Status)
	assert.Equal(t, "songs", res.Table)
	assert.Nil(t, res.Err)
	assert.Empty(t, notice.String())

	t.Run("duplicate is skipped", func(t *testing.T) {
		res := gw.Insert(ctx, song)
		assert.Equal(t, iogateway.Skipped, res.Status)
		assert.Equal(t, "songs", res.Table)
		require.NotNil(t, res.Violation)
		assert.Equal(t, db.UniqueViolation, res.Violation.Kind)
		assert.Contains(t, notice.String(), "unique violation")
		assert.Equal(t, 1, iotesting.Count(t, op, "songs"))
	})

	t.Run("null song_id is skipped", func(t *testing.T) {
		notice.Reset()
		sp := schema.Songplay{
			SongplayID: "p1",
			StartTime:  time.UnixMilli(1600000000000).UTC(),
			UserID:     "7",
			SessionID:  5,
		}
		res := gw.Insert(ctx, sp)
		assert.Equal(t, iogateway.Skipped, res.Status)
		require.NotNil(t, res.Violation)
		assert.Equal(t, db.NotNullViolation, res.Violation.Kind)
		assert.Equal(t, "song_id", res.Violation.Column)
		assert.Equal(t, 1, bytes.Count(notice.Bytes(), []byte("\n")),
			"one notice line per skipped row")
		assert.Equal(t, 0, iotesting.Count(t, op, "songplays"))
	})

	t.Run("songplay with song is committed", func(t *testing.T) {
		sp := schema.Songplay{
			SongplayID: "p2",
			StartTime:  time.UnixMilli(1600000000000).UTC(),
			UserID:     "7",
			SongID:     strPtr("S1"),
			ArtistID:   strPtr("A1"),
			SessionID:  5,
		}
		res := gw.Insert(ctx, sp)
		assert.Equal(t, iogateway.Committed, res.Status)
		assert.Equal(t, 1, iotesting.Count(t, op, "songplays"))
	})
}

func TestWrite_Failed(t *testing.T) {
	op := iotesting.NewSQLite(t)
	ctx := context.Background()
	gw := iogateway.New(op, nil)

	tests := []struct {
		name  string
		query string
		args  []any
	}{
		{
			name:  "other not-null column",
			query: "INSERT INTO songplays (songplay_id, user_id, song_id, session_id) VALUES (?, ?, ?, ?)",
			args:  []any{"p1", nil, "S1", 1},
		},
		{
			name:  "missing table",
			query: "INSERT INTO nowhere (id) VALUES (?)",
			args:  []any{1},
		},
		{
			name:  "syntax",
			query: "INSERT INTO",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := gw.Write(ctx, tt.query, tt.args)
			assert.Equal(t, iogateway.Failed, res.Status)
			require.Error(t, res.Err)

			gnErr, ok := res.Err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, errcode.StoreWriteError, gnErr.Code)
		})
	}
	assert.Equal(t, 0, iotesting.Count(t, op, "songplays"))
}

func TestResolve(t *testing.T) {
	op := iotesting.NewSQLite(t)
	ctx := context.Background()
	gw := iogateway.New(op, nil)

	rows := []schema.Model{
		schema.Song{SongID: "S1", Title: "T", ArtistID: "A1", Duration: 200.5},
		schema.Artist{ArtistID: "A1", Name: "N"},
		schema.Song{SongID: "S2", Title: "Twin", ArtistID: "A1", Duration: 100},
		schema.Song{SongID: "S3", Title: "Twin", ArtistID: "A1", Duration: 100},
	}
	for _, v := range rows {
		require.Equal(t, iogateway.Committed, gw.Insert(ctx, v).Status)
	}

	tests := []struct {
		name     string
		title    string
		artist   string
		duration float64
		songID   string
		artistID string
	}{
		{"exact match", "T", "N", 200.5, "S1", "A1"},
		{"wrong duration", "T", "N", 200.4, "", ""},
		{"wrong artist", "T", "M", 200.5, "", ""},
		{"wrong title", "t", "N", 200.5, "", ""},
		{"ambiguous", "Twin", "N", 100, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := gw.Resolve(ctx, tt.title, tt.artist, tt.duration)
			require.NoError(t, err)
			if tt.songID == "" {
				assert.False(t, ref.Resolved())
				assert.Nil(t, ref.SongID)
				assert.Nil(t, ref.ArtistID)
				return
			}
			require.True(t, ref.Resolved())
			assert.Equal(t, tt.songID, *ref.SongID)
			assert.Equal(t, tt.artistID, *ref.ArtistID)
		})
	}
}

// brokenOperator fails to start transactions and queries.
type brokenOperator struct {
	db.Operator
}

var errBroken = errors.New("connection lost")

func (brokenOperator) Placeholder(int) string { return "?" }

func (brokenOperator) Begin(context.Context) (db.Tx, error) {
	return nil, errBroken
}

func (brokenOperator) Query(context.Context, string, ...any) (db.Rows, error) {
	return nil, errBroken
}

func TestBrokenConnection(t *testing.T) {
	ctx := context.Background()
	gw := iogateway.New(brokenOperator{}, nil)

	res := gw.Insert(ctx, schema.User{UserID: "1"})
	assert.Equal(t, iogateway.Failed, res.Status)
	assert.ErrorIs(t, res.Err.(*gn.Error).Err, errBroken)

	_, err := gw.Resolve(ctx, "T", "N", 1)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.StoreLookupError, gnErr.Code)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "committed", iogateway.Committed.String())
	assert.Equal(t, "skipped", iogateway.Skipped.String())
	assert.Equal(t, "failed", iogateway.Failed.String())
}
