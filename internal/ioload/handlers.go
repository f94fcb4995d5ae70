package ioload

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/sparkify/sparkdb/internal/iogateway"
	"github.com/sparkify/sparkdb/pkg/record"
	"github.com/sparkify/sparkdb/pkg/schema"
	"github.com/sparkify/sparkdb/pkg/transform"
)

// processSongFile writes the song and the artist of a song file.
func (l *loader) processSongFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return ReadFileError(path, err)
	}

	song, err := record.ParseSong(data)
	if err != nil {
		return MalformedInputError(path, err)
	}

	if err = l.insert(ctx, transform.SongRow(song)); err != nil {
		return err
	}
	return l.insert(ctx, transform.ArtistRow(song))
}

// processLogFile writes time, user and songplay rows of the NextSong
// events of a log file.
func (l *loader) processLogFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return ReadFileError(path, err)
	}
	defer f.Close()

	evs, err := record.ParseLog(f)
	if err != nil {
		return MalformedInputError(path, err)
	}
	evs = transform.NextSongs(evs)

	for _, v := range transform.TimeRows(evs) {
		if err = l.insert(ctx, v); err != nil {
			return err
		}
	}

	for _, v := range transform.UserRows(evs) {
		if err = l.insert(ctx, v); err != nil {
			return err
		}
	}

	plays, err := transform.SongplayRows(ctx, evs, l.gw, uuid.NewString)
	if err != nil {
		return interrupted(ctx, err)
	}
	for _, v := range plays {
		if err = l.insert(ctx, v); err != nil {
			return err
		}
	}
	return nil
}

// insert writes one row and accounts for the outcome. Only a failed
// write returns an error. A row is not started after an interrupt.
func (l *loader) insert(ctx context.Context, m schema.Model) error {
	if err := ctx.Err(); err != nil {
		return CancelledError(err)
	}
	res := l.gw.Insert(ctx, m)
	if res.Status == iogateway.Failed {
		return interrupted(ctx, res.Err)
	}
	l.stats.add(res)
	return nil
}

// interrupted reports a store error caused by an interrupt as a
// cancelled load.
func interrupted(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return CancelledError(ctxErr)
	}
	return err
}
