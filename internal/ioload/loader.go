// Package ioload implements lifecycle.Loader. It walks song and log
// directories, turns every file into rows and writes them through
// iogateway.
// This is an impure I/O package that reads files and writes to the store.
package ioload

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/sparkify/sparkdb/internal/iogateway"
	"github.com/sparkify/sparkdb/pkg/config"
	"github.com/sparkify/sparkdb/pkg/db"
	"github.com/sparkify/sparkdb/pkg/lifecycle"
	"github.com/sparkify/sparkdb/pkg/schema"
)

// loader implements the Loader interface.
type loader struct {
	operator db.Operator
	gw       *iogateway.Gateway
	out      io.Writer
	stats    *Stats
}

// Option configures the loader.
type Option func(*loader)

// OptOutput sets where progress lines and skip notices are written.
// Default is os.Stdout.
func OptOutput(w io.Writer) Option {
	return func(l *loader) {
		if w != nil {
			l.out = w
		}
	}
}

// New creates a new Loader that writes over op. The connection must be
// open before Load is called.
func New(op db.Operator, opts ...Option) lifecycle.Loader {
	res := &loader{operator: op, out: os.Stdout}
	for _, opt := range opts {
		opt(res)
	}
	res.gw = iogateway.New(op, res.out)
	return res
}

// Load processes all song files, then all log files.
func (l *loader) Load(ctx context.Context, cfg *config.Config) error {
	if l.operator == nil {
		return NotConnectedError()
	}

	startTime := time.Now()
	l.stats = newStats()
	slog.Info("Starting load",
		"song_dir", cfg.Load.SongDir,
		"log_dir", cfg.Load.LogDir,
		"pattern", cfg.Load.Pattern,
	)

	if err := ctx.Err(); err != nil {
		return CancelledError(err)
	}
	if err := l.checkTables(ctx); err != nil {
		return err
	}

	err := l.processDir(ctx, cfg, cfg.Load.SongDir, l.processSongFile)
	if err != nil {
		return err
	}

	err = l.processDir(ctx, cfg, cfg.Load.LogDir, l.processLogFile)
	if err != nil {
		return err
	}

	dur := time.Since(startTime)
	slog.Info("Load complete",
		"files", l.stats.Files,
		"committed", l.stats.TotalCommitted(),
		"skipped", l.stats.TotalSkipped(),
		"unresolved", l.stats.Unresolved,
		"duration", gnfmt.TimeString(dur.Seconds()),
	)
	gn.Info(l.stats.Summary(dur))
	return nil
}

// checkTables makes sure the schema is provisioned.
func (l *loader) checkTables(ctx context.Context) error {
	var missing []string
	for _, m := range schema.AllModels() {
		exists, err := l.operator.TableExists(ctx, m.TableName())
		if err != nil {
			return err
		}
		if !exists {
			missing = append(missing, m.TableName())
		}
	}
	if len(missing) > 0 {
		return MissingTablesError(missing)
	}
	return nil
}
