/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gnames/gn"
	"github.com/sparkify/sparkdb/internal/iodb"
	"github.com/sparkify/sparkdb/internal/iofs"
	"github.com/sparkify/sparkdb/internal/ioload"
	"github.com/sparkify/sparkdb/pkg/config"
	"github.com/spf13/cobra"
)

// getLoadCmd returns the load command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getLoadCmd() *cobra.Command {
	loadCmd := &cobra.Command{
		Use:   "load",
		Short: "Load song files and activity logs into the database",
		Long: `Extract song metadata and activity logs and load them into the
Sparkify tables.

This command:
  1. Connects to the database (PostgreSQL or SQLite)
  2. Checks that songs, artists, users, time and songplays tables exist
  3. Loads every song file: one songs row and one artists row per file
  4. Loads every log file: time, users and songplays rows for each
     NextSong event; songplays get song and artist ids by exact title,
     artist name and duration
  5. Reports progress and statistics

Duplicate rows and songplays of unknown songs are skipped with a notice.
Any other error stops the run.

Examples:
  # Load from directories of the config file
  sparkdb load

  # Load from other directories
  sparkdb load -s data/song_data -l data/log_data

  # Load into SQLite file set by SPARKDB_DATABASE_PATH
  sparkdb load --driver sqlite`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runLoad(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	loadCmd.Flags().StringP(
		"songs-dir", "s", "",
		"root directory of song metadata files",
	)
	loadCmd.Flags().StringP(
		"logs-dir", "l", "",
		"root directory of activity log files",
	)
	loadCmd.Flags().BoolP(
		"progress-bar", "p", false,
		"show a progress bar instead of progress lines",
	)
	loadCmd.Flags().StringP(
		"driver", "d", "",
		"database driver: postgres or sqlite",
	)

	return loadCmd
}

func runLoad(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	flags := []funcFlag{
		songsDirFlag, logsDirFlag, progressBarFlag, driverFlag,
	}
	for _, v := range flags {
		v(cmd)
	}
	cfg.Update(opts)

	if err := iofs.CheckSourceDirs(cfg.Load); err != nil {
		return err
	}

	op, err := iodb.New(cfg.Database.Driver)
	if err != nil {
		return err
	}
	if err = op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s</em>", dbName(&cfg.Database))
	slog.Info("Connected to database",
		"driver", cfg.Database.Driver,
		"database", dbName(&cfg.Database),
	)

	out := cmd.OutOrStdout()
	loader := ioload.New(op, ioload.OptOutput(out))
	return loader.Load(ctx, cfg)
}

func dbName(db *config.DatabaseConfig) string {
	if db.Driver == "sqlite" {
		return db.Path
	}
	return db.User + "@" + db.Host + "/" + db.Database
}
