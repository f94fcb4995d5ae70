package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/sparkify/sparkdb/internal/iodb"
	"github.com/sparkify/sparkdb/internal/iotesting"
	"github.com/sparkify/sparkdb/pkg/config"
	"github.com/sparkify/sparkdb/pkg/db"
	"github.com/sparkify/sparkdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSong = `{"song_id":"S1","title":"T","artist_id":"A1","year":2000,` +
		`"duration":200.5,"artist_name":"N","artist_location":"L",` +
		`"artist_latitude":1.0,"artist_longitude":2.0}`

	testLog = `{"page":"NextSong","ts":1600000000000,"userId":"7",` +
		`"firstName":"A","lastName":"B","gender":"F","level":"free",` +
		`"song":"T","artist":"N","length":200.5,"sessionId":5,` +
		`"location":"X","userAgent":"UA"}` + "\n" +
		`{"page":"Home","ts":1600000005000,"userId":"7",` +
		`"firstName":"A","lastName":"B","gender":"F","level":"free",` +
		`"sessionId":5,"location":"X","userAgent":"UA"}` + "\n"
)

// loadEnv prepares a temporary home, data directories and SQLite file.
// It returns song and log directories and the database path.
func loadEnv(t *testing.T, withSchema bool) (string, string, string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)

	songDir := filepath.Join(home, "data", "song_data")
	logDir := filepath.Join(home, "data", "log_data")
	songFile := filepath.Join(songDir, "A", "B", "S1.json")
	logFile := filepath.Join(logDir, "2018", "11", "events.json")
	for f, content := range map[string]string{songFile: testSong, logFile: testLog} {
		require.NoError(t, os.MkdirAll(filepath.Dir(f), 0755))
		require.NoError(t, os.WriteFile(f, []byte(content), 0644))
	}

	dbPath := filepath.Join(home, "sparkify.sqlite")
	if withSchema {
		op := openSQLite(t, dbPath)
		require.NoError(t, iotesting.CreateSchema(context.Background(), op))
		require.NoError(t, op.Close())
	}
	t.Setenv("SPARKDB_DATABASE_PATH", dbPath)

	return songDir, logDir, dbPath
}

func openSQLite(t *testing.T, path string) db.Operator {
	t.Helper()
	op := iodb.NewSQLiteOperator()
	err := op.Connect(context.Background(), &config.DatabaseConfig{Path: path})
	require.NoError(t, err)
	return op
}

func TestLoadCmd_Flags(t *testing.T) {
	cmd := getLoadCmd()
	for _, v := range []struct{ long, short string }{
		{"songs-dir", "s"},
		{"logs-dir", "l"},
		{"progress-bar", "p"},
		{"driver", "d"},
	} {
		f := cmd.Flags().Lookup(v.long)
		require.NotNil(t, f, v.long)
		assert.Equal(t, v.short, f.Shorthand)
	}
}

func TestLoadCmd_SQLite(t *testing.T) {
	songDir, logDir, dbPath := loadEnv(t, true)

	cmd := getRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{
		"load", "-d", "sqlite", "-s", songDir, "-l", logDir,
	})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "1 files found in "+songDir)
	assert.Contains(t, output, "1 files found in "+logDir)
	assert.Contains(t, output, "1/1 files processed.")

	_, err = os.Stat(config.ConfigFilePath(os.Getenv("HOME")))
	assert.NoError(t, err, "Config file should be created on first run")

	op := openSQLite(t, dbPath)
	defer op.Close()
	for table, count := range map[string]int{
		"songs":     1,
		"artists":   1,
		"users":     1,
		"time":      1,
		"songplays": 1,
	} {
		assert.Equal(t, count, iotesting.Count(t, op, table), table)
	}
}

func TestLoadCmd_EnvDirs(t *testing.T) {
	songDir, logDir, dbPath := loadEnv(t, true)
	t.Setenv("SPARKDB_DATABASE_DRIVER", "sqlite")
	t.Setenv("SPARKDB_LOAD_SONG_DIR", songDir)
	t.Setenv("SPARKDB_LOAD_LOG_DIR", logDir)

	cmd := getRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"load", "--progress-bar"})

	require.NoError(t, cmd.Execute())

	op := openSQLite(t, dbPath)
	defer op.Close()
	assert.Equal(t, 1, iotesting.Count(t, op, "songplays"))
}

func TestLoadCmd_NoSchema(t *testing.T) {
	songDir, logDir, _ := loadEnv(t, false)

	cmd := getRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{
		"load", "-d", "sqlite", "-s", songDir, "-l", logDir,
	})

	err := cmd.Execute()
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBMissingTablesError, gnErr.Code)
}

func TestLoadCmd_MissingSongsDir(t *testing.T) {
	_, logDir, dbPath := loadEnv(t, true)
	missing := filepath.Join(os.Getenv("HOME"), "no_songs")

	cmd := getRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{
		"load", "-d", "sqlite", "-s", missing, "-l", logDir,
	})

	err := cmd.Execute()
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.SourceDirError, gnErr.Code)
	assert.Equal(t, missing, gnErr.Vars[1])

	op := openSQLite(t, dbPath)
	defer op.Close()
	assert.Equal(t, 0, iotesting.Count(t, op, "songs"),
		"nothing should be written when a source root is missing")
}
