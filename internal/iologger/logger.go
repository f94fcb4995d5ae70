// Package iologger sets up the slog logger used by sparkdb commands. Every
// record carries the application name, and loads append to one file per
// log directory.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sparkify/sparkdb/pkg/config"
)

// LogFile is the name of the log file in the log directory.
const LogFile = "sparkdb.log"

// Init replaces the default slog logger. With "file" destination the log
// goes to LogFile in logDir, truncated unless append is true.
func Init(logDir string, cfg config.LogConfig, append bool) error {
	w, err := openWriter(logDir, cfg.Destination, append)
	if err != nil {
		return err
	}

	logger := slog.New(newHandler(w, cfg)).With("app", config.AppName)
	slog.SetDefault(logger)
	return nil
}

func openWriter(logDir, dest string, append bool) (io.Writer, error) {
	switch dest {
	case "stdout":
		return os.Stdout, nil
	case "file":
	default:
		return os.Stderr, nil
	}

	path := filepath.Join(logDir, LogFile)
	flag := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if append {
		flag = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		return nil, LogFileError(path, err)
	}
	return f, nil
}

func newHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if cfg.Format == "text" || cfg.Format == "tint" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
