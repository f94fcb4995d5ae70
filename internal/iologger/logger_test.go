package iologger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/sparkify/sparkdb/pkg/config"
	"github.com/sparkify/sparkdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in  string
		out slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.out, parseLevel(tt.in))
		})
	}
}

func TestInit_File(t *testing.T) {
	orig := slog.Default()
	t.Cleanup(func() { slog.SetDefault(orig) })

	logDir := t.TempDir()
	cfg := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}

	require.NoError(t, Init(logDir, cfg, false))
	slog.Info("first message")
	slog.Debug("hidden message")

	require.NoError(t, Init(logDir, cfg, true))
	slog.Warn("second message")

	content, err := os.ReadFile(filepath.Join(logDir, LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"first message"`)
	assert.Contains(t, string(content), `"msg":"second message"`)
	assert.Contains(t, string(content), `"app":"sparkdb"`)
	assert.NotContains(t, string(content), "hidden message")

	require.NoError(t, Init(logDir, cfg, false))
	content, err = os.ReadFile(filepath.Join(logDir, LogFile))
	require.NoError(t, err)
	assert.Empty(t, content, "log file is truncated without append")
}

func TestInit_BadDir(t *testing.T) {
	orig := slog.Default()
	t.Cleanup(func() { slog.SetDefault(orig) })

	dir := filepath.Join(t.TempDir(), "missing")
	cfg := config.LogConfig{Destination: "file"}

	err := Init(dir, cfg, true)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
	assert.Equal(t, []any{filepath.Join(dir, LogFile)}, gnErr.Vars)
	assert.Contains(t, gnErr.Msg, "log.destination")
}

func TestNewHandler(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"json", `"msg":"loaded"`},
		{"text", "msg=loaded"},
		{"tint", "msg=loaded"},
		{"", `"msg":"loaded"`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			h := newHandler(&buf, config.LogConfig{Format: tt.format})
			slog.New(h).Info("loaded", "files", 3)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}
