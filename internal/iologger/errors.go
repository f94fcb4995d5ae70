package iologger

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/sparkify/sparkdb/pkg/errcode"
)

// LogFileError is returned when the sparkdb log file cannot be opened.
func LogFileError(path string, err error) error {
	msg := `Cannot open sparkdb log <em>%s</em>

Set log.destination to stderr in config.yaml or SPARKDB_LOG_DESTINATION.`
	vars := []any{path}
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot open log %s: %w", path, err),
	}
}
