package ioload

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/sparkify/sparkdb/pkg/errcode"
	"github.com/sparkify/sparkdb/pkg/record"
)

// NotConnectedError creates an error for when load is attempted
// without database connection.
func NotConnectedError() error {
	msg := "Load attempted without database connection"
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  errors.New("not connected to database"),
	}
}

// MissingTablesError creates an error for a store without schema.
func MissingTablesError(tables []string) error {
	msg := `Database schema is not ready

<em>Missing tables:</em> %s

Create the tables before loading data.`
	vars := []any{strings.Join(tables, ", ")}
	return &gn.Error{
		Code: errcode.DBMissingTablesError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("missing tables: %v", tables),
	}
}

// MalformedInputError creates an error for a source file that cannot be
// parsed. The wrapped error matches record.ErrMalformed.
func MalformedInputError(path string, err error) error {
	msg := "Cannot parse <em>%s</em>: %s"
	vars := []any{path, err.Error()}
	if !errors.Is(err, record.ErrMalformed) {
		err = fmt.Errorf("%w: %w", record.ErrMalformed, err)
	}
	return &gn.Error{
		Code: errcode.MalformedInputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("malformed file %s: %w", path, err),
	}
}

func ReadFileError(path string, err error) error {
	msg := "Cannot read <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read %s: %w", path, err),
	}
}

func WalkDirError(dir string, err error) error {
	msg := "Cannot collect files from <em>%s</em>"
	vars := []any{dir}
	return &gn.Error{
		Code: errcode.WalkDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot walk %s: %w", dir, err),
	}
}

// CancelledError creates an error for a load stopped by context.
func CancelledError(err error) error {
	msg := "Load was cancelled"
	return &gn.Error{
		Code: errcode.LoadCancelledError,
		Msg:  msg,
		Err:  fmt.Errorf("load cancelled: %w", err),
	}
}
