package iofs

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/sparkify/sparkdb/pkg/errcode"
)

var errNotDir = errors.New("not a directory")

// CreateDirError is returned when a directory of sparkdb cannot be made.
func CreateDirError(kind, dir string, err error) error {
	msg := `Cannot create sparkdb %s directory <em>%s</em>

Check permissions of your home directory.`
	vars := []any{kind, dir}
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot create %s directory %s: %w", kind, dir, err),
	}
}

// ConfigFileError is returned when the default config cannot be installed.
func ConfigFileError(path string, err error) error {
	msg := `Cannot install default sparkdb config <em>%s</em>

Connection settings can still be given with SPARKDB_* variables.`
	vars := []any{path}
	return &gn.Error{
		Code: errcode.CopyFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write config %s: %w", path, err),
	}
}

// ReadConfigError is returned when config.yaml cannot be read or decoded.
func ReadConfigError(path string, err error) error {
	msg := `Cannot read sparkdb config <em>%s</em>

Fix the file or delete it to get the default one on the next run.`
	vars := []any{path}
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read config %s: %w", path, err),
	}
}

// SourceDirError is returned when a song or log root is not usable.
func SourceDirError(kind, dir string, err error) error {
	msg := `The %s data directory <em>%s</em> is not available

Set it with load.%s_dir in config.yaml or with the --%ss-dir flag.`
	vars := []any{kind, dir, kind, kind}
	return &gn.Error{
		Code: errcode.SourceDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s directory %s: %w", kind, dir, err),
	}
}
