package iogateway

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/sparkify/sparkdb/pkg/errcode"
)

func WriteError(query string, err error) error {
	msg := "Cannot write to the database: <em>%s</em>"
	vars := []any{err.Error()}
	return &gn.Error{
		Code: errcode.StoreWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("statement %q failed: %w", query, err),
	}
}

func LookupError(title, artist string, duration float64, err error) error {
	msg := "Cannot look up song <em>%s</em> by <em>%s</em> (%.5f)"
	vars := []any{title, artist, duration}
	return &gn.Error{
		Code: errcode.StoreLookupError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("song lookup failed: %w", err),
	}
}
