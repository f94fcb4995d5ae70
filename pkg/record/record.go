// Package record reads raw source documents: song metadata files (one JSON
// object per file) and activity log files (one JSON object per line).
//
// Parsing is strict. Anything that cannot be read into the expected shape
// is reported as an error wrapping ErrMalformed, and the whole document is
// rejected.
package record

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/gnames/gnfmt"
)

// ErrMalformed is wrapped by every parsing error of this package.
var ErrMalformed = errors.New("malformed input")

var enc = gnfmt.GNjson{}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

// ID is an identifier that arrives either as a JSON string or as a JSON
// number, depending on the producer of the log. It is always kept as text.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
	case len(data) > 0 && data[0] == '"':
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		*id = ID(s)
	default:
		if _, err := strconv.ParseFloat(string(data), 64); err != nil {
			return fmt.Errorf("cannot use %s as an identifier", data)
		}
		*id = ID(data)
	}
	return nil
}
