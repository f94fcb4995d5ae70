// Package lifecycle defines contracts of the stages of a sparkdb run.
package lifecycle

import (
	"context"

	"github.com/sparkify/sparkdb/pkg/config"
)

// Loader defines the interface of the extract/load stage.
//
// Load reads song files under cfg.Load.SongDir, then log files under
// cfg.Load.LogDir, and writes the derived rows to an already provisioned
// schema. Files are processed one by one in traversal order. The first
// unrecoverable error stops the run, rows written before it stay in the
// store.
type Loader interface {
	Load(ctx context.Context, cfg *config.Config) error
}
