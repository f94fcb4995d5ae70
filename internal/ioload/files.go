package ioload

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/sparkify/sparkdb/pkg/config"
)

// fileHandler loads one file into the store.
type fileHandler func(ctx context.Context, path string) error

// collectFiles returns absolute paths of all files under root whose
// names match pattern, in traversal order. Dotfiles match only a pattern
// that starts with a dot.
func collectFiles(root, pattern string) ([]string, error) {
	hidden := strings.HasPrefix(pattern, ".")
	var res []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !hidden && strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		ok, err := filepath.Match(pattern, d.Name())
		if err != nil || !ok {
			return err
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		res = append(res, abs)
		return nil
	})
	if err != nil {
		return nil, WalkDirError(root, err)
	}
	return res, nil
}

// processDir runs handle on every matching file under dir and reports
// progress after each file.
func (l *loader) processDir(
	ctx context.Context,
	cfg *config.Config,
	dir string,
	handle fileHandler,
) error {
	files, err := collectFiles(dir, cfg.Load.Pattern)
	if err != nil {
		return err
	}
	total := len(files)
	fmt.Fprintf(l.out, "%d files found in %s\n", total, dir)
	slog.Info("Files found", "dir", dir, "count", total)

	var bar *pb.ProgressBar
	if cfg.Load.ProgressBar && total > 0 {
		bar = pb.Full.New(total)
		bar.SetWriter(l.out)
		bar.Set("prefix", "Processing files: ")
		bar.Set(pb.CleanOnFinish, true)
		bar.Start()
		defer bar.Finish()
	}

	for i, file := range files {
		select {
		case <-ctx.Done():
			return CancelledError(ctx.Err())
		default:
		}

		slog.Debug("Processing file", "path", file)
		if err = handle(ctx, file); err != nil {
			slog.Error("Cannot process file", "path", file, "error", err)
			return err
		}
		l.stats.Files++

		if bar != nil {
			bar.Increment()
			continue
		}
		fmt.Fprintf(l.out, "%d/%d files processed.\n", i+1, total)
	}
	return nil
}
