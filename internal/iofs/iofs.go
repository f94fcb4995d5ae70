// Package iofs prepares the file system for a sparkdb run. It creates the
// directories of configuration and logs, installs the default config.yaml
// and verifies that source data roots are readable directories.
package iofs

import (
	_ "embed"
	"errors"
	"os"

	"github.com/sparkify/sparkdb/pkg/config"
)

// ConfigYAML is the default config.yaml. Its values match config.New().
//
//go:embed config.yaml
var ConfigYAML string

// appDir is a directory sparkdb owns under the home directory.
type appDir struct {
	kind string
	path string
}

func appDirs(homeDir string) []appDir {
	return []appDir{
		{kind: "configuration", path: config.ConfigDir(homeDir)},
		{kind: "log", path: config.LogDir(homeDir)},
	}
}

// EnsureDirs creates configuration and log directories of sparkdb.
// Existing directories are left as they are.
func EnsureDirs(homeDir string) error {
	for _, v := range appDirs(homeDir) {
		if err := os.MkdirAll(v.path, 0755); err != nil {
			return CreateDirError(v.kind, v.path, err)
		}
	}
	return nil
}

// EnsureConfigFile installs ConfigYAML unless the user already has a
// config file.
func EnsureConfigFile(homeDir string) error {
	path := config.ConfigFilePath(homeDir)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return ConfigFileError(path, err)
	}

	if err = os.WriteFile(path, []byte(ConfigYAML), 0644); err != nil {
		return ConfigFileError(path, err)
	}
	return nil
}

// CheckSourceDirs verifies that song and log roots exist and are
// directories, so a misspelled path fails before the database is touched.
func CheckSourceDirs(cfg config.LoadConfig) error {
	roots := []struct {
		kind string
		path string
	}{
		{kind: "song", path: cfg.SongDir},
		{kind: "log", path: cfg.LogDir},
	}
	for _, v := range roots {
		info, err := os.Stat(v.path)
		if err != nil {
			return SourceDirError(v.kind, v.path, err)
		}
		if !info.IsDir() {
			return SourceDirError(v.kind, v.path, errNotDir)
		}
	}
	return nil
}
