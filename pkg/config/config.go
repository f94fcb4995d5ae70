// Package config provides configuration management for sparkdb.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: driver, host, port, user, password, database, ssl_mode, path
//   - Load: song_dir, log_dir, pattern, progress_bar
//   - Log: level, format, destination
//
// Runtime-only fields:
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use SPARKDB_ prefix with underscores for nesting:
//
//	SPARKDB_DATABASE_HOST=127.0.0.1
//	SPARKDB_DATABASE_DRIVER=sqlite
//	SPARKDB_LOAD_SONG_DIR=data/song_data
//	SPARKDB_LOG_LEVEL=info
package config

// Config represents the complete sparkdb configuration.
type Config struct {
	// Database contains connection settings of the relational store.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Load contains settings of the extract/load run.
	Load LoadConfig `mapstructure:"load" yaml:"load"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains connection parameters of the store.
type DatabaseConfig struct {
	// Driver selects the store: "postgres" or "sqlite".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// Path is the SQLite database file. Used only by the "sqlite" driver.
	Path string `mapstructure:"path" yaml:"path"`
}

// LoadConfig describes where the source files are and how progress is
// reported.
type LoadConfig struct {
	// SongDir is the root of song metadata files, one JSON object per file.
	SongDir string `mapstructure:"song_dir" yaml:"song_dir"`

	// LogDir is the root of activity log files, one JSON object per line.
	LogDir string `mapstructure:"log_dir" yaml:"log_dir"`

	// Pattern is a file name glob matched recursively under both roots.
	Pattern string `mapstructure:"pattern" yaml:"pattern"`

	// ProgressBar replaces per-file progress lines with a progress bar.
	ProgressBar bool `mapstructure:"progress_bar" yaml:"progress_bar"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Driver:   "postgres",
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "student",
			Password: "student",
			Database: "sparkifydb",
			SSLMode:  "disable",
			Path:     "sparkify.sqlite",
		},
		Load: LoadConfig{
			SongDir: "data/song_data",
			LogDir:  "data/log_data",
			Pattern: "*.json",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}
