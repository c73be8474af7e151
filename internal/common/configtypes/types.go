// Package configtypes defines the configuration structs shared between
// the config loader and the packages it configures.
package configtypes

// Log level constants
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Log format constants
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// Config is the analyzer service's main configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig configures the public API listener.
type ServerConfig struct {
	Listen          string `yaml:"listen"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec"`
	MaxBodyBytes    int    `yaml:"max_body_bytes"`
}

// FetchConfig configures the document access adapter.
type FetchConfig struct {
	// RelaySources are URL prefixes tried after the direct fetch, in
	// order (the target URL is appended to each prefix).
	RelaySources []string `yaml:"relay_sources"`
	// PerSourceTimeoutSec bounds each individual attempt.
	PerSourceTimeoutSec int `yaml:"per_source_timeout_sec"`
	// MaxBodyBytes caps the fetched document size.
	MaxBodyBytes int `yaml:"max_body_bytes"`
	// AllowPrivateHosts disables the private-IP guard (tests only).
	AllowPrivateHosts bool `yaml:"allow_private_hosts"`
}

// MetricsConfig configures the separate Prometheus listener.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
	Path    string `yaml:"path"`
}

// LogConfig configures logging outputs.
type LogConfig struct {
	Level   string           `yaml:"level"`
	Console ConsoleLogConfig `yaml:"console"`
	File    FileLogConfig    `yaml:"file"`
}

// ConsoleLogConfig configures stdout logging.
type ConsoleLogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"`
	Level   string `yaml:"level"`
}

// FileLogConfig configures file logging with rotation.
type FileLogConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Path     string         `yaml:"path"`
	Format   string         `yaml:"format"`
	Level    string         `yaml:"level"`
	Rotation RotationConfig `yaml:"rotation"`
}

// RotationConfig maps to lumberjack settings.
type RotationConfig struct {
	MaxSizeMB  int  `yaml:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days"`
	Compress   bool `yaml:"compress"`
}
