// Package config loads and validates the analyzer service configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/sitegauge/engine/internal/common/configtypes"
	"github.com/sitegauge/engine/internal/common/yamlutil"
)

// Defaults applied when the corresponding field is absent from the file.
const (
	DefaultListen            = ":8080"
	DefaultMetricsListen     = ":9090"
	DefaultMetricsPath       = "/metrics"
	DefaultReadTimeoutSec    = 15
	DefaultWriteTimeoutSec   = 30
	DefaultMaxBodyBytes      = 2 * 1024 * 1024
	DefaultFetchTimeoutSec   = 10
	DefaultFetchMaxBodyBytes = 5 * 1024 * 1024
)

// Load reads, defaults, and validates a configuration file.
func Load(path string) (*configtypes.Config, error) {
	var cfg configtypes.Config
	if err := yamlutil.LoadFileStrict(path, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns a usable configuration without a file, for the CLI and
// for tests.
func Default() *configtypes.Config {
	cfg := &configtypes.Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *configtypes.Config) {
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = DefaultListen
	}
	if cfg.Server.ReadTimeoutSec == 0 {
		cfg.Server.ReadTimeoutSec = DefaultReadTimeoutSec
	}
	if cfg.Server.WriteTimeoutSec == 0 {
		cfg.Server.WriteTimeoutSec = DefaultWriteTimeoutSec
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Fetch.PerSourceTimeoutSec == 0 {
		cfg.Fetch.PerSourceTimeoutSec = DefaultFetchTimeoutSec
	}
	if cfg.Fetch.MaxBodyBytes == 0 {
		cfg.Fetch.MaxBodyBytes = DefaultFetchMaxBodyBytes
	}
	if cfg.Metrics.Listen == "" {
		cfg.Metrics.Listen = DefaultMetricsListen
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = configtypes.LogLevelInfo
	}
	if !cfg.Log.Console.Enabled && !cfg.Log.File.Enabled {
		cfg.Log.Console.Enabled = true
	}
	if cfg.Log.Console.Format == "" {
		cfg.Log.Console.Format = configtypes.LogFormatConsole
	}
	if cfg.Log.File.Format == "" {
		cfg.Log.File.Format = configtypes.LogFormatJSON
	}
}

// Validate checks cross-field constraints after defaulting.
func Validate(cfg *configtypes.Config) error {
	if cfg.Metrics.Enabled && cfg.Metrics.Listen == cfg.Server.Listen {
		return fmt.Errorf("metrics.listen must differ from server.listen (both %q)", cfg.Server.Listen)
	}
	if cfg.Log.File.Enabled && cfg.Log.File.Path == "" {
		return fmt.Errorf("log.file.path must be set when file logging is enabled")
	}
	for _, source := range cfg.Fetch.RelaySources {
		if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
			return fmt.Errorf("fetch.relay_sources entry %q must be an http(s) URL prefix", source)
		}
	}
	switch cfg.Log.Level {
	case configtypes.LogLevelDebug, configtypes.LogLevelInfo, configtypes.LogLevelWarn, configtypes.LogLevelError:
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Log.Level)
	}
	return nil
}
