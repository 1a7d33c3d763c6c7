// Package config provides configuration types and defaults for weft.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/weft/internal/log"
	"github.com/zjrosen/weft/internal/tracing"
)

// Config holds all configuration options for weft.
type Config struct {
	Log     LogConfig      `mapstructure:"log"`
	Watcher WatcherConfig  `mapstructure:"watcher"`
	Cache   CacheConfig    `mapstructure:"cache"`
	Tracing tracing.Config `mapstructure:"tracing"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is the minimum level written to the sink.
	// Valid values: "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`

	// File is the path of the log file sink. Empty disables file logging;
	// the in-memory buffer behind the viewer's log overlay stays active.
	File string `mapstructure:"file"`
}

// WatcherConfig holds fixture auto-reload configuration.
type WatcherConfig struct {
	// Enabled controls whether the viewer reloads the fixture on change.
	Enabled bool `mapstructure:"enabled"`

	// Debounce is how long to wait after the last write event before
	// reloading. Editors often emit bursts of events per save.
	Debounce time.Duration `mapstructure:"debounce"`
}

// CacheConfig holds query memoization configuration.
type CacheConfig struct {
	// Enabled controls whether query results are memoized per session.
	Enabled bool `mapstructure:"enabled"`

	// TTL is how long a cached result stays valid. Reloading a fixture
	// flushes the cache regardless.
	TTL time.Duration `mapstructure:"ttl"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
		Watcher: WatcherConfig{
			Enabled:  true,
			Debounce: 200 * time.Millisecond,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     5 * time.Minute,
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/weft/traces/traces.jsonl or empty string if the home
// directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "weft", "traces", "traces.jsonl")
}

// UserConfigDir returns the per-user config directory (~/.config/weft),
// or empty string if the home directory is unavailable.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "weft")
}

// Validate checks the configuration for errors. Empty values fall back to
// defaults and are always valid.
func Validate(cfg Config) error {
	if cfg.Log.Level != "" {
		if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}

	if cfg.Watcher.Debounce < 0 {
		return fmt.Errorf("watcher.debounce must not be negative, got %v", cfg.Watcher.Debounce)
	}

	if cfg.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %v", cfg.Cache.TTL)
	}

	return ValidateTracing(cfg.Tracing)
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tc tracing.Config) error {
	if tc.SampleRate < 0.0 || tc.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tc.SampleRate)
	}

	if tc.Exporter != "" {
		switch tc.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tc.Exporter)
		}
	}

	// Path requirements only bite when tracing is actually on. FilePath is
	// filled from DefaultTracesFilePath at startup when left empty, so only
	// an explicitly unresolvable home directory can trip this.
	if tc.Enabled && tc.Exporter == "otlp" && tc.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Weft Configuration

# Logging
log:
  level: info   # debug, info, warn, error
  # file: ~/.config/weft/weft.log   # optional file sink; the in-app log
  #                                   overlay works without it

# Fixture watching
# The viewer reloads the fixture automatically when the file changes.
watcher:
  enabled: true
  debounce: 200ms   # wait after the last write before reloading

# Query result cache
# Results are memoized per fixture; a reload flushes the cache.
cache:
  enabled: true
  ttl: 5m

# Tracing
# Emits a span per query with child spans for each mapping stage.
# tracing:
#   enabled: false                 # default: false
#   exporter: file                 # none, file, stdout, otlp (default: file)
#   file_path: ~/.config/weft/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # for the otlp exporter
#   sample_rate: 1.0               # 0.0-1.0 (default: 1.0)
#   service_name: weft
#
# Example: inspect traces locally with jq
# tracing:
#   enabled: true
#   exporter: file
#   file_path: ~/.config/weft/traces/traces.jsonl
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
