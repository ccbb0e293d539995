// Package config defines process configuration and its loading.
//
// Conventions:
//   - Defaults live in New; Load layers a YAML file and RANKR_ env vars on top.
//   - Errors returned from this package wrap ErrLoadConfig or ErrInvalidConfig.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`

	// LogFile receives logs while the terminal UI owns the screen.
	LogFile string `koanf:"log_file"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr" validate:"required"`

	// OutputDir is where ranking exports are written.
	OutputDir string `koanf:"output_dir" validate:"required"`

	// ExportPrefix is the export file name prefix.
	ExportPrefix string `koanf:"export_prefix" validate:"required,excludesall=/\\"`

	// ExportHeader overrides the three CSV column labels.
	ExportHeader []string `koanf:"export_header" validate:"omitempty,len=3,dive,required"`

	// Seed fixes the pair shuffle; 0 picks a random seed per tournament.
	Seed int64 `koanf:"seed"`

	// Catalog replaces the built-in candidate list when non-empty.
	Catalog []string `koanf:"catalog"`

	// SessionTTLMinutes discards idle HTTP sessions; 0 keeps them forever.
	SessionTTLMinutes int `koanf:"session_ttl_minutes" validate:"min=0"`

	// MaxSessions caps live HTTP sessions; 0 means unbounded.
	MaxSessions int `koanf:"max_sessions" validate:"min=0"`

	// ReadTimeoutMS and WriteTimeoutMS bound HTTP request handling.
	ReadTimeoutMS  int `koanf:"read_timeout_ms" validate:"min=1"`
	WriteTimeoutMS int `koanf:"write_timeout_ms" validate:"min=1"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFile:           "rankr.log",
		Addr:              ":9080",
		OutputDir:         "results",
		ExportPrefix:      "ranking",
		SessionTTLMinutes: 120,
		MaxSessions:       1024,
		ReadTimeoutMS:     10_000,
		WriteTimeoutMS:    10_000,
	}
}

// Header returns the configured CSV header, if any.
func (c *Config) Header() (position, item, score string, ok bool) {
	if len(c.ExportHeader) != 3 {
		return "", "", "", false
	}
	return c.ExportHeader[0], c.ExportHeader[1], c.ExportHeader[2], true
}
