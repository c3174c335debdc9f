// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors must be wrapped via this package's error kinds.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DefaultTopN is the recommendation list size when the caller does not
	// ask for one.
	DefaultTopN int `koanf:"default_top_n"`

	// MaxTopN caps GET /recommendations?limit.
	MaxTopN int `koanf:"max_top_n"`

	// AliasTablePath points at a YAML file extending the embedded
	// institution alias tables.
	AliasTablePath string `koanf:"alias_table_path"`

	// SchoolFixturePath replaces the embedded school catalog.
	SchoolFixturePath string `koanf:"school_fixture_path"`

	// TenureDataPath points at a YAML file of coach tenure records for the
	// static lookup. Empty means every search reports "not found".
	TenureDataPath string `koanf:"tenure_data_path"`

	// TenureLatencyMinMS and TenureLatencyMaxMS simulate the external
	// tenure source's latency bounds.
	TenureLatencyMinMS int `koanf:"tenure_latency_min_ms"`
	TenureLatencyMaxMS int `koanf:"tenure_latency_max_ms"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		DefaultTopN:        5,
		MaxTopN:            50,
		TenureLatencyMinMS: 20,
		TenureLatencyMaxMS: 60,
	}
}
