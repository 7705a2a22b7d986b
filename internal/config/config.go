// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers a YAML file, an optional .env file and env vars on top.
// - External errors are wrapped with this package's sentinel errors.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataPath points at the CSV or YAML dataset file.
	DataPath string `koanf:"data_path"`

	// SkipInvalidRows logs and skips malformed dataset rows instead of
	// failing the load.
	SkipInvalidRows bool `koanf:"skip_invalid_rows"`

	// MetricsEnabled toggles Prometheus recording.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsNamespace and MetricsSubsystem form the metric name prefix,
	// e.g. olympstats_stats_queries_total.
	MetricsNamespace string `koanf:"metrics_namespace"`
	MetricsSubsystem string `koanf:"metrics_subsystem"`

	// MetricsPrefix is inserted before every metric name. Empty adds none.
	MetricsPrefix string `koanf:"metrics_prefix"`

	// MetricsRefreshInterval sets how often runtime gauges are sampled.
	MetricsRefreshInterval time.Duration `koanf:"metrics_refresh_interval"`

	// MetricsLatencyBuckets overrides the latency histogram buckets in
	// milliseconds. Empty keeps the built-in buckets.
	MetricsLatencyBuckets []float64 `koanf:"metrics_latency_buckets"`

	// MetricsLabels are constant labels added to every metric.
	MetricsLabels map[string]string `koanf:"metrics_labels"`

	// DefaultMedalThreshold is used by GET /athletes/decorated when no min
	// is given.
	DefaultMedalThreshold int `koanf:"default_medal_threshold"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		LogFormat:              "text",
		Addr:                   ":9080",
		DataPath:               "./data/atletas.csv",
		SkipInvalidRows:        false,
		MetricsEnabled:         true,
		MetricsNamespace:       "olympstats",
		MetricsSubsystem:       "stats",
		MetricsRefreshInterval: 10 * time.Second,
		DefaultMedalThreshold:  3,
	}
}
