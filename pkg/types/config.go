// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// LogConfig controls the zap logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is "console" (development encoder) or "json" (production encoder).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// ScholarConfig holds settings for fetching search result pages.
type ScholarConfig struct {
	// BaseURL is the search endpoint (default https://scholar.google.com/scholar).
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// MaxResults is the number of results requested for the first page (default 10).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// RateLimit is the maximum number of requests per second.
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit" mapstructure:"rate_limit"`

	// MaxRetries bounds retries on HTTP 429 (0 uses the httputil default).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// TagBackend identifies how the author tag mapping is persisted.
type TagBackend string

const (
	TagBackendJSON   TagBackend = "json"
	TagBackendYAML   TagBackend = "yaml"
	TagBackendSQLite TagBackend = "sqlite"
)

// TagsConfig holds settings for the tag store.
type TagsConfig struct {
	// Backend selects the persister: json, yaml, or sqlite.
	Backend TagBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Path is the file (or database) holding the mapping.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	Addr            string        `json:"addr" yaml:"addr" mapstructure:"addr"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// Config groups every section of the configuration file.
type Config struct {
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
	Scholar ScholarConfig `json:"scholar" yaml:"scholar" mapstructure:"scholar"`
	Tags    TagsConfig    `json:"tags" yaml:"tags" mapstructure:"tags"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
}
