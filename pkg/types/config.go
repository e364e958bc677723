package types

import "time"

// HTTPConfig holds shared HTTP settings for every network call the sampler
// makes. It is fixed when the client is constructed.
type HTTPConfig struct {
	// UserAgent is the User-Agent header sent with every request
	// (e.g. "GrantSampler/1.0 (+https://example.org)").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// PageTimeout bounds a listing page fetch (default 30s).
	PageTimeout time.Duration `json:"page_timeout" yaml:"page_timeout"`

	// ProbeTimeout bounds a HEAD content-type probe (default 15s).
	ProbeTimeout time.Duration `json:"probe_timeout" yaml:"probe_timeout"`

	// DownloadTimeout bounds a streaming PDF download (default 60s).
	DownloadTimeout time.Duration `json:"download_timeout" yaml:"download_timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level string `json:"level" yaml:"level"`

	// File is an optional log file path. Empty disables file logging.
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// MaxSizeMB, MaxBackups, and MaxAgeDays control rotation of File.
	MaxSizeMB  int  `json:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int  `json:"max_backups" yaml:"max_backups"`
	MaxAgeDays int  `json:"max_age_days" yaml:"max_age_days"`
	Compress   bool `json:"compress" yaml:"compress"`
}

// SamplerConfig groups the settings for one sampling run.
type SamplerConfig struct {
	HTTPConfig `yaml:",inline"`

	// OutDir is the output root; each source gets a subdirectory.
	OutDir string `json:"out" yaml:"out"`

	// MaxPerSource caps the number of candidates collected per source (default 15).
	MaxPerSource int `json:"max_per_source" yaml:"max_per_source"`

	// Force re-downloads files that already exist on disk.
	Force bool `json:"force" yaml:"force"`

	Log LogConfig `json:"log" yaml:"log"`
}
