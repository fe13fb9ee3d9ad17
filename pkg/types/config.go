// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Config is the CLI configuration read from content-engine.yaml (or the
// CONTENT_ENGINE_* environment).
type Config struct {
	Lookup LookupConfig `json:"lookup" yaml:"lookup" mapstructure:"lookup"`
	Store  StoreConfig  `json:"store" yaml:"store" mapstructure:"store"`
}

// LookupConfig holds settings for the literature/web/news lookup backends.
type LookupConfig struct {
	// MaxResults is the default maximum number of results per lookup.
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// CachePath is the SQLite file used to cache lookup responses.
	// Empty disables caching.
	CachePath string `json:"cache_path,omitempty" yaml:"cache_path,omitempty" mapstructure:"cache_path"`

	// CacheTTL is how long a cached response stays fresh.
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// StoreConfig holds settings for the project and settings stores.
type StoreConfig struct {
	// ProjectsDir is the directory holding one subdirectory per project and
	// the shared projects_index.json.
	ProjectsDir string `json:"projects_dir" yaml:"projects_dir" mapstructure:"projects_dir"`

	// ConfigDir is the directory holding settings.json. Empty means
	// ~/.config/content-engine.
	ConfigDir string `json:"config_dir,omitempty" yaml:"config_dir,omitempty" mapstructure:"config_dir"`
}
