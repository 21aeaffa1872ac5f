// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/talent-profiles/internal/types"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Run input
	UserID      string   `json:"user_id,omitempty"`      // Profile owner identity
	Sources     []string `json:"sources,omitempty"`      // Source identifiers, parallel to SourceKinds
	SourceKinds []string `json:"source_kinds,omitempty"` // Source kind tags, parallel to Sources

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	UseBrowser  bool   `json:"use_browser,omitempty"`  // Use headless browser for SPA sites
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if len(c.Sources) != len(c.SourceKinds) {
		return fmt.Errorf("config error: 'sources' and 'source_kinds' must have the same length (%d != %d)",
			len(c.Sources), len(c.SourceKinds))
	}

	for _, kind := range c.SourceKinds {
		if !types.SourceKind(kind).Valid() {
			return fmt.Errorf("config error: unknown source kind %q", kind)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.UserID == "" {
		result.UserID = defaults.UserID
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Slice fields: use default if unset
	if len(result.Sources) == 0 {
		result.Sources = defaults.Sources
	}
	if len(result.SourceKinds) == 0 {
		result.SourceKinds = defaults.SourceKinds
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ImportRequest converts the run input fields into a typed ImportRequest.
func (c *Config) ImportRequest() *types.ImportRequest {
	kinds := make([]types.SourceKind, len(c.SourceKinds))
	for i, kind := range c.SourceKinds {
		kinds[i] = types.SourceKind(kind)
	}
	return &types.ImportRequest{
		UserID:      c.UserID,
		Sources:     c.Sources,
		SourceKinds: kinds,
	}
}
