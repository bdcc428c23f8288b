// Package config provides configuration loading and validation for the CLI
// and server. Values come from an optional JSON file with environment
// variables filling anything the file leaves empty.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds every tunable of a jobscout run. All fields are optional;
// missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	DataDir    string `json:"data_dir,omitempty"`    // Directory for stage output files
	CookieFile string `json:"cookie_file,omitempty"` // Path for cached session cookies

	// Search
	SearchURL string `json:"search_url,omitempty"` // Full LinkedIn search URL; overrides Keywords/Location
	Keywords  string `json:"keywords,omitempty"`   // Search keywords
	Location  string `json:"location,omitempty"`   // Location name
	GeoID     string `json:"geo_id,omitempty"`     // LinkedIn geo ID for the location

	// Limits
	MaxJobs         int `json:"max_jobs,omitempty"`          // Maximum jobs per collection run
	DelayMinSeconds int `json:"delay_min_seconds,omitempty"` // Minimum delay between description fetches
	DelayMaxSeconds int `json:"delay_max_seconds,omitempty"` // Maximum delay between description fetches

	// Behavior
	Headless bool `json:"headless,omitempty"` // Run Chrome without a window

	// Secrets. Prefer the GEMINI_API_KEY, LINKEDIN_EMAIL and
	// LINKEDIN_PASSWORD environment variables over the file.
	APIKey           string `json:"api_key,omitempty"`
	LinkedInEmail    string `json:"linkedin_email,omitempty"`
	LinkedInPassword string `json:"linkedin_password,omitempty"`
}

// Default returns the configuration used when no file or flags are given.
func Default() Config {
	return Config{
		DataDir:         ".",
		CookieFile:      "linkedin_cookies.json",
		MaxJobs:         50,
		DelayMinSeconds: 2,
		DelayMaxSeconds: 5,
	}
}

// Load reads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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

// FillFromEnv populates empty fields from the environment.
func (c *Config) FillFromEnv() {
	if v := os.Getenv("JOBSCOUT_DATA_DIR"); v != "" && (c.DataDir == "" || c.DataDir == ".") {
		c.DataDir = v
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.LinkedInEmail == "" {
		c.LinkedInEmail = os.Getenv("LINKEDIN_EMAIL")
	}
	if c.LinkedInPassword == "" {
		c.LinkedInPassword = os.Getenv("LINKEDIN_PASSWORD")
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.MaxJobs < 0 {
		return fmt.Errorf("config error: 'max_jobs' must be non-negative")
	}
	if c.DelayMinSeconds < 0 || c.DelayMaxSeconds < 0 {
		return fmt.Errorf("config error: delays must be non-negative")
	}
	if c.DelayMaxSeconds > 0 && c.DelayMinSeconds > c.DelayMaxSeconds {
		return fmt.Errorf("config error: 'delay_min_seconds' must not exceed 'delay_max_seconds'")
	}
	if c.LinkedInEmail != "" && c.LinkedInPassword == "" {
		return fmt.Errorf("config error: 'linkedin_email' is set without 'linkedin_password'")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Flag values already applied to c win over the defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.CookieFile == "" {
		result.CookieFile = defaults.CookieFile
	}
	if result.SearchURL == "" {
		result.SearchURL = defaults.SearchURL
	}
	if result.Keywords == "" {
		result.Keywords = defaults.Keywords
	}
	if result.Location == "" {
		result.Location = defaults.Location
	}
	if result.GeoID == "" {
		result.GeoID = defaults.GeoID
	}
	if result.MaxJobs == 0 {
		result.MaxJobs = defaults.MaxJobs
	}
	if result.DelayMinSeconds == 0 {
		result.DelayMinSeconds = defaults.DelayMinSeconds
	}
	if result.DelayMaxSeconds == 0 {
		result.DelayMaxSeconds = defaults.DelayMaxSeconds
	}

	return result
}

// DelayMin returns the minimum enrichment delay as a duration.
func (c *Config) DelayMin() time.Duration {
	return time.Duration(c.DelayMinSeconds) * time.Second
}

// DelayMax returns the maximum enrichment delay as a duration.
func (c *Config) DelayMax() time.Duration {
	return time.Duration(c.DelayMaxSeconds) * time.Second
}
