package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvModelProvider    = "VERITAS_MODEL_PROVIDER"
	EnvModelName        = "VERITAS_MODEL_NAME"
	EnvModelToken       = "VERITAS_MODEL_TOKEN"
	EnvModelBaseURL     = "VERITAS_MODEL_BASE_URL"
	EnvModelTimeout     = "VERITAS_MODEL_TIMEOUT"
	EnvModelTemperature = "VERITAS_MODEL_TEMPERATURE"

	EnvSearchAPIKey     = "VERITAS_SEARCH_API_KEY"
	EnvSearchBaseURL    = "VERITAS_SEARCH_BASE_URL"
	EnvSearchTimeout    = "VERITAS_SEARCH_TIMEOUT"
	EnvSearchMaxResults = "VERITAS_SEARCH_MAX_RESULTS"
)

// AnalysisConfig selects the model provider used for claim and media
// analysis and carries its credentials and sampling parameters.
type AnalysisConfig struct {
	Provider    string       `toml:"provider"`
	Model       string       `toml:"model"`
	Token       string       `toml:"token"`
	BaseURL     string       `toml:"base_url"`
	Timeout     string       `toml:"timeout"`
	Temperature float64      `toml:"temperature"`
	Search      SearchConfig `toml:"search"`
}

// SearchConfig holds web-search grounding parameters. Search is enabled
// by the presence of an API key; there is no separate toggle.
type SearchConfig struct {
	APIKey     string `toml:"api_key"`
	BaseURL    string `toml:"base_url"`
	Timeout    string `toml:"timeout"`
	MaxResults int    `toml:"max_results"`
}

// Enabled reports whether search grounding is configured.
func (c *SearchConfig) Enabled() bool {
	return c.APIKey != ""
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *AnalysisConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *SearchConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation
// for the analysis config and its nested search config.
func (c *AnalysisConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Search.Finalize(); err != nil {
		return fmt.Errorf("search: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *AnalysisConfig) Merge(overlay *AnalysisConfig) {
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.Token != "" {
		c.Token = overlay.Token
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.Temperature != 0 {
		c.Temperature = overlay.Temperature
	}

	c.Search.Merge(&overlay.Search)
}

func (c *AnalysisConfig) loadDefaults() {
	if c.Provider == "" {
		c.Provider = "openai"
	}
	if c.Model == "" {
		c.Model = "gpt-4.1-mini"
	}
	if c.Timeout == "" {
		c.Timeout = "2m"
	}
	if c.Temperature == 0 {
		c.Temperature = 0.2
	}
}

func (c *AnalysisConfig) loadEnv() {
	if v := os.Getenv(EnvModelProvider); v != "" {
		c.Provider = v
	}
	if v := os.Getenv(EnvModelName); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvModelToken); v != "" {
		c.Token = v
	}
	if v := os.Getenv(EnvModelBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvModelTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvModelTemperature); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil {
			c.Temperature = t
		}
	}
}

func (c *AnalysisConfig) validate() error {
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("invalid temperature: %v", c.Temperature)
	}
	return nil
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *SearchConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *SearchConfig) Merge(overlay *SearchConfig) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.MaxResults != 0 {
		c.MaxResults = overlay.MaxResults
	}
}

func (c *SearchConfig) loadDefaults() {
	if c.Timeout == "" {
		c.Timeout = "5s"
	}
	if c.MaxResults == 0 {
		c.MaxResults = 5
	}
}

func (c *SearchConfig) loadEnv() {
	if v := os.Getenv(EnvSearchAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvSearchBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvSearchTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvSearchMaxResults); v != "" {
		if max, err := strconv.Atoi(v); err == nil {
			c.MaxResults = max
		}
	}
}

func (c *SearchConfig) validate() error {
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if c.MaxResults < 1 {
		return fmt.Errorf("invalid max_results: %d", c.MaxResults)
	}
	return nil
}
