// Package config loads toolkit configuration. Precedence is command-line
// flags over the config file over built-in defaults; the flag overlay
// happens in the command layer, this package owns defaults, file parsing,
// and validation.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full configuration document.
type Config struct {
	// RateLimitSeconds is the minimum delay between reference API requests.
	RateLimitSeconds float64 `yaml:"rate_limit_seconds"`
	// MaxRetries is the total attempt budget per key, counting the first try.
	MaxRetries int `yaml:"max_retries"`
	// RequestTimeoutSeconds bounds each individual lookup request.
	RequestTimeoutSeconds float64 `yaml:"request_timeout_seconds"`

	LogLevel     string `yaml:"log_level"`
	LogFile      string `yaml:"log_file"`
	ProgressFile string `yaml:"progress_file"`

	Gemini Gemini `yaml:"gemini"`
}

// Gemini configures the LLM suggestion backend. The API key falls back to
// the GEMINI_API_KEY environment variable when the file leaves it empty.
type Gemini struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		RateLimitSeconds:      0.1,
		MaxRetries:            3,
		RequestTimeoutSeconds: 30,
		LogLevel:              "info",
		ProgressFile:          "enrichment_progress.json",
		Gemini: Gemini{
			Model: "gemini-2.5-flash",
		},
	}
}

// Load reads the config file at path over the defaults. An empty path
// returns the defaults untouched. A missing or malformed file is an error;
// unknown keys are rejected so typos fail loudly at startup.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		cfg.applyEnv()
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if strings.TrimSpace(c.Gemini.APIKey) == "" {
		c.Gemini.APIKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	}
}

// Validate rejects values no run could use.
func (c Config) Validate() error {
	if c.RateLimitSeconds < 0 {
		return fmt.Errorf("rate_limit_seconds must not be negative")
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max_retries must be at least 1")
	}
	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("request_timeout_seconds must be positive")
	}
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level: unsupported value %q", c.LogLevel)
	}
	if strings.TrimSpace(c.ProgressFile) == "" {
		return fmt.Errorf("progress_file must not be empty")
	}
	return nil
}

// RateInterval returns the pacing delay as a duration.
func (c Config) RateInterval() time.Duration {
	return time.Duration(c.RateLimitSeconds * float64(time.Second))
}

// RequestTimeout returns the per-request timeout as a duration.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds * float64(time.Second))
}
