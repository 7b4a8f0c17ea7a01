package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultInput     = "Program.html"
	DefaultOutput    = "conference_program.json"
	DefaultCacheDir  = "html_cache"
	DefaultCacheType = "dir"
	DefaultBaseURL   = "https://conference.eresearch.edu.au/"
	DefaultTimeout   = 15 * time.Second
)

// CacheConfig selects the detail page cache backend.
type CacheConfig struct {
	Type     string `yaml:"type"`     // "dir", "sqlite" or "memory"
	Location string `yaml:"location"` // directory or database file
}

// Config represents confgrab settings.
type Config struct {
	Input      string        `yaml:"input"`
	Output     string        `yaml:"output"`
	ProgramURL string        `yaml:"program_url"`
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	UserAgent  string        `yaml:"user_agent"`
	LogLevel   string        `yaml:"log_level"`
	Cache      CacheConfig   `yaml:"cache"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Input:    DefaultInput,
		Output:   DefaultOutput,
		BaseURL:  DefaultBaseURL,
		Timeout:  DefaultTimeout,
		LogLevel: "info",
		Cache: CacheConfig{
			Type:     DefaultCacheType,
			Location: DefaultCacheDir,
		},
	}
}

// DefaultPath returns ~/.confgrab/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".confgrab", "config.yaml"), nil
}

// LoadFile loads configuration from path. Returns nil if the file doesn't
// exist (not an error). Returns error if the file exists but cannot be
// parsed.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// Load returns the defaults overlaid with the file at path. An empty path
// means DefaultPath.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	file, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	cfg.Merge(file)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Merge copies every non-zero field of other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Input != "" {
		c.Input = other.Input
	}
	if other.Output != "" {
		c.Output = other.Output
	}
	if other.ProgramURL != "" {
		c.ProgramURL = other.ProgramURL
	}
	if other.BaseURL != "" {
		c.BaseURL = other.BaseURL
	}
	if other.Timeout != 0 {
		c.Timeout = other.Timeout
	}
	if other.UserAgent != "" {
		c.UserAgent = other.UserAgent
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.Cache.Type != "" {
		c.Cache.Type = other.Cache.Type
	}
	if other.Cache.Location != "" {
		c.Cache.Location = other.Cache.Location
	}
}

// Validate checks values that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %s", c.Timeout)
	}
	switch c.Cache.Type {
	case "dir", "sqlite", "memory":
	default:
		return fmt.Errorf("unknown cache type: %s", c.Cache.Type)
	}
	if c.BaseURL != "" {
		if _, err := c.ParsedBaseURL(); err != nil {
			return err
		}
	}
	return nil
}

// ParsedBaseURL returns BaseURL as a URL, or nil when unset.
func (c *Config) ParsedBaseURL() (*url.URL, error) {
	if c.BaseURL == "" {
		return nil, nil
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("base URL must be absolute: %s", c.BaseURL)
	}
	return u, nil
}
