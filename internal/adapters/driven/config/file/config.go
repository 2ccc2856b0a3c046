// Package file provides TOML-based configuration loading.
// Configuration lives in ~/.sitesage/config.toml by default.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full service configuration.
type Config struct {
	// DataDir is where the chunk database and transcript cache live.
	// Defaults to ~/.sitesage/data.
	DataDir string `toml:"data_dir"`

	Embedding EmbeddingConfig `toml:"embedding"`
	Crawler   CrawlerConfig   `toml:"crawler"`
	Chunker   ChunkerConfig   `toml:"chunker"`
}

// EmbeddingConfig selects the embedding (and speech-to-text) endpoint.
type EmbeddingConfig struct {
	// APIKey authenticates against the endpoint. Falls back to the
	// OPENAI_API_KEY environment variable when empty.
	APIKey string `toml:"api_key"`

	// BaseURL overrides the API base URL for compatible servers.
	BaseURL string `toml:"base_url"`

	// Model is the embedding model name.
	Model string `toml:"model"`
}

// CrawlerConfig bounds website traversal.
type CrawlerConfig struct {
	MaxDepth       int     `toml:"max_depth"`
	MaxPages       int     `toml:"max_pages"`
	FetchTimeout   string  `toml:"fetch_timeout"`
	RequestsPerSec float64 `toml:"requests_per_sec"`
}

// ChunkerConfig bounds chunk windowing.
type ChunkerConfig struct {
	MaxTokens int `toml:"max_tokens"`
	Overlap   int `toml:"overlap"`
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".sitesage", "config.toml"), nil
}

// Load reads the config file at path, applying defaults for anything
// unset. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the config to path, creating its directory if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Embedding.APIKey == "" {
		c.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.Crawler.MaxDepth == 0 {
		c.Crawler.MaxDepth = 3
	}
	if c.Crawler.MaxPages == 0 {
		c.Crawler.MaxPages = 40
	}
	if c.Crawler.FetchTimeout == "" {
		c.Crawler.FetchTimeout = "15s"
	}
	if c.Crawler.RequestsPerSec == 0 {
		c.Crawler.RequestsPerSec = 2
	}
	if c.Chunker.MaxTokens == 0 {
		c.Chunker.MaxTokens = 800
	}
	if c.Chunker.Overlap == 0 {
		c.Chunker.Overlap = 20
	}
}

// FetchTimeoutDuration parses the configured fetch timeout.
func (c *Config) FetchTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Crawler.FetchTimeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}
