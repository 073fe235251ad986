// Package config builds the tool configuration: compiled-in defaults, an
// optional YAML file, then environment overrides for the API keys. The
// resulting struct is constructed once at startup and handed to each client;
// nothing reads the environment after boot.
package config

import (
	"errors"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Configuration errors.
var (
	ErrMissingGeminiKey = errors.New("gemini api key is not configured")
	ErrBadGeminiKey     = errors.New("gemini api key has an invalid format")
)

// Config is the full tool configuration.
type Config struct {
	Gemini  GeminiConfig  `yaml:"gemini"`
	News    NewsConfig    `yaml:"news"`
	Geocode GeocodeConfig `yaml:"geocode"`
	Log     LogConfig     `yaml:"log"`
}

// GeminiConfig holds the generative AI endpoint settings.
type GeminiConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"api_key"`
}

// NewsConfig holds both news producers' settings.
type NewsConfig struct {
	APIKey   string   `yaml:"api_key"`
	Endpoint string   `yaml:"endpoint"`
	RSSFeeds []string `yaml:"rss_feeds"`
}

// GeocodeConfig holds the Nominatim settings. ViewBox is the Jabodetabek
// bounding box (west,north,east,south) applied to every search.
type GeocodeConfig struct {
	Endpoint  string `yaml:"endpoint"`
	UserAgent string `yaml:"user_agent"`
	ViewBox   string `yaml:"view_box"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		Gemini: GeminiConfig{
			BaseURL: "https://generativelanguage.googleapis.com/v1beta/models",
			Model:   "gemini-2.0-flash",
		},
		News: NewsConfig{
			Endpoint: "https://newsapi.org/v2/everything",
			RSSFeeds: []string{
				"https://www.kompas.com/properti/rss",
				"https://finance.detik.com/properti/rss",
				"https://www.kontan.co.id/rss/properti",
				"https://ekonomi.bisnis.com/rss",
			},
		},
		Geocode: GeocodeConfig{
			Endpoint:  "https://nominatim.openstreetmap.org/search",
			UserAgent: "ARSAA-Dimension-AI/2.0 (+https://arsaa.ai)",
			ViewBox:   "106.5,-6.0,107.2,-7.1",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from an optional YAML file on top of the
// defaults, then applies environment overrides. A missing file is not an
// error; the defaults cover a key-only setup.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()

	return cfg, nil
}

// applyEnv pulls the API keys from the environment. Both historical variable
// names are accepted for each key.
func (c *Config) applyEnv() {
	if key := firstEnv("GEMINI_KEY", "GEMINI_API_KEY"); key != "" {
		c.Gemini.APIKey = key
	}
	if key := firstEnv("NEWSAPI_KEY", "NEWS_API_KEY"); key != "" {
		c.News.APIKey = key
	}
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// ValidateGeminiKey checks presence and the known key shape. The tool cannot
// run without a usable Gemini key.
func (c *Config) ValidateGeminiKey() error {
	if c.Gemini.APIKey == "" {
		return ErrMissingGeminiKey
	}
	if len(c.Gemini.APIKey) <= 30 || !strings.HasPrefix(c.Gemini.APIKey, "AIzaSy") {
		return ErrBadGeminiKey
	}
	return nil
}

// HasNewsKey reports whether the optional search-API key is configured.
func (c *Config) HasNewsKey() bool {
	return c.News.APIKey != ""
}

// NewsKeyLooksValid reports whether the configured news key matches the
// provider's 32-character format. Advisory only; the feed fallback covers a
// bad key.
func (c *Config) NewsKeyLooksValid() bool {
	return len(c.News.APIKey) == 32
}
