// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/validation"
)

const (
	// DefaultConfigDir is the directory name for whiz configuration.
	DefaultConfigDir = ".whiz"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultDatabaseFile is the default review database file name.
	DefaultDatabaseFile = "reviews.db"
	// DefaultRefreshTTL is how long a catalog snapshot is served before reloading.
	DefaultRefreshTTL = 10 * time.Minute
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	Catalog   CatalogConfig   `yaml:"catalog,omitempty"`
	Recommend RecommendConfig `yaml:"recommend,omitempty"`
	SQLite    SQLiteConfig    `yaml:"sqlite,omitempty"`
	Embedder  EmbedderConfig  `yaml:"embedder,omitempty"`
	Qdrant    QdrantConfig    `yaml:"qdrant,omitempty"`
	Server    ServerConfig    `yaml:"server,omitempty"`
	Log       LogConfig       `yaml:"log,omitempty"`
}

// CatalogConfig locates the game catalog.
type CatalogConfig struct {
	// BucketURL is a gocloud.dev blob URL (gs://, s3://, file://) or a local directory.
	BucketURL  string        `yaml:"bucket_url" validate:"required"`
	Key        string        `yaml:"key" validate:"required"`
	Format     string        `yaml:"format,omitempty" validate:"omitempty,oneof=csv json"`
	RefreshTTL time.Duration `yaml:"refresh_ttl,omitempty" validate:"gte=0"`
}

// RecommendConfig tunes the similarity recommender.
type RecommendConfig struct {
	K                   int                `yaml:"k,omitempty" validate:"gte=0,lte=100"`
	Metric              string             `yaml:"metric,omitempty" validate:"omitempty,oneof=heom gower"`
	Weights             map[string]float64 `yaml:"weights,omitempty" validate:"dive,gte=0"`
	CategoricalPrefixes []string           `yaml:"categorical_prefixes,omitempty"`
}

// EmbedderConfig holds configuration for the embedding provider.
type EmbedderConfig struct {
	Provider string `yaml:"provider,omitempty"`
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
	// BaseURL points at an OpenAI-compatible server; empty uses api.openai.com.
	BaseURL string `yaml:"base_url,omitempty" validate:"omitempty,url"`
}

// QdrantConfig holds configuration for the Qdrant vector database.
type QdrantConfig struct {
	Host       string `yaml:"host,omitempty"`
	Port       int    `yaml:"port,omitempty" validate:"gte=0,lte=65535"`
	Collection string `yaml:"collection,omitempty"`
	APIKey     string `yaml:"api_key,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite review store.
type SQLiteConfig struct {
	// Path is the database file, relative to the config directory unless absolute.
	Path string `yaml:"path,omitempty"`
}

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Addr            string        `yaml:"addr,omitempty"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout,omitempty"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `yaml:"level,omitempty" validate:"omitempty,oneof=trace debug info warn error disabled"`
	Format string `yaml:"format,omitempty" validate:"omitempty,oneof=json console"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BucketURL:  "data",
			Key:        "boardgames_cleaned.csv",
			Format:     "csv",
			RefreshTTL: DefaultRefreshTTL,
		},
		Recommend: RecommendConfig{
			K:      10,
			Metric: "heom",
		},
		SQLite: SQLiteConfig{
			Path: DefaultDatabaseFile,
		},
		Embedder: EmbedderConfig{
			Provider: "openai",
			Model:    "text-embedding-3-small",
		},
		Qdrant: QdrantConfig{
			Host:       "localhost",
			Port:       6334,
			Collection: "whiz_reviews",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from the .whiz directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'whiz init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}

	return cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c)
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && c.Embedder.APIKey == "" {
		c.Embedder.APIKey = key
	}
	if u := os.Getenv("OPENAI_BASE_URL"); u != "" && c.Embedder.BaseURL == "" {
		c.Embedder.BaseURL = u
	}
	if key := os.Getenv("QDRANT_API_KEY"); key != "" && c.Qdrant.APIKey == "" {
		c.Qdrant.APIKey = key
	}
	if u := os.Getenv("WHIZ_CATALOG_URL"); u != "" {
		c.Catalog.BucketURL = u
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = strings.ToLower(level)
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		c.Log.Format = strings.ToLower(format)
	}
}

// ConfigDir returns the path to the .whiz config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// SQLitePath returns the review database path.
func (c *Config) SQLitePath(basePath string) string {
	path := c.SQLite.Path
	if path == "" {
		path = DefaultDatabaseFile
	}
	if path == ":memory:" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(basePath, DefaultConfigDir, path)
}

// BucketURL returns the catalog bucket as a blob URL. A plain directory is
// resolved against basePath and turned into a file:// URL.
func (c *Config) BucketURL(basePath string) (string, error) {
	raw := strings.TrimSpace(c.Catalog.BucketURL)
	if strings.Contains(raw, "://") {
		if _, err := url.Parse(raw); err != nil {
			return "", fmt.Errorf("parsing bucket url: %w", err)
		}
		return raw, nil
	}

	dir := raw
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(basePath, dir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving bucket directory: %w", err)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}

// RefreshTTL returns the catalog snapshot lifetime.
func (c *Config) RefreshTTL() time.Duration {
	if c.Catalog.RefreshTTL <= 0 {
		return DefaultRefreshTTL
	}
	return c.Catalog.RefreshTTL
}
