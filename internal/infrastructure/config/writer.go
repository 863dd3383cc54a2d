package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigYAML is the default configuration content.
const DefaultConfigYAML = `# BoardGameWhiz Configuration

catalog:
  # Local directory, or a blob URL such as gs://boardgamewhiz-bucket or s3://bucket?region=us-east-1
  bucket_url: data
  key: boardgames_cleaned.csv
  format: csv
  refresh_ttl: 10m

recommend:
  k: 10
  metric: heom # heom or gower
  # weights:
  #   avg_weights: 2
  # categorical_prefixes: [cat_]

sqlite:
  path: reviews.db

embedder:
  provider: openai
  model: text-embedding-3-small
  # api_key: your-api-key (or set OPENAI_API_KEY env var)
  # base_url: http://localhost:11434/v1 (OpenAI-compatible server, or OPENAI_BASE_URL)

qdrant:
  host: localhost
  port: 6334
  collection: whiz_reviews
  # api_key: your-api-key (for Qdrant Cloud)

server:
  addr: ":8080"
  shutdown_timeout: 10s

log:
  level: info
  format: console
`

// WriteDefault creates the .whiz directory and writes a default config file.
func WriteDefault(basePath string) error {
	configDir := ConfigDir(basePath)
	configFile := ConfigFilePath(basePath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists: %s", configFile)
	}

	if err := os.WriteFile(configFile, []byte(DefaultConfigYAML), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Write writes the given config to the config file.
func Write(basePath string, cfg *Config) error {
	configDir := filepath.Join(basePath, DefaultConfigDir)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(ConfigFilePath(basePath), data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Exists checks if a whiz config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
