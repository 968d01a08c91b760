// Package config loads application configuration from YAML with environment
// variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Reply strategy names accepted by ReplyConfig.Strategy.
const (
	StrategyTemplate = "template"
	StrategyLLM      = "llm"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Reply    ReplyConfig    `yaml:"reply"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Dataset  DatasetConfig  `yaml:"dataset"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// RedisConfig holds the optional draft-cache settings.
type RedisConfig struct {
	Enabled            bool   `yaml:"enabled"`
	Addr               string `yaml:"addr"`
	DraftCacheTTLHours int    `yaml:"draft_cache_ttl_hours"`
}

// DraftCacheTTL returns the configured TTL as a duration.
func (r RedisConfig) DraftCacheTTL() time.Duration {
	return time.Duration(r.DraftCacheTTLHours) * time.Hour
}

// ReplyConfig selects and configures the reply drafting strategy. The
// template strategy needs no settings; the llm strategy needs at least one
// API key and always keeps the template as its fallback.
type ReplyConfig struct {
	Strategy        string `yaml:"strategy"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	OpenAIAPIKey    string `yaml:"openai_api_key"`
	Model           string `yaml:"model"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
}

// Timeout returns the per-call generation timeout as a duration.
func (r ReplyConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// PipelineConfig tunes batch processing.
type PipelineConfig struct {
	// Workers bounds the processing pool; zero means one worker per CPU.
	Workers int `yaml:"workers"`
}

// DatasetConfig points at the support-email CSV dataset and the export
// location for classified results.
type DatasetConfig struct {
	Path       string `yaml:"path"`
	OutputPath string `yaml:"output_path"`
}

// Load reads configuration from a YAML file and applies defaults. An empty
// path yields a default-only configuration.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.DraftCacheTTLHours == 0 {
		cfg.Redis.DraftCacheTTLHours = 24
	}
	if cfg.Reply.Strategy == "" {
		cfg.Reply.Strategy = StrategyTemplate
	}
	if cfg.Reply.TimeoutSeconds == 0 {
		cfg.Reply.TimeoutSeconds = 30
	}
	if cfg.Dataset.OutputPath == "" {
		cfg.Dataset.OutputPath = "outputs/classified_emails.csv"
	}

	if cfg.Reply.Strategy != StrategyTemplate && cfg.Reply.Strategy != StrategyLLM {
		return nil, fmt.Errorf("config: unknown reply strategy %q", cfg.Reply.Strategy)
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration from a file (optional) and overrides with
// environment variables. A .env file is honored when present.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if host := os.Getenv("SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("config: invalid SERVER_PORT %q", port)
		}
		cfg.Server.Port = p
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
		cfg.Redis.Enabled = true
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		cfg.Reply.AnthropicAPIKey = key
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.Reply.OpenAIAPIKey = key
	}
	if strategy := os.Getenv("REPLY_STRATEGY"); strategy != "" {
		if strategy != StrategyTemplate && strategy != StrategyLLM {
			return nil, fmt.Errorf("config: unknown reply strategy %q", strategy)
		}
		cfg.Reply.Strategy = strategy
	}
	if path := os.Getenv("DATASET_PATH"); path != "" {
		cfg.Dataset.Path = path
	}

	return cfg, nil
}
