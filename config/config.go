package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the trust analysis service.
type Config struct {
	General  GeneralConfig  `mapstructure:"general"`
	Server   ServerConfig   `mapstructure:"server"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Search   SearchConfig   `mapstructure:"search"`
	Fetch    FetchConfig    `mapstructure:"fetch"`
	Rank     RankConfig     `mapstructure:"rank"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
}

// GeneralConfig contains general application settings.
type GeneralConfig struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// LLMConfig configures the text-completion and embedding collaborator.
type LLMConfig struct {
	Provider        string        `mapstructure:"provider"` // openai, azure
	APIKey          string        `mapstructure:"api_key"`
	BaseURL         string        `mapstructure:"base_url"`
	CompletionModel string        `mapstructure:"completion_model"`
	EmbeddingModel  string        `mapstructure:"embedding_model"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxTokens       int           `mapstructure:"max_tokens"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// SearchConfig configures the web search collaborator.
type SearchConfig struct {
	Provider string `mapstructure:"provider"` // serper, brave
	APIKey   string `mapstructure:"api_key"`
	TopK     int    `mapstructure:"top_k"`
}

// FetchConfig configures page fetching.
type FetchConfig struct {
	Fetcher       string        `mapstructure:"fetcher"` // http, chromedp
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxChars      int           `mapstructure:"max_chars"`
	MaxConcurrent int           `mapstructure:"max_concurrent"`
}

// RankConfig configures relevance ranking over scraped chunks.
type RankConfig struct {
	TopK  int    `mapstructure:"top_k"`
	Mode  string `mapstructure:"mode"`  // vector, hybrid
	Store string `mapstructure:"store"` // inmemory, redis
}

// RedisConfig is used when rank.store is "redis".
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AnalysisConfig bounds a single trust analysis run.
type AnalysisConfig struct {
	MaxRetries int           `mapstructure:"max_retries"`
	Deadline   time.Duration `mapstructure:"deadline"`
}

func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required")
	}
	if c.Search.APIKey == "" {
		return fmt.Errorf("search.api_key is required")
	}
	if c.Analysis.MaxRetries < 0 {
		return fmt.Errorf("analysis.max_retries cannot be negative")
	}
	if c.Fetch.MaxConcurrent <= 0 {
		return fmt.Errorf("fetch.max_concurrent must be > 0")
	}
	return nil
}

// Load reads configuration from the given path (or the working directory when
// empty), applies TRUSTME_* environment overrides and defaults, and validates
// the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("TRUSTME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional; env vars can carry everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && path != "" {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("general.debug", false)
	v.SetDefault("general.log_level", "info")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.completion_model", "gpt-4.1")
	v.SetDefault("llm.embedding_model", "text-embedding-3-large")
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.max_tokens", 4096)
	v.SetDefault("llm.timeout", 60*time.Second)
	v.SetDefault("search.provider", "serper")
	v.SetDefault("search.top_k", 5)
	v.SetDefault("fetch.fetcher", "http")
	v.SetDefault("fetch.timeout", 10*time.Second)
	v.SetDefault("fetch.max_chars", 20000)
	v.SetDefault("fetch.max_concurrent", 8)
	v.SetDefault("rank.top_k", 5)
	v.SetDefault("rank.mode", "vector")
	v.SetDefault("rank.store", "inmemory")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("analysis.max_retries", 3)
	v.SetDefault("analysis.deadline", 3*time.Minute)
}
