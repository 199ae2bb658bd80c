package provider

import (
	"context"
	"errors"

	"github.com/trustme-ai/trustme/config"
	openai_provider "github.com/trustme-ai/trustme/provider/openai"
)

// Client represents different LLM providers
type Client string

const (
	OpenAI Client = "openai"
	Azure  Client = "azure"
)

// Provider is the interface that all LLM implementations must satisfy.
// Responses carry no structural guarantee: callers that expect JSON must be
// prepared for prose around (or instead of) it.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}

// NewProvider creates a new LLM client based on the provided configuration.
func NewProvider(cfg config.LLMConfig) (Provider, error) {
	switch Client(cfg.Provider) {
	case OpenAI, Azure:
		if cfg.APIKey == "" {
			return nil, errors.New("llm api key not set")
		}
		return openai_provider.NewClient(openai_provider.Options{
			APIKey:          cfg.APIKey,
			BaseURL:         cfg.BaseURL,
			CompletionModel: cfg.CompletionModel,
			EmbeddingModel:  cfg.EmbeddingModel,
			Temperature:     cfg.Temperature,
			MaxTokens:       cfg.MaxTokens,
			Timeout:         cfg.Timeout,
		}), nil
	default:
		return nil, errors.New("unsupported LLM provider")
	}
}
