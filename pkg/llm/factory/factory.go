package factory

import (
	"fmt"
	"time"

	"notegraph-be/internal/pkg/logger"
	"notegraph-be/pkg/llm"
	"notegraph-be/pkg/llm/breaker"
	"notegraph-be/pkg/llm/ollama"
	"notegraph-be/pkg/llm/openai"
)

const huggingFaceRouterURL = "https://router.huggingface.co/v1"

type Config struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
	Timeout  time.Duration

	// Breaker wraps the provider in a circuit breaker when non-nil. Its Name is filled in.
	Breaker *breaker.Settings
}

func NewLLMProvider(cfg Config, log logger.ILogger) (llm.LLMProvider, error) {
	var provider llm.LLMProvider

	switch cfg.Provider {
	case "ollama", "":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		provider = ollama.NewOllamaProvider(baseURL, cfg.Model, cfg.Timeout)
	case "openai":
		provider = openai.NewProvider(cfg.APIKey, cfg.BaseURL, cfg.Model)
	case "huggingface":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = huggingFaceRouterURL
		}
		provider = openai.NewProvider(cfg.APIKey, baseURL, cfg.Model)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}

	if cfg.Breaker == nil {
		return provider, nil
	}
	settings := *cfg.Breaker
	if settings.Name == "" {
		settings.Name = "llm-" + cfg.Provider
	}
	return breaker.New(provider, settings, log), nil
}
