package factory

import (
	"testing"

	"notegraph-be/internal/pkg/logger"
	"notegraph-be/pkg/llm/breaker"
	"notegraph-be/pkg/llm/ollama"
	"notegraph-be/pkg/llm/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	log := logger.NewNopLogger()

	p, err := NewLLMProvider(Config{Model: "llama3"}, log)
	require.NoError(t, err)
	assert.IsType(t, &ollama.OllamaProvider{}, p)

	p, err = NewLLMProvider(Config{Provider: "openai", APIKey: "k"}, log)
	require.NoError(t, err)
	assert.IsType(t, &openai.Provider{}, p)

	p, err = NewLLMProvider(Config{Provider: "huggingface", APIKey: "k"}, log)
	require.NoError(t, err)
	assert.IsType(t, &openai.Provider{}, p)

	p, err = NewLLMProvider(Config{Provider: "ollama", Breaker: &breaker.Settings{}}, log)
	require.NoError(t, err)
	assert.IsType(t, &breaker.Provider{}, p)

	_, err = NewLLMProvider(Config{Provider: "gemini"}, log)
	assert.Error(t, err)
}
