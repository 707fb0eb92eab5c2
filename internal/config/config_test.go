package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GRAPH_MAX_DEPTH", "")
	t.Setenv("ELASTICSEARCH_URL", "")

	cfg := Load()
	assert.Equal(t, 2, cfg.Graph.DefaultDepth)
	assert.Equal(t, 6, cfg.Graph.MaxDepth)
	assert.Equal(t, []string{"http://localhost:9200"}, cfg.Search.Addresses)
	assert.Equal(t, "notes", cfg.Search.IndexName)
	assert.Equal(t, 0.6, cfg.Breaker.TripRatio)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("GRAPH_DEFAULT_DEPTH", "3")
	t.Setenv("GRAPH_FETCH_CONCURRENCY", "not-a-number")
	t.Setenv("ELASTICSEARCH_URL", "http://es1:9200, http://es2:9200,")
	t.Setenv("LLM_TIMEOUT", "15s")
	t.Setenv("LLM_BREAKER_ENABLED", "false")
	t.Setenv("OTEL_ENABLED", "true")

	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 3, cfg.Graph.DefaultDepth)
	assert.Equal(t, 8, cfg.Graph.FetchConcurrency, "unparsable values fall back")
	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.Search.Addresses)
	assert.Equal(t, 15*time.Second, cfg.Ai.LLMTimeout)
	assert.False(t, cfg.Breaker.Enabled)
	assert.True(t, cfg.Otel.Enabled)
}
