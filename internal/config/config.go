package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Search   SearchConfig
	Ai       AIConfig
	Graph    GraphConfig
	Breaker  BreakerConfig
	Otel     OtelConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	ConsistencyLogPath string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
	NoteEventsTopic    string
}

type DatabaseConfig struct {
	Connection string
}

type SearchConfig struct {
	Addresses []string
	Username  string
	Password  string
	IndexName string
}

type AIConfig struct {
	LLMProvider   string // "ollama" or "openai"
	LLMModel      string
	OllamaBaseURL string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	LLMTimeout    time.Duration
}

type GraphConfig struct {
	DefaultDepth     int
	MaxDepth         int
	FetchConcurrency int
}

type BreakerConfig struct {
	Enabled     bool
	MaxRequests int
	Interval    time.Duration
	Timeout     time.Duration
	TripRatio   float64
}

type OtelConfig struct {
	Enabled      bool
	ServiceName  string
	OtlpEndpoint string
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			ConsistencyLogPath: getEnv("CONSISTENCY_LOG_PATH", "logs/index_consistency.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
			NoteEventsTopic:    getEnv("NOTE_EVENTS_TOPIC", "NOTE_EVENTS"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Search: SearchConfig{
			Addresses: getEnvAsList("ELASTICSEARCH_URL", []string{"http://localhost:9200"}),
			Username:  getEnv("ELASTICSEARCH_USERNAME", ""),
			Password:  getEnv("ELASTICSEARCH_PASSWORD", ""),
			IndexName: getEnv("ELASTICSEARCH_INDEX", "notes"),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:      getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
			LLMTimeout:    getEnvAsDuration("LLM_TIMEOUT", 60*time.Second),
		},
		Graph: GraphConfig{
			DefaultDepth:     getEnvAsInt("GRAPH_DEFAULT_DEPTH", 2),
			MaxDepth:         getEnvAsInt("GRAPH_MAX_DEPTH", 6),
			FetchConcurrency: getEnvAsInt("GRAPH_FETCH_CONCURRENCY", 8),
		},
		Breaker: BreakerConfig{
			Enabled:     getEnvAsBool("LLM_BREAKER_ENABLED", true),
			MaxRequests: getEnvAsInt("LLM_BREAKER_MAX_REQUESTS", 1),
			Interval:    getEnvAsDuration("LLM_BREAKER_INTERVAL", time.Minute),
			Timeout:     getEnvAsDuration("LLM_BREAKER_TIMEOUT", 30*time.Second),
			TripRatio:   getEnvAsFloat("LLM_BREAKER_TRIP_RATIO", 0.6),
		},
		Otel: OtelConfig{
			Enabled:      getEnvAsBool("OTEL_ENABLED", false),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "notegraph-be"),
			OtlpEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

// getEnvAsList splits a comma separated value, dropping blanks.
func getEnvAsList(key string, fallback []string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
