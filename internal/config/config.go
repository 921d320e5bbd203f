package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/vytor/lumina/internal/flashcard"
	"github.com/vytor/lumina/internal/llm"
)

type Config struct {
	Addr                  string
	DBPath                string
	LogLevel              string
	LogFormat             string
	GenerationWorkerCount int
	GenerationQueueSize   int
	ReviewSessionTTL      time.Duration
	ReviewOrder           string

	LLMProvider     string
	LLMTimeout      time.Duration
	LLMMaxAttempts  int
	GeminiAPIKey    string
	GeminiModel     string
	OpenAIAPIKey    string
	OpenAIModel     string
	OpenAIBaseURL   string
	AnthropicAPIKey string
	AnthropicModel  string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	defaults := llm.DefaultConfig()
	return Config{
		Addr:                  envOr("ADDR", ":8080"),
		DBPath:                envOr("DB_PATH", "file:lumina.db"),
		LogLevel:              envOr("LOG_LEVEL", "INFO"),
		LogFormat:             envOr("LOG_FORMAT", "text"),
		GenerationWorkerCount: envIntOr("GENERATION_WORKER_COUNT", 2),
		GenerationQueueSize:   envIntOr("GENERATION_QUEUE_SIZE", 32),
		ReviewSessionTTL:      time.Duration(envIntOr("REVIEW_SESSION_TTL_MINUTES", 60)) * time.Minute,
		ReviewOrder:           envOr("REVIEW_ORDER", "insertion"),

		LLMProvider:     envOr("LLM_PROVIDER", defaults.Provider),
		LLMTimeout:      time.Duration(envIntOr("LLM_TIMEOUT_SECONDS", int(defaults.Timeout/time.Second))) * time.Second,
		LLMMaxAttempts:  envIntOr("LLM_MAX_ATTEMPTS", defaults.Retry.MaxAttempts),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     envOr("GEMINI_MODEL", defaults.Gemini.Model),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     envOr("OPENAI_MODEL", defaults.OpenAI.Model),
		OpenAIBaseURL:   os.Getenv("OPENAI_BASE_URL"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", defaults.Anthropic.Model),
	}
}

// Validate reports every invalid setting in one error.
func (c Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json (got %q)", c.LogFormat))
	}
	if c.GenerationWorkerCount < 1 || c.GenerationWorkerCount > 32 {
		errs = append(errs, fmt.Errorf("GENERATION_WORKER_COUNT must be between 1 and 32 (got %d)", c.GenerationWorkerCount))
	}
	if c.GenerationQueueSize < 1 {
		errs = append(errs, fmt.Errorf("GENERATION_QUEUE_SIZE must be positive (got %d)", c.GenerationQueueSize))
	}
	if c.ReviewSessionTTL < time.Minute {
		errs = append(errs, fmt.Errorf("REVIEW_SESSION_TTL_MINUTES must be at least 1 (got %v)", c.ReviewSessionTTL))
	}
	if _, err := flashcard.ParseOrdering(c.ReviewOrder); err != nil {
		errs = append(errs, fmt.Errorf("REVIEW_ORDER must be insertion or overdue (got %q)", c.ReviewOrder))
	}
	if c.LLMMaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("LLM_MAX_ATTEMPTS must be positive (got %d)", c.LLMMaxAttempts))
	}

	switch strings.ToLower(c.LLMProvider) {
	case "", "none", "mock":
	case "gemini":
		if c.GeminiAPIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required when LLM_PROVIDER=gemini"))
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required when LLM_PROVIDER=openai"))
		}
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			errs = append(errs, errors.New("ANTHROPIC_API_KEY is required when LLM_PROVIDER=anthropic"))
		}
	default:
		errs = append(errs, fmt.Errorf("LLM_PROVIDER must be one of none, gemini, openai, anthropic, mock (got %q)", c.LLMProvider))
	}

	return errors.Join(errs...)
}

// LLM builds the provider configuration.
func (c Config) LLM() llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Provider = c.LLMProvider
	cfg.Timeout = c.LLMTimeout
	cfg.Retry.MaxAttempts = c.LLMMaxAttempts
	cfg.Gemini = llm.GeminiConfig{APIKey: c.GeminiAPIKey, Model: c.GeminiModel}
	cfg.OpenAI = llm.OpenAIConfig{APIKey: c.OpenAIAPIKey, Model: c.OpenAIModel, BaseURL: c.OpenAIBaseURL}
	cfg.Anthropic = llm.AnthropicConfig{APIKey: c.AnthropicAPIKey, Model: c.AnthropicModel}
	return cfg
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
