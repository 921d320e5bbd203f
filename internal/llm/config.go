package llm

import "time"

// Config selects and configures a provider.
type Config struct {
	// Provider is one of "gemini", "openai", "anthropic", "mock" or "none".
	Provider string

	Gemini    GeminiConfig
	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig
	Retry     RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // OpenRouter and other compatible APIs
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

// RetryConfig bounds retries. The wait doubles after every attempt up to MaxWait.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
}

func DefaultConfig() Config {
	return Config{
		Provider:  "none",
		Gemini:    GeminiConfig{Model: "gemini-flash"},
		OpenAI:    OpenAIConfig{Model: "gpt-4o-mini"},
		Anthropic: AnthropicConfig{Model: "claude-haiku"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
		},
		Timeout: 30 * time.Second,
	}
}

// resolveModel maps a friendly name to a provider model id. Unknown names
// are passed through so callers can pin exact model ids.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
