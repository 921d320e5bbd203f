package llm

import (
	"context"
	"fmt"
	"strings"
)

// NewProvider builds the configured provider wrapped as
// caller -> timeout -> retry -> logging -> base.
// It returns ErrNotConfigured when cfg.Provider is empty or "none".
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	var base Provider
	var err error

	switch strings.ToLower(cfg.Provider) {
	case "", "none":
		return nil, ErrNotConfigured
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithTimeout(WithRetry(WithLogging(base), cfg.Retry), cfg.Timeout), nil
}
