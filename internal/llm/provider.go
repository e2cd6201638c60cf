package llm

import (
	"context"
	"os"

	"github.com/avetrov/claimscope/internal/model"
)

// Provider defines the interface for generative-model backends. Every
// judgment Claimscope makes is a single-shot text completion; the
// provider is agnostic to what the text means.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete performs one text completion call
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for a single completion call
type CompletionRequest struct {
	// System sets the role instructions for the call
	System string

	// Prompt is the user-turn content
	Prompt string

	// Model overrides the configured model for this call (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// Config holds provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Temperature for response generation; judgments want it low
	Temperature float32

	// RateLimit caps judgment calls per second (0 = unlimited)
	RateLimit float64

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:    mc.Provider,
		Model:       mc.Model,
		APIKey:      mc.APIKey,
		BaseURL:     mc.BaseURL,
		Timeout:     mc.Timeout,
		MaxTokens:   mc.MaxTokens,
		Temperature: mc.Temperature,
		RateLimit:   mc.RateLimit,
	}
}

// APIKeyFromEnv resolves the API key environment variable for a provider
func APIKeyFromEnv(provider string) string {
	switch provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "anthropic", "claude":
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return ""
	}
}
