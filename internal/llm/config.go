// Package llm provides centralized LLM configuration and client abstractions.
// The pipeline depends only on the Client interface so tests can substitute a
// deterministic stub for the generation service.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: category detection, short suggestions
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: article analysis, drafting
	TierStandard ModelTier = "standard"
	// TierCreative is for high-variation output: per-recipient personalization
	TierCreative ModelTier = "creative"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI provider (future)
	ProviderOpenAI Provider = "openai"
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierCreative: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// Temperature returns the sampling temperature used for a tier. Category
// decisions must stay near-deterministic; personalization wants variation.
func Temperature(tier ModelTier) float32 {
	switch tier {
	case TierLite:
		return 0.1
	case TierCreative:
		return 0.85
	default:
		return 0.7
	}
}
