package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain json untouched",
			input:    `{"topic": "healthcare"}`,
			expected: `{"topic": "healthcare"}`,
		},
		{
			name:     "json fence stripped",
			input:    "```json\n{\"topic\": \"healthcare\"}\n```",
			expected: `{"topic": "healthcare"}`,
		},
		{
			name:     "generic fence stripped",
			input:    "```\n{\"topic\": \"healthcare\"}\n```",
			expected: `{"topic": "healthcare"}`,
		},
		{
			name:     "fence with language identifier",
			input:    "```javascript\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  \n{\"a\": 1}\n  ",
			expected: `{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestGetModel(t *testing.T) {
	cfg := DefaultGeminiConfig()
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", cfg.GetModel(TierCreative))

	t.Run("falls back to standard", func(t *testing.T) {
		partial := &Config{Models: map[ModelTier]string{TierStandard: "only-model"}}
		assert.Equal(t, "only-model", partial.GetModel(TierCreative))
	})

	t.Run("empty config", func(t *testing.T) {
		empty := &Config{}
		assert.Equal(t, "", empty.GetModel(TierStandard))
	})
}

func TestTemperature(t *testing.T) {
	assert.InDelta(t, 0.1, Temperature(TierLite), 0.001)
	assert.InDelta(t, 0.7, Temperature(TierStandard), 0.001)
	assert.InDelta(t, 0.85, Temperature(TierCreative), 0.001)
}
