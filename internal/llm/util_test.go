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
			name:     "JSON wrapped in json code block",
			input:    "```json\n{\"skills\": [\"Photography\"]}\n```",
			expected: `{"skills": ["Photography"]}`,
		},
		{
			name:     "JSON wrapped in bare code block",
			input:    "```\n[\"sunset\", \"portrait\"]\n```",
			expected: `["sunset", "portrait"]`,
		},
		{
			name:     "Plain JSON untouched",
			input:    `{"category": "photography"}`,
			expected: `{"category": "photography"}`,
		},
		{
			name:     "Leading and trailing whitespace",
			input:    "  \n{\"quality\": \"high\"}\n  ",
			expected: `{"quality": "high"}`,
		},
		{
			name:     "Code block with language identifier line",
			input:    "```javascript\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestConfigGetModel(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(TierStandard))

	// Unknown tier falls back to standard
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(ModelTier("advanced")))

	custom := cfg.WithModel(TierLite, "gemini-2.0-flash")
	assert.Equal(t, "gemini-2.0-flash", custom.GetModel(TierLite))
	// Original config unchanged
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GetModel(TierLite))
}

func TestNewGeminiClientRequiresAPIKey(t *testing.T) {
	_, err := NewGeminiClient(t.Context(), DefaultConfig(), "")
	assert.Error(t, err)
}
