package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-profiles/internal/llm/llmtest"
)

func TestExtractStructuredResponse(t *testing.T) {
	client := &llmtest.Client{
		GenerateJSONFunc: func(string) (string, error) {
			return `["Photography", "Adobe Photoshop", "Portrait Photography"]`, nil
		},
	}

	skills := Extract(t.Context(), client, "I shoot portraits and edit in Photoshop")
	assert.Equal(t, []string{"Photography", "Adobe Photoshop", "Portrait Photography"}, skills)
}

func TestExtractMalformedResponseFallsBackToCommaSplit(t *testing.T) {
	client := &llmtest.Client{
		GenerateJSONFunc: func(string) (string, error) {
			return "Photography, Adobe Photoshop,  , Video Editing", nil
		},
	}

	skills := Extract(t.Context(), client, "some bio text")
	assert.Equal(t, []string{"Photography", "Adobe Photoshop", "Video Editing"}, skills)
}

func TestExtractFailureReturnsEmpty(t *testing.T) {
	client := &llmtest.Client{} // all operations fail

	skills := Extract(t.Context(), client, "some bio text")
	assert.Empty(t, skills)
}

func TestExtractEmptyTextSkipsCall(t *testing.T) {
	client := &llmtest.Client{
		GenerateJSONFunc: func(string) (string, error) {
			t.Fatal("client should not be called for empty text")
			return "", nil
		},
	}

	assert.Empty(t, Extract(t.Context(), client, "   "))
	assert.Zero(t, client.CallCount())
}

func TestExtractNilClientReturnsEmpty(t *testing.T) {
	assert.Empty(t, Extract(t.Context(), nil, "text"))
}

func TestDedup(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "Removes exact duplicates preserving order",
			input:    []string{"Photography", "Editing", "Photography", "Editing", "Lighting"},
			expected: []string{"Photography", "Editing", "Lighting"},
		},
		{
			name:     "Case variants stay distinct",
			input:    []string{"Photography", "photography"},
			expected: []string{"Photography", "photography"},
		},
		{
			name:     "Empty input",
			input:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Dedup(tt.input))
		})
	}
}
