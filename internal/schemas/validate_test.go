package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateImageAnalysis(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantError bool
	}{
		{
			name: "Complete analysis",
			json: `{
				"content_type": "portrait",
				"subjects": ["person", "studio"],
				"quality": "high",
				"tags": ["professional", "portrait"],
				"category": "photography"
			}`,
			wantError: false,
		},
		{
			name:      "Missing required category",
			json:      `{"content_type": "portrait", "tags": ["a"]}`,
			wantError: true,
		},
		{
			name:      "Tags wrong type",
			json:      `{"content_type": "portrait", "tags": "professional", "category": "photography"}`,
			wantError: true,
		},
		{
			name:      "Not an object",
			json:      `["portrait"]`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImageAnalysis(tt.json)
			if tt.wantError {
				require.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateImageAnalysisMalformedJSON(t *testing.T) {
	err := ValidateImageAnalysis(`{not json`)
	require.Error(t, err)
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidateImageAnalysis(`{"content_type": 5, "tags": [], "category": "x"}`)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)
	assert.Contains(t, validationErr.Error(), "content_type")
}
