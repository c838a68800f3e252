package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectBias(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		biasType string
	}{
		{"gendered job title", "We are looking for a chairman to lead the board", "gender"},
		{"age keyword", "A seasoned professional wanted", "age"},
		{"race keyword", "Must be a culture fit", "race"},
		{"ability keyword", "Must lift 50 pounds", "ability"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := DetectBias(tt.text)
			assert.True(t, analysis.HasBias)
			require.NotNil(t, analysis.BiasType)
			assert.Equal(t, tt.biasType, *analysis.BiasType)
			assert.NotEmpty(t, analysis.Suggestions)
			assert.NotEmpty(t, analysis.Explanation)
		})
	}
}

func TestDetectBiasCaseInsensitive(t *testing.T) {
	analysis := DetectBias("CHAIRMAN of the committee")
	assert.True(t, analysis.HasBias)
	require.NotNil(t, analysis.BiasType)
	assert.Equal(t, "gender", *analysis.BiasType)
}

func TestDetectBiasClean(t *testing.T) {
	analysis := DetectBias("Collaborate across groups")
	assert.False(t, analysis.HasBias)
	assert.Nil(t, analysis.BiasType)
	assert.Equal(t, "No obvious bias detected", analysis.Explanation)
	assert.Empty(t, analysis.Suggestions)
}

func TestDetectBiasEmptyContent(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		analysis := DetectBias(text)
		assert.False(t, analysis.HasBias)
		assert.Equal(t, "No content to analyze", analysis.Explanation)
	}
}

func TestAnalyzeBiasLocally(t *testing.T) {
	analysis := AnalyzeBiasLocally(map[string]string{
		"jobTitle":        "Foreman",
		"positionSummary": "Coordinate work across groups",
	})

	require.Len(t, analysis, 2)
	assert.True(t, analysis["jobTitle"].HasBias)
	assert.False(t, analysis["positionSummary"].HasBias)
}

func TestNormalizeFields(t *testing.T) {
	normalized := NormalizeFields(map[string]any{
		"positionSummary": "Coordinate work",
		"requiredSkills":  []any{"Go, SQL", "Communication"},
		"blank":           "   ",
		"emptyList":       []any{"", "  "},
		"number":          42,
	})

	assert.Equal(t, map[string]string{
		"positionSummary": "Coordinate work",
		"requiredSkills":  "Go\nSQL\nCommunication",
	}, normalized)
}
