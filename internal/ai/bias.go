package ai

import (
	"regexp"
	"strings"
)

type FieldAnalysis struct {
	HasBias     bool     `json:"hasBias"`
	BiasType    *string  `json:"biasType"`
	Suggestions []string `json:"suggestions"`
	Explanation string   `json:"explanation"`
}

// biasIndicators backs the deterministic local detector used whenever the
// AI service is unavailable. Category order matters: the first category
// with a hit wins.
var biasCategories = []string{"gender", "age", "race", "ability"}

var biasIndicators = map[string][]string{
	"gender": {
		"he", "him", "his", "she", "her", "hers",
		"man", "woman", "men", "women", "guys", "gals",
		"male", "female", "gentleman", "lady", "ladies", "gentlemen",
		"manpower", "mankind", "chairman", "foreman", "policeman", "stewardess",
	},
	"age": {
		"young", "old", "fresh", "energetic", "recent graduate",
		"digital native", "seasoned", "veteran", "experienced", "mature",
	},
	"race": {
		"articulate", "intelligent", "well-spoken", "culture fit", "cultural fit",
	},
	"ability": {
		"able-bodied", "physically fit", "stand for long periods", "lift", "carry",
	},
}

var biasAdvice = map[string]struct {
	suggestion  string
	explanation string
}{
	"gender": {
		suggestion:  "Use gender-neutral language",
		explanation: "The text contains gender-specific terms that could be more inclusive",
	},
	"age": {
		suggestion:  "Use age-inclusive language",
		explanation: "The text contains age-related terms that might exclude some candidates",
	},
	"race": {
		suggestion:  "Use culturally inclusive language",
		explanation: "The text contains terms that could have racial implications",
	},
	"ability": {
		suggestion:  "Consider accessibility in requirements",
		explanation: "The text contains terms that might exclude people with different abilities",
	},
}

// DetectBias is the local keyword fallback. It never errors, so bias
// analysis can always return a result even without an API key.
func DetectBias(text string) FieldAnalysis {
	if strings.TrimSpace(text) == "" {
		return FieldAnalysis{
			HasBias:     false,
			Suggestions: []string{},
			Explanation: "No content to analyze",
		}
	}

	lowered := strings.ToLower(text)
	for _, category := range biasCategories {
		for _, indicator := range biasIndicators[category] {
			if strings.Contains(lowered, indicator) {
				advice := biasAdvice[category]
				biasType := category
				return FieldAnalysis{
					HasBias:     true,
					BiasType:    &biasType,
					Suggestions: []string{advice.suggestion},
					Explanation: advice.explanation,
				}
			}
		}
	}

	return FieldAnalysis{
		HasBias:     false,
		Suggestions: []string{},
		Explanation: "No obvious bias detected",
	}
}

// AnalyzeBiasLocally runs the keyword detector over every field.
func AnalyzeBiasLocally(fields map[string]string) map[string]FieldAnalysis {
	analysis := make(map[string]FieldAnalysis, len(fields))
	for field, content := range fields {
		analysis[field] = DetectBias(content)
	}
	return analysis
}

var commaSplitRe = regexp.MustCompile(`,\s*`)

// NormalizeFields flattens the request payload for analysis: string
// fields pass through, list fields are comma-split and newline-joined,
// and fields without content are dropped.
func NormalizeFields(fields map[string]any) map[string]string {
	normalized := make(map[string]string)

	for field, content := range fields {
		switch value := content.(type) {
		case string:
			if strings.TrimSpace(value) != "" {
				normalized[field] = value
			}
		case []any:
			var parts []string
			for _, item := range value {
				s, ok := item.(string)
				if !ok {
					continue
				}
				for _, part := range commaSplitRe.Split(s, -1) {
					if strings.TrimSpace(part) != "" {
						parts = append(parts, part)
					}
				}
			}
			if len(parts) > 0 {
				normalized[field] = strings.Join(parts, "\n")
			}
		}
	}

	return normalized
}
