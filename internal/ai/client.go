// Package ai talks to the Gemini generateContent REST API for job
// description auto-completion and bias analysis. Every caller must be
// prepared for failure: bias analysis falls back to the local detector in
// this package, auto-completion surfaces the error to the client.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

var ErrMissingAPIKey = errors.New("ai: missing Gemini API key")

type Client struct {
	apiKey            string
	biasModel         string
	autoCompleteModel string
	baseURL           string
	httpClient        *http.Client
}

func NewClient(apiKey, biasModel, autoCompleteModel string, timeout time.Duration) *Client {
	return &Client{
		apiKey:            apiKey,
		biasModel:         biasModel,
		autoCompleteModel: autoCompleteModel,
		baseURL:           defaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Role  string         `json:"role,omitempty"`
	Parts []generatePart `json:"parts"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	TopP             float64 `json:"topP,omitempty"`
	TopK             int     `json:"topK,omitempty"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig generationConfig  `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []generatePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, model, prompt string, cfg generationConfig) (string, error) {
	if !c.Enabled() {
		return "", ErrMissingAPIKey
	}

	body, err := json.Marshal(generateRequest{
		Contents: []generateContent{
			{Role: "user", Parts: []generatePart{{Text: prompt}}},
		},
		GenerationConfig: cfg,
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai: generateContent returned status %d: %s", resp.StatusCode, string(respBody))
	}

	parsed := generateResponse{}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("ai: empty generateContent response")
	}

	text := ""
	for _, part := range parsed.Candidates[0].Content.Parts {
		text += part.Text
	}
	return text, nil
}

var (
	codeFenceRe   = regexp.MustCompile("```json\\s*|\\s*```")
	curlyDoubleRe = regexp.MustCompile("[“”„‟″‶]")
	curlySingleRe = regexp.MustCompile("[‘’‚‛′‵]")
	jsonObjectRe  = regexp.MustCompile(`\{[\s\S]*\}`)
)

// cleanJSONText repairs the usual model output damage: markdown code
// fences, typographic quotes, and prose wrapped around the JSON object.
func cleanJSONText(raw string) string {
	text := codeFenceRe.ReplaceAllString(raw, "")
	text = curlyDoubleRe.ReplaceAllString(text, `"`)
	text = curlySingleRe.ReplaceAllString(text, "'")
	text = strings.TrimSpace(text)

	if match := jsonObjectRe.FindString(text); match != "" {
		return match
	}
	return text
}

type AutoCompleteResult struct {
	PositionSummary     string   `json:"positionSummary"`
	KeyResponsibilities []string `json:"keyResponsibilities"`
	RequiredSkills      []string `json:"requiredSkills"`
	PreferredSkills     []string `json:"preferredSkills"`
}

const autoCompletePromptFmt = `
Generate professional content for a job description based on the job title: %q.

Return the response as a JSON object with these fields:
1. positionSummary: A detailed overview of the role (2-3 paragraphs)
2. keyResponsibilities: 6-8 key responsibilities for this role as an array of bullet points
3. requiredSkills: 5-7 must-have skills and qualifications as an array of bullet points
4. preferredSkills: 3-5 nice-to-have skills as an array of bullet points

Make sure to:
- Be specific and detailed
- Use industry-standard terminology
- Format the content professionally

IMPORTANT - Carefully avoid ALL forms of bias in the content:
- Use "relevant experience" instead of "demonstrated experience" or specifying years
- Gender bias: Avoid gendered terms (he/she, him/her, guys, manpower, etc.)
- Age bias: avoid ALL references to years or length of experience and terms
  like "young", "fresh", "seasoned veteran", "digital native"
- Race/cultural bias: Avoid terms with racial implications or cultural assumptions
- Ability bias: Avoid requirements that unnecessarily exclude people with
  disabilities; focus on outcomes rather than methods

For educational requirements: Use "degree or equivalent practical experience"

FOCUS ON SKILLS AND COMPETENCIES RATHER THAN LENGTH OF EXPERIENCE OR CREDENTIALS.

Return ONLY valid JSON without explanations, comments or code blocks.`

// AutoComplete drafts initial content for a new job description. It is
// only offered at creation time, never in edit mode.
func (c *Client) AutoComplete(ctx context.Context, jobTitle string) (*AutoCompleteResult, error) {
	prompt := fmt.Sprintf(autoCompletePromptFmt, jobTitle)

	raw, err := c.generate(ctx, c.autoCompleteModel, prompt, generationConfig{
		Temperature:     0.9,
		TopP:            0.95,
		TopK:            40,
		MaxOutputTokens: 2048,
	})
	if err != nil {
		return nil, err
	}

	result := &AutoCompleteResult{}
	if err := json.Unmarshal([]byte(cleanJSONText(raw)), result); err != nil {
		return nil, fmt.Errorf("ai: parse auto-complete response: %w", err)
	}

	return result, nil
}

const analyzeBiasPromptFmt = `
Analyze the following job description fields for bias.

Context Information:
%s

Fields to Analyze:
%s

Check for gender, age, race, ability, and other forms of bias.
Some examples of bias to look for:
- Gender bias: gendered terms, stereotypes about men/women
- Age bias: terms that favor younger or older workers
- Race/cultural bias: terms with racial implications or cultural assumptions
- Ability bias: requirements that unnecessarily exclude people with disabilities

Return a single JSON object with this structure:
{
  "fieldName": {
    "hasBias": boolean,
    "biasType": string or null,
    "suggestions": array of strings,
    "explanation": string
  }
}

IMPORTANT: In the suggestions array, include the replacement words or phrases in
the biased phrases. For the other phrases not containing bias, include them the
same. Keep the bullet points.
Example: If "smart men" is biased, suggestions should be ["talented individuals",
"skilled professionals"] NOT ["Replace 'smart men' with 'talented individuals'"]

Ensure you ONLY return valid JSON with no additional text or formatting.`

// AnalyzeBias asks the model for a per-field bias report. Fields missing
// from the model response are filled with a neutral default so callers
// always see every requested field.
func (c *Client) AnalyzeBias(ctx context.Context, contextFields, fields map[string]string) (map[string]FieldAnalysis, error) {
	contextJSON, err := json.MarshalIndent(contextFields, "", "  ")
	if err != nil {
		return nil, err
	}
	fieldsJSON, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(analyzeBiasPromptFmt, contextJSON, fieldsJSON)

	raw, err := c.generate(ctx, c.biasModel, prompt, generationConfig{
		Temperature:      0.2,
		TopP:             0.95,
		MaxOutputTokens:  2048,
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, err
	}

	analysis := map[string]FieldAnalysis{}
	if err := json.Unmarshal([]byte(cleanJSONText(raw)), &analysis); err != nil {
		return nil, fmt.Errorf("ai: parse bias analysis response: %w", err)
	}

	for field := range fields {
		if _, ok := analysis[field]; !ok {
			analysis[field] = FieldAnalysis{
				HasBias:     false,
				Suggestions: []string{},
				Explanation: "No analysis available for this field",
			}
		}
	}

	return analysis, nil
}
