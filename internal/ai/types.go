package ai

import "github.com/nikbrunner/nexus/internal/model"

// Metadata is the structured summary of a URL.
type Metadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

// Fallback returns the placeholder metadata used whenever analysis fails.
func Fallback() Metadata {
	return Metadata{
		Title:       "Unknown site",
		Description: "Could not fetch a description automatically, please fill it in.",
		Category:    model.DefaultCategory,
		Tags:        []string{"to-sort"},
	}
}

// Analysis is the outcome of one analysis attempt. Metadata is always
// usable; Fallback is set (and Err holds the cause) when it is the
// placeholder rather than a real answer.
type Analysis struct {
	URL      string   `json:"url"`
	Metadata Metadata `json:"metadata"`
	Fallback bool     `json:"fallback"`
	Err      error    `json:"-"`
}

// apiRequest represents the Anthropic API request body.
type apiRequest struct {
	Model        string        `json:"model"`
	MaxTokens    int           `json:"max_tokens"`
	Messages     []apiMessage  `json:"messages"`
	OutputFormat *outputFormat `json:"output_format,omitempty"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type outputFormat struct {
	Type   string     `json:"type"`
	Schema jsonSchema `json:"schema"`
}

type jsonSchema struct {
	Type                 string                `json:"type"`
	Properties           map[string]schemaProp `json:"properties"`
	Required             []string              `json:"required"`
	AdditionalProperties bool                  `json:"additionalProperties"`
}

type schemaProp struct {
	Type  string      `json:"type"`
	Items *schemaProp `json:"items,omitempty"`
}

// apiResponse represents the Anthropic API response body.
type apiResponse struct {
	Content    []contentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}
