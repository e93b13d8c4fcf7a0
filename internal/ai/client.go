package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nikbrunner/nexus/internal/config"
	"github.com/nikbrunner/nexus/internal/model"
)

const (
	apiVersion = "2023-06-01"
	betaHeader = "structured-outputs-2025-11-13"
)

var (
	ErrNoAPIKey        = errors.New("ANTHROPIC_API_KEY environment variable not set")
	ErrAPIRequest      = errors.New("API request failed")
	ErrInvalidResponse = errors.New("invalid API response")
)

// Client handles communication with the Anthropic API.
type Client struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a new AI client.
// Returns ErrNoAPIKey if no API key is configured.
func NewClient(cfg config.AIConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	return &Client{
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		endpoint: cfg.Endpoint,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}, nil
}

// Suggest asks the model for a title, description, category and tags for url.
// hints describes the existing collection, see BuildContext.
func (c *Client) Suggest(ctx context.Context, url string, hints string) (*Metadata, error) {
	reqBody := apiRequest{
		Model:     c.model,
		MaxTokens: 512,
		Messages: []apiMessage{
			{Role: "user", Content: buildPrompt(url, hints)},
		},
		OutputFormat: &outputFormat{
			Type: "json_schema",
			Schema: jsonSchema{
				Type: "object",
				Properties: map[string]schemaProp{
					"title":       {Type: "string"},
					"description": {Type: "string"},
					"category":    {Type: "string"},
					"tags":        {Type: "array", Items: &schemaProp{Type: "string"}},
				},
				Required:             []string{"title", "description", "category", "tags"},
				AdditionalProperties: false,
			},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("anthropic-beta", betaHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAPIRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrAPIRequest, resp.StatusCode, string(body))
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if len(apiResp.Content) == 0 || apiResp.Content[0].Type != "text" || strings.TrimSpace(apiResp.Content[0].Text) == "" {
		return nil, ErrInvalidResponse
	}

	var result Metadata
	if err := json.Unmarshal([]byte(apiResp.Content[0].Text), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return normalize(result), nil
}

// normalize trims fields and applies the add defaults to blank ones.
func normalize(m Metadata) *Metadata {
	m.Title = strings.TrimSpace(m.Title)
	m.Description = strings.TrimSpace(m.Description)
	m.Category = strings.TrimSpace(m.Category)
	if m.Category == "" {
		m.Category = model.DefaultCategory
	}
	m.Tags = model.CleanTags(m.Tags)
	return &m
}

func buildPrompt(url string, hints string) string {
	return fmt.Sprintf(`Analyze this URL (or site name) and describe it for a bookmark collection.

URL: %s

%s

Instructions:
- title: a short name for the site, at most 15 characters
- description: one sentence summarizing what the site is for, at most 30 words
- category: a broad category of at most 3 words, reuse an existing category when one fits
- tags: 3-4 keywords describing the site, prefer existing tags when they fit
- If the site can't be identified, make a reasonable guess from the URL itself`, url, hints)
}
