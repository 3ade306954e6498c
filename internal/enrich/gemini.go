package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"recipesaver/internal/config"
	"recipesaver/internal/recipe"
)

const (
	// maxHTMLBytes caps how much page HTML is sent to the model.
	maxHTMLBytes = 100_000

	defaultAITimeout   = 60 * time.Second
	aiRetryAttempts    = 3
	aiRetryBaseDelay   = 1 * time.Second
	aiMaxResponseBytes = 1 << 20
)

const extractionPrompt = `You are a recipe extraction assistant. Extract the main recipe from the provided HTML content and return it as a single JSON object with this exact shape:

{
  "title": "recipe title",
  "description": "a short two or three sentence description",
  "imageUrl": "absolute URL of the main image",
  "ingredients": ["ingredient with quantity", "..."],
  "steps": ["step description", "..."],
  "tags": ["cuisine, style, or timing tags", "..."]
}

Rules:
1. ingredients and steps must be arrays of strings with at least one entry when the page contains a recipe.
2. imageUrl must be absolute; resolve relative URLs against the page URL.
3. Strip ads, navigation text, and extra whitespace.
4. Use an empty string or empty array for anything you cannot find.
5. Return only the JSON object, with no markdown code fences and no other text.`

// AIClient asks Gemini to extract recipe data from page HTML.
type AIClient struct {
	cfg        config.Gemini
	httpClient *http.Client
	sleeper    func(time.Duration)
}

// AIOption customizes the client.
type AIOption func(*AIClient)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) AIOption {
	return func(c *AIClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithSleeper overrides how retry sleeps are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) AIOption {
	return func(c *AIClient) {
		if sleeper != nil {
			c.sleeper = sleeper
		}
	}
}

// NewAIClient constructs a Gemini extraction client.
func NewAIClient(cfg config.Gemini, opts ...AIOption) *AIClient {
	timeout := defaultAITimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &AIClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		sleeper:    time.Sleep,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Extract asks the model for recipe data embedded in pageHTML. It returns an
// error when the response carries neither a title nor ingredients, so callers
// can fall back to plain metadata extraction.
func (c *AIClient) Extract(ctx context.Context, pageHTML, pageURL string) (recipe.Draft, error) {
	var empty recipe.Draft
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return empty, errors.New("gemini extract: api key required")
	}

	if len(pageHTML) > maxHTMLBytes {
		pageHTML = pageHTML[:maxHTMLBytes]
	}

	prompt := extractionPrompt + "\n\nThe HTML was fetched from: " + pageURL
	payload := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}, {Text: pageHTML}}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
		},
	}

	text, err := c.generateWithRetry(ctx, payload)
	if err != nil {
		return empty, err
	}

	return parseExtraction(text, pageURL)
}

func (c *AIClient) generateWithRetry(ctx context.Context, payload generateRequest) (string, error) {
	var lastErr error
	for attempt := 0; attempt < aiRetryAttempts; attempt++ {
		if attempt > 0 {
			c.sleeper(aiRetryBaseDelay * time.Duration(attempt))
		}
		text, retryable, err := c.generate(ctx, payload)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return "", lastErr
}

func (c *AIClient) generate(ctx context.Context, payload generateRequest) (string, bool, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", false, fmt.Errorf("gemini extract: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.cfg.BaseURL, c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("gemini extract: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("gemini extract: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, aiMaxResponseBytes))
	if err != nil {
		return "", true, fmt.Errorf("gemini extract: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return "", retryable, fmt.Errorf("gemini extract: http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", false, fmt.Errorf("gemini extract: parse response: %w", err)
	}
	if parsed.Error != nil {
		return "", false, fmt.Errorf("gemini extract: %s", parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 {
		return "", false, errors.New("gemini extract: no candidates in response")
	}

	var text strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", false, fmt.Errorf("gemini extract: empty content (finish_reason=%q)", parsed.Candidates[0].FinishReason)
	}
	return text.String(), false, nil
}
