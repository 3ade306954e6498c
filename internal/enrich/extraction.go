package enrich

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"recipesaver/internal/recipe"
)

// parseExtraction turns raw model output into a draft. Models occasionally
// wrap the JSON in markdown fences or leading prose despite instructions, so
// the payload is located between the outermost braces before parsing.
func parseExtraction(text, pageURL string) (recipe.Draft, error) {
	var empty recipe.Draft

	cleaned := cleanModelJSON(text)

	var payload struct {
		Title       string          `json:"title"`
		Description string          `json:"description"`
		ImageURL    string          `json:"imageUrl"`
		Ingredients json.RawMessage `json:"ingredients"`
		Steps       json.RawMessage `json:"steps"`
		Tags        json.RawMessage `json:"tags"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return empty, fmt.Errorf("gemini extract: parse payload: %w", err)
	}

	draft := recipe.Draft{
		Title:       strings.TrimSpace(payload.Title),
		Description: strings.TrimSpace(payload.Description),
		ImageURL:    strings.TrimSpace(payload.ImageURL),
		Ingredients: coerceStrings(payload.Ingredients),
		Steps:       coerceStrings(payload.Steps),
		Tags:        coerceStrings(payload.Tags),
		URL:         pageURL,
	}

	if draft.Title == "" && len(draft.Ingredients) == 0 {
		return empty, errors.New("gemini extract: no meaningful recipe data in response")
	}
	if draft.ImageURL != "" {
		draft.ImageURL = absoluteURL(draft.ImageURL, pageURL)
	}
	return draft, nil
}

func cleanModelJSON(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		cleaned = cleaned[start : end+1]
	}
	return cleaned
}

// coerceStrings accepts a JSON array and keeps its string elements, dropping
// anything else the model produced. Non-array values yield an empty list.
func coerceStrings(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var values []any
	if err := json.Unmarshal(raw, &values); err != nil {
		return []string{}
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
