package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"recipesaver/internal/config"
	"recipesaver/internal/logging"
	"recipesaver/internal/recipe"
)

// Service turns a source URL into a best-effort recipe draft.
type Service struct {
	fetcher *fetcher
	ai      *AIClient
	logger  *slog.Logger
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithFetchHTTPClient overrides the HTTP client used for page fetches.
func WithFetchHTTPClient(client *http.Client) ServiceOption {
	return func(s *Service) {
		if client != nil {
			s.fetcher.httpClient = client
		}
	}
}

// WithAIClient overrides the extraction client; nil disables AI extraction.
func WithAIClient(client *AIClient) ServiceOption {
	return func(s *Service) {
		s.ai = client
	}
}

// NewService builds the enrichment service from config. AI extraction is
// enabled only when a Gemini API key is configured.
func NewService(cfg *config.Config, logger *slog.Logger, opts ...ServiceOption) *Service {
	logger = logging.NewComponentLogger(logger, "enrich")
	svc := &Service{
		fetcher: newFetcher(cfg.Fetch, nil, logger),
		logger:  logger,
	}
	if strings.TrimSpace(cfg.Gemini.APIKey) != "" {
		svc.ai = NewAIClient(cfg.Gemini)
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Fetch retrieves the page at rawURL and extracts a draft, preferring the AI
// extractor and falling back to standard page metadata. The draft always
// carries the source URL; no storage is touched.
func (s *Service) Fetch(ctx context.Context, rawURL string) (recipe.Draft, error) {
	var empty recipe.Draft

	target, err := validateURL(rawURL)
	if err != nil {
		return empty, err
	}

	pageHTML, err := s.fetcher.FetchHTML(ctx, target)
	if err != nil {
		return empty, err
	}

	if s.ai != nil {
		draft, aiErr := s.ai.Extract(ctx, pageHTML, target)
		if aiErr == nil {
			s.logger.Debug("ai extraction succeeded",
				logging.String("title", draft.Title),
				logging.Int("ingredients", len(draft.Ingredients)),
				logging.Int("steps", len(draft.Steps)))
			return draft, nil
		}
		s.logger.Warn("ai extraction failed, falling back to page metadata", logging.Error(aiErr))
	}

	return ExtractMetadata(pageHTML, target), nil
}

func validateURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("invalid url %q: scheme must be http or https", rawURL)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("invalid url %q: missing host", rawURL)
	}
	return parsed.String(), nil
}

// Merge fills empty fields of an existing record from a draft without
// overriding anything already filled in. Identity and lifecycle fields are
// untouched.
func Merge(existing recipe.Recipe, draft recipe.Draft) recipe.Recipe {
	out := existing.Clone()
	if strings.TrimSpace(out.Title) == "" {
		out.Title = draft.Title
	}
	if strings.TrimSpace(out.URL) == "" {
		out.URL = draft.URL
	}
	if strings.TrimSpace(out.ImageURL) == "" {
		out.ImageURL = draft.ImageURL
	}
	if strings.TrimSpace(out.Description) == "" {
		out.Description = draft.Description
	}
	if len(out.Ingredients) == 0 && len(draft.Ingredients) > 0 {
		out.Ingredients = append([]string(nil), draft.Ingredients...)
	}
	if len(out.Steps) == 0 && len(draft.Steps) > 0 {
		out.Steps = append([]string(nil), draft.Steps...)
	}
	if len(out.Tags) == 0 && len(draft.Tags) > 0 {
		out.Tags = append([]string(nil), draft.Tags...)
	}
	return out
}
