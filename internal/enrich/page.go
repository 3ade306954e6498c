package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"recipesaver/internal/config"
	"recipesaver/internal/logging"
)

// maxPageBytes caps how much of a page body is read.
const maxPageBytes = 2 << 20

// fetcher retrieves page HTML, trying a direct request first and then each
// configured proxy template in order.
type fetcher struct {
	cfg        config.Fetch
	httpClient *http.Client
	logger     *slog.Logger
}

func newFetcher(cfg config.Fetch, httpClient *http.Client, logger *slog.Logger) *fetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	}
	return &fetcher{
		cfg:        cfg,
		httpClient: httpClient,
		logger:     logging.NewComponentLogger(logger, "enrich"),
	}
}

// FetchHTML returns the page body for the target URL.
func (f *fetcher) FetchHTML(ctx context.Context, target string) (string, error) {
	attempts := make([]string, 0, len(f.cfg.Proxies)+1)
	attempts = append(attempts, target)
	for _, template := range f.cfg.Proxies {
		attempts = append(attempts, fmt.Sprintf(template, url.QueryEscape(target)))
	}

	var lastErr error
	for i, attempt := range attempts {
		body, err := f.get(ctx, attempt)
		if err != nil {
			lastErr = err
			f.logger.Debug("page fetch attempt failed",
				logging.Int("attempt", i+1),
				logging.Error(err))
			continue
		}
		if html := unwrapProxyBody(body); strings.TrimSpace(html) != "" {
			return html, nil
		}
		lastErr = errors.New("empty response body")
	}
	return "", fmt.Errorf("fetch %s: %w", target, lastErr)
}

func (f *fetcher) get(ctx context.Context, requestURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// unwrapProxyBody handles proxies that wrap the page in a JSON envelope with
// a contents field (the allOrigins format). Anything else passes through.
func unwrapProxyBody(body string) string {
	trimmed := strings.TrimSpace(body)
	if !strings.HasPrefix(trimmed, "{") {
		return body
	}
	var wrapper struct {
		Contents string `json:"contents"`
	}
	if err := json.Unmarshal([]byte(trimmed), &wrapper); err == nil && wrapper.Contents != "" {
		return wrapper.Contents
	}
	return body
}
