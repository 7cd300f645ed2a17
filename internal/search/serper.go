// Package search provides the Serper.dev web-search client used to ground
// claim analysis. The client fails soft by contract: missing credentials,
// network errors, non-2xx responses, and malformed payloads all yield an
// empty result list so analysis proceeds ungrounded instead of failing.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"veritas/internal/analysis"
)

const (
	// DefaultBaseURL is the Serper.dev search endpoint.
	DefaultBaseURL = "https://google.serper.dev/search"

	defaultTimeout    = 5 * time.Second
	defaultMaxResults = 5
)

type Serper struct {
	apiKey  string
	baseURL string
	timeout time.Duration
	client  *http.Client
	logger  *slog.Logger
}

// NewSerper builds a Serper client. An empty baseURL resolves to the public
// endpoint; a non-positive timeout falls back to the default. An empty
// apiKey is permitted and disables search entirely.
func NewSerper(apiKey, baseURL string, timeout time.Duration, logger *slog.Logger) *Serper {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Serper{
		apiKey:  apiKey,
		baseURL: baseURL,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With("system", "search"),
	}
}

// Serper has shipped results under both "organic" and "results", and item
// fields under link/url and snippet/description. Tolerate all spellings.
type serperItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	URL         string `json:"url"`
	Snippet     string `json:"snippet"`
	Description string `json:"description"`
}

type serperResponse struct {
	Organic []serperItem `json:"organic"`
	Results []serperItem `json:"results"`
}

// Search queries Serper for up to max results. It never fails: an
// unconfigured or erroring search yields an empty list.
func (s *Serper) Search(ctx context.Context, query string, max int) []analysis.SearchResult {
	if s.apiKey == "" {
		s.logger.Debug("search skipped: no api key configured")
		return nil
	}

	if max <= 0 {
		max = defaultMaxResults
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	body, err := json.Marshal(map[string]any{"q": query, "num": max})
	if err != nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		s.logger.Warn("search request build failed", "error", err)
		return nil
	}

	req.Header.Set("X-API-KEY", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("search request failed", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("search returned non-200", "status", resp.StatusCode)
		return nil
	}

	var parsed serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		s.logger.Warn("search response decode failed", "error", err)
		return nil
	}

	hits := parsed.Organic
	if len(hits) == 0 {
		hits = parsed.Results
	}

	results := make([]analysis.SearchResult, 0, min(len(hits), max))

	for _, hit := range hits {
		if len(results) == max {
			break
		}

		url := hit.Link
		if url == "" {
			url = hit.URL
		}
		if url == "" {
			continue
		}

		snippet := hit.Snippet
		if snippet == "" {
			snippet = hit.Description
		}

		results = append(results, analysis.SearchResult{
			Title:   hit.Title,
			URL:     url,
			Snippet: snippet,
		})
	}

	s.logger.Debug("search completed", "query", query, "results", len(results))
	return results
}
