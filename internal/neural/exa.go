// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package neural

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pdiddy/profile-engine/internal/httputil"
	"github.com/pdiddy/profile-engine/pkg/types"
)

// exaAPIBase is the Exa search endpoint. Declared as a var so tests can
// substitute an httptest server.
var exaAPIBase = "https://api.exa.ai/search"

// ExaBackend queries the Exa neural-search API.
type ExaBackend struct {
	Client    *http.Client
	APIKey    string
	UserAgent string

	// Domains optionally allow-lists results per query category. Nil or a
	// missing category means no domain restriction for that query.
	Domains map[types.QueryCategory][]string
}

// Name returns the backend identifier.
func (b *ExaBackend) Name() string { return "exa" }

// Search runs one neural query. The request always asks for neural-type
// search with autoprompt; the category's domain allow-list is attached
// when domain filtering is enabled.
func (b *ExaBackend) Search(ctx context.Context, query types.Query, cfg types.NeuralConfig) ([]types.SearchResult, error) {
	numResults := cfg.ResultsPerQuery
	if numResults <= 0 {
		numResults = 10
	}

	payload := exaRequest{
		Query:         query.Text,
		Type:          "neural",
		NumResults:    numResults,
		UseAutoprompt: true,
		Contents:      exaContents{Text: true},
	}
	if cfg.UseDomainFilters {
		payload.IncludeDomains = b.Domains[query.Category]
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, exaAPIBase, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("x-api-key", b.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", b.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("neural-search API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("neural-search API returned HTTP %d", resp.StatusCode)
	}

	var er exaResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return nil, fmt.Errorf("parsing neural-search response: %w", err)
	}

	var results []types.SearchResult
	for _, r := range er.Results {
		results = append(results, types.SearchResult{
			Title: r.Title,
			URL:   r.URL,
			Body:  r.Text,
		})
	}
	return results, nil
}

// Exa API JSON structures.
type exaRequest struct {
	Query          string      `json:"query"`
	Type           string      `json:"type"`
	NumResults     int         `json:"numResults"`
	UseAutoprompt  bool        `json:"useAutoprompt"`
	IncludeDomains []string    `json:"includeDomains,omitempty"`
	Contents       exaContents `json:"contents"`
}

type exaContents struct {
	Text bool `json:"text"`
}

type exaResponse struct {
	Results []exaResult `json:"results"`
}

type exaResult struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Text  string `json:"text"`
}
