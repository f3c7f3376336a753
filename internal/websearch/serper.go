// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package websearch queries a generic web-search API and mines the results
// for social-profile links. Implements: prd010-person-search (R3);
//
//	docs/ARCHITECTURE § Source Collaborators.
package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pdiddy/profile-engine/internal/httputil"
	"github.com/pdiddy/profile-engine/pkg/types"
)

// serperAPIBase is the Serper search endpoint. Declared as a var so tests
// can substitute an httptest server.
var serperAPIBase = "https://google.serper.dev/search"

// SerperClient queries the Serper web-search API.
type SerperClient struct {
	Client    *http.Client
	APIKey    string
	UserAgent string
}

// Search runs one web-search query and returns the organic results plus
// the knowledge panel when the API includes one.
func (c *SerperClient) Search(ctx context.Context, query string) (*types.WebSearchResponse, error) {
	payload, err := json.Marshal(map[string]string{"q": query})
	if err != nil {
		return nil, fmt.Errorf("encoding query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serperAPIBase, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("web-search API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("web-search API returned HTTP %d", resp.StatusCode)
	}

	var sr serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing web-search response: %w", err)
	}

	out := &types.WebSearchResponse{}
	for _, o := range sr.Organic {
		out.Organic = append(out.Organic, types.WebResult{
			Title:   o.Title,
			Link:    o.Link,
			Snippet: o.Snippet,
		})
	}
	if sr.KnowledgeGraph != nil {
		panel := &types.KnowledgePanel{
			Title:       sr.KnowledgeGraph.Title,
			Type:        sr.KnowledgeGraph.Type,
			Description: sr.KnowledgeGraph.Description,
			Attributes:  sr.KnowledgeGraph.Attributes,
		}
		if sr.KnowledgeGraph.Website != "" {
			panel.ProfileURLs = append(panel.ProfileURLs, sr.KnowledgeGraph.Website)
		}
		out.Panel = panel
	}
	return out, nil
}

// Serper API JSON structures.
type serperResponse struct {
	Organic        []serperOrganic       `json:"organic"`
	KnowledgeGraph *serperKnowledgeGraph `json:"knowledgeGraph"`
}

type serperOrganic struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type serperKnowledgeGraph struct {
	Title       string            `json:"title"`
	Type        string            `json:"type"`
	Description string            `json:"description"`
	Website     string            `json:"website"`
	Attributes  map[string]string `json:"attributes"`
}
