// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package neural

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdiddy/profile-engine/pkg/types"
)

func TestExaSearch(t *testing.T) {
	var gotPayload exaRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "exakey" {
			t.Errorf("x-api-key = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Fatalf("decoding payload: %v", err)
		}
		fmt.Fprint(w, `{
			"results": [
				{"title": "Jane Doe wins prize", "url": "https://example.com/prize", "text": "body text"},
				{"title": "Second", "url": "https://example.com/2", "text": "more"}
			]
		}`)
	}))
	defer server.Close()

	orig := exaAPIBase
	exaAPIBase = server.URL
	defer func() { exaAPIBase = orig }()

	backend := &ExaBackend{
		Client: server.Client(),
		APIKey: "exakey",
		Domains: map[types.QueryCategory][]string{
			types.CategoryAwards: {"nobelprize.org"},
		},
	}
	cfg := types.NeuralConfig{ResultsPerQuery: 5, UseDomainFilters: true}

	results, err := backend.Search(context.Background(),
		types.Query{Category: types.CategoryAwards, Text: `"Jane Doe" award`}, cfg)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotPayload.Query != `"Jane Doe" award` || gotPayload.Type != "neural" {
		t.Errorf("payload = %+v", gotPayload)
	}
	if gotPayload.NumResults != 5 {
		t.Errorf("numResults = %d", gotPayload.NumResults)
	}
	if len(gotPayload.IncludeDomains) != 1 || gotPayload.IncludeDomains[0] != "nobelprize.org" {
		t.Errorf("includeDomains = %v", gotPayload.IncludeDomains)
	}

	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Title != "Jane Doe wins prize" || results[0].Body != "body text" {
		t.Errorf("first result = %+v", results[0])
	}
}

func TestExaSearchNoDomainFilters(t *testing.T) {
	var gotPayload exaRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotPayload)
		fmt.Fprint(w, `{"results": []}`)
	}))
	defer server.Close()

	orig := exaAPIBase
	exaAPIBase = server.URL
	defer func() { exaAPIBase = orig }()

	backend := &ExaBackend{
		Client:  server.Client(),
		APIKey:  "exakey",
		Domains: map[types.QueryCategory][]string{types.CategoryAwards: {"nobelprize.org"}},
	}

	_, err := backend.Search(context.Background(),
		types.Query{Category: types.CategoryAwards, Text: "q"},
		types.NeuralConfig{UseDomainFilters: false})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(gotPayload.IncludeDomains) != 0 {
		t.Errorf("includeDomains = %v, want none when filtering is off", gotPayload.IncludeDomains)
	}
}

func TestExaSearchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusPaymentRequired)
	}))
	defer server.Close()

	orig := exaAPIBase
	exaAPIBase = server.URL
	defer func() { exaAPIBase = orig }()

	backend := &ExaBackend{Client: server.Client(), APIKey: "exakey"}
	_, err := backend.Search(context.Background(),
		types.Query{Category: types.CategoryGeneral, Text: "q"}, types.NeuralConfig{})
	if err == nil {
		t.Error("Search succeeded against an error response")
	}
}
