// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package neural

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/profile-engine/pkg/types"
)

// fakeBackend answers from a canned map and fails listed categories.
type fakeBackend struct {
	results map[types.QueryCategory][]types.SearchResult
	fail    map[types.QueryCategory]bool
}

func (b *fakeBackend) Name() string { return "fake" }

func (b *fakeBackend) Search(ctx context.Context, q types.Query, cfg types.NeuralConfig) ([]types.SearchResult, error) {
	if b.fail[q.Category] {
		return nil, fmt.Errorf("synthetic failure")
	}
	return b.results[q.Category], nil
}

func TestSearchAllPreservesCategoryMapping(t *testing.T) {
	backend := &fakeBackend{results: map[types.QueryCategory][]types.SearchResult{
		types.CategoryGeneral: {{Title: "general hit"}},
		types.CategoryNews:    {{Title: "news hit 1"}, {Title: "news hit 2"}},
		types.CategoryAwards:  {{Title: "award hit"}},
	}}
	queries := []types.Query{
		{Category: types.CategoryGeneral, Text: "q1"},
		{Category: types.CategoryNews, Text: "q2"},
		{Category: types.CategoryAwards, Text: "q3"},
	}

	var log strings.Builder
	got := SearchAll(context.Background(), backend, queries, types.NeuralConfig{}, &log)

	if len(got[types.CategoryGeneral]) != 1 || got[types.CategoryGeneral][0].Title != "general hit" {
		t.Errorf("general = %v", got[types.CategoryGeneral])
	}
	if len(got[types.CategoryNews]) != 2 {
		t.Errorf("news = %v", got[types.CategoryNews])
	}
	if len(got[types.CategoryAwards]) != 1 {
		t.Errorf("awards = %v", got[types.CategoryAwards])
	}
}

func TestSearchAllOneFailureDoesNotAbortOthers(t *testing.T) {
	backend := &fakeBackend{
		results: map[types.QueryCategory][]types.SearchResult{
			types.CategoryGeneral: {{Title: "general hit"}},
		},
		fail: map[types.QueryCategory]bool{types.CategoryNews: true},
	}
	queries := []types.Query{
		{Category: types.CategoryGeneral, Text: "q1"},
		{Category: types.CategoryNews, Text: "q2"},
	}

	var log strings.Builder
	got := SearchAll(context.Background(), backend, queries, types.NeuralConfig{}, &log)

	if len(got[types.CategoryGeneral]) != 1 {
		t.Errorf("general = %v, want the successful result kept", got[types.CategoryGeneral])
	}
	if len(got[types.CategoryNews]) != 0 {
		t.Errorf("news = %v, want empty after failure", got[types.CategoryNews])
	}
	if !strings.Contains(log.String(), "warning") {
		t.Errorf("log = %q, want a warning for the failed query", log.String())
	}
}

func TestSearchAllNilBackend(t *testing.T) {
	var log strings.Builder
	got := SearchAll(context.Background(), nil,
		[]types.Query{{Category: types.CategoryGeneral, Text: "q"}},
		types.NeuralConfig{}, &log)
	if len(got) != 0 {
		t.Errorf("results = %v, want none without a backend", got)
	}
}
