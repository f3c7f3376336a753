// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/pdiddy/profile-engine/pkg/types"
)

type fakeHosting struct {
	profile *types.HostingProfile
	err     error
}

func (f *fakeHosting) FindProfile(ctx context.Context, name string) (*types.HostingProfile, error) {
	return f.profile, f.err
}

type fakeWeb struct {
	resp *types.WebSearchResponse
	err  error
}

func (f *fakeWeb) Search(ctx context.Context, query string) (*types.WebSearchResponse, error) {
	return f.resp, f.err
}

type fakeNeural struct {
	results map[types.QueryCategory][]types.SearchResult

	mu      sync.Mutex
	queries []types.Query
}

func (f *fakeNeural) Name() string { return "fake" }

func (f *fakeNeural) Search(ctx context.Context, q types.Query, cfg types.NeuralConfig) ([]types.SearchResult, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	return f.results[q.Category], nil
}

type fakeSocial struct {
	fetched []string
}

func (f *fakeSocial) Fetch(ctx context.Context, profileURL string) (types.SocialProfile, error) {
	f.fetched = append(f.fetched, profileURL)
	return types.SocialProfile{URL: profileURL, Headline: "Engineer"}, nil
}

func enabledConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Search: types.SearchConfig{EnableHosting: true, EnableWebSearch: true},
	}
}

func TestRunFullPipeline(t *testing.T) {
	hosting := &fakeHosting{profile: &types.HostingProfile{
		Username:  "janedoe",
		Bio:       "AI researcher",
		Location:  "Oslo, Norway",
		Company:   "Acme",
		Repos:     120,
		Followers: 40,
		URL:       "https://hub.example/janedoe",
	}}
	web := &fakeWeb{resp: &types.WebSearchResponse{
		Organic: []types.WebResult{
			{Title: "Jane Doe | LinkedIn", Link: "https://linkedin.com/in/janedoe"},
		},
	}}
	neural := &fakeNeural{results: map[types.QueryCategory][]types.SearchResult{
		types.CategoryGeneral: {{Title: "Jane Doe profile", Body: "AI researcher at Acme", URL: "https://example.com/1"}},
	}}
	social := &fakeSocial{}

	p := &Pipeline{
		Hosting: hosting,
		Web:     web,
		Neural:  neural,
		Social:  social,
		Cfg:     enabledConfig(),
	}

	var log strings.Builder
	profile := p.Run(context.Background(), types.Identity{Name: "Jane Doe"}, &log)

	if profile.Name != "Jane Doe" {
		t.Errorf("Name = %q", profile.Name)
	}
	if profile.Country != "Norway" {
		t.Errorf("Country = %q, want derived from the hosting location", profile.Country)
	}
	if profile.Affiliation != "Acme" {
		t.Errorf("Affiliation = %q", profile.Affiliation)
	}
	if !strings.Contains(profile.ClaimToFame, "120") {
		t.Errorf("ClaimToFame = %q, want the repo-count branch", profile.ClaimToFame)
	}

	// The research biography makes the planner emit an academic query.
	var sawAcademic bool
	for _, q := range neural.queries {
		if q.Category == types.CategoryAcademic {
			sawAcademic = true
		}
	}
	if !sawAcademic {
		t.Error("no academic query planned despite the research biography")
	}

	if len(social.fetched) != 1 || social.fetched[0] != "https://linkedin.com/in/janedoe" {
		t.Errorf("social fetches = %v", social.fetched)
	}

	for _, c := range types.CriteriaCategories {
		if _, ok := profile.CriteriaHits[c]; !ok {
			t.Errorf("CriteriaHits missing key %q", c)
		}
	}
}

func TestRunAllCollaboratorsUnconfigured(t *testing.T) {
	p := &Pipeline{Cfg: enabledConfig()}

	var log strings.Builder
	profile := p.Run(context.Background(), types.Identity{Name: "Jane Doe"}, &log)

	if profile.Country != "Unknown" || profile.Affiliation != "Independent" {
		t.Errorf("profile = %q / %q, want documented defaults", profile.Country, profile.Affiliation)
	}
	out := log.String()
	for _, want := range []string{"code-hosting lookup not configured", "web search not configured", "neural search not configured"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}

func TestRunCollaboratorFailuresDegrade(t *testing.T) {
	p := &Pipeline{
		Hosting: &fakeHosting{err: fmt.Errorf("rate limited")},
		Web:     &fakeWeb{err: fmt.Errorf("network down")},
		Cfg:     enabledConfig(),
	}

	var log strings.Builder
	profile := p.Run(context.Background(), types.Identity{Name: "Jane Doe"}, &log)

	if profile.Name != "Jane Doe" {
		t.Errorf("Name = %q", profile.Name)
	}
	if !strings.Contains(log.String(), "warning: code-hosting lookup failed") {
		t.Errorf("log = %q, want a hosting warning", log.String())
	}
	if !strings.Contains(log.String(), "warning: web search failed") {
		t.Errorf("log = %q, want a web-search warning", log.String())
	}
}

type barrierHosting struct {
	ready *sync.WaitGroup
}

func (f *barrierHosting) FindProfile(ctx context.Context, name string) (*types.HostingProfile, error) {
	f.ready.Done()
	f.ready.Wait()
	return nil, fmt.Errorf("hosting down")
}

type barrierWeb struct {
	ready *sync.WaitGroup
}

func (f *barrierWeb) Search(ctx context.Context, query string) (*types.WebSearchResponse, error) {
	f.ready.Done()
	f.ready.Wait()
	return nil, fmt.Errorf("web down")
}

func TestRunConcurrentFailureWarnings(t *testing.T) {
	// Both collaborators block until the other is in flight, so their
	// failures resolve at the same time. The log writer is a plain
	// strings.Builder; every warning must come from the draining loop.
	var ready sync.WaitGroup
	ready.Add(2)

	p := &Pipeline{
		Hosting: &barrierHosting{ready: &ready},
		Web:     &barrierWeb{ready: &ready},
		Cfg:     enabledConfig(),
	}

	var log strings.Builder
	p.Run(context.Background(), types.Identity{Name: "Jane Doe"}, &log)

	out := log.String()
	if !strings.Contains(out, "warning: code-hosting lookup failed: hosting down") {
		t.Errorf("log = %q, want the hosting warning intact", out)
	}
	if !strings.Contains(out, "warning: web search failed: web down") {
		t.Errorf("log = %q, want the web-search warning intact", out)
	}
}

func TestRunSocialFetchCapped(t *testing.T) {
	var organic []types.WebResult
	for i := 0; i < 3; i++ {
		organic = append(organic, types.WebResult{
			Link: fmt.Sprintf("https://linkedin.com/in/jane%d", i),
		})
	}
	social := &fakeSocial{}
	cfg := enabledConfig()
	cfg.Social.MaxProfiles = 2

	p := &Pipeline{
		Web:    &fakeWeb{resp: &types.WebSearchResponse{Organic: organic}},
		Social: social,
		Cfg:    cfg,
	}

	var log strings.Builder
	p.Run(context.Background(), types.Identity{Name: "Jane Doe"}, &log)

	if len(social.fetched) != 2 {
		t.Errorf("fetched %d social profiles, cap is 2", len(social.fetched))
	}
}

func TestRunKeepsExplicitIdentityAttributes(t *testing.T) {
	p := &Pipeline{
		Hosting: &fakeHosting{profile: &types.HostingProfile{Company: "Hosting Corp"}},
		Cfg:     enabledConfig(),
	}

	var log strings.Builder
	profile := p.Run(context.Background(), types.Identity{
		Name:        "Jane Doe",
		Affiliation: "Stated University",
	}, &log)

	// An explicitly provided affiliation feeds planning, but the hosting
	// record still wins during aggregation.
	if profile.Affiliation != "Hosting Corp" {
		t.Errorf("Affiliation = %q", profile.Affiliation)
	}
}
