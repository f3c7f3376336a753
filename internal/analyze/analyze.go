// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze coordinates one profile-building run: discovery, query
// planning, neural search, relevance filtering, aggregation, and
// classification. Implements: prd010-person-search (R4);
//
//	docs/ARCHITECTURE § Pipeline.
package analyze

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pdiddy/profile-engine/internal/aggregate"
	"github.com/pdiddy/profile-engine/internal/classify"
	"github.com/pdiddy/profile-engine/internal/llm"
	"github.com/pdiddy/profile-engine/internal/neural"
	"github.com/pdiddy/profile-engine/internal/plan"
	"github.com/pdiddy/profile-engine/internal/relevance"
	"github.com/pdiddy/profile-engine/internal/taxonomy"
	"github.com/pdiddy/profile-engine/internal/websearch"
	"github.com/pdiddy/profile-engine/pkg/types"
)

// HostingClient finds the best-matching code-hosting account for a name.
type HostingClient interface {
	FindProfile(ctx context.Context, name string) (*types.HostingProfile, error)
}

// WebClient runs one generic web-search query.
type WebClient interface {
	Search(ctx context.Context, query string) (*types.WebSearchResponse, error)
}

// SocialClient fetches one social-profile detail record.
type SocialClient interface {
	Fetch(ctx context.Context, profileURL string) (types.SocialProfile, error)
}

// defaultCallTimeout bounds one collaborator call when the config does not.
const defaultCallTimeout = 30 * time.Second

// Pipeline wires the collaborators for analysis runs. Any collaborator may
// be nil: a nil collaborator is logged once per run as unconfigured and
// contributes no data, so a missing API key degrades the profile instead
// of failing it.
type Pipeline struct {
	Hosting HostingClient
	Web     WebClient
	Neural  neural.Backend
	Social  SocialClient
	AI      llm.Backend

	Tax *taxonomy.Taxonomy
	Cfg types.PipelineConfig
}

// Run builds the profile for one identity. The identity's name must be
// set; known attributes are optional and are enriched from the hosting
// record before query planning. Run always returns a well-formed profile.
func (p *Pipeline) Run(ctx context.Context, id types.Identity, w io.Writer) types.AggregatedProfile {
	tax := p.Tax
	if tax == nil {
		tax = taxonomy.Default()
	}

	hosting, web := p.discover(ctx, id.Name, w)

	// Fold discovered attributes into the identity before planning so the
	// planner and the relevance filter see everything known.
	if hosting != nil {
		if id.Affiliation == "" {
			id.Affiliation = hosting.Company
		}
		if id.Location == "" {
			id.Location = hosting.Location
		}
		if id.Biography == "" {
			id.Biography = hosting.Bio
		}
	}

	var links types.SocialLinks
	if web != nil {
		links = websearch.ExtractSocialLinks(web)
		id.KnownLinks = append(id.KnownLinks, links.LinkedIn...)
		id.KnownLinks = append(id.KnownLinks, links.Twitter...)
	}

	queries := plan.Plan(id, tax)
	fmt.Fprintf(w, "planned %d queries\n", len(queries))

	var results types.CategoryResults
	if p.Neural != nil {
		raw := neural.SearchAll(ctx, p.Neural, queries, p.Cfg.Neural, w)
		results = relevance.FilterAll(raw, id, tax)
		for _, cat := range types.QueryCategories {
			if n := len(results[cat]); n > 0 {
				fmt.Fprintf(w, "%-12s %d relevant results\n", cat, n)
			}
		}
	} else {
		fmt.Fprintln(w, "neural search not configured, skipping")
	}

	social := p.fetchSocial(ctx, links, w)

	agg := aggregate.Aggregator{
		Backend:    p.AI,
		Tax:        tax,
		MaxRetries: p.Cfg.AI.MaxRetries,
		Log:        w,
	}
	var organic []types.WebResult
	if web != nil {
		organic = web.Organic
	}
	profile := agg.Aggregate(ctx, aggregate.Sources{
		Hosting: hosting,
		Social:  social,
		Web:     organic,
		Neural:  results,
	}, id)

	profile.CriteriaHits = classify.Classify(
		profile.Achievements, profile.Recognition, hosting, id.Biography, tax)

	return profile
}

// discover runs the code-hosting lookup and the web search concurrently.
// Either call failing or being unconfigured yields a nil record. Outcomes
// travel back over a channel and only the draining loop writes to w, so
// the goroutines never touch the log writer.
func (p *Pipeline) discover(ctx context.Context, name string, w io.Writer) (*types.HostingProfile, *types.WebSearchResponse) {
	timeout := p.Cfg.Search.Timeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}

	type outcome struct {
		source  string
		hosting *types.HostingProfile
		web     *types.WebSearchResponse
		skipped bool
		err     error
	}

	ch := make(chan outcome, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if p.Hosting == nil || !p.Cfg.Search.EnableHosting {
			ch <- outcome{source: "code-hosting lookup", skipped: true}
			return
		}
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		h, err := p.Hosting.FindProfile(callCtx, name)
		ch <- outcome{source: "code-hosting lookup", hosting: h, err: err}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if p.Web == nil || !p.Cfg.Search.EnableWebSearch {
			ch <- outcome{source: "web search", skipped: true}
			return
		}
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		resp, err := p.Web.Search(callCtx, fmt.Sprintf("%q", name))
		ch <- outcome{source: "web search", web: resp, err: err}
	}()

	go func() {
		wg.Wait()
		close(ch)
	}()

	var (
		hosting *types.HostingProfile
		web     *types.WebSearchResponse
	)
	for o := range ch {
		switch {
		case o.skipped:
			fmt.Fprintf(w, "%s not configured, skipping\n", o.source)
		case o.err != nil:
			fmt.Fprintf(w, "warning: %s failed: %v\n", o.source, o.err)
		case o.hosting != nil:
			hosting = o.hosting
		case o.web != nil:
			web = o.web
		}
	}
	return hosting, web
}

// fetchSocial pulls detail records for the discovered profile links, up to
// the configured cap. Failures are logged and skipped.
func (p *Pipeline) fetchSocial(ctx context.Context, links types.SocialLinks, w io.Writer) []types.SocialProfile {
	if p.Social == nil || len(links.LinkedIn) == 0 {
		return nil
	}

	maxProfiles := p.Cfg.Social.MaxProfiles
	if maxProfiles <= 0 {
		maxProfiles = 2
	}
	timeout := p.Cfg.Social.Timeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}

	var profiles []types.SocialProfile
	for i, u := range links.LinkedIn {
		if i >= maxProfiles {
			break
		}
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		sp, err := p.Social.Fetch(callCtx, u)
		cancel()
		if err != nil {
			fmt.Fprintf(w, "warning: social-profile fetch %s failed: %v\n", u, err)
			continue
		}
		if !sp.IsZero() {
			profiles = append(profiles, sp)
		}
	}
	return profiles
}
