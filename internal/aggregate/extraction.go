// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pdiddy/profile-engine/internal/llm"
	"github.com/pdiddy/profile-engine/pkg/types"
)

// Fixed extraction instructions. The model sees only the source blob; the
// instruction pins the output shape so ExtractStringArray can decode it.
const (
	achievementsInstruction = `You are extracting structured facts about a person from collected search data.
List the person's concrete achievements: things they built, founded, published, shipped, or led.
Respond with only a JSON array of short strings, one achievement per string. No prose.`

	recognitionInstruction = `You are extracting structured facts about a person from collected search data.
List awards, honors, fellowships, rankings, grants, and press recognition the person has received.
Respond with only a JSON array of short strings, one item per string. No prose.`
)

// extractLists asks the text-understanding backend for achievement and
// recognition entries. Any failure on either call falls back to entries
// derived from hosting metrics; extraction never aborts an aggregation.
func (a *Aggregator) extractLists(ctx context.Context, src Sources, id types.Identity) (achievements, recognition []string) {
	blob := formatSourceText(src, id)

	maxRetries := a.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	if a.Backend != nil {
		var err error
		achievements, err = a.extractList(ctx, achievementsInstruction, blob, maxRetries)
		if err != nil {
			a.logf("achievement extraction degraded: %v\n", err)
			achievements = nil
		}
		recognition, err = a.extractList(ctx, recognitionInstruction, blob, maxRetries)
		if err != nil {
			a.logf("recognition extraction degraded: %v\n", err)
			recognition = nil
		}
	}

	fallback := metricEntries(src.Hosting)
	if len(achievements) == 0 {
		achievements = fallback
	}
	if len(recognition) == 0 {
		recognition = fallback
	}
	return achievements, recognition
}

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// extractList calls the backend with exponential backoff and decodes the
// response as a string array. An unparsable response counts as a failure
// and is retried.
func (a *Aggregator) extractList(ctx context.Context, instruction, blob string, maxRetries int) ([]string, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		raw, err := a.Backend.Complete(ctx, instruction, blob)
		if err != nil {
			lastErr = err
			continue
		}
		items, err := llm.ExtractStringArray(raw)
		if err != nil {
			lastErr = err
			continue
		}
		return items, nil
	}
	return nil, fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}

// metricEntries derives plain-fact entries from the hosting record for use
// when AI extraction is unavailable or returned nothing usable.
func metricEntries(h *types.HostingProfile) []string {
	if h == nil {
		return nil
	}
	var entries []string
	if h.Repos > 0 {
		entries = append(entries, fmt.Sprintf("%d public repositories", h.Repos))
	}
	if h.Followers > 0 {
		entries = append(entries, fmt.Sprintf("%d followers on the code-hosting platform", h.Followers))
	}
	return entries
}

// formatSourceText flattens every collected record into one labeled blob
// for the model. Sections with no data are omitted.
func formatSourceText(src Sources, id types.Identity) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Person: %s\n", id.Name)
	if id.Affiliation != "" {
		fmt.Fprintf(&b, "Affiliation: %s\n", id.Affiliation)
	}
	if id.Biography != "" {
		fmt.Fprintf(&b, "Biography: %s\n", id.Biography)
	}

	if h := src.Hosting; h != nil {
		b.WriteString("\n== Code-hosting profile ==\n")
		fmt.Fprintf(&b, "Username: %s\n", h.Username)
		if h.Bio != "" {
			fmt.Fprintf(&b, "Bio: %s\n", h.Bio)
		}
		if h.Company != "" {
			fmt.Fprintf(&b, "Company: %s\n", h.Company)
		}
		if h.Location != "" {
			fmt.Fprintf(&b, "Location: %s\n", h.Location)
		}
		fmt.Fprintf(&b, "Public repositories: %d\nFollowers: %d\n", h.Repos, h.Followers)
	}

	for _, sp := range src.Social {
		if sp.IsZero() {
			continue
		}
		b.WriteString("\n== Social profile ==\n")
		if sp.Headline != "" {
			fmt.Fprintf(&b, "Headline: %s\n", sp.Headline)
		}
		if sp.Summary != "" {
			fmt.Fprintf(&b, "Summary: %s\n", sp.Summary)
		}
		for _, e := range sp.Experience {
			fmt.Fprintf(&b, "Experience: %s at %s\n", e.Title, e.Company)
		}
		for _, e := range sp.Education {
			fmt.Fprintf(&b, "Education: %s, %s\n", e.School, e.Degree)
		}
		for _, ach := range sp.Achievements {
			fmt.Fprintf(&b, "Achievement: %s\n", ach)
		}
	}

	if len(src.Web) > 0 {
		b.WriteString("\n== Web search results ==\n")
		for _, r := range src.Web {
			fmt.Fprintf(&b, "- %s: %s\n", r.Title, r.Snippet)
		}
	}

	for _, cat := range types.QueryCategories {
		rs := src.Neural[cat]
		if len(rs) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n== Research results (%s) ==\n", cat)
		for _, r := range rs {
			fmt.Fprintf(&b, "- %s: %s\n", r.Title, truncate(r.Body, evidenceMaxLen))
		}
	}

	return b.String()
}
