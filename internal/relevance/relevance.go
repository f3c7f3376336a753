// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package relevance decides which search results plausibly concern the
// target person. The filter is a best-effort precision pass: common-name
// collisions can slip through and thin keyword coverage can drop genuine
// hits, so downstream stages must treat its output as noise-reduced, not
// identity-resolved.
package relevance

import (
	"strings"

	"github.com/pdiddy/profile-engine/internal/taxonomy"
	"github.com/pdiddy/profile-engine/pkg/types"
)

// maxKeywords caps the relevance keyword set. First appearance wins.
const maxKeywords = 5

// Keywords derives the relevance keyword set for an identity: location and
// affiliation, biography words matching the professional/institutional
// list, and the fixed domain terms whose triggers the biography mentions.
// The result is deduplicated, lower-cased, and capped at maxKeywords in
// first-appearance order.
func Keywords(id types.Identity, tax *taxonomy.Taxonomy) []string {
	if tax == nil {
		tax = taxonomy.Default()
	}

	var keywords []string
	seen := make(map[string]bool)
	add := func(kw string) {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			return
		}
		seen[kw] = true
		keywords = append(keywords, kw)
	}

	if id.Location != "" {
		add(id.Location)
	}
	if id.Affiliation != "" {
		add(id.Affiliation)
	}

	for _, word := range strings.Fields(id.Biography) {
		if taxonomy.ContainsAny(word, tax.RelevanceProfessional) {
			add(word)
		}
	}

	bioLower := strings.ToLower(id.Biography)
	for _, ct := range tax.ConditionalDomainTerms {
		for _, trigger := range ct.Triggers {
			if strings.Contains(bioLower, trigger) {
				for _, term := range ct.Terms {
					add(term)
				}
				break
			}
		}
	}

	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}

// Filter returns the subsequence of results that plausibly concern the
// identity: a result is kept when the name appears in its combined
// title/body/URL text, or when any relevance keyword does. With an empty
// keyword set only the name match counts. Rejected results are dropped
// silently; input order is preserved and nothing is duplicated.
func Filter(results []types.SearchResult, id types.Identity, tax *taxonomy.Taxonomy) []types.SearchResult {
	keywords := Keywords(id, tax)
	nameLower := strings.ToLower(id.Name)

	var kept []types.SearchResult
	for _, r := range results {
		haystack := strings.ToLower(r.Title + " " + r.Body + " " + r.URL)

		if nameLower != "" && strings.Contains(haystack, nameLower) {
			kept = append(kept, r)
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(haystack, kw) {
				kept = append(kept, r)
				break
			}
		}
	}
	return kept
}

// FilterAll applies Filter to every category of a result map, preserving
// the category labels.
func FilterAll(results types.CategoryResults, id types.Identity, tax *taxonomy.Taxonomy) types.CategoryResults {
	filtered := make(types.CategoryResults, len(results))
	for cat, rs := range results {
		filtered[cat] = Filter(rs, id, tax)
	}
	return filtered
}
