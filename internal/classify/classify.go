// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify buckets achievement and recognition strings into the
// fixed criteria categories using the shared keyword taxonomy.
// Implements: prd013-classification; docs/ARCHITECTURE § Classification.
package classify

import (
	"fmt"

	"github.com/pdiddy/profile-engine/internal/taxonomy"
	"github.com/pdiddy/profile-engine/pkg/types"
)

// followerThreshold gates the metric fallback's impact entry.
const followerThreshold = 100

// Classify maps achievements and recognition into the seven criteria
// categories. Achievements go through two passes: a primary pass that
// assigns each string to at most one of impact, pioneering_work, or
// technical_frontier (first match in that priority order), and a secondary
// pass that additionally matches prestige, builder, young, and technical
// keywords without exclusivity. Recognition strings feed only
// recognition_by_institutions. When both inputs are empty, minimal entries
// are derived from the hosting record and biography instead.
//
// The returned map always carries all seven category keys.
func Classify(achievements, recognition []string, hosting *types.HostingProfile, biography string, tax *taxonomy.Taxonomy) map[types.CriteriaCategory][]string {
	if tax == nil {
		tax = taxonomy.Default()
	}

	hits := make(map[types.CriteriaCategory][]string, len(types.CriteriaCategories))
	for _, c := range types.CriteriaCategories {
		hits[c] = []string{}
	}
	add := func(cat types.CriteriaCategory, entry string) {
		hits[cat] = append(hits[cat], entry)
	}

	for _, a := range achievements {
		primary := primaryCategory(a, tax)
		if primary != "" {
			add(primary, a)
		}

		if taxonomy.ContainsAny(a, tax.Elite) {
			add(types.CriteriaPrestigeValidation, a)
		}
		if taxonomy.ContainsAny(a, tax.Builder) {
			add(types.CriteriaBuilderStartupCred, a)
		}
		if taxonomy.ContainsAny(a, tax.Young) {
			add(types.CriteriaExceptionallyYoung, a)
		}
		// Technical matches count in both passes, but a string the primary
		// pass already placed there is not added twice.
		if primary != types.CriteriaTechnicalFrontier && taxonomy.ContainsAny(a, tax.Technical) {
			add(types.CriteriaTechnicalFrontier, a)
		}
	}

	for _, r := range recognition {
		if taxonomy.ContainsAny(r, tax.RecognitionWords) {
			add(types.CriteriaRecognitionByInstitutions, r)
		}
	}

	if len(achievements) == 0 && len(recognition) == 0 {
		metricFallback(hits, hosting, biography, tax)
	}

	return hits
}

// primaryCategory tests the mutually-exclusive keyword groups in priority
// order and returns the first match, or "" when none match.
func primaryCategory(s string, tax *taxonomy.Taxonomy) types.CriteriaCategory {
	switch {
	case taxonomy.ContainsAny(s, tax.Impact):
		return types.CriteriaImpact
	case taxonomy.ContainsAny(s, tax.Pioneering):
		return types.CriteriaPioneeringWork
	case taxonomy.ContainsAny(s, tax.Technical):
		return types.CriteriaTechnicalFrontier
	}
	return ""
}

// metricFallback fills categories from raw hosting metrics and the
// biography when no achievement or recognition strings were available.
func metricFallback(hits map[types.CriteriaCategory][]string, hosting *types.HostingProfile, biography string, tax *taxonomy.Taxonomy) {
	if hosting != nil && hosting.Followers > followerThreshold {
		hits[types.CriteriaImpact] = append(hits[types.CriteriaImpact],
			fmt.Sprintf("%d followers on the code-hosting platform", hosting.Followers))
	}
	if biography == "" {
		return
	}
	if taxonomy.ContainsAny(biography, tax.Technical) {
		hits[types.CriteriaTechnicalFrontier] = append(hits[types.CriteriaTechnicalFrontier], biography)
	}
	if taxonomy.ContainsAny(biography, tax.Builder) {
		hits[types.CriteriaBuilderStartupCred] = append(hits[types.CriteriaBuilderStartupCred], biography)
	}
}
