// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate merges source records from every collaborator into one
// normalized profile. Implements: prd012-aggregation;
//
//	docs/ARCHITECTURE § Aggregation.
package aggregate

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/profile-engine/internal/llm"
	"github.com/pdiddy/profile-engine/internal/taxonomy"
	"github.com/pdiddy/profile-engine/pkg/types"
)

const (
	defaultCountry     = "Unknown"
	defaultAffiliation = "Independent"

	maxRecognition   = 8
	maxAchievements  = 10
	minEntryLength   = 4
	maxNeuralSources = 5
	evidenceMaxLen   = 200
)

// Thresholds for the claim-to-fame derivation chain.
const (
	fameRepoThreshold     = 50
	fameFollowerThreshold = 100
)

// Sources bundles everything the collaborators produced for one identity.
// Any field may be empty; a missing source degrades the profile instead of
// failing the run.
type Sources struct {
	Hosting *types.HostingProfile
	Social  []types.SocialProfile
	Web     []types.WebResult
	Neural  types.CategoryResults
}

// Aggregator builds AggregatedProfiles. The zero value works: a nil Backend
// skips AI extraction and derives entries from hosting metrics instead.
type Aggregator struct {
	// Backend is the text-understanding collaborator, or nil when no key
	// is configured.
	Backend llm.Backend

	// Tax is the keyword taxonomy; nil uses the built-in defaults.
	Tax *taxonomy.Taxonomy

	// MaxRetries bounds AI call retries (default 3).
	MaxRetries int

	// Log receives warnings about degraded fields; nil discards them.
	Log io.Writer
}

// Aggregate merges the sources into one profile. It never returns an
// error: collaborator failures were already absorbed upstream, and AI
// extraction failures fall back to metric-derived entries here.
func (a *Aggregator) Aggregate(ctx context.Context, src Sources, id types.Identity) types.AggregatedProfile {
	tax := a.Tax
	if tax == nil {
		tax = taxonomy.Default()
	}

	p := types.AggregatedProfile{
		Name:         id.Name,
		Country:      defaultCountry,
		Affiliation:  defaultAffiliation,
		TitleOrRole:  id.Name,
		CriteriaHits: emptyCriteriaHits(),
	}

	location := id.Location
	biography := id.Biography
	affiliation := id.Affiliation
	if src.Hosting != nil {
		// The code-hosting record has the highest precedence.
		p.PhotoURL = src.Hosting.AvatarURL
		if src.Hosting.Location != "" {
			location = src.Hosting.Location
		}
		if src.Hosting.Bio != "" {
			biography = src.Hosting.Bio
		}
		if src.Hosting.Company != "" {
			affiliation = src.Hosting.Company
		}
	}

	if location != "" {
		p.Country = countryFrom(location)
	}
	if affiliation != "" {
		p.Affiliation = affiliation
	}
	p.TitleOrRole = titleOrRole(id.Name, affiliation, biography, tax)
	p.ClaimToFame = a.claimToFame(src, biography, tax)

	achievements, recognition := a.extractLists(ctx, src, id)
	p.Achievements = normalizeEntries(achievements, maxAchievements)
	p.Recognition = normalizeEntries(recognition, maxRecognition)

	p.Quote = firstQuote(src.Neural)
	p.Sources = citations(src)

	return p
}

// countryFrom takes the segment after the last comma of a location string.
// A location without commas is returned whole.
func countryFrom(location string) string {
	idx := strings.LastIndex(location, ",")
	country := strings.TrimSpace(location[idx+1:])
	if country == "" {
		return defaultCountry
	}
	return country
}

// titleOrRole derives the display title: the affiliation wins, then the
// first role word found in the biography in taxonomy priority order.
func titleOrRole(name, affiliation, biography string, tax *taxonomy.Taxonomy) string {
	if affiliation != "" {
		return name + " at " + affiliation
	}
	if role, ok := taxonomy.FirstMatch(biography, tax.TitleRoles); ok {
		return name + ", " + role
	}
	return name
}

// claimToFame follows a fixed priority chain; only the first matching
// branch is used.
func (a *Aggregator) claimToFame(src Sources, biography string, tax *taxonomy.Taxonomy) string {
	if h := src.Hosting; h != nil {
		if h.Repos > fameRepoThreshold {
			return fmt.Sprintf("Maintains %d public repositories with %d followers on the code-hosting platform.", h.Repos, h.Followers)
		}
		if h.Followers > fameFollowerThreshold {
			return fmt.Sprintf("Followed by %d developers on the code-hosting platform.", h.Followers)
		}
	}

	for _, cat := range types.QueryCategories {
		for _, r := range src.Neural[cat] {
			if taxonomy.ContainsAny(r.Title, tax.FameMarkers) || taxonomy.ContainsAny(r.Body, tax.FameMarkers) {
				return r.Title
			}
		}
	}

	if strings.TrimSpace(biography) != "" {
		return strings.TrimSpace(biography)
	}

	return "Building a public track record across open source and the web."
}

// quotePattern matches a double-quoted span of at least two characters.
var quotePattern = regexp.MustCompile(`"([^"]{2,})"`)

// firstQuote returns the first double-quoted substring found scanning
// result bodies in planning-category order, or "" when there is none.
func firstQuote(neural types.CategoryResults) string {
	for _, cat := range types.QueryCategories {
		for _, r := range neural[cat] {
			if m := quotePattern.FindStringSubmatch(r.Body); m != nil {
				return m[1]
			}
		}
	}
	return ""
}

// citations lists where the profile's evidence came from: the hosting
// record plus up to maxNeuralSources neural results.
func citations(src Sources) []types.SourceCitation {
	var out []types.SourceCitation

	if h := src.Hosting; h != nil {
		evidence := strings.TrimSpace(h.Bio)
		if h.Location != "" {
			if evidence != "" {
				evidence += " - "
			}
			evidence += h.Location
		}
		out = append(out, types.SourceCitation{
			Fact:       "Code-hosting profile",
			Evidence:   evidence,
			SourceHint: h.URL,
		})
	}

	n := 0
	for _, cat := range types.QueryCategories {
		for _, r := range src.Neural[cat] {
			if n >= maxNeuralSources {
				return out
			}
			n++
			out = append(out, types.SourceCitation{
				Fact:       fmt.Sprintf("Research finding %d", n),
				Evidence:   truncate(r.Body, evidenceMaxLen),
				SourceHint: r.URL,
			})
		}
	}
	return out
}

// normalizeEntries trims entries, drops anything shorter than
// minEntryLength, removes duplicates under case/whitespace folding
// (first occurrence wins), and caps the list.
func normalizeEntries(entries []string, limit int) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if len(e) < minEntryLength {
			continue
		}
		key := strings.ToLower(strings.Join(strings.Fields(e), " "))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
		if len(out) >= limit {
			break
		}
	}
	return out
}

func emptyCriteriaHits() map[types.CriteriaCategory][]string {
	hits := make(map[types.CriteriaCategory][]string, len(types.CriteriaCategories))
	for _, c := range types.CriteriaCategories {
		hits[c] = []string{}
	}
	return hits
}

// truncate shortens s to at most max bytes, ending with "...". The cut
// backs up to a rune boundary so evidence never carries invalid UTF-8.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func (a *Aggregator) logf(format string, args ...any) {
	if a.Log != nil {
		fmt.Fprintf(a.Log, format, args...)
	}
}
