// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plan turns an identity into a set of labeled search queries.
// Implements: prd011-search § Query Planning.
package plan

import (
	"fmt"
	"strings"

	"github.com/pdiddy/profile-engine/internal/taxonomy"
	"github.com/pdiddy/profile-engine/pkg/types"
)

// maxIdentifierTokens caps how many identifier tokens are appended to the
// general query to keep it from drowning out the name itself.
const maxIdentifierTokens = 3

// Plan produces the search queries for one identity. It is pure: the same
// identity and taxonomy always yield the same queries, in planning order
// (general, academic, organization, news, awards, social).
//
// The general, news, and awards queries are always planned. The academic
// query requires a research marker in the biography, the organization query
// a non-empty affiliation, and the social query at least one known
// social-profile URL.
func Plan(id types.Identity, tax *taxonomy.Taxonomy) []types.Query {
	if tax == nil {
		tax = taxonomy.Default()
	}

	quoted := fmt.Sprintf("%q", id.Name)
	tokens := identifierTokens(id, tax)

	general := quoted
	if len(tokens) > 0 {
		general += " " + strings.Join(tokens, " ")
	}

	queries := []types.Query{{Category: types.CategoryGeneral, Text: general}}

	if taxonomy.ContainsAny(id.Biography, tax.ResearchMarkers) {
		queries = append(queries, types.Query{
			Category: types.CategoryAcademic,
			Text:     general + " research papers publications",
		})
	}

	if id.Affiliation != "" {
		queries = append(queries, types.Query{
			Category: types.CategoryOrganization,
			Text:     fmt.Sprintf("%q %q", id.Name, id.Affiliation),
		})
	}

	queries = append(queries,
		types.Query{Category: types.CategoryNews, Text: quoted + " news interview article"},
		types.Query{Category: types.CategoryAwards, Text: quoted + " award recognition honor"},
	)

	if len(id.KnownLinks) > 0 {
		queries = append(queries, types.Query{
			Category: types.CategorySocial,
			Text:     quoted + " linkedin profile achievements",
		})
	}

	return queries
}

// identifierTokens collects up to maxIdentifierTokens tokens that pin the
// general query to this particular person: the affiliation, the location,
// and biography words naming an institution or a role.
func identifierTokens(id types.Identity, tax *taxonomy.Taxonomy) []string {
	var tokens []string

	if id.Affiliation != "" {
		tokens = append(tokens, id.Affiliation)
	}
	if id.Location != "" {
		tokens = append(tokens, id.Location)
	}

	for _, word := range strings.Fields(id.Biography) {
		if len(tokens) >= maxIdentifierTokens {
			break
		}
		if taxonomy.ContainsAny(word, tax.InstitutionMarkers) ||
			taxonomy.ContainsAny(word, tax.RoleMarkers) {
			tokens = append(tokens, word)
		}
	}

	if len(tokens) > maxIdentifierTokens {
		tokens = tokens[:maxIdentifierTokens]
	}
	return tokens
}
