// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the profile-engine pipeline.
// Implements: prd011-search (Query, SearchResult);
//
//	prd012-aggregation (AggregatedProfile, SourceCitation);
//	prd013-classification (CriteriaCategory).
//
// See docs/ARCHITECTURE.md § Pipeline Interface, § Data Structures.
package types

// QueryCategory labels a planned search query so that results can be routed
// back to the stage that asked for them.
type QueryCategory string

const (
	CategoryGeneral      QueryCategory = "general"
	CategoryAcademic     QueryCategory = "academic"
	CategoryOrganization QueryCategory = "organization"
	CategoryNews         QueryCategory = "news"
	CategoryAwards       QueryCategory = "awards"
	CategorySocial       QueryCategory = "social"
)

// QueryCategories lists every category in planning order.
var QueryCategories = []QueryCategory{
	CategoryGeneral,
	CategoryAcademic,
	CategoryOrganization,
	CategoryNews,
	CategoryAwards,
	CategorySocial,
}

// Query is one planned search: a category label and the query text sent to
// the search collaborator. Queries are produced fresh per Identity and are
// not persisted.
type Query struct {
	Category QueryCategory `json:"category" yaml:"category"`
	Text     string        `json:"text" yaml:"text"`
}

// SearchResult is a single document returned by a search collaborator.
// Results are read-only input; the relevance filter returns an
// order-preserving subsequence of them.
type SearchResult struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
	Body  string `json:"body" yaml:"body"`
}

// CategoryResults maps each query category to the results it produced.
// Order within a category follows the collaborator's ranking; order across
// categories is insignificant.
type CategoryResults map[QueryCategory][]SearchResult
