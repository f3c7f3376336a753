// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package taxonomy holds the keyword tables shared by query planning,
// relevance filtering, aggregation, and criteria classification. Keeping
// every list in one table stops the vocabularies from drifting apart
// between stages.
package taxonomy

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/profile-engine/pkg/types"
)

// ConditionalTerms adds Terms to a keyword set when any Trigger appears in
// the source text.
type ConditionalTerms struct {
	Triggers []string `yaml:"triggers"`
	Terms    []string `yaml:"terms"`
}

// Taxonomy is the full keyword configuration. All matching is
// case-insensitive substring matching over lower-cased text.
type Taxonomy struct {
	// InstitutionMarkers flag biography tokens naming academic or tech
	// institutions, used as query identifier tokens.
	InstitutionMarkers []string `yaml:"institution_markers"`

	// RoleMarkers flag executive/research role tokens in biographies.
	RoleMarkers []string `yaml:"role_markers"`

	// ResearchMarkers decide whether an academic query is worth planning.
	ResearchMarkers []string `yaml:"research_markers"`

	// RelevanceProfessional is the professional/institutional list the
	// relevance filter matches biography words against.
	RelevanceProfessional []string `yaml:"relevance_professional"`

	// ConditionalDomainTerms are fixed domain terms included in the
	// relevance keyword set only when the biography mentions a trigger.
	ConditionalDomainTerms []ConditionalTerms `yaml:"conditional_domain_terms"`

	// TitleRoles are role words scanned in priority order when deriving a
	// title from a biography.
	TitleRoles []string `yaml:"title_roles"`

	// FameMarkers flag founder/creator language in search results for the
	// claim-to-fame derivation.
	FameMarkers []string `yaml:"fame_markers"`

	// Criteria keyword groups. Impact, Pioneering and Technical form the
	// mutually-exclusive primary classification pass; Elite, Builder and
	// Young feed the independent secondary pass; RecognitionWords apply to
	// recognition strings only.
	Impact           []string `yaml:"impact"`
	Pioneering       []string `yaml:"pioneering"`
	Technical        []string `yaml:"technical"`
	Elite            []string `yaml:"elite"`
	Builder          []string `yaml:"builder"`
	Young            []string `yaml:"young"`
	RecognitionWords []string `yaml:"recognition_words"`

	// Domains allow-lists neural-search queries per category.
	Domains map[types.QueryCategory][]string `yaml:"domains"`
}

// Default returns the built-in taxonomy.
func Default() *Taxonomy {
	return &Taxonomy{
		InstitutionMarkers: []string{
			"university", "college", "institute", "tech",
			"mit", "stanford", "harvard", "berkeley",
		},
		RoleMarkers: []string{"ceo", "founder", "director", "professor", "researcher"},
		ResearchMarkers: []string{
			"research", "ai", "ml", "phd", "professor", "academic",
		},
		RelevanceProfessional: []string{
			"university", "institute", "tech", "ai", "research",
			"ceo", "founder", "director", "professor",
		},
		ConditionalDomainTerms: []ConditionalTerms{
			{Triggers: []string{"ai", "artificial intelligence"}, Terms: []string{"ai", "artificial intelligence"}},
			{Triggers: []string{"research", "researcher"}, Terms: []string{"research"}},
			{Triggers: []string{"founder", "ceo", "startup"}, Terms: []string{"founder", "ceo", "startup"}},
		},
		TitleRoles:  []string{"engineer", "developer", "researcher", "founder", "student"},
		FameMarkers: []string{"founder", "ceo", "cto", "created", "built", "developed"},
		Impact: []string{
			"founder", "ceo", "startup", "company", "nonprofit", "organization",
		},
		Pioneering: []string{"research", "published", "patent", "innovation"},
		Technical: []string{
			"ai", "machine learning", "deep learning", "neural",
			"algorithm", "software", "engineering",
		},
		Elite: []string{
			"google", "microsoft", "apple", "amazon", "meta", "openai",
			"deepmind", "nvidia", "mit", "stanford", "harvard", "berkeley",
			"oxford", "cambridge", "nasa", "y combinator",
		},
		Builder: []string{
			"founder", "startup", "entrepreneur", "built", "created", "launched",
		},
		Young: []string{
			"youngest", "teen", "student", "undergraduate", "sophomore", "freshman",
		},
		RecognitionWords: []string{
			"scholar", "award", "honor", "fellowship", "grant", "prize", "recognition",
		},
		Domains: map[types.QueryCategory][]string{
			types.CategoryAcademic: {
				"scholar.google.com", "arxiv.org", "paperswithcode.com",
				"researchgate.net", "academia.edu",
			},
			types.CategoryNews: {
				"techcrunch.com", "wired.com", "forbes.com",
				"bloomberg.com", "reuters.com", "bbc.com",
			},
			types.CategoryAwards: {
				"nobelprize.org", "turing.acm.org", "ieee.org", "acm.org",
			},
			types.CategoryGeneral: {
				"wikipedia.org", "github.com", "stackoverflow.com",
			},
		},
	}
}

// Load reads a taxonomy override from a YAML file. Empty lists in the file
// fall back to the built-in defaults so an override only needs to name the
// groups it changes.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading taxonomy file %s: %w", path, err)
	}

	var override Taxonomy
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parsing taxonomy file %s: %w", path, err)
	}

	t := Default()
	mergeList(&t.InstitutionMarkers, override.InstitutionMarkers)
	mergeList(&t.RoleMarkers, override.RoleMarkers)
	mergeList(&t.ResearchMarkers, override.ResearchMarkers)
	mergeList(&t.RelevanceProfessional, override.RelevanceProfessional)
	mergeList(&t.TitleRoles, override.TitleRoles)
	mergeList(&t.FameMarkers, override.FameMarkers)
	mergeList(&t.Impact, override.Impact)
	mergeList(&t.Pioneering, override.Pioneering)
	mergeList(&t.Technical, override.Technical)
	mergeList(&t.Elite, override.Elite)
	mergeList(&t.Builder, override.Builder)
	mergeList(&t.Young, override.Young)
	mergeList(&t.RecognitionWords, override.RecognitionWords)
	if len(override.ConditionalDomainTerms) > 0 {
		t.ConditionalDomainTerms = override.ConditionalDomainTerms
	}
	if len(override.Domains) > 0 {
		t.Domains = override.Domains
	}
	return t, nil
}

func mergeList(dst *[]string, src []string) {
	if len(src) > 0 {
		*dst = src
	}
}

// ContainsAny reports whether any keyword occurs in s. Matching is
// case-insensitive; s is lower-cased once per call.
func ContainsAny(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// FirstMatch returns the first keyword (in list order) that occurs in s.
func FirstMatch(s string, keywords []string) (string, bool) {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return kw, true
		}
	}
	return "", false
}
