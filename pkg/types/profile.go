// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// HostingProfile is the best-matching code-hosting account for a name.
// Per prd010-person-search, each field maps directly to the hosting API's
// user record; absent fields stay zero-valued.
type HostingProfile struct {
	Username  string `json:"username" yaml:"username"`
	Name      string `json:"name" yaml:"name"`
	Bio       string `json:"bio" yaml:"bio"`
	Location  string `json:"location" yaml:"location"`
	Company   string `json:"company" yaml:"company"`
	Blog      string `json:"blog" yaml:"blog"`
	URL       string `json:"url" yaml:"url"`
	AvatarURL string `json:"avatar_url" yaml:"avatar_url"`
	Repos     int    `json:"repos" yaml:"repos"`
	Followers int    `json:"followers" yaml:"followers"`
}

// WebResult is one organic web-search hit.
type WebResult struct {
	Title   string `json:"title" yaml:"title"`
	Link    string `json:"link" yaml:"link"`
	Snippet string `json:"snippet" yaml:"snippet"`
}

// KnowledgePanel is the structured side panel some web searches return,
// carrying direct profile links.
type KnowledgePanel struct {
	Title       string            `json:"title" yaml:"title"`
	Type        string            `json:"type" yaml:"type"`
	Description string            `json:"description" yaml:"description"`
	Attributes  map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	ProfileURLs []string          `json:"profile_urls,omitempty" yaml:"profile_urls,omitempty"`
}

// WebSearchResponse bundles what the web-search collaborator returns for
// one query.
type WebSearchResponse struct {
	Organic []WebResult     `json:"organic" yaml:"organic"`
	Panel   *KnowledgePanel `json:"panel,omitempty" yaml:"panel,omitempty"`
}

// SocialLinks groups profile URLs discovered in web-search results.
// LinkedIn is capped at 3 entries, Twitter at 2, first-seen order.
type SocialLinks struct {
	LinkedIn []string          `json:"linkedin" yaml:"linkedin"`
	Twitter  []string          `json:"twitter" yaml:"twitter"`
	Other    map[string]string `json:"other,omitempty" yaml:"other,omitempty"`
}

// ExperienceEntry is one position on a social profile.
type ExperienceEntry struct {
	Title       string `json:"title" yaml:"title"`
	Company     string `json:"company" yaml:"company"`
	Duration    string `json:"duration" yaml:"duration"`
	Description string `json:"description" yaml:"description"`
}

// EducationEntry is one school on a social profile.
type EducationEntry struct {
	School   string `json:"school" yaml:"school"`
	Degree   string `json:"degree" yaml:"degree"`
	Duration string `json:"duration" yaml:"duration"`
}

// SocialProfile is the structured record scraped from one social-profile
// URL. Scraping is best-effort: any subset of fields may be empty and the
// zero value means "no data", never an error.
type SocialProfile struct {
	URL            string            `json:"url" yaml:"url"`
	Name           string            `json:"name" yaml:"name"`
	Headline       string            `json:"headline" yaml:"headline"`
	Location       string            `json:"location" yaml:"location"`
	Summary        string            `json:"summary" yaml:"summary"`
	Experience     []ExperienceEntry `json:"experience,omitempty" yaml:"experience,omitempty"`
	Education      []EducationEntry  `json:"education,omitempty" yaml:"education,omitempty"`
	Skills         []string          `json:"skills,omitempty" yaml:"skills,omitempty"`
	Certifications []string          `json:"certifications,omitempty" yaml:"certifications,omitempty"`
	Projects       []string          `json:"projects,omitempty" yaml:"projects,omitempty"`
	Volunteer      []string          `json:"volunteer,omitempty" yaml:"volunteer,omitempty"`
	Achievements   []string          `json:"achievements,omitempty" yaml:"achievements,omitempty"`
}

// IsZero reports whether scraping produced nothing usable.
func (p SocialProfile) IsZero() bool {
	return p.Name == "" && p.Headline == "" && p.Summary == "" &&
		len(p.Experience) == 0 && len(p.Education) == 0 &&
		len(p.Skills) == 0 && len(p.Achievements) == 0
}

// CriteriaCategory is one of the seven fixed evaluation buckets used to
// classify achievements and recognition.
type CriteriaCategory string

const (
	CriteriaImpact                    CriteriaCategory = "impact"
	CriteriaPrestigeValidation        CriteriaCategory = "prestige_validation"
	CriteriaPioneeringWork            CriteriaCategory = "pioneering_work"
	CriteriaRecognitionByInstitutions CriteriaCategory = "recognition_by_institutions"
	CriteriaExceptionallyYoung        CriteriaCategory = "exceptionally_young"
	CriteriaTechnicalFrontier         CriteriaCategory = "technical_frontier"
	CriteriaBuilderStartupCred        CriteriaCategory = "builder_startup_cred"
)

// CriteriaCategories lists all seven buckets. Classification output always
// carries every one of them as a key.
var CriteriaCategories = []CriteriaCategory{
	CriteriaImpact,
	CriteriaPrestigeValidation,
	CriteriaPioneeringWork,
	CriteriaRecognitionByInstitutions,
	CriteriaExceptionallyYoung,
	CriteriaTechnicalFrontier,
	CriteriaBuilderStartupCred,
}

// SourceCitation records where one piece of profile evidence came from.
type SourceCitation struct {
	Fact       string `json:"fact" yaml:"fact"`
	Evidence   string `json:"evidence" yaml:"evidence"`
	SourceHint string `json:"source_hint" yaml:"source_hint"`
}

// AggregatedProfile is the canonical output of one analysis run: attributes
// merged from every source, normalized and categorized. It is constructed
// once and written verbatim by the persistence layer.
//
// Invariants: Recognition and Achievements hold no duplicates under
// case/whitespace folding and no entries shorter than 4 characters;
// CriteriaHits always contains all seven category keys.
type AggregatedProfile struct {
	Name        string `json:"name" yaml:"name"`
	PhotoURL    string `json:"photo_url" yaml:"photo_url"`
	Country     string `json:"country" yaml:"country"`
	TitleOrRole string `json:"title_or_role" yaml:"title_or_role"`
	Affiliation string `json:"affiliation" yaml:"affiliation"`
	ClaimToFame string `json:"claim_to_fame" yaml:"claim_to_fame"`

	Recognition  []string `json:"recognition" yaml:"recognition"`
	Achievements []string `json:"achievements" yaml:"achievements"`
	Quote        string   `json:"quote" yaml:"quote"`

	CriteriaHits map[CriteriaCategory][]string `json:"criteria_hits" yaml:"criteria_hits"`
	Sources      []SourceCitation              `json:"sources" yaml:"sources"`
}
