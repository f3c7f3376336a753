package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "profile-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the discovery stage (code-hosting lookup
// and generic web search).
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// EnableHosting controls whether the code-hosting lookup runs.
	EnableHosting bool `json:"enable_hosting" yaml:"enable_hosting"`

	// EnableWebSearch controls whether the generic web search runs.
	EnableWebSearch bool `json:"enable_web_search" yaml:"enable_web_search"`

	// HostingToken is an optional code-hosting API token for higher rate limits.
	HostingToken string `json:"hosting_token,omitempty" yaml:"hosting_token,omitempty"`

	// WebSearchAPIKey authenticates against the web-search API. Empty
	// disables the web search for the run.
	WebSearchAPIKey string `json:"web_search_api_key,omitempty" yaml:"web_search_api_key,omitempty"`

	// MaxResults is the maximum number of web results per query (default 10).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// NeuralConfig holds settings for the neural-search stage.
type NeuralConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey authenticates against the neural-search API. Empty disables
	// the stage for the run.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// ResultsPerQuery is the number of results requested per planned query
	// (default 10).
	ResultsPerQuery int `json:"results_per_query" yaml:"results_per_query"`

	// UseDomainFilters restricts each query category to its allow-listed
	// domains (academic venues, news outlets, award registries).
	UseDomainFilters bool `json:"use_domain_filters" yaml:"use_domain_filters"`
}

// SocialConfig holds settings for the social-profile detail stage.
type SocialConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxProfiles is the number of discovered profile URLs to fetch
	// (default 2).
	MaxProfiles int `json:"max_profiles" yaml:"max_profiles"`
}

// AIConfig holds settings for stages that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API. Empty disables the
	// AI-backed extraction; the aggregator falls back to metric-derived
	// entries.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// StoreConfig holds settings for the profile store.
type StoreConfig struct {
	// ProfilesDir is the base directory for profile output (contains
	// runs/ and index/).
	ProfilesDir string `json:"profiles_dir" yaml:"profiles_dir"`

	// MaxResults is the default maximum number of store query results
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for an analysis run.
type PipelineConfig struct {
	Search SearchConfig `json:"search" yaml:"search"`
	Neural NeuralConfig `json:"neural" yaml:"neural"`
	Social SocialConfig `json:"social" yaml:"social"`
	AI     AIConfig     `json:"ai" yaml:"ai"`
	Store  StoreConfig  `json:"store" yaml:"store"`

	// TaxonomyFile optionally overrides the built-in keyword taxonomy.
	TaxonomyFile string `json:"taxonomy_file,omitempty" yaml:"taxonomy_file,omitempty"`
}
