// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/profile-engine/internal/analyze"
	"github.com/pdiddy/profile-engine/internal/hosting"
	"github.com/pdiddy/profile-engine/internal/llm"
	"github.com/pdiddy/profile-engine/internal/neural"
	"github.com/pdiddy/profile-engine/internal/profilestore"
	"github.com/pdiddy/profile-engine/internal/secrets"
	"github.com/pdiddy/profile-engine/internal/social"
	"github.com/pdiddy/profile-engine/internal/taxonomy"
	"github.com/pdiddy/profile-engine/internal/websearch"
	"github.com/pdiddy/profile-engine/pkg/types"
)

const defaultUserAgent = "profile-engine/0.1"

var analyzeCmd = &cobra.Command{
	Use:   "analyze [name]",
	Short: "Run the full profile-building pipeline for a person",
	Long: `Analyze discovers the person's code-hosting account and web presence,
plans category-labeled search queries, fans them out to the neural-search
API, filters the results for relevance, aggregates everything into one
profile, classifies it against the evaluation criteria, and saves the
result as a JSON run file.

Collaborators without a configured API key are skipped; the profile is
built from whatever sources remain. Only a persistence failure makes the
command fail.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return fmt.Errorf("a person name is required")
	}

	cfg := pipelineConfigFromFlags(cmd)

	tax := taxonomy.Default()
	if cfg.TaxonomyFile != "" {
		var err error
		tax, err = taxonomy.Load(cfg.TaxonomyFile)
		if err != nil {
			return err
		}
	}

	affiliation, _ := cmd.Flags().GetString("affiliation")
	location, _ := cmd.Flags().GetString("location")
	bio, _ := cmd.Flags().GetString("bio")
	links, _ := cmd.Flags().GetStringArray("link")

	id := types.Identity{
		Name:        name,
		Affiliation: affiliation,
		Location:    location,
		Biography:   bio,
		KnownLinks:  links,
	}

	pipeline := buildPipeline(cfg, tax)
	profile := pipeline.Run(context.Background(), id, os.Stderr)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(profile); err != nil {
		return err
	}

	noSave, _ := cmd.Flags().GetBool("no-save")
	if noSave {
		return nil
	}

	store, err := profilestore.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	runFile, err := store.SaveRun(context.Background(), profile)
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	fmt.Fprintf(os.Stderr, "profile saved to %s\n", runFile)
	return nil
}

// buildPipeline wires collaborator clients from the configuration. Clients
// whose credentials are missing stay nil and the pipeline logs them as
// skipped.
func buildPipeline(cfg types.PipelineConfig, tax *taxonomy.Taxonomy) *analyze.Pipeline {
	httpClient := &http.Client{Timeout: cfg.Search.Timeout}

	p := &analyze.Pipeline{Tax: tax, Cfg: cfg}

	if cfg.Search.EnableHosting {
		p.Hosting = &hosting.GitHubClient{
			Client:    httpClient,
			Token:     cfg.Search.HostingToken,
			UserAgent: cfg.Search.UserAgent,
		}
	}
	if cfg.Search.EnableWebSearch && cfg.Search.WebSearchAPIKey != "" {
		p.Web = &websearch.SerperClient{
			Client:    httpClient,
			APIKey:    cfg.Search.WebSearchAPIKey,
			UserAgent: cfg.Search.UserAgent,
		}
	}
	if cfg.Neural.APIKey != "" {
		p.Neural = &neural.ExaBackend{
			Client:    &http.Client{Timeout: cfg.Neural.Timeout},
			APIKey:    cfg.Neural.APIKey,
			UserAgent: cfg.Neural.UserAgent,
			Domains:   tax.Domains,
		}
	}
	p.Social = &social.Scraper{
		Client:    &http.Client{Timeout: cfg.Social.Timeout},
		UserAgent: cfg.Social.UserAgent,
	}
	if cfg.AI.APIKey != "" {
		p.AI = llm.NewAnthropicBackend(cfg.AI)
	}

	return p
}

// pipelineConfigFromFlags merges flags, config-file values, and loaded
// secrets into one PipelineConfig. Flags win over the config file; secrets
// fill keys neither provided.
func pipelineConfigFromFlags(cmd *cobra.Command) types.PipelineConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpCfg := types.HTTPConfig{Timeout: timeout, UserAgent: defaultUserAgent}

	noHosting, _ := cmd.Flags().GetBool("no-hosting")
	noWeb, _ := cmd.Flags().GetBool("no-web")
	resultsPerQuery, _ := cmd.Flags().GetInt("results-per-query")
	domainFilters, _ := cmd.Flags().GetBool("domain-filters")
	maxProfiles, _ := cmd.Flags().GetInt("max-profiles")
	model, _ := cmd.Flags().GetString("model")
	profilesDir, _ := cmd.Flags().GetString("profiles-dir")
	taxonomyFile, _ := cmd.Flags().GetString("taxonomy")

	if model == "" {
		model = viper.GetString("ai.model")
	}
	if profilesDir == "" {
		profilesDir = viper.GetString("store.profiles_dir")
	}
	if taxonomyFile == "" {
		taxonomyFile = viper.GetString("taxonomy_file")
	}

	return types.PipelineConfig{
		Search: types.SearchConfig{
			HTTPConfig:      httpCfg,
			EnableHosting:   !noHosting,
			EnableWebSearch: !noWeb,
			HostingToken:    secretDefault(secrets.GitHubToken, viper.GetString("search.hosting_token")),
			WebSearchAPIKey: secretDefault(secrets.SerperAPIKey, viper.GetString("search.web_search_api_key")),
		},
		Neural: types.NeuralConfig{
			HTTPConfig:       httpCfg,
			APIKey:           secretDefault(secrets.ExaAPIKey, viper.GetString("neural.api_key")),
			ResultsPerQuery:  resultsPerQuery,
			UseDomainFilters: domainFilters,
		},
		Social: types.SocialConfig{
			HTTPConfig:  httpCfg,
			MaxProfiles: maxProfiles,
		},
		AI: types.AIConfig{
			Model:  model,
			APIKey: secretDefault(secrets.AnthropicAPIKey, viper.GetString("ai.api_key")),
		},
		Store: types.StoreConfig{
			ProfilesDir: profilesDir,
		},
		TaxonomyFile: taxonomyFile,
	}
}

func init() {
	analyzeCmd.Flags().String("affiliation", "", "known affiliation of the person")
	analyzeCmd.Flags().String("location", "", "known location of the person")
	analyzeCmd.Flags().String("bio", "", "known short biography of the person")
	analyzeCmd.Flags().StringArray("link", nil, "known social-profile URL (repeatable)")
	analyzeCmd.Flags().Bool("no-hosting", false, "skip the code-hosting lookup")
	analyzeCmd.Flags().Bool("no-web", false, "skip the generic web search")
	analyzeCmd.Flags().Bool("no-save", false, "print the profile without persisting it")
	analyzeCmd.Flags().Int("results-per-query", 10, "neural-search results per planned query")
	analyzeCmd.Flags().Bool("domain-filters", true, "restrict neural queries to per-category domain allow-lists")
	analyzeCmd.Flags().Int("max-profiles", 2, "maximum social profiles to fetch")
	analyzeCmd.Flags().String("model", "", "AI model for achievement extraction")
	analyzeCmd.Flags().String("profiles-dir", "profiles", "base directory for profile output")
	analyzeCmd.Flags().String("taxonomy", "", "YAML file overriding the keyword taxonomy")
	analyzeCmd.Flags().Duration("timeout", 30*time.Second, "per-call timeout for external collaborators")

	rootCmd.AddCommand(analyzeCmd)
}
