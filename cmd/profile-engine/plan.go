// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/profile-engine/internal/plan"
	"github.com/pdiddy/profile-engine/internal/taxonomy"
	"github.com/pdiddy/profile-engine/pkg/types"
)

var planCmd = &cobra.Command{
	Use:   "plan [name]",
	Short: "Show the search queries that analyze would issue",
	Long: `Plan prints the category-labeled queries the pipeline would send to the
neural-search API for a person, without calling any external service.
Useful for tuning known attributes before spending API quota.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return fmt.Errorf("a person name is required")
	}

	affiliation, _ := cmd.Flags().GetString("affiliation")
	location, _ := cmd.Flags().GetString("location")
	bio, _ := cmd.Flags().GetString("bio")
	links, _ := cmd.Flags().GetStringArray("link")
	taxonomyFile, _ := cmd.Flags().GetString("taxonomy")

	tax := taxonomy.Default()
	if taxonomyFile != "" {
		var err error
		tax, err = taxonomy.Load(taxonomyFile)
		if err != nil {
			return err
		}
	}

	queries := plan.Plan(types.Identity{
		Name:        name,
		Affiliation: affiliation,
		Location:    location,
		Biography:   bio,
		KnownLinks:  links,
	}, tax)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(queries)
	}

	for _, q := range queries {
		fmt.Printf("%-12s  %s\n", q.Category, q.Text)
	}
	return nil
}

func init() {
	planCmd.Flags().String("affiliation", "", "known affiliation of the person")
	planCmd.Flags().String("location", "", "known location of the person")
	planCmd.Flags().String("bio", "", "known short biography of the person")
	planCmd.Flags().StringArray("link", nil, "known social-profile URL (repeatable)")
	planCmd.Flags().String("taxonomy", "", "YAML file overriding the keyword taxonomy")
	planCmd.Flags().Bool("json", false, "output queries as JSON")

	rootCmd.AddCommand(planCmd)
}
