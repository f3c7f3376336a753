// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/pdiddy/profile-engine/internal/profilestore"
	"github.com/pdiddy/profile-engine/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage persisted profiles (list, show, search, export)",
	Long: `Store manages the local profile index built by analyze runs. Use
subcommands to list indexed profiles, show the latest profile for a
person, run a full-text search, or export the index to YAML.`,
}

// --- list subcommand ---

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed profiles, most recently updated first",
	RunE:  runStoreList,
}

func runStoreList(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	summaries, err := store.List(context.Background())
	if err != nil {
		return err
	}
	return formatSummaries(cmd, summaries)
}

// --- show subcommand ---

var storeShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print the latest stored profile for a person",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStoreShow,
}

func runStoreShow(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	profile, err := store.Get(context.Background(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(profile)
}

// --- search subcommand ---

var storeSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search over indexed profiles",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStoreSearch,
}

func runStoreSearch(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	summaries, err := store.Search(context.Background(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	return formatSummaries(cmd, summaries)
}

// --- export subcommand ---

var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the profile index to profiles/export.yaml",
	RunE:  runStoreExport,
}

func runStoreExport(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Export(context.Background()); err != nil {
		return err
	}
	profilesDir, _ := cmd.Flags().GetString("profiles-dir")
	fmt.Println("Exported to", filepath.Join(profilesDir, "export.yaml"))
	return nil
}

// --- shared helpers ---

func openStore(cmd *cobra.Command) (*profilestore.Store, error) {
	profilesDir, _ := cmd.Flags().GetString("profiles-dir")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	return profilestore.NewStore(types.StoreConfig{
		ProfilesDir: profilesDir,
		MaxResults:  maxResults,
	})
}

func formatSummaries(cmd *cobra.Command, summaries []profilestore.Summary) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}

	if len(summaries) == 0 {
		fmt.Println("No profiles found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-24s  %-16s  %-24s  %s\n",
		"Name", "Country", "Affiliation", "Claim to fame")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, s := range summaries {
		fmt.Fprintf(os.Stdout, "%-24s  %-16s  %-24s  %s\n",
			clip(s.Name, 24), clip(s.Country, 16), clip(s.Affiliation, 24), clip(s.ClaimToFame, 34))
	}
	fmt.Fprintf(os.Stdout, "\n%d profiles\n", len(summaries))
	return nil
}

// clip shortens s to at most max bytes, ending with "..." and cutting on
// a rune boundary so table cells stay valid UTF-8.
func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func init() {
	storeCmd.PersistentFlags().String("profiles-dir", "profiles", "base directory for profile output (contains runs/, index/)")
	storeCmd.PersistentFlags().Int("max-results", 20, "maximum number of results")
	storeCmd.PersistentFlags().Bool("json", false, "output as JSON")

	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeShowCmd)
	storeCmd.AddCommand(storeSearchCmd)
	storeCmd.AddCommand(storeExportCmd)

	rootCmd.AddCommand(storeCmd)
}
