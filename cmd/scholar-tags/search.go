// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-tags/internal/extract"
	"github.com/pdiddy/scholar-tags/internal/scholar"
	"github.com/pdiddy/scholar-tags/internal/search"
	"github.com/pdiddy/scholar-tags/internal/tags"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search Google Scholar by paper title",
	Long: `Search fetches the first Google Scholar results page for an exact title
query and prints every paper with its authors and their tags.

With one or more --tag flags, only papers having at least one author that
carries a selected tag are shown, along with the authors that matched.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	selected, _ := cmd.Flags().GetStringSlice("tag")

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	svc := newService(store)
	out, err := svc.Search(cmd.Context(), search.Request{Title: title, Tags: selected})
	if err != nil {
		return err
	}
	return writeOutput(cmd, out)
}

func newService(store *tags.Store) *search.Service {
	client := scholar.NewClient(cfg.Scholar, scholar.WithLogger(logger))
	return search.NewService(client, extract.New(extract.WithLogger(logger)), store, logger)
}

// writeOutput prints out in the format chosen by the --json and --yaml flags.
func writeOutput(cmd *cobra.Command, out search.Output) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	asYAML, _ := cmd.Flags().GetBool("yaml")
	return format(cmd.OutOrStdout(), out, asJSON, asYAML)
}

func format(w io.Writer, out search.Output, asJSON, asYAML bool) error {
	switch {
	case asJSON:
		return search.FormatJSON(out, w)
	case asYAML:
		return search.FormatYAML(out, w)
	default:
		search.FormatTable(out, w)
		return nil
	}
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("tag", nil, "only show papers with an author carrying this tag (repeatable)")
	cmd.Flags().Bool("json", false, "output results as JSON")
	cmd.Flags().Bool("yaml", false, "output results as YAML")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")
}

func init() {
	searchCmd.Flags().String("title", "", "paper title to search for")
	searchCmd.Flags().Int("max-results", 0, "number of results to request (default from config)")
	_ = searchCmd.MarkFlagRequired("title")
	addOutputFlags(searchCmd)

	_ = viper.BindPFlag("scholar.max_results", searchCmd.Flags().Lookup("max-results"))

	rootCmd.AddCommand(searchCmd)
}
