// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "Extract papers from a saved Google Scholar results page",
	Long: `Extract reads a results page saved from Google Scholar and runs the same
extraction, tag filter and annotation as search, without touching the network.
Useful for checking selectors against a captured page.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	selected, _ := cmd.Flags().GetStringSlice("tag")

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	out := newService(store).Process(doc, selected)
	return writeOutput(cmd, out)
}

func init() {
	addOutputFlags(extractCmd)
	rootCmd.AddCommand(extractCmd)
}
