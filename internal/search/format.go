// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-tags/pkg/types"
)

// FormatTable writes results as a human-readable table to w.
func FormatTable(out Output, w io.Writer) {
	if len(out.Papers) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-50s  %-30s  %-8s  %s\n",
		"Rank", "Title", "Authors", "Cited", "Tags")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, p := range out.Papers {
		fmt.Fprintf(w, "%-4d  %-50s  %-30s  %-8d  %s\n",
			i+1, truncate(p.Title, 50), formatAuthors(p.Authors), p.CitedBy, formatTags(p.Authors))
	}

	fmt.Fprintf(w, "\n%d results\n", out.Total)
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(out Output, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// FormatYAML writes results as YAML to w.
func FormatYAML(out Output, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return enc.Close()
}

func formatAuthors(authors []types.AuthorTags) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0].Name, 30)
	default:
		return truncate(authors[0].Name, 24) + " et al."
	}
}

// formatTags lists tagged authors as "Name[tag,tag]".
func formatTags(authors []types.AuthorTags) string {
	var parts []string
	for _, a := range authors {
		if len(a.Tags) == 0 {
			continue
		}
		parts = append(parts, a.Name+"["+strings.Join(a.Tags, ",")+"]")
	}
	return strings.Join(parts, " ")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
