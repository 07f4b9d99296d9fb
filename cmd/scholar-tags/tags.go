// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-tags/internal/tags"
	"github.com/pdiddy/scholar-tags/pkg/types"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Manage author tags (add, remove, list, all, export)",
	Long: `Tags manages the free-form tags attached to authors. Tags are stored in the
configured backend (tags.backend, tags.path) and are used by search to filter
and annotate results. Author names must match the byline text exactly.`,
}

// --- add / remove ---

var tagsAddCmd = &cobra.Command{
	Use:   "add AUTHOR TAG",
	Short: "Attach a tag to an author",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMutation(cmd, args, (*tags.Store).AddTag, "Tagged %s with %q\n")
	},
}

var tagsRemoveCmd = &cobra.Command{
	Use:   "remove AUTHOR TAG",
	Short: "Detach a tag from an author",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMutation(cmd, args, (*tags.Store).RemoveTag, "Removed %[2]q from %[1]s\n")
	},
}

func runMutation(cmd *cobra.Command, args []string, op func(*tags.Store, string, string) error, msg string) error {
	author, tag, err := tags.ValidateMutation(args[0], args[1])
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := op(store, author, tag); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), msg, author, tag)
	return nil
}

// --- list / all ---

var tagsListCmd = &cobra.Command{
	Use:   "list AUTHOR",
	Short: "Print an author's tags in the order they were added",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		printLines(cmd.OutOrStdout(), store.Tags(args[0]))
		return nil
	},
}

var tagsAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Print every tag in use, sorted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		printLines(cmd.OutOrStdout(), store.AllTags())
		return nil
	},
}

func printLines(w io.Writer, lines []string) {
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}

// --- export ---

var tagsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the full author to tags mapping to stdout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		return exportMapping(cmd.OutOrStdout(), store.Mapping(), format)
	},
}

func exportMapping(w io.Writer, m types.TagMapping, format string) error {
	switch format {
	case "json", "":
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling tags: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("marshaling tags: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown export format %q (want json or yaml)", format)
	}
}

func init() {
	tagsExportCmd.Flags().String("format", "json", "output format (json or yaml)")

	tagsCmd.AddCommand(tagsAddCmd)
	tagsCmd.AddCommand(tagsRemoveCmd)
	tagsCmd.AddCommand(tagsListCmd)
	tagsCmd.AddCommand(tagsAllCmd)
	tagsCmd.AddCommand(tagsExportCmd)

	rootCmd.AddCommand(tagsCmd)
}
