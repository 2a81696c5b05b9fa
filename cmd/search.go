package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ghostroot/internal/config"
	"ghostroot/internal/corpus"
	"ghostroot/internal/store"
)

var searchFields []string

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search the artifact corpus by keyword",
	Long: `Case-insensitive substring search across artifact fields
(default: id, language, kind, text).

Examples:
  ghostroot search kahca
  ghostroot search --field metadata.gloss water`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringSliceVar(&searchFields, "field", nil, "Fields to search (repeatable, dotted paths allowed)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	s := config.Load()

	artifacts, err := store.Load[corpus.Artifact](s.ArtifactsPath)
	if err != nil {
		return err
	}

	matches := store.Search(artifacts, args[0], searchFields)
	if len(matches) == 0 {
		fmt.Println("No artifacts match the search keyword")
		return nil
	}

	fmt.Printf("Found %d matching artifact(s):\n\n", len(matches))
	for _, a := range matches {
		fmt.Printf("%s  [%s/%s]  %s\n", a.ID, a.Language, a.Kind, a.Text)
		if a.Glossed() {
			fmt.Printf("  gloss: %s (%s)\n", a.Metadata.Gloss, a.Metadata.Confidence)
		}
		if a.Metadata.Context != "" {
			fmt.Printf("  context: %s\n", a.Metadata.Context)
		}
		fmt.Println()
	}
	return nil
}
