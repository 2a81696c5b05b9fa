package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ghostroot/internal/config"
	"ghostroot/internal/corpus"
	"ghostroot/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the corpus data directory",
	Long: `Create the data directory and the three empty collections: artifacts,
research questions, and the research log. Safe to run repeatedly; existing
collections are left untouched.

Example:
  ghostroot init`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	s := config.Load()

	if err := os.MkdirAll(s.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	// Loading lazily initializes a missing collection and surfaces
	// corruption in an existing one before any cycle runs.
	if _, err := store.Load[corpus.Artifact](s.ArtifactsPath); err != nil {
		return err
	}
	if _, err := store.Load[corpus.ResearchQuestion](s.QuestionsPath); err != nil {
		return err
	}
	if _, err := store.Load[corpus.ResearchNote](s.ResearchLogPath); err != nil {
		return err
	}

	fmt.Printf("Initialized corpus at %s\n", s.DataDir)
	fmt.Printf("  artifacts:          %s\n", s.ArtifactsPath)
	fmt.Printf("  research questions: %s\n", s.QuestionsPath)
	fmt.Printf("  research log:       %s\n", s.ResearchLogPath)
	return nil
}
