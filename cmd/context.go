package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ghostroot/internal/config"
	"ghostroot/internal/cycle"
)

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Run the contextual-fit analysis pass",
	Long: `Cross-reference glossed words against the sentences they appear in and
ask the researcher whether the glosses make sense in their attested
archaeological contexts. The critique is appended to the research log as a
context_analysis entry.

Example:
  ghostroot context`,
	RunE: runContext,
}

func init() {
	rootCmd.AddCommand(contextCmd)
}

func runContext(cmd *cobra.Command, args []string) error {
	s := config.Load()
	researcherGen, err := newGenerator(s, s.ResearcherModel)
	if err != nil {
		return err
	}

	runner := cycle.NewRunner(s, nil, researcherGen, logger)
	note, err := runner.RunContextAnalysis(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Context analysis %s\n", note.ID)
	if note.Metadata.WordsAnalyzed != nil {
		fmt.Printf("Words analyzed: %d\n", *note.Metadata.WordsAnalyzed)
	}
	fmt.Println()
	fmt.Println(note.Summary)
	return nil
}
