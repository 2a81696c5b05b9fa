package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ghostroot/internal/config"
	"ghostroot/internal/cycle"
)

var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Run one full research cycle",
	Long: `Run one end-to-end pass: the speaker generates a new artifact pair,
the researcher analyzes the reloaded corpus, and glosses, research note and
research questions are persisted.

Example:
  ghostroot cycle`,
	RunE: runCycle,
}

func init() {
	rootCmd.AddCommand(cycleCmd)
}

func runCycle(cmd *cobra.Command, args []string) error {
	s := config.Load()

	speakerGen, err := newGenerator(s, s.SpeakerModel)
	if err != nil {
		return err
	}
	researcherGen, err := newGenerator(s, s.ResearcherModel)
	if err != nil {
		return err
	}

	runner := cycle.NewRunner(s, speakerGen, researcherGen, logger)
	result, err := runner.RunFullCycle(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println("Cycle complete")
	fmt.Println("━━━━━━━━━━━━━━")
	fmt.Println()
	for _, a := range result.NewArtifacts {
		fmt.Printf("  %-11s %s  (%s)\n", a.Kind+":", a.Text, a.Metadata.Context)
	}
	fmt.Println()
	fmt.Printf("Research note %s:\n%s\n\n", result.Note.ID, result.Note.Summary)

	if len(result.NewQuestions) > 0 {
		fmt.Printf("New research questions (%d):\n", len(result.NewQuestions))
		for _, q := range result.NewQuestions {
			fmt.Printf("  [%s] %s\n", q.ID, q.Question)
		}
		fmt.Println()
	}
	if result.UpdatedQuestions > 0 {
		fmt.Printf("Updated %d question(s)\n", result.UpdatedQuestions)
	}
	if result.GlossesApplied > 0 {
		fmt.Printf("Updated %d artifact gloss(es)\n", result.GlossesApplied)
	}
	if len(result.NewQuestions) == 0 && result.UpdatedQuestions == 0 {
		fmt.Println("No research questions generated or updated this cycle")
	}
	return nil
}
