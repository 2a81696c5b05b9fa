package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ghostroot/internal/config"
	"ghostroot/internal/cycle"
)

var speakCount int

var speakCmd = &cobra.Command{
	Use:   "speak",
	Short: "Run only the speaker agent to generate artifacts",
	Long: `Run the speaker agent a number of times without analysis, for corpus
data generation. Each run persists one inscription and one sentence.

Examples:
  ghostroot speak
  ghostroot speak --count 10`,
	RunE: runSpeak,
}

func init() {
	rootCmd.AddCommand(speakCmd)

	speakCmd.Flags().IntVar(&speakCount, "count", 1, "Number of speaker runs")
}

func runSpeak(cmd *cobra.Command, args []string) error {
	if speakCount < 1 {
		return fmt.Errorf("count must be >= 1")
	}

	s := config.Load()
	speakerGen, err := newGenerator(s, s.SpeakerModel)
	if err != nil {
		return err
	}

	runner := cycle.NewRunner(s, speakerGen, nil, logger)
	artifacts, err := runner.RunSpeakerBatch(cmd.Context(), speakCount)
	if err != nil {
		return err
	}

	for _, a := range artifacts {
		fmt.Printf("  %-11s %s\n", a.Kind+":", a.Text)
	}
	fmt.Printf("\nGenerated %d artifact(s) across %d run(s)\n", len(artifacts), speakCount)
	fmt.Printf("Saved to: %s\n", s.ArtifactsPath)
	return nil
}
