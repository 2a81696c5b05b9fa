package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/alpkeskin/gotoon"
	"github.com/spf13/cobra"

	"ghostroot/internal/config"
	"ghostroot/internal/corpus"
	"ghostroot/internal/researcher"
	"ghostroot/internal/store"
)

var (
	statsJSON bool
	statsToon bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus statistics",
	Long: `Display statistics about the corpus including:
  - Artifact counts by kind and language
  - Gloss coverage and confidence breakdown
  - Per-language token statistics
  - Research question and log counts

Examples:
  ghostroot stats
  ghostroot stats --json
  ghostroot stats --toon`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
	statsCmd.Flags().BoolVar(&statsToon, "toon", false, "Output in LLM-friendly toon format")
}

type corpusStats struct {
	TotalArtifacts int                                    `json:"total_artifacts"`
	ByKind         map[string]int                         `json:"by_kind"`
	ByLanguage     map[string]int                         `json:"by_language"`
	Glossed        int                                    `json:"glossed"`
	ByConfidence   map[string]int                         `json:"by_confidence"`
	Languages      map[string]researcher.LanguageSummary  `json:"languages"`
	OpenQuestions  int                                    `json:"open_questions"`
	TotalQuestions int                                    `json:"total_questions"`
	LogEntries     int                                    `json:"log_entries"`
}

func runStats(cmd *cobra.Command, args []string) error {
	s := config.Load()

	artifacts, err := store.Load[corpus.Artifact](s.ArtifactsPath)
	if err != nil {
		return err
	}
	questions, err := store.Load[corpus.ResearchQuestion](s.QuestionsPath)
	if err != nil {
		return err
	}
	notes, err := store.Load[corpus.ResearchNote](s.ResearchLogPath)
	if err != nil {
		return err
	}

	stats := corpusStats{
		TotalArtifacts: len(artifacts),
		ByKind:         make(map[string]int),
		ByLanguage:     make(map[string]int),
		ByConfidence:   make(map[string]int),
		Languages:      researcher.Summarize(artifacts),
		TotalQuestions: len(questions),
		LogEntries:     len(notes),
	}
	for _, a := range artifacts {
		stats.ByKind[string(a.Kind)]++
		stats.ByLanguage[a.Language]++
		if a.Glossed() {
			stats.Glossed++
			stats.ByConfidence[string(a.Metadata.Confidence.Or(corpus.ConfidenceNone))]++
		}
	}
	for _, q := range questions {
		if q.NeedsReview() {
			stats.OpenQuestions++
		}
	}

	if statsJSON {
		output, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if statsToon {
		output, err := gotoon.Encode(stats)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	fmt.Println("Corpus Statistics")
	fmt.Println("━━━━━━━━━━━━━━━━━")
	fmt.Println()

	fmt.Printf("Total Artifacts: %d (%d glossed)\n", stats.TotalArtifacts, stats.Glossed)
	for _, kind := range sortedKeys(stats.ByKind) {
		fmt.Printf("  %-12s %d\n", kind+":", stats.ByKind[kind])
	}
	fmt.Println()

	langs := sortedKeys(stats.ByLanguage)
	for _, lang := range langs {
		summary := stats.Languages[lang]
		fmt.Printf("Language %s: %d artifact(s), %d token(s)\n", lang, stats.ByLanguage[lang], summary.TokenCount)
		if len(summary.TopTokens) > 0 {
			fmt.Printf("  top tokens: %v\n", summary.TopTokens)
		}
	}
	fmt.Println()

	fmt.Printf("Research Questions: %d (%d open)\n", stats.TotalQuestions, stats.OpenQuestions)
	fmt.Printf("Research Log:       %d entries\n", stats.LogEntries)
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
