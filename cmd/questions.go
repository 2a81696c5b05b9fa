package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ghostroot/internal/config"
	"ghostroot/internal/corpus"
	"ghostroot/internal/store"
)

var questionsOpen bool

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List research questions",
	Long: `List the stored research questions with their proposed answers and
confidence levels.

Examples:
  ghostroot questions
  ghostroot questions --open`,
	RunE: runQuestions,
}

func init() {
	rootCmd.AddCommand(questionsCmd)

	questionsCmd.Flags().BoolVar(&questionsOpen, "open", false, "Show only questions still needing review")
}

func runQuestions(cmd *cobra.Command, args []string) error {
	s := config.Load()

	questions, err := store.Load[corpus.ResearchQuestion](s.QuestionsPath)
	if err != nil {
		return err
	}

	shown := 0
	for _, q := range questions {
		if questionsOpen && !q.NeedsReview() {
			continue
		}
		shown++

		fmt.Printf("[%s] %s\n", q.ID, q.Question)
		if q.Answered() {
			fmt.Printf("  answer:     %s\n", q.ProposedAnswer)
		} else {
			fmt.Printf("  answer:     (unanswered)\n")
		}
		fmt.Printf("  confidence: %s\n", q.Confidence.Or(corpus.ConfidenceNone))
		fmt.Printf("  created:    %s\n", time.Unix(q.CreatedAt, 0).Format("2006-01-02 15:04"))
		if q.UpdatedAt != nil {
			fmt.Printf("  updated:    %s\n", time.Unix(*q.UpdatedAt, 0).Format("2006-01-02 15:04"))
		}
		fmt.Println()
	}

	if shown == 0 {
		fmt.Println("No research questions found")
		return nil
	}
	fmt.Printf("%d question(s)\n", shown)
	return nil
}
