package researcher

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ghostroot/internal/corpus"
)

// questionArtifactWindow bounds the recent-artifact evidence shown
// alongside the question review.
const questionArtifactWindow = 8

// QuestionUpdate proposes a better answer for an existing question,
// matched back by exact id. Unmatched proposals are dropped.
type QuestionUpdate struct {
	QuestionID     string `json:"question_id"`
	ProposedAnswer string `json:"proposed_answer"`
	Confidence     string `json:"confidence"`
}

// NewQuestion is a freshly proposed research question. Whatever answer or
// confidence the service supplies is overridden at persistence time.
type NewQuestion struct {
	Question       string `json:"question"`
	ProposedAnswer string `json:"proposed_answer"`
	Confidence     string `json:"confidence"`
}

type questionReply struct {
	Answers      []QuestionUpdate `json:"answers"`
	NewQuestions []NewQuestion    `json:"new_questions"`
}

const questionPromptTemplate = `You are a historical linguist. Based on the evidence below:

1) Review ALL existing questions listed below. For EACH question with low or medium confidence:
   - Try to provide a better or more confident answer based on new evidence
   - If the current answer seems correct, you may improve confidence or leave it
   - If there's no answer yet, provide your best tentative answer

2) Generate 2-3 NEW research questions about the proto-language that haven't been asked yet

IMPORTANT: For existing questions, you must review ALL of them and provide updates for any that you can improve.

For ANSWERS/UPDATES to existing questions, provide:
- question_id: the ID of the question being answered/updated
- proposed_answer: your answer (improved or new)
- confidence: low|medium|high (can upgrade if evidence supports it)

For NEW questions, provide:
- question: the question text
- proposed_answer: leave empty "" for now
- confidence: low (always start with low for new questions)

Output TWO JSON arrays:
{
  "answers": [{
    "question_id": "Q123",
    "proposed_answer": "...",
    "confidence": "low|medium|high"
  }],
  "new_questions": [{
    "question": "...",
    "proposed_answer": "",
    "confidence": "low"
  }]
}

Output ONLY the JSON object. No other text.%s

Evidence summary:
%s

Recent artifacts:
%s`

// ReviewSet selects the open questions to re-present this cycle:
// unanswered, or answered with less than high confidence. With reviewAll
// set, every stored question is included.
func ReviewSet(questions []corpus.ResearchQuestion, reviewAll bool) []corpus.ResearchQuestion {
	if reviewAll {
		return questions
	}
	var set []corpus.ResearchQuestion
	for _, q := range questions {
		if q.NeedsReview() {
			set = append(set, q)
		}
	}
	return set
}

// ReviewQuestions asks the generation service to improve answers for the
// review set and to propose new questions. Answer proposals are matched to
// existing questions by exact id; unmatched ones are dropped. A reply that
// does not parse yields empty results, never an error.
func (e *Engine) ReviewQuestions(ctx context.Context, artifacts []corpus.Artifact, summaries map[string]LanguageSummary, existing []corpus.ResearchQuestion) ([]NewQuestion, []QuestionUpdate, error) {
	reviewSet := ReviewSet(existing, e.reviewAll)

	var existingBlock string
	if len(reviewSet) > 0 {
		var sb strings.Builder
		sb.WriteString("\n\nExisting questions to answer or improve (low/medium confidence):\n")
		for i, q := range reviewSet {
			answer := q.ProposedAnswer
			if answer == "" {
				answer = "NO ANSWER YET"
			}
			fmt.Fprintf(&sb, "%d. %s\n", i+1, q.Question)
			fmt.Fprintf(&sb, "   Current answer: %s\n", answer)
			fmt.Fprintf(&sb, "   Current confidence: %s\n", q.Confidence.Or(corpus.ConfidenceNone))
			fmt.Fprintf(&sb, "   (ID: %s)\n", q.ID)
		}
		existingBlock = sb.String()
	}

	prompt := fmt.Sprintf(questionPromptTemplate,
		existingBlock,
		summariesBlock(summaries),
		recentArtifactsBlock(artifacts, questionArtifactWindow))

	raw, err := e.gen.Generate(ctx, prompt, researcherOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("question review failed: %w", err)
	}

	reply, ok := decodeReply[questionReply](raw)
	if !ok {
		e.log.Warn("question response did not parse, skipping",
			zap.Int("reviewed", len(reviewSet)))
		return nil, nil, nil
	}

	known := make(map[string]bool, len(existing))
	for _, q := range existing {
		known[q.ID] = true
	}
	var updates []QuestionUpdate
	for _, ans := range reply.Answers {
		if known[ans.QuestionID] {
			updates = append(updates, ans)
		}
	}

	var news []NewQuestion
	for _, nq := range reply.NewQuestions {
		if strings.TrimSpace(nq.Question) != "" {
			news = append(news, nq)
		}
	}
	return news, updates, nil
}
