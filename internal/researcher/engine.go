// Package researcher is the analysis engine of the research loop. It runs
// once per cycle over the full in-memory corpus, derives token statistics,
// and asks the generation service for gloss proposals, question reviews,
// and a narrative synthesis. The engine never writes to storage: it
// returns proposed deltas for the cycle orchestrator to apply.
package researcher

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"ghostroot/internal/corpus"
	"ghostroot/internal/generate"
)

// systemPrompt keeps researcher responses terse and parseable.
const systemPrompt = `You are a concise reasoning assistant.

Rules:
- Think silently. Do not show your reasoning process.
- Output only the final answer unless explicitly asked for explanation.
- If explanation is requested: max 4 bullets, no preambles, no repetition.
- Be direct and precise.`

// researcherOptions are the shared sampling settings of every analysis
// request.
func researcherOptions() generate.Options {
	return generate.Options{
		System:        systemPrompt,
		Temperature:   0.2,
		TopP:          0.8,
		TopK:          20,
		RepeatPenalty: 1.12,
		NumPredict:    350,
		NumCtx:        8192,
		Stop:          []string{"<|eot_id|>", "USER:", "ASSISTANT:"},
	}
}

// Engine holds the generation service handle and the analysis knobs.
type Engine struct {
	gen           generate.Generator
	log           *zap.Logger
	maxHypotheses int
	reviewAll     bool
}

// NewEngine builds an analysis engine. reviewAll widens question review
// from "unanswered or low/medium confidence" to every stored question.
func NewEngine(gen generate.Generator, log *zap.Logger, maxHypotheses int, reviewAll bool) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if maxHypotheses < 1 {
		maxHypotheses = 3
	}
	return &Engine{gen: gen, log: log, maxHypotheses: maxHypotheses, reviewAll: reviewAll}
}

// Result carries every delta one analysis pass proposes. The orchestrator
// owns applying them.
type Result struct {
	Note            corpus.ResearchNote
	NewQuestions    []NewQuestion
	QuestionUpdates []QuestionUpdate
	Glosses         []GlossProposal
}

// Analyze runs the full analysis pass: narrative synthesis, question
// review/generation, and gloss proposals, in that order. Service errors
// abort the pass; malformed structured replies degrade to empty deltas.
func (e *Engine) Analyze(ctx context.Context, entryID string, artifacts []corpus.Artifact, existing []corpus.ResearchQuestion) (*Result, error) {
	summaries := Summarize(artifacts)
	e.log.Debug("corpus summarized",
		zap.Int("artifacts", len(artifacts)),
		zap.Int("languages", len(summaries)))

	summary, err := e.Narrate(ctx, artifacts, summaries)
	if err != nil {
		return nil, err
	}

	newQuestions, updates, err := e.ReviewQuestions(ctx, artifacts, summaries, existing)
	if err != nil {
		return nil, err
	}

	glosses, err := e.ProposeGlosses(ctx, artifacts, summaries)
	if err != nil {
		return nil, err
	}

	note, err := corpus.NewResearchNote(entryID, summary, len(artifacts), Languages(summaries))
	if err != nil {
		return nil, err
	}

	return &Result{
		Note:            note,
		NewQuestions:    newQuestions,
		QuestionUpdates: updates,
		Glosses:         glosses,
	}, nil
}

// summariesBlock renders the language summaries as stable JSON for prompt
// injection.
func summariesBlock(summaries map[string]LanguageSummary) string {
	langs := Languages(summaries)
	ordered := make(map[string]LanguageSummary, len(summaries))
	for _, lang := range langs {
		ordered[lang] = summaries[lang]
	}
	data, err := json.MarshalIndent(ordered, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

// recentArtifactsBlock renders the last n artifacts, most recent last.
func recentArtifactsBlock(artifacts []corpus.Artifact, n int) string {
	if len(artifacts) > n {
		artifacts = artifacts[len(artifacts)-n:]
	}
	data, err := json.MarshalIndent(artifacts, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(data)
}
