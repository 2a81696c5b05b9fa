// Package cycle sequences one end-to-end research pass and owns every
// write to the three collections. Each cycle is strictly sequential:
// load corpus, generate artifacts, persist, reload, analyze, then persist
// the analysis deltas. Service failures abort the cycle with no partial
// persistence of the failed step; steps already persisted stay persisted.
package cycle

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ghostroot/internal/config"
	"ghostroot/internal/corpus"
	"ghostroot/internal/generate"
	"ghostroot/internal/researcher"
	"ghostroot/internal/speaker"
	"ghostroot/internal/store"
)

// Runner drives speaker batches and full research cycles. One writer,
// one process: the store's rewrite pattern depends on it.
type Runner struct {
	settings      config.Settings
	speakerGen    generate.Generator
	researcherGen generate.Generator
	log           *zap.Logger
}

// NewRunner wires a Runner from settings and the two generation handles.
func NewRunner(settings config.Settings, speakerGen, researcherGen generate.Generator, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		settings:      settings,
		speakerGen:    speakerGen,
		researcherGen: researcherGen,
		log:           log,
	}
}

// Result summarizes what one full cycle persisted.
type Result struct {
	NewArtifacts     []corpus.Artifact
	Note             corpus.ResearchNote
	NewQuestions     []corpus.ResearchQuestion
	UpdatedQuestions int
	GlossesApplied   int
}

// RunSpeakerBatch runs the speaker n times, persisting each generated
// artifact pair, and returns everything persisted.
func (r *Runner) RunSpeakerBatch(ctx context.Context, n int) ([]corpus.Artifact, error) {
	if n < 1 {
		return nil, fmt.Errorf("speaker count must be >= 1, got %d", n)
	}

	var all []corpus.Artifact
	for i := 0; i < n; i++ {
		artifacts, err := r.speak(ctx)
		if err != nil {
			return all, err
		}
		for _, a := range artifacts {
			if err := store.Append(r.settings.ArtifactsPath, a); err != nil {
				return all, err
			}
			all = append(all, a)
		}
		r.log.Info("speaker run complete",
			zap.Int("run", i+1),
			zap.Int("of", n),
			zap.String("id", artifacts[0].ID))
	}
	return all, nil
}

// RunFullCycle executes one complete research cycle.
func (r *Runner) RunFullCycle(ctx context.Context) (*Result, error) {
	// Step 0: load corpus
	artifacts, err := store.Load[corpus.Artifact](r.settings.ArtifactsPath)
	if err != nil {
		return nil, err
	}
	r.log.Info("corpus loaded", zap.Int("artifacts", len(artifacts)))

	// Step 1: speaker generates an artifact pair
	newArtifacts, err := r.speak(ctx)
	if err != nil {
		return nil, err
	}

	// Step 2: persist new artifacts
	for _, a := range newArtifacts {
		if err := store.Append(r.settings.ArtifactsPath, a); err != nil {
			return nil, err
		}
	}
	r.log.Info("artifacts persisted", zap.Int("count", len(newArtifacts)))

	// Step 3: reload so analysis sees the just-written records, ids
	// included. Mandatory: candidate selection and statistics must run on
	// the post-write corpus, not a stale snapshot.
	artifacts, err = store.Load[corpus.Artifact](r.settings.ArtifactsPath)
	if err != nil {
		return nil, err
	}

	// Step 4: researcher analyzes the corpus
	questions, err := store.Load[corpus.ResearchQuestion](r.settings.QuestionsPath)
	if err != nil {
		return nil, err
	}
	entryID := corpus.NewID("R")
	engine := researcher.NewEngine(r.researcherGen, r.log,
		r.settings.MaxHypotheses, r.settings.ReviewAllQuestions)

	actx, cancel := context.WithTimeout(ctx, r.researcherTimeout())
	defer cancel()
	analysis, err := engine.Analyze(actx, entryID, artifacts, questions)
	if err != nil {
		return nil, err
	}
	r.log.Info("analysis complete",
		zap.String("note", entryID),
		zap.Int("glosses", len(analysis.Glosses)),
		zap.Int("new_questions", len(analysis.NewQuestions)),
		zap.Int("question_updates", len(analysis.QuestionUpdates)))

	result := &Result{NewArtifacts: newArtifacts, Note: analysis.Note}

	// Step 5: apply gloss updates
	result.GlossesApplied, err = r.applyGlosses(analysis.Glosses)
	if err != nil {
		return nil, err
	}

	// Step 6: append the research note
	if err := store.Append(r.settings.ResearchLogPath, analysis.Note); err != nil {
		return nil, err
	}

	// Step 7: persist new questions
	result.NewQuestions, err = r.persistNewQuestions(analysis.NewQuestions, entryID)
	if err != nil {
		return nil, err
	}

	// Step 8: apply question updates
	result.UpdatedQuestions, err = r.applyQuestionUpdates(analysis.QuestionUpdates)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// RunContextAnalysis runs the contextual-fit pass over the current corpus
// and appends its note to the research log.
func (r *Runner) RunContextAnalysis(ctx context.Context) (corpus.ResearchNote, error) {
	artifacts, err := store.Load[corpus.Artifact](r.settings.ArtifactsPath)
	if err != nil {
		return corpus.ResearchNote{}, err
	}

	engine := researcher.NewEngine(r.researcherGen, r.log,
		r.settings.MaxHypotheses, r.settings.ReviewAllQuestions)

	actx, cancel := context.WithTimeout(ctx, r.researcherTimeout())
	defer cancel()
	note, err := engine.ContextualFit(actx, corpus.NewID("C"), artifacts)
	if err != nil {
		return corpus.ResearchNote{}, err
	}

	if err := store.Append(r.settings.ResearchLogPath, note); err != nil {
		return corpus.ResearchNote{}, err
	}
	r.log.Info("context analysis persisted", zap.String("note", note.ID))
	return note, nil
}

func (r *Runner) speak(ctx context.Context) ([]corpus.Artifact, error) {
	sctx, cancel := context.WithTimeout(ctx, r.speakerTimeout())
	defer cancel()
	return speaker.Generate(sctx, r.speakerGen,
		r.language(), corpus.NewID("A"), r.settings.MaxSpeakerWords)
}

// applyGlosses validates each proposal at the boundary and applies the
// survivors. A proposal needs an artifact id and at least a meaning or a
// gloss; a glossed proposal never persists with confidence none.
func (r *Runner) applyGlosses(proposals []researcher.GlossProposal) (int, error) {
	var updates []store.Update
	for _, p := range proposals {
		if p.ArtifactID == "" || (p.Gloss == "" && p.Meaning == "") {
			continue
		}
		conf := corpus.ParseConfidence(p.Confidence)
		if p.Gloss != "" {
			conf = conf.Or(corpus.ConfidenceLow)
		}
		updates = append(updates, store.Update{
			ID: p.ArtifactID,
			Fields: map[string]any{
				"metadata.gloss":      p.Gloss,
				"metadata.meaning":    p.Meaning,
				"metadata.confidence": string(conf),
			},
		})
	}
	if len(updates) == 0 {
		return 0, nil
	}
	applied, err := store.ApplyUpdates(r.settings.ArtifactsPath, updates, "metadata.gloss_updated_at")
	if err != nil {
		return 0, err
	}
	r.log.Info("glosses applied", zap.Int("proposed", len(updates)), zap.Int("applied", applied))
	return applied, nil
}

// persistNewQuestions appends the proposed questions, forcing the
// confidence floor: new questions always persist at low confidence with an
// empty answer, whatever the generation service claimed.
func (r *Runner) persistNewQuestions(proposed []researcher.NewQuestion, noteID string) ([]corpus.ResearchQuestion, error) {
	now := time.Now().Unix()
	var persisted []corpus.ResearchQuestion
	for _, nq := range proposed {
		q, err := corpus.NewResearchQuestion(corpus.NewID("Q"), nq.Question, noteID, now)
		if err != nil {
			r.log.Warn("dropping invalid question proposal", zap.Error(err))
			continue
		}
		if err := store.Append(r.settings.QuestionsPath, q); err != nil {
			return persisted, err
		}
		persisted = append(persisted, q)
	}
	return persisted, nil
}

func (r *Runner) applyQuestionUpdates(updates []researcher.QuestionUpdate) (int, error) {
	var storeUpdates []store.Update
	for _, u := range updates {
		if u.QuestionID == "" {
			continue
		}
		conf := corpus.ParseConfidence(u.Confidence).Or(corpus.ConfidenceLow)
		storeUpdates = append(storeUpdates, store.Update{
			ID: u.QuestionID,
			Fields: map[string]any{
				"proposed_answer": u.ProposedAnswer,
				"confidence":      string(conf),
			},
		})
	}
	if len(storeUpdates) == 0 {
		return 0, nil
	}
	return store.ApplyUpdates(r.settings.QuestionsPath, storeUpdates, "updated_at")
}

func (r *Runner) language() string {
	if r.settings.Language == "" {
		return "ghostlang"
	}
	return r.settings.Language
}

func (r *Runner) speakerTimeout() time.Duration {
	if r.settings.SpeakerTimeout <= 0 {
		return 30 * time.Second
	}
	return r.settings.SpeakerTimeout
}

func (r *Runner) researcherTimeout() time.Duration {
	if r.settings.ResearcherTimeout <= 0 {
		return 5 * time.Minute
	}
	return r.settings.ResearcherTimeout
}
