package researcher

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ghostroot/internal/corpus"
)

const (
	// glossLookback bounds candidate selection to the most recent window
	// of the corpus.
	glossLookback = 20
	// glossBatchSize caps one proposal batch to bound prompt size.
	glossBatchSize = 8
)

// GlossProposal is one proposed interpretation from the generation
// service. Confidence is kept as the raw string until the orchestrator
// validates it at the persistence boundary.
type GlossProposal struct {
	ArtifactID string `json:"artifact_id"`
	Gloss      string `json:"gloss"`
	Meaning    string `json:"meaning"`
	Confidence string `json:"confidence"`
}

const glossPromptTemplate = `You are a historical linguist. Propose glosses (meaning interpretations) for these inscriptions.

For each artifact, provide:
- artifact_id: the ID
- gloss: brief meaning (1-4 words)
- meaning: more detailed meaning if possible
- confidence: low|medium|high

Output a JSON array.

Context (language statistics):
%s

Artifacts to gloss:
%s

Example format:
[
  {"artifact_id": "...", "gloss": "...", "meaning": "...", "confidence": "low|med|high"}
]`

// GlossCandidates selects the artifacts worth glossing this cycle: within
// the recent window, not sentences, and either unglossed or glossed with
// low confidence. At most glossBatchSize, most recent kept.
func GlossCandidates(artifacts []corpus.Artifact) []corpus.Artifact {
	recent := artifacts
	if len(recent) > glossLookback {
		recent = recent[len(recent)-glossLookback:]
	}

	var candidates []corpus.Artifact
	for _, a := range recent {
		if a.Kind == corpus.KindSentence {
			continue
		}
		if !a.Glossed() || a.Metadata.Confidence == corpus.ConfidenceLow {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) > glossBatchSize {
		candidates = candidates[len(candidates)-glossBatchSize:]
	}
	return candidates
}

// ProposeGlosses requests structured gloss proposals for the current
// candidates. A response that does not parse as a JSON array discards the
// whole batch — no partial acceptance. Service failures propagate.
func (e *Engine) ProposeGlosses(ctx context.Context, artifacts []corpus.Artifact, summaries map[string]LanguageSummary) ([]GlossProposal, error) {
	candidates := GlossCandidates(artifacts)
	if len(candidates) == 0 {
		return nil, nil
	}

	lines := make([]string, 0, len(candidates))
	for _, a := range candidates {
		lines = append(lines, fmt.Sprintf("ID: %s, Lang: %s, Text: '%s'", a.ID, a.Language, a.Text))
	}
	prompt := fmt.Sprintf(glossPromptTemplate, summariesBlock(summaries), strings.Join(lines, "\n"))

	raw, err := e.gen.Generate(ctx, prompt, researcherOptions())
	if err != nil {
		return nil, fmt.Errorf("gloss proposal failed: %w", err)
	}

	proposals, ok := decodeReply[[]GlossProposal](raw)
	if !ok {
		e.log.Warn("gloss response did not parse, dropping batch",
			zap.Int("candidates", len(candidates)))
		return nil, nil
	}
	return proposals, nil
}
