package researcher

import (
	"context"
	"fmt"

	"ghostroot/internal/corpus"
)

// narrativeArtifactWindow bounds the recent artifacts quoted in the
// narrative prompt.
const narrativeArtifactWindow = 12

const narrativePromptTemplate = `You are a historical linguist reconstructing a lost proto-language from descendant inscriptions.
You have imperfect evidence. Be cautious and explicit about uncertainty.

Tasks:
1) Identify 2-5 possible cognate sets across descendant languages (similar-looking words).
2) Propose up to %d proto-root hypotheses in the form:
    * root = gloss
    * meaning = english meaning/meanings
    * reasoning: brief justification
    * confidence: low/med/high
3) Note 1-3 open questions to investigate next.

Important:
- Do NOT claim certainty, only confidence
- Prefer short, structured output.
- Use plain text with headings.

Evidence summary (token stats):
%s

Recent artifacts (most recent last):
%s`

// Narrate produces the free-text cognate/proto-root synthesis that becomes
// the research note body. The output stays prose and is never parsed back
// into structured state.
func (e *Engine) Narrate(ctx context.Context, artifacts []corpus.Artifact, summaries map[string]LanguageSummary) (string, error) {
	prompt := fmt.Sprintf(narrativePromptTemplate,
		e.maxHypotheses,
		summariesBlock(summaries),
		recentArtifactsBlock(artifacts, narrativeArtifactWindow))

	raw, err := e.gen.Generate(ctx, prompt, researcherOptions())
	if err != nil {
		return "", fmt.Errorf("narrative synthesis failed: %w", err)
	}
	return raw, nil
}
