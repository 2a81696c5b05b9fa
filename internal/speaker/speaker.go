// Package speaker is the generation side of the research loop: it asks the
// text-generation service to speak one line of the simulated extinct
// language and shapes the raw output into corpus artifacts.
package speaker

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"ghostroot/internal/corpus"
	"ghostroot/internal/generate"
)

const promptTemplate = `You are an extinct speaker of a daughter language called %s.
Output EXACTLY ONE LINE. A sentence of 2-%d nonsense words/strings of varying lengths. E.g. "yhews kahca zix" or "h'u thes wyaha rere".
The words should be evocative of the style of a %s. No need for punctuation.
Do NOT include analysis, thinking, or explanations.
Return only the inscription text.`

var edgeQuotes = regexp.MustCompile(`^['"]|['"]$`)

// Generate produces one inscription/sentence artifact pair for the given
// language branch. The inscription is a single word drawn from the
// response; the sentence is the full line truncated to maxWords. Both
// share the same randomly drawn find context. Service failures propagate
// as the adapter's typed errors.
func Generate(ctx context.Context, gen generate.Generator, language, artifactID string, maxWords int) ([]corpus.Artifact, error) {
	if maxWords < 2 {
		maxWords = 2
	}
	findContext := findContexts[rand.Intn(len(findContexts))]
	prompt := fmt.Sprintf(promptTemplate, language, maxWords, findContext)

	raw, err := gen.Generate(ctx, prompt, generate.Options{
		NumPredict:  40,
		Temperature: 0.4,
		Stop:        []string{"\n\n", "###"},
	})
	if err != nil {
		return nil, fmt.Errorf("speaker generation failed: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: speaker returned empty text", generate.ErrProtocol)
	}

	word := pickWord(raw)
	sentence := truncateWords(edgeQuotes.ReplaceAllString(strings.TrimSpace(raw), ""), maxWords)

	inscription, err := corpus.NewArtifact(artifactID, language, corpus.KindInscription, word, findContext)
	if err != nil {
		return nil, err
	}
	sentenceArtifact, err := corpus.NewArtifact(artifactID+"_S", language, corpus.KindSentence, sentence, findContext)
	if err != nil {
		return nil, err
	}
	return []corpus.Artifact{inscription, sentenceArtifact}, nil
}

// pickWord selects one word of the raw response for the single-token
// inscription, preferring words longer than one rune.
func pickWord(raw string) string {
	words := strings.Fields(raw)
	var candidates []string
	for _, w := range words {
		if len(w) > 1 {
			candidates = append(candidates, w)
		}
	}
	if len(candidates) == 0 {
		candidates = words
	}
	word := candidates[rand.Intn(len(candidates))]
	return strings.TrimSpace(edgeQuotes.ReplaceAllString(word, ""))
}

func truncateWords(s string, max int) string {
	words := strings.Fields(s)
	if len(words) > max {
		words = words[:max]
	}
	return strings.Join(words, " ")
}
