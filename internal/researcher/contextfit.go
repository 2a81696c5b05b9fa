package researcher

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"ghostroot/internal/corpus"
)

// contextFitWordCap bounds the critique to the first distinct glossed
// words encountered, by insertion order.
const contextFitWordCap = 10

// WordGloss is the interpretation attached to one inscription word.
type WordGloss struct {
	Gloss      string
	Meaning    string
	Confidence corpus.Confidence
	ArtifactID string
}

// WordContext is one attested occurrence of a glossed word inside a
// sentence artifact.
type WordContext struct {
	Sentence    string
	FindContext string
	ArtifactID  string
}

// WordContexts cross-references glossed inscription words against the
// sentences they appear in. Returns the matched words in insertion order
// (first sentence occurrence), their attested contexts, and the gloss
// lookup. Only inscriptions with a non-empty meaning participate.
func WordContexts(artifacts []corpus.Artifact) ([]string, map[string][]WordContext, map[string]WordGloss) {
	glosses := make(map[string]WordGloss)
	for _, a := range artifacts {
		if a.Kind != corpus.KindInscription {
			continue
		}
		word := strings.ToLower(strings.TrimSpace(a.Text))
		if word == "" || a.Metadata.Meaning == "" {
			continue
		}
		glosses[word] = WordGloss{
			Gloss:      a.Metadata.Gloss,
			Meaning:    a.Metadata.Meaning,
			Confidence: a.Metadata.Confidence.Or(corpus.ConfidenceNone),
			ArtifactID: a.ID,
		}
	}

	contexts := make(map[string][]WordContext)
	var order []string
	for _, a := range artifacts {
		if a.Kind != corpus.KindSentence {
			continue
		}
		for _, tok := range Tokenize(a.Text) {
			if _, known := glosses[tok]; !known {
				continue
			}
			if _, seen := contexts[tok]; !seen {
				order = append(order, tok)
			}
			contexts[tok] = append(contexts[tok], WordContext{
				Sentence:    a.Text,
				FindContext: a.Metadata.Context,
				ArtifactID:  a.ID,
			})
		}
	}
	return order, contexts, glosses
}

const contextFitPromptTemplate = `You are a historical linguist doing contextual analysis.

Task: Analyze whether word interpretations fit the contexts they appear in.

For each word below, check:
1) Does the proposed meaning/gloss make sense in the archaeological contexts listed?
2) Are there contradictions? (e.g., "offering" appearing only in astronomical contexts)
3) Should confidence be adjusted based on context patterns?

Provide:
- 2-4 observations about contextual fit
- Note any clear contradictions or inconsistencies
- Suggest 1-2 words that may need reinterpretation

Be concise and skeptical. Focus on problems.

Data:
%s`

// ContextualFit critiques whether glosses make sense in their attested
// sentence contexts and returns the resulting context_analysis log entry.
// With no glossed word attested in any sentence the note records that more
// data is needed, without a generation call.
func (e *Engine) ContextualFit(ctx context.Context, entryID string, artifacts []corpus.Artifact) (corpus.ResearchNote, error) {
	order, contexts, glosses := WordContexts(artifacts)

	if len(order) == 0 {
		return corpus.NewContextNote(entryID,
			"No glossed words found in sentence contexts yet. Need more data.", 0, 0)
	}

	words := order
	if len(words) > contextFitWordCap {
		words = words[:contextFitWordCap]
	}

	var blocks []string
	for _, word := range words {
		occ := contexts[word]
		gloss := glosses[word]

		seen := make(map[string]bool)
		var kinds []string
		for _, c := range occ {
			if !seen[c.FindContext] {
				seen[c.FindContext] = true
				kinds = append(kinds, c.FindContext)
			}
		}
		sort.Strings(kinds)

		glossLabel := gloss.Gloss
		if glossLabel == "" {
			glossLabel = "(none)"
		}
		blocks = append(blocks, fmt.Sprintf(
			"Word: '%s'\n  Gloss: %s\n  Meaning: %s\n  Confidence: %s\n  Contexts: %s\n  Example sentence: %s",
			word, glossLabel, gloss.Meaning, gloss.Confidence,
			strings.Join(kinds, ", "), occ[0].Sentence))
	}

	prompt := fmt.Sprintf(contextFitPromptTemplate, strings.Join(blocks, "\n\n"))
	raw, err := e.gen.Generate(ctx, prompt, researcherOptions())
	if err != nil {
		return corpus.ResearchNote{}, fmt.Errorf("contextual analysis failed: %w", err)
	}

	sentences := 0
	for _, occ := range contexts {
		sentences += len(occ)
	}
	return corpus.NewContextNote(entryID, raw, len(contexts), sentences)
}
