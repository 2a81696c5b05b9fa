package researcher

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ghostroot/internal/corpus"
	"ghostroot/internal/testutil"
)

func meaningful(id, lang, word, meaning string) corpus.Artifact {
	a := inscription(id, lang, word)
	a.Metadata.Gloss = word + "-GLOSS"
	a.Metadata.Meaning = meaning
	a.Metadata.Confidence = corpus.ConfidenceLow
	return a
}

func TestWordContexts(t *testing.T) {
	artifacts := []corpus.Artifact{
		meaningful("A1", "branch_a", "kar", "water"),
		meaningful("A2", "branch_a", "Mel", "stone"),
		inscription("A3", "branch_a", "zix"), // no meaning, ignored
		sentence("S1", "branch_a", "kar mel thu"),
		sentence("S2", "branch_a", "mel kar"),
		sentence("S3", "branch_a", "zix thu"),
	}
	artifacts[3].Metadata.Context = "temple floor"
	artifacts[4].Metadata.Context = "grave marker"

	order, contexts, glosses := WordContexts(artifacts)

	if diff := cmp.Diff([]string{"kar", "mel"}, order); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if _, ok := glosses["zix"]; ok {
		t.Error("inscription without meaning must not be glossed")
	}
	if g := glosses["mel"]; g.ArtifactID != "A2" {
		t.Errorf("mel gloss came from %s, want A2 (text lowercased)", g.ArtifactID)
	}

	karOcc := contexts["kar"]
	if len(karOcc) != 2 {
		t.Fatalf("kar attested %d times, want 2", len(karOcc))
	}
	if karOcc[0].FindContext != "temple floor" || karOcc[1].FindContext != "grave marker" {
		t.Errorf("kar contexts = %+v", karOcc)
	}
	if karOcc[0].Sentence != "kar mel thu" {
		t.Errorf("first occurrence sentence = %q", karOcc[0].Sentence)
	}
}

func TestWordContextsNoSentences(t *testing.T) {
	order, contexts, _ := WordContexts([]corpus.Artifact{
		meaningful("A1", "branch_a", "kar", "water"),
	})
	if len(order) != 0 || len(contexts) != 0 {
		t.Errorf("expected no attested words, got %v %v", order, contexts)
	}
}

func TestContextualFitNoData(t *testing.T) {
	gen := &testutil.ScriptedGenerator{Responses: []string{"should not be called"}}
	e := NewEngine(gen, nil, 3, false)

	note, err := e.ContextualFit(context.Background(), "C1", []corpus.Artifact{
		inscription("A1", "branch_a", "kar"),
		sentence("S1", "branch_a", "kar thu"),
	})
	if err != nil {
		t.Fatalf("ContextualFit: %v", err)
	}
	if len(gen.Prompts) != 0 {
		t.Error("no glossed words attested, generation service must not be called")
	}
	if note.Kind != corpus.NoteContextAnalysis {
		t.Errorf("note kind = %q", note.Kind)
	}
	if !strings.Contains(note.Summary, "Need more data") {
		t.Errorf("summary = %q, want need-more-data note", note.Summary)
	}
}

func TestContextualFit(t *testing.T) {
	gen := &testutil.ScriptedGenerator{Responses: []string{"The gloss for kar conflicts with its grave contexts."}}
	e := NewEngine(gen, nil, 3, false)

	artifacts := []corpus.Artifact{
		meaningful("A1", "branch_a", "kar", "water"),
		sentence("S1", "branch_a", "kar thu"),
		sentence("S2", "branch_a", "thu kar mel"),
	}
	artifacts[1].Metadata.Context = "grave marker"

	note, err := e.ContextualFit(context.Background(), "C2", artifacts)
	if err != nil {
		t.Fatalf("ContextualFit: %v", err)
	}

	prompt := gen.Prompts[0]
	if !strings.Contains(prompt, "Word: 'kar'") {
		t.Errorf("prompt missing word block:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Meaning: water") {
		t.Errorf("prompt missing meaning:\n%s", prompt)
	}
	if !strings.Contains(prompt, "grave marker") {
		t.Errorf("prompt missing find context:\n%s", prompt)
	}

	if note.ID != "C2" || note.Kind != corpus.NoteContextAnalysis {
		t.Errorf("note = %+v", note)
	}
	if note.Summary != gen.Responses[0] {
		t.Errorf("summary = %q", note.Summary)
	}
	if note.Metadata.WordsAnalyzed == nil || *note.Metadata.WordsAnalyzed != 1 {
		t.Errorf("words analyzed = %v, want 1", note.Metadata.WordsAnalyzed)
	}
	if note.Metadata.SentenceCount == nil || *note.Metadata.SentenceCount != 2 {
		t.Errorf("sentence count = %v, want 2", note.Metadata.SentenceCount)
	}
}
