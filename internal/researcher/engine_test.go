package researcher

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ghostroot/internal/corpus"
	"ghostroot/internal/generate"
	"ghostroot/internal/testutil"
)

func TestNarratePrompt(t *testing.T) {
	artifacts := []corpus.Artifact{
		inscription("A1", "branch_a", "kar"),
		sentence("S1", "branch_b", "mel thu"),
	}
	gen := &testutil.ScriptedGenerator{Responses: []string{"Possible cognate set: kar / mel."}}
	e := NewEngine(gen, nil, 5, false)

	got, err := e.Narrate(context.Background(), artifacts, Summarize(artifacts))
	if err != nil {
		t.Fatalf("Narrate: %v", err)
	}
	if got != gen.Responses[0] {
		t.Errorf("narrative = %q", got)
	}

	prompt := gen.Prompts[0]
	if !strings.Contains(prompt, "up to 5 proto-root hypotheses") {
		t.Errorf("prompt missing hypothesis cap:\n%s", prompt)
	}
	for _, want := range []string{"branch_a", "branch_b", "kar", "mel thu"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestAnalyze(t *testing.T) {
	artifacts := []corpus.Artifact{
		inscription("A1", "branch_a", "kar"),
		sentence("S1", "branch_a", "kar thu"),
	}
	existing := []corpus.ResearchQuestion{question("Q1", "", corpus.ConfidenceLow)}
	gen := &testutil.ScriptedGenerator{Responses: []string{
		"The corpus hints at a proto-root *kar.",
		`{"answers": [{"question_id": "Q1", "proposed_answer": "settled", "confidence": "medium"}], "new_questions": []}`,
		`[{"artifact_id": "A1", "gloss": "kar-WATER", "meaning": "water", "confidence": "low"}]`,
	}}
	e := NewEngine(gen, nil, 3, false)

	result, err := e.Analyze(context.Background(), "R1", artifacts, existing)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if result.Note.ID != "R1" || result.Note.Kind != corpus.NoteResearch {
		t.Errorf("note = %+v", result.Note)
	}
	if result.Note.Summary != "The corpus hints at a proto-root *kar." {
		t.Errorf("note summary = %q", result.Note.Summary)
	}
	if result.Note.Metadata.ArtifactCount != 2 {
		t.Errorf("note artifact count = %d", result.Note.Metadata.ArtifactCount)
	}
	if len(result.QuestionUpdates) != 1 || result.QuestionUpdates[0].QuestionID != "Q1" {
		t.Errorf("question updates = %+v", result.QuestionUpdates)
	}
	if len(result.Glosses) != 1 || result.Glosses[0].ArtifactID != "A1" {
		t.Errorf("glosses = %+v", result.Glosses)
	}
	if len(gen.Prompts) != 3 {
		t.Errorf("generation service called %d times, want 3", len(gen.Prompts))
	}
}

func TestAnalyzeServiceError(t *testing.T) {
	gen := &testutil.ScriptedGenerator{Err: generate.ErrTimeout}
	e := NewEngine(gen, nil, 3, false)

	_, err := e.Analyze(context.Background(), "R1", nil, nil)
	if !errors.Is(err, generate.ErrTimeout) {
		t.Errorf("err = %v, want service error to abort the pass", err)
	}
	if len(gen.Prompts) != 1 {
		t.Errorf("generation service called %d times after first failure", len(gen.Prompts))
	}
}
