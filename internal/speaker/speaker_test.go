package speaker

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ghostroot/internal/corpus"
	"ghostroot/internal/generate"
	"ghostroot/internal/testutil"
)

func TestGeneratePair(t *testing.T) {
	gen := &testutil.ScriptedGenerator{Responses: []string{"yhews kahca zix wyaha"}}

	artifacts, err := Generate(context.Background(), gen, "branch_a", "A100", 8)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(artifacts) != 2 {
		t.Fatalf("got %d artifacts, want inscription+sentence pair", len(artifacts))
	}

	ins, sent := artifacts[0], artifacts[1]
	if ins.Kind != corpus.KindInscription || ins.ID != "A100" {
		t.Errorf("inscription = %+v", ins)
	}
	if sent.Kind != corpus.KindSentence || sent.ID != "A100_S" {
		t.Errorf("sentence = %+v", sent)
	}
	if ins.Language != "branch_a" || sent.Language != "branch_a" {
		t.Errorf("languages = %q %q", ins.Language, sent.Language)
	}
	if sent.Text != "yhews kahca zix wyaha" {
		t.Errorf("sentence text = %q", sent.Text)
	}
	if !strings.Contains(sent.Text, ins.Text) {
		t.Errorf("inscription word %q not drawn from the response", ins.Text)
	}
	if ins.Metadata.Context == "" || ins.Metadata.Context != sent.Metadata.Context {
		t.Errorf("find contexts = %q vs %q, want one shared draw",
			ins.Metadata.Context, sent.Metadata.Context)
	}

	prompt := gen.Prompts[0]
	if !strings.Contains(prompt, "branch_a") {
		t.Errorf("prompt missing language name:\n%s", prompt)
	}
	if !strings.Contains(prompt, ins.Metadata.Context) {
		t.Errorf("prompt missing find context %q:\n%s", ins.Metadata.Context, prompt)
	}
}

func TestGenerateTruncatesSentence(t *testing.T) {
	gen := &testutil.ScriptedGenerator{Responses: []string{"aa bb cc dd ee ff"}}

	artifacts, err := Generate(context.Background(), gen, "branch_b", "A101", 3)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got := artifacts[1].Text; got != "aa bb cc" {
		t.Errorf("sentence = %q, want truncated to 3 words", got)
	}
}

func TestGenerateStripsEdgeQuotes(t *testing.T) {
	gen := &testutil.ScriptedGenerator{Responses: []string{`"kar mel thu"`}}

	artifacts, err := Generate(context.Background(), gen, "branch_a", "A102", 8)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got := artifacts[1].Text; got != "kar mel thu" {
		t.Errorf("sentence = %q, want wrapping quotes stripped", got)
	}
	if strings.ContainsAny(artifacts[0].Text, `"'`) {
		t.Errorf("inscription word %q still carries quote characters", artifacts[0].Text)
	}
}

func TestGenerateEmptyResponse(t *testing.T) {
	gen := &testutil.ScriptedGenerator{Responses: []string{"   \n"}}

	_, err := Generate(context.Background(), gen, "branch_a", "A103", 8)
	if !errors.Is(err, generate.ErrProtocol) {
		t.Errorf("err = %v, want ErrProtocol for empty speaker output", err)
	}
}

func TestGenerateServiceError(t *testing.T) {
	gen := &testutil.ScriptedGenerator{Err: generate.ErrTimeout}

	_, err := Generate(context.Background(), gen, "branch_a", "A104", 8)
	if !errors.Is(err, generate.ErrTimeout) {
		t.Errorf("err = %v, want wrapped service error", err)
	}
}
