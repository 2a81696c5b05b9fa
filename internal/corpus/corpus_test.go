package corpus

import (
	"strings"
	"testing"
)

func TestNewArtifact(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		kind    ArtifactKind
		text    string
		wantErr bool
	}{
		{"valid inscription", "A1", KindInscription, "kar", false},
		{"valid sentence", "A1_S", KindSentence, "kar mel zix", false},
		{"empty id", "", KindInscription, "kar", true},
		{"empty text", "A1", KindInscription, "", true},
		{"invalid kind", "A1", ArtifactKind("tablet"), "kar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewArtifact(tt.id, "branch_a", tt.kind, tt.text, "tomb offering label")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewArtifact: %v", err)
			}
			if a.Metadata.Confidence != ConfidenceNone {
				t.Errorf("new artifact confidence = %q, want none", a.Metadata.Confidence)
			}
			if a.Metadata.Gloss != "" || a.Metadata.GlossUpdatedAt != nil {
				t.Errorf("new artifact already glossed: %+v", a.Metadata)
			}
		})
	}
}

func TestArtifactValidateGlossInvariant(t *testing.T) {
	a, err := NewArtifact("A1", "branch_a", KindInscription, "kar", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Validate(); err != nil {
		t.Errorf("unglossed artifact should validate: %v", err)
	}

	a.Metadata.Gloss = "water"
	if err := a.Validate(); err == nil {
		t.Error("glossed artifact with confidence none should not validate")
	}

	a.Metadata.Confidence = ConfidenceLow
	if err := a.Validate(); err != nil {
		t.Errorf("glossed artifact with low confidence should validate: %v", err)
	}
}

func TestNewResearchQuestionFloor(t *testing.T) {
	q, err := NewResearchQuestion("Q1", "Is kar a proto-root?", "R1", 100)
	if err != nil {
		t.Fatal(err)
	}
	if q.Confidence != ConfidenceLow {
		t.Errorf("new question confidence = %q, want low", q.Confidence)
	}
	if q.ProposedAnswer != "" {
		t.Errorf("new question answer = %q, want empty", q.ProposedAnswer)
	}
	if q.UpdatedAt != nil {
		t.Error("new question should have nil updated_at")
	}

	if _, err := NewResearchQuestion("", "q", "R1", 100); err == nil {
		t.Error("empty id should be rejected")
	}
	if _, err := NewResearchQuestion("Q2", "", "R1", 100); err == nil {
		t.Error("empty question text should be rejected")
	}
}

func TestQuestionNeedsReview(t *testing.T) {
	tests := []struct {
		name       string
		answer     string
		confidence Confidence
		want       bool
	}{
		{"unanswered", "", ConfidenceNone, true},
		{"answered low", "maybe", ConfidenceLow, true},
		{"answered medium", "probably", ConfidenceMedium, true},
		{"answered high", "yes", ConfidenceHigh, false},
		{"answered no confidence", "yes", ConfidenceNone, true},
		{"unanswered high", "", ConfidenceHigh, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ResearchQuestion{ID: "Q1", Question: "?", ProposedAnswer: tt.answer, Confidence: tt.confidence}
			if got := q.NeedsReview(); got != tt.want {
				t.Errorf("NeedsReview() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseConfidence(t *testing.T) {
	tests := []struct {
		in   string
		want Confidence
	}{
		{"low", ConfidenceLow},
		{"Medium", ConfidenceMedium},
		{"med", ConfidenceMedium},
		{"HIGH", ConfidenceHigh},
		{" high ", ConfidenceHigh},
		{"", ConfidenceNone},
		{"none", ConfidenceNone},
		{"certain", ConfidenceNone},
	}
	for _, tt := range tests {
		if got := ParseConfidence(tt.in); got != tt.want {
			t.Errorf("ParseConfidence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID("A")
		if !strings.HasPrefix(id, "A") {
			t.Fatalf("id %q missing prefix", id)
		}
		if seen[id] {
			t.Fatalf("id %q reused", id)
		}
		seen[id] = true
	}
}

func TestNoteConstructors(t *testing.T) {
	note, err := NewResearchNote("R1", "cognates look promising", 7, []string{"branch_a"})
	if err != nil {
		t.Fatal(err)
	}
	if note.Kind != NoteResearch {
		t.Errorf("kind = %q", note.Kind)
	}
	if note.Metadata.ArtifactCount != 7 {
		t.Errorf("artifact_count = %d", note.Metadata.ArtifactCount)
	}

	ctxNote, err := NewContextNote("C1", "no contradictions found", 3, 5)
	if err != nil {
		t.Fatal(err)
	}
	if ctxNote.Kind != NoteContextAnalysis {
		t.Errorf("kind = %q", ctxNote.Kind)
	}
	if ctxNote.Metadata.WordsAnalyzed == nil || *ctxNote.Metadata.WordsAnalyzed != 3 {
		t.Errorf("words_analyzed = %v", ctxNote.Metadata.WordsAnalyzed)
	}

	if _, err := NewResearchNote("", "s", 0, nil); err == nil {
		t.Error("empty note id should be rejected")
	}
}
