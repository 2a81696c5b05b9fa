package corpus

import "fmt"

// ResearchQuestion is a standing open question about the proto-language.
// ID and Question are immutable after creation; ProposedAnswer, Confidence
// and UpdatedAt always change together.
type ResearchQuestion struct {
	ID             string     `json:"id"`
	Question       string     `json:"question"`
	ProposedAnswer string     `json:"proposed_answer"`
	Confidence     Confidence `json:"confidence"`
	ResearchNoteID string     `json:"research_note_id"`
	CreatedAt      int64      `json:"created_at"`
	UpdatedAt      *int64     `json:"updated_at"`
}

// NewResearchQuestion builds an unanswered question spawned by the given
// research note. New questions always start at low confidence with an
// empty answer, regardless of what the generation service claimed.
func NewResearchQuestion(id, question, noteID string, createdAt int64) (ResearchQuestion, error) {
	if id == "" {
		return ResearchQuestion{}, fmt.Errorf("question id cannot be empty")
	}
	if question == "" {
		return ResearchQuestion{}, fmt.Errorf("question text cannot be empty")
	}
	return ResearchQuestion{
		ID:             id,
		Question:       question,
		ProposedAnswer: "",
		Confidence:     ConfidenceLow,
		ResearchNoteID: noteID,
		CreatedAt:      createdAt,
	}, nil
}

// Answered reports whether the question carries a non-empty proposed answer.
func (q ResearchQuestion) Answered() bool {
	return q.ProposedAnswer != ""
}

// NeedsReview reports whether the question should be re-presented to the
// researcher: unanswered, or answered with less than high confidence.
func (q ResearchQuestion) NeedsReview() bool {
	if !q.Answered() {
		return true
	}
	switch q.Confidence.Or(ConfidenceNone) {
	case ConfidenceNone, ConfidenceLow, ConfidenceMedium:
		return true
	}
	return false
}
