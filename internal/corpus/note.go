package corpus

import "fmt"

// NoteKind distinguishes the two analysis passes that write to the
// research log.
type NoteKind string

const (
	NoteResearch        NoteKind = "research_note"
	NoteContextAnalysis NoteKind = "context_analysis"
)

// NoteMetadata carries kind-specific statistics. A research note fills
// ArtifactCount and LanguagesSeen; a context analysis fills WordsAnalyzed
// and SentenceCount.
type NoteMetadata struct {
	ArtifactCount int      `json:"artifact_count,omitempty"`
	LanguagesSeen []string `json:"languages_seen,omitempty"`
	WordsAnalyzed *int     `json:"words_analyzed,omitempty"`
	SentenceCount *int     `json:"sentence_count,omitempty"`
}

// ResearchNote is one append-only research log entry. Never mutated after
// creation.
type ResearchNote struct {
	ID       string       `json:"id"`
	Kind     NoteKind     `json:"kind"`
	Summary  string       `json:"summary"`
	Metadata NoteMetadata `json:"metadata"`
}

// NewResearchNote builds the narrative note of one analysis pass.
func NewResearchNote(id, summary string, artifactCount int, languages []string) (ResearchNote, error) {
	if id == "" {
		return ResearchNote{}, fmt.Errorf("note id cannot be empty")
	}
	return ResearchNote{
		ID:      id,
		Kind:    NoteResearch,
		Summary: summary,
		Metadata: NoteMetadata{
			ArtifactCount: artifactCount,
			LanguagesSeen: languages,
		},
	}, nil
}

// NewContextNote builds a contextual-fit analysis log entry.
func NewContextNote(id, summary string, wordsAnalyzed, sentenceCount int) (ResearchNote, error) {
	if id == "" {
		return ResearchNote{}, fmt.Errorf("note id cannot be empty")
	}
	return ResearchNote{
		ID:      id,
		Kind:    NoteContextAnalysis,
		Summary: summary,
		Metadata: NoteMetadata{
			WordsAnalyzed: &wordsAnalyzed,
			SentenceCount: &sentenceCount,
		},
	}, nil
}
