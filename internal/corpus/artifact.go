// Package corpus defines the record types of the ghostroot corpus:
// artifacts (inscriptions and sentences of the simulated language),
// research questions, and research log notes. Constructors validate the
// field invariants; all behavior beyond validation lives elsewhere.
package corpus

import (
	"fmt"
	"sync/atomic"
	"time"
)

// ArtifactKind distinguishes single-token inscriptions from multi-word
// sentences.
type ArtifactKind string

const (
	KindInscription ArtifactKind = "inscription"
	KindSentence    ArtifactKind = "sentence"
)

// ArtifactMetadata holds the mutable interpretation attached to an
// artifact. Everything outside this struct is immutable after creation.
type ArtifactMetadata struct {
	Context        string     `json:"context"`
	Gloss          string     `json:"gloss"`
	Meaning        string     `json:"meaning"`
	Confidence     Confidence `json:"confidence"`
	GlossUpdatedAt *int64     `json:"gloss_updated_at"`
}

// Artifact is one piece of attested evidence: an inscription or sentence
// produced by the speaker agent.
type Artifact struct {
	ID       string           `json:"id"`
	Language string           `json:"language"`
	Kind     ArtifactKind     `json:"kind"`
	Text     string           `json:"text"`
	Metadata ArtifactMetadata `json:"metadata"`
}

// NewArtifact builds an unglossed artifact. The find context records where
// the artifact was notionally discovered.
func NewArtifact(id, language string, kind ArtifactKind, text, findContext string) (Artifact, error) {
	if id == "" {
		return Artifact{}, fmt.Errorf("artifact id cannot be empty")
	}
	if kind != KindInscription && kind != KindSentence {
		return Artifact{}, fmt.Errorf("invalid artifact kind %q", kind)
	}
	if text == "" {
		return Artifact{}, fmt.Errorf("artifact text cannot be empty")
	}
	return Artifact{
		ID:       id,
		Language: language,
		Kind:     kind,
		Text:     text,
		Metadata: ArtifactMetadata{
			Context:    findContext,
			Confidence: ConfidenceNone,
		},
	}, nil
}

// Validate checks the gloss invariant: a non-empty gloss must carry a
// confidence grade.
func (a Artifact) Validate() error {
	if a.Metadata.Gloss != "" && a.Metadata.Confidence.Or(ConfidenceNone) == ConfidenceNone {
		return fmt.Errorf("artifact %s: glossed but confidence is none", a.ID)
	}
	return nil
}

// Glossed reports whether the artifact carries a non-empty gloss.
func (a Artifact) Glossed() bool {
	return a.Metadata.Gloss != ""
}

var lastID atomic.Int64

// NewID generates an artifact/note/question id from a prefix and the
// current timestamp, e.g. "A1735689600123". Monotonic within the process:
// two calls in the same millisecond still yield distinct ids.
func NewID(prefix string) string {
	now := time.Now().UnixMilli()
	for {
		last := lastID.Load()
		if now <= last {
			now = last + 1
		}
		if lastID.CompareAndSwap(last, now) {
			return fmt.Sprintf("%s%d", prefix, now)
		}
	}
}
