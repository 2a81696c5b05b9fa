package corpus

import "strings"

// Confidence grades how much trust the researcher places in a gloss or
// proposed answer.
type Confidence string

const (
	ConfidenceNone   Confidence = "none"
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ParseConfidence normalizes a confidence string from storage or from the
// generation service. Empty strings map to ConfidenceNone (older corpus
// files store unset confidence as ""); unrecognized values also map to
// ConfidenceNone so callers can apply their own floor.
func ParseConfidence(s string) Confidence {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return ConfidenceLow
	case "med", "medium":
		return ConfidenceMedium
	case "high":
		return ConfidenceHigh
	default:
		return ConfidenceNone
	}
}

// Or returns c, or fallback when c is unset.
func (c Confidence) Or(fallback Confidence) Confidence {
	if c == ConfidenceNone || c == "" {
		return fallback
	}
	return c
}

// IsValid reports whether c is one of the four known grades.
func (c Confidence) IsValid() bool {
	switch c {
	case ConfidenceNone, ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return true
	}
	return false
}
