// Package generate abstracts the text-generation service behind a single
// capability interface so the analysis engine and the cycle orchestrator
// never depend on transport details. Two transports are provided: the
// Ollama HTTP API and local process invocation of the ollama binary.
package generate

import (
	"context"
	"errors"
)

// Typed failures of the generation boundary. The adapters never retry;
// retry policy (currently: none, the cycle aborts) belongs to the caller.
var (
	// ErrUnavailable means the service could not be reached at all.
	ErrUnavailable = errors.New("generation service unavailable")
	// ErrTimeout means the caller-supplied deadline elapsed.
	ErrTimeout = errors.New("generation request timed out")
	// ErrProtocol means the service answered with a malformed or error
	// envelope.
	ErrProtocol = errors.New("malformed generation response")
)

// Options shape one generation request. Zero values mean "transport
// default". Structure inside the returned text (JSON arrays, line formats)
// is the caller's problem to parse.
type Options struct {
	System        string
	NumPredict    int
	NumCtx        int
	Temperature   float64
	TopP          float64
	TopK          int
	RepeatPenalty float64
	Stop          []string
}

// Generator is the prompt-in/text-out contract of the generation service.
// The context carries the deadline; implementations must surface deadline
// expiry as ErrTimeout rather than hang.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}
