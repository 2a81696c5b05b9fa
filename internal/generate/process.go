package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ProcessClient generates text by invoking the ollama binary directly,
// for hosts where the HTTP API is not exposed.
type ProcessClient struct {
	bin   string
	model string
}

// NewProcessClient creates a process-invocation generator. bin defaults to
// "ollama" on PATH.
func NewProcessClient(bin, model string) *ProcessClient {
	if bin == "" {
		bin = "ollama"
	}
	if model == "" {
		model = DefaultModel
	}
	return &ProcessClient{bin: bin, model: model}
}

// GetModel returns the model being used.
func (c *ProcessClient) GetModel() string {
	return c.model
}

// Generate runs `ollama run <model>` with the prompt on stdin. Sampling
// options are not forwarded (the CLI has no flags for them); the system
// prompt is prepended and stop sequences are applied to the output here.
func (c *ProcessClient) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	if opts.System != "" {
		prompt = opts.System + "\n\n" + prompt
	}

	cmd := exec.CommandContext(ctx, c.bin, "run", c.model)
	cmd.Stdin = strings.NewReader(prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("%w: %s run %s", ErrTimeout, c.bin, c.model)
	}
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s not found on PATH", ErrUnavailable, c.bin)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%w: %s", ErrUnavailable, msg)
	}

	text := strings.TrimSpace(stdout.String())
	for _, stop := range opts.Stop {
		if idx := strings.Index(text, stop); idx >= 0 {
			text = strings.TrimSpace(text[:idx])
		}
	}
	return text, nil
}
