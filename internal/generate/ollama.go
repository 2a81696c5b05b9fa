package generate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

const (
	// DefaultURL is the default Ollama API endpoint.
	DefaultURL = "http://localhost:11434"
	// DefaultModel is the fallback generation model.
	DefaultModel = "qwen3:4b"
)

// OllamaClient generates text through the Ollama HTTP API.
type OllamaClient struct {
	client *api.Client
	model  string
}

// NewOllamaClient creates an HTTP generator bound to one model.
func NewOllamaClient(rawURL, model string) (*OllamaClient, error) {
	if rawURL == "" {
		rawURL = DefaultURL
	}
	if model == "" {
		model = DefaultModel
	}

	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama url %q: %w", rawURL, err)
	}

	return &OllamaClient{
		client: api.NewClient(base, http.DefaultClient),
		model:  model,
	}, nil
}

// IsAvailable checks if Ollama is running and accessible.
func IsAvailable(rawURL string) bool {
	if rawURL == "" {
		rawURL = DefaultURL
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(rawURL)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// CheckModel checks if the configured model is available.
func (c *OllamaClient) CheckModel(ctx context.Context) error {
	listResp, err := c.client.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	for _, model := range listResp.Models {
		if model.Name == c.model {
			return nil
		}
	}

	return fmt.Errorf("model '%s' not found - run: ollama pull %s", c.model, c.model)
}

// GetModel returns the model being used.
func (c *OllamaClient) GetModel() string {
	return c.model
}

// Generate sends one non-streaming generation request and returns the
// trimmed response text.
func (c *OllamaClient) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	stream := false
	req := &api.GenerateRequest{
		Model:   c.model,
		Prompt:  prompt,
		System:  opts.System,
		Stream:  &stream,
		Options: ollamaOptions(opts),
	}

	var sb strings.Builder
	err := c.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", classify(err)
	}

	return strings.TrimSpace(sb.String()), nil
}

func ollamaOptions(opts Options) map[string]any {
	m := make(map[string]any)
	if opts.NumPredict > 0 {
		m["num_predict"] = opts.NumPredict
	}
	if opts.NumCtx > 0 {
		m["num_ctx"] = opts.NumCtx
	}
	if opts.Temperature > 0 {
		m["temperature"] = opts.Temperature
	}
	if opts.TopP > 0 {
		m["top_p"] = opts.TopP
	}
	if opts.TopK > 0 {
		m["top_k"] = opts.TopK
	}
	if opts.RepeatPenalty > 0 {
		m["repeat_penalty"] = opts.RepeatPenalty
	}
	if len(opts.Stop) > 0 {
		m["stop"] = opts.Stop
	}
	return m
}

// classify maps transport errors to the package's typed failures: deadline
// expiry to ErrTimeout, an HTTP error envelope to ErrProtocol, anything
// else (connection refused, DNS failure) to ErrUnavailable.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var statusErr api.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Errorf("%w: %v", ErrProtocol, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
