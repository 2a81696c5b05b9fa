// Package testutil holds shared test fixtures: a scripted generation
// service and helpers for seeding collection files.
package testutil

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"ghostroot/internal/generate"
)

// ScriptedGenerator replays canned responses in order and records every
// prompt it receives. When the script runs out, the last response repeats.
type ScriptedGenerator struct {
	Responses []string
	Err       error
	Prompts   []string
	calls     int
}

// Generate implements generate.Generator.
func (g *ScriptedGenerator) Generate(ctx context.Context, prompt string, opts generate.Options) (string, error) {
	g.Prompts = append(g.Prompts, prompt)
	if g.Err != nil {
		return "", g.Err
	}
	if len(g.Responses) == 0 {
		return "", nil
	}
	i := g.calls
	if i >= len(g.Responses) {
		i = len(g.Responses) - 1
	}
	g.calls++
	return g.Responses[i], nil
}

// WriteCollection marshals records into a JSON array file under dir and
// returns its path.
func WriteCollection(t *testing.T, dir, name string, records any) string {
	t.Helper()
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal fixture: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

// ReadFile reads a file or fails the test.
func ReadFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return data
}
