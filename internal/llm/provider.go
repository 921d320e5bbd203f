// Package llm talks to the generative model that writes study material.
// Callers build a Request with a JSON schema and get back validated JSON.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured output from a prompt.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the content has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System      string
	Prompt      string
	Schema      *Schema
	MaxTokens   int
	Temperature float64
}

// Schema is the JSON Schema a response must satisfy. Name doubles as the
// cache key for the compiled schema and as the provider-side schema name.
type Schema struct {
	Name       string
	Definition map[string]any
}

type Response struct {
	Content json.RawMessage
	Usage   Usage
}

type Usage struct {
	InputTokens  int
	OutputTokens int
}

func UserPrompt(system, prompt string) Request {
	return Request{System: system, Prompt: prompt}
}
