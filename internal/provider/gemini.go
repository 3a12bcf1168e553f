// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// GeminiBackend calls the Gemini API through the genai SDK.
type GeminiBackend struct {
	model       string
	temperature float32
	maxTokens   int32
	client      *genai.Client
}

// GeminiOptions configures a GeminiBackend.
type GeminiOptions struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	HTTPClient  *http.Client
}

// NewGemini returns a GeminiBackend.
func NewGemini(ctx context.Context, opts GeminiOptions) (*GeminiBackend, error) {
	cc := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions.BaseURL = opts.BaseURL
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GeminiBackend{
		model:       opts.Model,
		temperature: float32(opts.Temperature),
		maxTokens:   int32(opts.MaxTokens),
		client:      client,
	}, nil
}

func (b *GeminiBackend) ID() string    { return Gemini }
func (b *GeminiBackend) Label() string { return "Gemini-" + b.model }
func (b *GeminiBackend) Model() string { return b.model }

// Complete sends one GenerateContent request.
func (b *GeminiBackend) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := b.client.Models.GenerateContent(ctx, b.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(b.temperature),
		MaxOutputTokens: b.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}
