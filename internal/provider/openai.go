// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// ChatBackend calls an OpenAI-compatible chat completions API. It serves
// both OpenAI and DeepSeek, which differ only in base URL.
type ChatBackend struct {
	id          string
	label       string
	model       string
	temperature float32
	maxTokens   int
	client      *openai.Client
}

// ChatOptions configures a ChatBackend.
type ChatOptions struct {
	APIKey      string
	BaseURL     string // empty keeps the OpenAI default
	Model       string
	Temperature float64
	MaxTokens   int
	HTTPClient  *http.Client
}

// NewOpenAI returns a ChatBackend for the OpenAI API.
func NewOpenAI(opts ChatOptions) *ChatBackend {
	return newChatBackend(OpenAI, "OpenAI-"+opts.Model, opts)
}

// NewDeepSeek returns a ChatBackend for the DeepSeek API.
func NewDeepSeek(opts ChatOptions) *ChatBackend {
	return newChatBackend(DeepSeek, "DeepSeek-"+opts.Model, opts)
}

func newChatBackend(id, label string, opts ChatOptions) *ChatBackend {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	if opts.HTTPClient != nil {
		cfg.HTTPClient = opts.HTTPClient
	}
	return &ChatBackend{
		id:          id,
		label:       label,
		model:       opts.Model,
		temperature: float32(opts.Temperature),
		maxTokens:   opts.MaxTokens,
		client:      openai.NewClientWithConfig(cfg),
	}
}

func (b *ChatBackend) ID() string    { return b.id }
func (b *ChatBackend) Label() string { return b.label }
func (b *ChatBackend) Model() string { return b.model }

// Complete sends one chat completion request.
func (b *ChatBackend) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: b.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: b.temperature,
		MaxTokens:   b.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
