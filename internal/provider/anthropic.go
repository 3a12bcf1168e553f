// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicBackend calls the Anthropic Messages API.
type AnthropicBackend struct {
	model       string
	temperature float64
	maxTokens   int64
	client      anthropic.Client
}

// AnthropicOptions configures an AnthropicBackend.
type AnthropicOptions struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	HTTPClient  *http.Client
}

// NewAnthropic returns an AnthropicBackend. SDK retries are disabled; the
// adapter makes exactly one request per call.
func NewAnthropic(opts AnthropicOptions) *AnthropicBackend {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(opts.HTTPClient))
	}
	return &AnthropicBackend{
		model:       opts.Model,
		temperature: opts.Temperature,
		maxTokens:   int64(opts.MaxTokens),
		client:      anthropic.NewClient(reqOpts...),
	}
}

func (b *AnthropicBackend) ID() string    { return Anthropic }
func (b *AnthropicBackend) Label() string { return "Anthropic-" + b.model }
func (b *AnthropicBackend) Model() string { return b.model }

// Complete sends one message and concatenates the text blocks of the reply.
func (b *AnthropicBackend) Complete(ctx context.Context, prompt string) (string, error) {
	msg, err := b.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(b.model),
		MaxTokens: b.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Temperature: anthropic.Float(b.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("messages API: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("no text content in messages API response")
	}
	return sb.String(), nil
}
