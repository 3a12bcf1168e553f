// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/pdiddy/sage-lens/internal/config"
	"github.com/pdiddy/sage-lens/pkg/types"
)

// FromConfig builds an Adapter with a backend for every LLM key present in
// creds, in generation order: OpenAI, Anthropic, DeepSeek, Gemini.
func FromConfig(ctx context.Context, logger *zap.Logger, creds config.Credentials, cfg types.ProviderConfig) (*Adapter, error) {
	client := &http.Client{Timeout: cfg.Timeout}

	var backends []Backend
	if creds.OpenAIKey != "" {
		backends = append(backends, NewOpenAI(ChatOptions{
			APIKey:      creds.OpenAIKey,
			Model:       cfg.OpenAIModel,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			HTTPClient:  client,
		}))
	}
	if creds.AnthropicKey != "" {
		backends = append(backends, NewAnthropic(AnthropicOptions{
			APIKey:      creds.AnthropicKey,
			Model:       cfg.AnthropicModel,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			HTTPClient:  client,
		}))
	}
	if creds.DeepSeekKey != "" {
		backends = append(backends, NewDeepSeek(ChatOptions{
			APIKey:      creds.DeepSeekKey,
			BaseURL:     cfg.DeepSeekBaseURL,
			Model:       cfg.DeepSeekModel,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			HTTPClient:  client,
		}))
	}
	if creds.GeminiKey != "" {
		g, err := NewGemini(ctx, GeminiOptions{
			APIKey:      creds.GeminiKey,
			Model:       cfg.GeminiModel,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			HTTPClient:  client,
		})
		if err != nil {
			return nil, types.NewFailure(types.KindConfiguration, Gemini, err)
		}
		backends = append(backends, g)
	}
	return NewAdapter(logger, backends...), nil
}
