// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider sends prompts to LLM backends and returns content
// candidates. Each backend wraps one vendor SDK; the Adapter adds latency
// measurement, failure classification, and logging.
package provider

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/sage-lens/pkg/types"
)

// Provider IDs in generation order.
const (
	OpenAI    = "openai"
	Anthropic = "anthropic"
	DeepSeek  = "deepseek"
	Gemini    = "gemini"
)

// Backend performs one completion against an LLM vendor.
type Backend interface {
	// ID is the provider identifier used for lookup (e.g. "openai").
	ID() string

	// Label is the display name recorded on candidates (e.g. "OpenAI-gpt-4-turbo").
	Label() string

	Model() string

	// Complete sends prompt as a single user message and returns the text reply.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Adapter dispatches prompts to configured backends.
type Adapter struct {
	backends map[string]Backend
	order    []string
	logger   *zap.Logger
	now      func() time.Time
}

// NewAdapter returns an Adapter over backends. Providers() reports them in the
// order given; a later backend with a duplicate ID replaces the earlier one.
func NewAdapter(logger *zap.Logger, backends ...Backend) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Adapter{backends: make(map[string]Backend), logger: logger, now: time.Now}
	for _, b := range backends {
		if _, dup := a.backends[b.ID()]; !dup {
			a.order = append(a.order, b.ID())
		}
		a.backends[b.ID()] = b
	}
	return a
}

// Providers returns the configured provider IDs in generation order.
func (a *Adapter) Providers() []string {
	return append([]string(nil), a.order...)
}

// Has reports whether providerID is configured.
func (a *Adapter) Has(providerID string) bool {
	_, ok := a.backends[providerID]
	return ok
}

// Generate sends prompt to the provider and wraps the reply as a candidate
// at StageGeneration. Every failure is a ProviderUnavailable *types.Failure.
func (a *Adapter) Generate(ctx context.Context, providerID, prompt string) (types.ContentCandidate, error) {
	b, ok := a.backends[providerID]
	if !ok {
		return types.ContentCandidate{}, a.fail(providerID, errors.New("not configured"))
	}
	if strings.TrimSpace(prompt) == "" {
		return types.ContentCandidate{}, a.fail(providerID, errors.New("empty prompt"))
	}

	start := a.now()
	text, err := b.Complete(ctx, prompt)
	latency := a.now().Sub(start).Seconds()
	if err != nil {
		return types.ContentCandidate{}, a.fail(providerID, err)
	}
	if strings.TrimSpace(text) == "" {
		return types.ContentCandidate{}, a.fail(providerID, errors.New("empty response"))
	}

	a.logger.Debug("provider call succeeded",
		zap.String("provider", providerID),
		zap.String("model", b.Model()),
		zap.Float64("latency_seconds", latency),
		zap.Int("chars", len(text)))

	return types.ContentCandidate{
		Content:  text,
		Provider: b.Label(),
		Model:    b.Model(),
		Latency:  latency,
		Stage:    types.StageGeneration,
	}, nil
}

func (a *Adapter) fail(providerID string, err error) error {
	a.logger.Warn("provider call failed", zap.String("provider", providerID), zap.Error(err))
	var f *types.Failure
	if errors.As(err, &f) && f.Kind == types.KindProviderUnavailable {
		return f
	}
	return types.NewFailure(types.KindProviderUnavailable, providerID, err)
}
