// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sage-lens/internal/config"
	"github.com/pdiddy/sage-lens/internal/pipeline"
	"github.com/pdiddy/sage-lens/internal/provider"
	"github.com/pdiddy/sage-lens/pkg/types"
)

type echoBackend struct{ id string }

func (b echoBackend) ID() string    { return b.id }
func (b echoBackend) Label() string { return "Echo-" + b.id }
func (b echoBackend) Model() string { return "echo" }

func (b echoBackend) Complete(_ context.Context, prompt string) (string, error) {
	return "answer to " + prompt, nil
}

func newSession(refinementAvailable bool) (*session, *bytes.Buffer) {
	gen := provider.NewAdapter(nil, echoBackend{id: provider.OpenAI})
	p := pipeline.New(nil, nil, nil, gen, nil, pipeline.Config{
		MaxWebResults:         10,
		MaxVideos:             5,
		RefinementProvider:    provider.OpenAI,
		EnrichedModeAvailable: refinementAvailable,
	})
	var buf bytes.Buffer
	return &session{pipeline: p, out: &buf}, &buf
}

func TestShellQueryAndHistory(t *testing.T) {
	s, out := newSession(true)
	ctx := context.Background()

	assert.False(t, s.handle(ctx, "graph coloring"))
	assert.Contains(t, out.String(), "Topic:   graph coloring")
	require.Equal(t, 1, s.pipeline.History().Len())

	out.Reset()
	s.handle(ctx, ":history")
	assert.Contains(t, out.String(), "graph coloring")
	assert.Contains(t, out.String(), "Echo-openai")

	out.Reset()
	s.handle(ctx, ":show 1")
	assert.Contains(t, out.String(), "Topic:   graph coloring")

	out.Reset()
	s.handle(ctx, ":show 7")
	assert.Contains(t, out.String(), "no result 7")

	out.Reset()
	s.handle(ctx, ":show x")
	assert.Contains(t, out.String(), "usage: :show N")

	s.handle(ctx, ":clear")
	assert.Equal(t, 0, s.pipeline.History().Len())
}

func TestShellEnrichedToggle(t *testing.T) {
	s, out := newSession(true)
	ctx := context.Background()
	s.handle(ctx, ":enriched")
	assert.True(t, s.enriched)

	s.handle(ctx, "topic")
	cur := s.pipeline.History().Current()
	require.NotNil(t, cur)
	assert.Equal(t, types.MethodEnriched, cur.Metadata.Method)
	require.NotNil(t, cur.Analysis)

	s, out = newSession(false)
	s.handle(ctx, ":enriched")
	assert.False(t, s.enriched)
	assert.Contains(t, out.String(), "unavailable")
}

func TestShellQuitAndUnknown(t *testing.T) {
	s, out := newSession(true)
	ctx := context.Background()
	assert.False(t, s.handle(ctx, "   "))
	assert.False(t, s.handle(ctx, ":bogus"))
	assert.Contains(t, out.String(), "unknown command :bogus")
	assert.True(t, s.handle(ctx, ":quit"))
	assert.True(t, s.handle(ctx, ":q"))
}

func TestDoctor(t *testing.T) {
	chain := config.Chain{
		config.MapProvider{config.KeyOpenAI: "sk", config.KeySerper: "serp"},
	}
	var buf bytes.Buffer
	require.NoError(t, runDoctor(&buf, chain, provider.OpenAI))
	out := buf.String()
	assert.Contains(t, out, "OPENAI_API_KEY")
	assert.Contains(t, out, "map")
	assert.Contains(t, out, "missing")
	assert.Contains(t, out, "LLM providers:   [openai]")
	assert.Contains(t, out, "Web search:      serper")
	assert.Contains(t, out, "Video search:    YouTube results page")
	assert.Contains(t, out, "Enriched mode:   true")

	buf.Reset()
	err := runDoctor(&buf, config.Chain{config.MapProvider{}}, provider.Anthropic)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 required credential(s) missing")
	assert.Contains(t, buf.String(), "Enriched mode:   false")
}

func TestWriteResultFormats(t *testing.T) {
	res := &types.ResearchResult{
		Content:  &types.ContentCandidate{Content: "body", Provider: "Echo-openai"},
		Metadata: types.Metadata{Topic: "t", Method: types.MethodStandard},
		State:    types.StateAssembled,
	}
	var buf bytes.Buffer
	require.NoError(t, writeResult(&buf, res, "markdown", false))
	assert.Contains(t, buf.String(), "# t")

	buf.Reset()
	require.NoError(t, writeResult(&buf, res, "json", true))
	assert.Contains(t, buf.String(), `"topic": "t"`)

	assert.Error(t, writeResult(&buf, res, "csv", false))
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	f := progress(&buf)
	f(types.StateSearching)
	f(types.StateGenerating)
	f(types.StateAssembled)
	assert.Equal(t, "Searching web and video sources...\nGenerating content with configured providers...\n", buf.String())
}
