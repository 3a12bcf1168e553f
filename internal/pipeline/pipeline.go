// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs a research query end to end: concurrent web and
// video search, concurrent generation across every configured LLM provider,
// selection of the best candidate, optional enriched refinement, and
// recording in the session history.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/sage-lens/internal/history"
	"github.com/pdiddy/sage-lens/internal/selection"
	"github.com/pdiddy/sage-lens/pkg/types"
)

// WebSearcher aggregates web references for a topic.
type WebSearcher interface {
	Search(ctx context.Context, topic string, maxResults int) ([]types.WebReference, []types.Diagnostic)
	Sources() []string
}

// VideoSearcher returns popular videos for a topic.
type VideoSearcher interface {
	Search(ctx context.Context, topic string, maxResults int) ([]types.VideoReference, []types.Diagnostic)
}

// Generator produces content candidates from LLM providers.
type Generator interface {
	Providers() []string
	Has(providerID string) bool
	Generate(ctx context.Context, providerID, prompt string) (types.ContentCandidate, error)
}

// Config holds the pipeline's tunables.
type Config struct {
	MaxWebResults int
	MaxVideos     int

	// RefinementProvider runs the polish and analysis stages.
	RefinementProvider string

	// EnrichedModeAvailable is resolved once at startup.
	EnrichedModeAvailable bool
}

// Options are per-query switches.
type Options struct {
	UseEnrichedMode bool
}

// Pipeline orchestrates one query at a time. It is the single writer of its
// history store.
type Pipeline struct {
	web     WebSearcher
	videos  VideoSearcher
	gen     Generator
	history *history.Store
	logger  *zap.Logger
	cfg     Config

	// Now and NewID are replaceable for tests.
	Now   func() time.Time
	NewID func() string

	// OnState, when set, is called on every state transition.
	OnState func(types.State)
}

// New returns a Pipeline. A nil store gets a fresh history.
func New(logger *zap.Logger, web WebSearcher, videos VideoSearcher, gen Generator, store *history.Store, cfg Config) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = history.New()
	}
	return &Pipeline{
		web:     web,
		videos:  videos,
		gen:     gen,
		history: store,
		logger:  logger,
		cfg:     cfg,
		Now:     time.Now,
		NewID:   uuid.NewString,
	}
}

// History returns the session history.
func (p *Pipeline) History() *history.Store { return p.history }

// EnrichedModeAvailable reports whether enriched mode can be requested.
func (p *Pipeline) EnrichedModeAvailable() bool {
	return p.cfg.EnrichedModeAvailable && p.gen.Has(p.cfg.RefinementProvider)
}

// RunQuery researches topic and always returns a result. The result reaches
// StateAssembled when at least one provider produced content and is appended
// to the history; otherwise it is StateFailed with nil Content and becomes
// current without being appended.
func (p *Pipeline) RunQuery(ctx context.Context, topic string, opts Options) *types.ResearchResult {
	res := &types.ResearchResult{
		ID: p.NewID(),
		References: types.References{
			Web:    []types.WebReference{},
			Videos: []types.VideoReference{},
		},
		Metadata: types.Metadata{
			Timestamp: p.Now(),
			Topic:     strings.TrimSpace(topic),
			Method:    types.MethodStandard,
		},
		State: types.StateIdle,
	}
	log := p.logger.With(zap.String("query_id", res.ID), zap.String("topic", res.Metadata.Topic))

	if res.Metadata.Topic == "" {
		res.Diagnostics = append(res.Diagnostics, types.Diagnostic{
			Component: "pipeline",
			Kind:      types.KindInvalidTopic,
			Message:   types.ErrInvalidTopic.Error(),
		})
		p.transition(res, types.StateFailed)
		log.Warn("query rejected", zap.Error(types.ErrInvalidTopic))
		return res
	}

	enriched := opts.UseEnrichedMode && p.EnrichedModeAvailable()
	if opts.UseEnrichedMode && !enriched {
		log.Info("enriched mode requested but unavailable, using standard mode",
			zap.String("refinement_provider", p.cfg.RefinementProvider))
	}

	p.transition(res, types.StateSearching)
	p.search(ctx, res)
	log.Info("search complete",
		zap.Int("web", len(res.References.Web)),
		zap.Int("videos", len(res.References.Videos)))

	p.transition(res, types.StateGenerating)
	candidates := p.generate(ctx, res, enriched)

	if len(candidates) == 0 {
		res.Diagnostics = append(res.Diagnostics, types.DiagnosticFrom("pipeline", types.KindNoCandidates, types.ErrNoCandidates))
		p.transition(res, types.StateFailed)
		p.history.SetCurrent(res)
		log.Warn("generation failed", zap.Error(types.ErrNoCandidates))
		return res
	}

	best, err := selection.Select(candidates)
	if err != nil {
		res.Diagnostics = append(res.Diagnostics, types.DiagnosticFrom("pipeline", types.KindNoCandidates, err))
		p.transition(res, types.StateFailed)
		p.history.SetCurrent(res)
		return res
	}
	res.Content = &best
	log.Info("candidate selected",
		zap.String("provider", best.Provider),
		zap.Int("candidates", len(candidates)),
		zap.Int("chars", selection.Length(best)))

	if enriched {
		p.refine(ctx, res)
	}

	p.transition(res, types.StateAssembled)
	p.history.Append(res)
	return res
}

// search runs web and video search concurrently and joins before returning.
func (p *Pipeline) search(ctx context.Context, res *types.ResearchResult) {
	var (
		g        errgroup.Group
		web      []types.WebReference
		videos   []types.VideoReference
		webDiags []types.Diagnostic
		vidDiags []types.Diagnostic
	)
	if p.web != nil {
		res.Metadata.WebSources = p.web.Sources()
		g.Go(func() error {
			web, webDiags = p.web.Search(ctx, res.Metadata.Topic, p.cfg.MaxWebResults)
			return nil
		})
	}
	if p.videos != nil {
		g.Go(func() error {
			videos, vidDiags = p.videos.Search(ctx, res.Metadata.Topic, p.cfg.MaxVideos)
			return nil
		})
	}
	_ = g.Wait()

	if web != nil {
		res.References.Web = web
	}
	if videos != nil {
		res.References.Videos = videos
	}
	res.Diagnostics = append(res.Diagnostics, webDiags...)
	res.Diagnostics = append(res.Diagnostics, vidDiags...)
}

// generate calls every provider concurrently. Candidates and diagnostics are
// returned in provider order regardless of completion order.
func (p *Pipeline) generate(ctx context.Context, res *types.ResearchResult, enriched bool) []types.ContentCandidate {
	prompt, err := researchPrompt(res.Metadata.Topic, res.References.Web, enriched)
	if err != nil {
		res.Diagnostics = append(res.Diagnostics, types.DiagnosticFrom("pipeline", types.KindProviderUnavailable, err))
		return nil
	}

	providers := p.gen.Providers()
	cands := make([]types.ContentCandidate, len(providers))
	errs := make([]error, len(providers))

	var g errgroup.Group
	for i, id := range providers {
		g.Go(func() error {
			cands[i], errs[i] = p.gen.Generate(ctx, id, prompt)
			return nil
		})
	}
	_ = g.Wait()

	var out []types.ContentCandidate
	for i, id := range providers {
		if errs[i] != nil {
			d := types.DiagnosticFrom("provider", types.KindProviderUnavailable, errs[i])
			if d.Backend == "" {
				d.Backend = id
			}
			res.Diagnostics = append(res.Diagnostics, d)
			continue
		}
		if cands[i].Content == "" {
			continue
		}
		out = append(out, cands[i])
		res.Metadata.Providers = append(res.Metadata.Providers, cands[i].Provider)
	}
	return out
}

// refine runs the polish and analysis stages with the refinement provider.
// A failed stage leaves the result as it was and adds a diagnostic.
func (p *Pipeline) refine(ctx context.Context, res *types.ResearchResult) {
	res.Metadata.Method = types.MethodEnriched
	id := p.cfg.RefinementProvider

	if polished, ok := p.stage(ctx, res, id, types.StagePolish, polishPrompt); ok {
		res.Content = &polished
	}
	if analysis, ok := p.stage(ctx, res, id, types.StageAnalysis, analysisPrompt); ok {
		res.Analysis = &analysis
	}
}

func (p *Pipeline) stage(ctx context.Context, res *types.ResearchResult, providerID string, stage types.Stage, build func(string) (string, error)) (types.ContentCandidate, bool) {
	prompt, err := build(res.Content.Content)
	if err == nil {
		var c types.ContentCandidate
		c, err = p.gen.Generate(ctx, providerID, prompt)
		if err == nil {
			c.Stage = stage
			return c, true
		}
	}
	d := types.DiagnosticFrom("provider", types.KindProviderUnavailable, err)
	if d.Backend == "" {
		d.Backend = providerID
	}
	d.Message = string(stage) + ": " + d.Message
	res.Diagnostics = append(res.Diagnostics, d)
	p.logger.Warn("enriched stage failed", zap.String("stage", string(stage)), zap.Error(err))
	return types.ContentCandidate{}, false
}

func (p *Pipeline) transition(res *types.ResearchResult, s types.State) {
	res.State = s
	if p.OnState != nil {
		p.OnState(s)
	}
}
