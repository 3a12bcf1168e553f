// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/viper"

	"github.com/pdiddy/sage-lens/internal/config"
	"github.com/pdiddy/sage-lens/internal/pipeline"
	"github.com/pdiddy/sage-lens/internal/provider"
	"github.com/pdiddy/sage-lens/internal/video"
	"github.com/pdiddy/sage-lens/internal/websearch"
)

// loadSettings validates configuration and credentials. A missing primary
// credential is a ConfigurationError and stops the command before any query.
func loadSettings() (*config.Settings, error) {
	return config.Load(viper.GetViper(), credentialChain)
}

// buildPipeline constructs every adapter from settings.
func buildPipeline(ctx context.Context, s *config.Settings) (*pipeline.Pipeline, error) {
	gen, err := provider.FromConfig(ctx, log, s.Credentials, s.Provider)
	if err != nil {
		return nil, err
	}
	videos, err := video.FromConfig(ctx, log, s.Credentials, s.Search)
	if err != nil {
		return nil, err
	}
	web := websearch.FromConfig(log, s.Credentials, s.Search)

	return pipeline.New(log, web, videos, gen, nil, pipeline.Config{
		MaxWebResults:         s.Search.MaxWebResults,
		MaxVideos:             s.Search.MaxVideos,
		RefinementProvider:    s.Provider.RefinementProvider,
		EnrichedModeAvailable: s.EnrichedModeAvailable,
	}), nil
}
