// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package websearch

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/pdiddy/sage-lens/internal/config"
	"github.com/pdiddy/sage-lens/pkg/types"
)

// FromConfig builds an Aggregator with a backend for every web search key
// present in creds, Tavily first. Backends without a key are skipped.
// Semantic Scholar follows when cfg.Scholar is set.
func FromConfig(logger *zap.Logger, creds config.Credentials, cfg types.SearchConfig) *Aggregator {
	client := &http.Client{Timeout: cfg.Timeout}

	var backends []Backend
	if creds.TavilyKey != "" {
		backends = append(backends, &TavilyBackend{
			Client:     client,
			APIKey:     creds.TavilyKey,
			UserAgent:  cfg.UserAgent,
			MaxRetries: cfg.MaxRetries,
		})
	}
	if creds.SerperKey != "" {
		backends = append(backends, &SerperBackend{
			Client:     client,
			APIKey:     creds.SerperKey,
			UserAgent:  cfg.UserAgent,
			MaxRetries: cfg.MaxRetries,
		})
	}
	if cfg.Scholar {
		backends = append(backends, &ScholarBackend{
			Client:     client,
			UserAgent:  cfg.UserAgent,
			MaxRetries: cfg.MaxRetries,
		})
	}
	return NewAggregator(logger, backends...)
}
