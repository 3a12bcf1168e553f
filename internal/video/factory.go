// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package video

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/pdiddy/sage-lens/internal/config"
	"github.com/pdiddy/sage-lens/pkg/types"
)

// FromConfig builds an Adapter for cfg.VideoBackend. "auto" uses the Data API
// when a YouTube key is present and the results page scraper otherwise.
func FromConfig(ctx context.Context, logger *zap.Logger, creds config.Credentials, cfg types.SearchConfig) (*Adapter, error) {
	backend := cfg.VideoBackend
	if backend == "" || backend == types.VideoBackendAuto {
		backend = types.VideoBackendScrape
		if creds.YouTubeKey != "" {
			backend = types.VideoBackendAPI
		}
	}

	switch backend {
	case types.VideoBackendScrape:
		return NewAdapter(logger, &ScrapeBackend{
			Client:     &http.Client{Timeout: cfg.Timeout},
			UserAgent:  cfg.UserAgent,
			MaxRetries: cfg.MaxRetries,
		}), nil
	case types.VideoBackendAPI:
		if creds.YouTubeKey == "" {
			return nil, types.NewFailure(types.KindConfiguration, "youtube_api",
				errors.New("video backend \"api\" requires "+config.KeyYouTube))
		}
		// option.WithHTTPClient would discard the API key; deadlines come from ctx.
		b, err := NewAPIBackend(ctx, creds.YouTubeKey)
		if err != nil {
			return nil, types.NewFailure(types.KindConfiguration, "youtube_api", err)
		}
		return NewAdapter(logger, b), nil
	}
	return nil, types.NewFailure(types.KindConfiguration, "", fmt.Errorf("unknown video backend %q", cfg.VideoBackend))
}
