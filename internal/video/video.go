// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package video searches for videos on a topic and ranks them by view count.
package video

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/sage-lens/pkg/types"
)

const (
	// DefaultMaxResults caps the ranked list when the caller passes no limit.
	DefaultMaxResults = 5

	// fetchLimit is the number of raw hits requested from the backend before ranking.
	fetchLimit = 10
)

// Backend fetches raw video hits. Backends fill Views with the display
// string; the Adapter derives ViewsNumeric.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]types.VideoReference, error)
}

// Adapter ranks a backend's hits by popularity.
type Adapter struct {
	backend Backend
	logger  *zap.Logger
}

// NewAdapter returns an Adapter over backend. A nil backend searches nothing.
func NewAdapter(logger *zap.Logger, backend Backend) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{backend: backend, logger: logger}
}

// Name returns the backend name, or "" when none is configured.
func (a *Adapter) Name() string {
	if a.backend == nil {
		return ""
	}
	return a.backend.Name()
}

// Search returns up to maxResults videos (DefaultMaxResults when
// maxResults <= 0) sorted by descending view count. Hits whose views cannot be
// parsed rank last in backend order. A backend error yields an empty slice
// and a diagnostic.
func (a *Adapter) Search(ctx context.Context, topic string, maxResults int) ([]types.VideoReference, []types.Diagnostic) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if a.backend == nil {
		return []types.VideoReference{}, nil
	}

	videos, err := a.backend.Search(ctx, topic, fetchLimit)
	if err != nil {
		a.logger.Warn("video search backend failed", zap.String("backend", a.backend.Name()), zap.Error(err))
		d := types.DiagnosticFrom("video", types.KindSearchBackendUnavailable, err)
		if d.Backend == "" {
			d.Backend = a.backend.Name()
		}
		return []types.VideoReference{}, []types.Diagnostic{d}
	}

	ranked := make([]types.VideoReference, len(videos))
	for i, v := range videos {
		v.ViewsNumeric = ParseViews(v.Views)
		ranked[i] = v
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ViewsNumeric > ranked[j].ViewsNumeric
	})

	if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	return ranked, nil
}

// ParseViews converts a display view count ("1.2M views", "340K", "1,234
// views", "500") into a number. M multiplies by 1,000,000 and K by 1,000; a
// plain digit string is taken as is. "N/A", empty, or anything else is 0.
func ParseViews(s string) float64 {
	v := strings.TrimSpace(s)
	if v == "" || strings.EqualFold(v, "N/A") {
		return 0
	}
	v = strings.TrimSuffix(v, " views")
	v = strings.TrimSuffix(v, " view")
	v = strings.TrimSpace(strings.ReplaceAll(v, ",", ""))

	mult := 1.0
	switch {
	case strings.Contains(v, "M"):
		mult = 1_000_000
		v = strings.ReplaceAll(v, "M", "")
	case strings.Contains(v, "K"):
		mult = 1_000
		v = strings.ReplaceAll(v, "K", "")
	default:
		if !isDigits(v) {
			return 0
		}
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || n < 0 || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0
	}
	return math.Round(n * mult)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
