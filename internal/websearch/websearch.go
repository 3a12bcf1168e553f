// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package websearch queries web search APIs and returns merged, URL-deduplicated
// references. A backend that fails contributes nothing and yields a diagnostic;
// it never aborts the search.
package websearch

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/sage-lens/pkg/types"
)

// DefaultMaxResults caps the merged list when the caller passes no limit.
const DefaultMaxResults = 10

// Backend searches a single web search API.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string) ([]types.WebReference, error)
}

// StatusError reports a non-success HTTP status from a backend.
type StatusError struct {
	Backend string
	Code    int
	Body    string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s API returned HTTP %d", e.Backend, e.Code)
	}
	return fmt.Sprintf("%s API returned HTTP %d: %s", e.Backend, e.Code, e.Body)
}

// Aggregator fans a query out to its backends and merges the results.
type Aggregator struct {
	backends []Backend
	logger   *zap.Logger
}

// NewAggregator returns an Aggregator over backends. Merge order follows the
// order given here. A nil logger discards diagnostics logging.
func NewAggregator(logger *zap.Logger, backends ...Backend) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{backends: backends, logger: logger}
}

// Sources returns the names of the configured backends.
func (a *Aggregator) Sources() []string {
	names := make([]string, len(a.backends))
	for i, b := range a.backends {
		names[i] = b.Name()
	}
	return names
}

// Search queries every backend concurrently, concatenates the hits in backend
// order, drops later duplicates of a URL, and truncates to maxResults
// (DefaultMaxResults when maxResults <= 0). No configured backends, or all of
// them failing, yields an empty slice.
func (a *Aggregator) Search(ctx context.Context, topic string, maxResults int) ([]types.WebReference, []types.Diagnostic) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	hits := make([][]types.WebReference, len(a.backends))
	errs := make([]error, len(a.backends))

	var g errgroup.Group
	for i, b := range a.backends {
		g.Go(func() error {
			hits[i], errs[i] = b.Search(ctx, topic)
			return nil
		})
	}
	g.Wait()

	var all []types.WebReference
	var diags []types.Diagnostic
	for i, b := range a.backends {
		if errs[i] != nil {
			diags = append(diags, a.diagnose(b.Name(), errs[i]))
			continue
		}
		all = append(all, hits[i]...)
	}

	deduped, removed := deduplicate(all)
	if removed > 0 {
		a.logger.Debug("dropped duplicate web references", zap.Int("removed", removed))
	}
	if len(deduped) > maxResults {
		deduped = deduped[:maxResults]
	}
	if deduped == nil {
		deduped = []types.WebReference{}
	}
	return deduped, diags
}

// diagnose converts a backend error into a diagnostic and logs it. HTTP 403
// means the key was rejected; it is logged at debug level only.
func (a *Aggregator) diagnose(name string, err error) types.Diagnostic {
	d := types.DiagnosticFrom("websearch", types.KindSearchBackendUnavailable, err)
	if d.Backend == "" {
		d.Backend = name
	}

	level := zap.WarnLevel
	var se *StatusError
	if errors.As(err, &se) && se.Code == http.StatusForbidden {
		level = zap.DebugLevel
	}
	a.logger.Log(level, "web search backend failed", zap.String("backend", name), zap.Error(err))
	return d
}

// deduplicate keeps the first reference for each URL, preserving order.
// References without a URL are dropped.
func deduplicate(refs []types.WebReference) ([]types.WebReference, int) {
	seen := make(map[string]bool, len(refs))
	var deduped []types.WebReference
	removed := 0
	for _, r := range refs {
		if r.URL == "" {
			continue
		}
		if seen[r.URL] {
			removed++
			continue
		}
		seen[r.URL] = true
		deduped = append(deduped, r)
	}
	return deduped, removed
}
