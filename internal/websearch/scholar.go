// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/sage-lens/internal/httputil"
	"github.com/pdiddy/sage-lens/pkg/types"
)

// scholarAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var scholarAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const (
	scholarFields     = "title,abstract,url,year,externalIds"
	scholarMaxResults = 5
)

// ScholarBackend queries the Semantic Scholar API for papers on the topic.
// Papers become web references linking to their Semantic Scholar page, or
// to doi.org or arxiv.org when the API returns no page URL.
type ScholarBackend struct {
	Client     *http.Client
	UserAgent  string
	MaxRetries int
}

// Name returns the backend identifier.
func (b *ScholarBackend) Name() string { return "semantic_scholar" }

// Search queries the Semantic Scholar API and normalizes the papers.
func (b *ScholarBackend) Search(ctx context.Context, query string) ([]types.WebReference, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, types.NewFailure(types.KindSearchBackendUnavailable, b.Name(), fmt.Errorf("empty Semantic Scholar query"))
	}

	params := url.Values{
		"query":  {q},
		"limit":  {strconv.Itoa(scholarMaxResults)},
		"fields": {scholarFields},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, scholarAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if b.UserAgent != "" {
		req.Header.Set("User-Agent", b.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, b.MaxRetries)
	if err != nil {
		return nil, types.NewFailure(types.KindSearchBackendUnavailable, b.Name(), fmt.Errorf("Semantic Scholar API request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, types.NewFailure(types.KindSearchBackendUnavailable, b.Name(),
			&StatusError{Backend: "Semantic Scholar", Code: resp.StatusCode, Body: string(snippet)})
	}

	var sr scholarResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, types.NewFailure(types.KindSearchBackendUnavailable, b.Name(), fmt.Errorf("parsing Semantic Scholar response: %w", err))
	}

	var refs []types.WebReference
	for _, paper := range sr.Data {
		link := paper.URL
		switch {
		case link != "":
		case paper.ExternalIDs.DOI != "":
			link = "https://doi.org/" + paper.ExternalIDs.DOI
		case paper.ExternalIDs.ArXiv != "":
			link = "https://arxiv.org/abs/" + paper.ExternalIDs.ArXiv
		}
		if link == "" {
			continue
		}
		title := paper.Title
		if title == "" {
			title = "Untitled"
		}
		if paper.Year > 0 {
			title = fmt.Sprintf("%s (%d)", title, paper.Year)
		}
		refs = append(refs, types.WebReference{
			Title:   title,
			URL:     link,
			Snippet: paper.Abstract,
			Source:  b.Name(),
		})
	}
	return refs, nil
}

// Semantic Scholar API JSON structures.
type scholarResponse struct {
	Total int            `json:"total"`
	Data  []scholarPaper `json:"data"`
}

type scholarPaper struct {
	PaperID     string             `json:"paperId"`
	Title       string             `json:"title"`
	Abstract    string             `json:"abstract"`
	URL         string             `json:"url"`
	Year        int                `json:"year"`
	ExternalIDs scholarExternalIDs `json:"externalIds"`
}

type scholarExternalIDs struct {
	DOI   string `json:"DOI"`
	ArXiv string `json:"ArXiv"`
}
