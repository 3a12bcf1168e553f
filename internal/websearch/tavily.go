// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/sage-lens/internal/httputil"
	"github.com/pdiddy/sage-lens/pkg/types"
)

// tavilySearchURL is the Tavily search endpoint. Declared as a var so tests
// can substitute an httptest server.
var tavilySearchURL = "https://api.tavily.com/search"

// tavilyMaxResults is the number of hits requested from Tavily.
const tavilyMaxResults = 5

// TavilyBackend queries the Tavily search API.
type TavilyBackend struct {
	Client     *http.Client
	APIKey     string
	UserAgent  string
	MaxRetries int
}

// Name returns the backend identifier.
func (b *TavilyBackend) Name() string { return "tavily" }

// Search posts the query to Tavily and normalizes the hits. Hits without a
// URL are dropped; Tavily's content field becomes the snippet.
func (b *TavilyBackend) Search(ctx context.Context, query string) ([]types.WebReference, error) {
	body, err := json.Marshal(tavilyRequest{
		APIKey:     b.APIKey,
		Query:      query,
		MaxResults: tavilyMaxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tavilySearchURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.APIKey)
	if b.UserAgent != "" {
		req.Header.Set("User-Agent", b.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, b.MaxRetries)
	if err != nil {
		return nil, types.NewFailure(types.KindSearchBackendUnavailable, b.Name(), fmt.Errorf("Tavily API request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, types.NewFailure(types.KindSearchBackendUnavailable, b.Name(),
			&StatusError{Backend: "Tavily", Code: resp.StatusCode, Body: string(snippet)})
	}

	var tr tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, types.NewFailure(types.KindSearchBackendUnavailable, b.Name(), fmt.Errorf("parsing Tavily response: %w", err))
	}

	var refs []types.WebReference
	for _, r := range tr.Results {
		if r.URL == "" {
			continue
		}
		title := r.Title
		if title == "" {
			title = "Untitled"
		}
		refs = append(refs, types.WebReference{
			Title:   title,
			URL:     r.URL,
			Snippet: r.Content,
			Source:  b.Name(),
		})
	}
	return refs, nil
}

// Tavily API JSON structures.
type tavilyRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type tavilyResponse struct {
	Query   string         `json:"query"`
	Results []tavilyResult `json:"results"`
}

type tavilyResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}
