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

// serperSearchURL is the Serper (Google) search endpoint. Declared as a var
// so tests can substitute an httptest server.
var serperSearchURL = "https://google.serper.dev/search"

// serperNum is the number of organic hits requested from Serper.
const serperNum = 10

// SerperBackend queries the Serper Google search API.
type SerperBackend struct {
	Client     *http.Client
	APIKey     string
	UserAgent  string
	MaxRetries int
}

// Name returns the backend identifier.
func (b *SerperBackend) Name() string { return "serper" }

// Search posts the query to Serper. A knowledge graph entry with a website
// comes first, followed by organic hits that carry a link.
func (b *SerperBackend) Search(ctx context.Context, query string) ([]types.WebReference, error) {
	body, err := json.Marshal(serperRequest{Q: query, Num: serperNum})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serperSearchURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", b.APIKey)
	if b.UserAgent != "" {
		req.Header.Set("User-Agent", b.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, b.MaxRetries)
	if err != nil {
		return nil, types.NewFailure(types.KindSearchBackendUnavailable, b.Name(), fmt.Errorf("Serper API request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, types.NewFailure(types.KindSearchBackendUnavailable, b.Name(),
			&StatusError{Backend: "Serper", Code: resp.StatusCode, Body: string(snippet)})
	}

	var sr serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, types.NewFailure(types.KindSearchBackendUnavailable, b.Name(), fmt.Errorf("parsing Serper response: %w", err))
	}

	var refs []types.WebReference
	if kg := sr.KnowledgeGraph; kg != nil && kg.WebsiteURL != "" {
		title := kg.Title
		if title == "" {
			title = "Knowledge Graph"
		}
		refs = append(refs, types.WebReference{
			Title:   title,
			URL:     kg.WebsiteURL,
			Snippet: kg.Description,
			Source:  b.Name(),
		})
	}
	for _, r := range sr.Organic {
		if r.Link == "" {
			continue
		}
		title := r.Title
		if title == "" {
			title = "Untitled"
		}
		refs = append(refs, types.WebReference{
			Title:   title,
			URL:     r.Link,
			Snippet: r.Snippet,
			Source:  b.Name(),
		})
	}
	return refs, nil
}

// Serper API JSON structures.
type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

type serperResponse struct {
	KnowledgeGraph *serperKnowledgeGraph `json:"knowledgeGraph"`
	Organic        []serperOrganic       `json:"organic"`
}

type serperKnowledgeGraph struct {
	Title       string `json:"title"`
	WebsiteURL  string `json:"websiteUrl"`
	Description string `json:"description"`
}

type serperOrganic struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
	Position int    `json:"position"`
}
