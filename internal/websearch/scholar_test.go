// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sage-lens/internal/config"
	"github.com/pdiddy/sage-lens/pkg/types"
)

func TestScholarSearch(t *testing.T) {
	var captured *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"total":4,"data":[
			{"paperId":"p1","title":"A Survey of Graph Coloring","abstract":"We survey...","url":"https://www.semanticscholar.org/paper/p1","year":2019},
			{"paperId":"p2","title":"Four Colors Suffice","externalIds":{"DOI":"10.1000/4cs"}},
			{"paperId":"p3","title":"","externalIds":{"ArXiv":"2101.00001"},"year":2021},
			{"paperId":"p4","title":"Unlinked"}
		]}`)
	}))
	defer ts.Close()
	withURL(t, &scholarAPIBase, ts.URL)

	b := &ScholarBackend{Client: ts.Client(), UserAgent: "test/0.1"}
	refs, err := b.Search(context.Background(), " graph coloring ")
	require.NoError(t, err)

	require.NotNil(t, captured)
	q := captured.URL.Query()
	assert.Equal(t, "graph coloring", q.Get("query"))
	assert.Equal(t, "5", q.Get("limit"))
	assert.Equal(t, scholarFields, q.Get("fields"))
	assert.Equal(t, "test/0.1", captured.Header.Get("User-Agent"))

	require.Len(t, refs, 3)
	assert.Equal(t, types.WebReference{
		Title:   "A Survey of Graph Coloring (2019)",
		URL:     "https://www.semanticscholar.org/paper/p1",
		Snippet: "We survey...",
		Source:  "semantic_scholar",
	}, refs[0])
	assert.Equal(t, "https://doi.org/10.1000/4cs", refs[1].URL)
	assert.Equal(t, "Four Colors Suffice", refs[1].Title)
	assert.Equal(t, "https://arxiv.org/abs/2101.00001", refs[2].URL)
	assert.Equal(t, "Untitled (2021)", refs[2].Title)
}

func TestScholarErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"bad query"}`)
	}))
	defer ts.Close()
	withURL(t, &scholarAPIBase, ts.URL)

	b := &ScholarBackend{Client: ts.Client()}
	_, err := b.Search(context.Background(), "q")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrSearchBackendUnavailable)
	assert.Contains(t, err.Error(), "HTTP 400")

	_, err = b.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, types.ErrSearchBackendUnavailable)
}

func TestFromConfigScholar(t *testing.T) {
	cfg := types.SearchConfig{HTTPConfig: types.HTTPConfig{Timeout: time.Second}, Scholar: true}
	assert.Equal(t, []string{"tavily", "semantic_scholar"},
		FromConfig(nil, config.Credentials{TavilyKey: "t"}, cfg).Sources())
}
