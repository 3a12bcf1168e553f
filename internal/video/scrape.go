// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package video

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"github.com/pdiddy/sage-lens/internal/httputil"
	"github.com/pdiddy/sage-lens/pkg/types"
)

// youtubeResultsURL is the YouTube search results page. Declared as a var so
// tests can substitute an httptest server.
var youtubeResultsURL = "https://www.youtube.com/results"

// watchURLPrefix builds canonical video URLs from video IDs.
const watchURLPrefix = "https://youtube.com/watch?v="

const sectionsPath = "contents.twoColumnSearchResultsRenderer.primaryContents.sectionListRenderer.contents"

var errNoInitialData = errors.New("ytInitialData not found in results page")

// ScrapeBackend reads video hits from the YouTube results page without an
// API key. The page embeds its results as a ytInitialData JSON object.
type ScrapeBackend struct {
	Client     *http.Client
	UserAgent  string
	MaxRetries int
}

// Name returns the backend identifier.
func (b *ScrapeBackend) Name() string { return "youtube" }

// Search fetches the results page for query and returns up to limit videos.
func (b *ScrapeBackend) Search(ctx context.Context, query string, limit int) ([]types.VideoReference, error) {
	reqURL := youtubeResultsURL + "?" + url.Values{"search_query": {query}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	// View counts are parsed from English display strings.
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	if b.UserAgent != "" {
		req.Header.Set("User-Agent", b.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, b.MaxRetries)
	if err != nil {
		return nil, types.NewFailure(types.KindSearchBackendUnavailable, b.Name(), fmt.Errorf("YouTube request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, types.NewFailure(types.KindSearchBackendUnavailable, b.Name(),
			fmt.Errorf("YouTube returned HTTP %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, types.NewFailure(types.KindSearchBackendUnavailable, b.Name(), fmt.Errorf("parsing results page: %w", err))
	}

	data, err := extractInitialData(doc)
	if err != nil {
		return nil, types.NewFailure(types.KindSearchBackendUnavailable, b.Name(), err)
	}
	return parseInitialData(data, limit), nil
}

// extractInitialData returns the ytInitialData JSON object embedded in a
// <script> element of the results page.
func extractInitialData(doc *goquery.Document) (string, error) {
	var data string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		idx := strings.Index(text, "ytInitialData")
		if idx < 0 {
			return true
		}
		start := strings.Index(text[idx:], "{")
		end := strings.LastIndex(text, "}")
		if start < 0 || end < idx+start {
			return true
		}
		candidate := text[idx+start : end+1]
		if !gjson.Valid(candidate) {
			return true
		}
		data = candidate
		return false
	})
	if data == "" {
		return "", errNoInitialData
	}
	return data, nil
}

// parseInitialData walks the search sections for videoRenderer entries.
// Entries without a video ID are skipped.
func parseInitialData(data string, limit int) []types.VideoReference {
	var videos []types.VideoReference
	full := func() bool { return limit > 0 && len(videos) >= limit }

	gjson.Get(data, sectionsPath).ForEach(func(_, section gjson.Result) bool {
		section.Get("itemSectionRenderer.contents").ForEach(func(_, item gjson.Result) bool {
			vr := item.Get("videoRenderer")
			if !vr.Exists() {
				return true
			}
			id := vr.Get("videoId").String()
			if id == "" {
				return true
			}
			videos = append(videos, types.VideoReference{
				Title:    firstNonEmpty(vr.Get("title.runs.0.text").String(), vr.Get("title.simpleText").String(), "Untitled Video"),
				URL:      watchURLPrefix + id,
				Views:    firstNonEmpty(vr.Get("viewCountText.simpleText").String(), vr.Get("viewCountText.runs.0.text").String(), "N/A"),
				Channel:  vr.Get("ownerText.runs.0.text").String(),
				Duration: vr.Get("lengthText.simpleText").String(),
			})
			return !full()
		})
		return !full()
	})
	return videos
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
