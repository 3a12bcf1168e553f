// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package video

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strconv"

	"github.com/dustin/go-humanize"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/pdiddy/sage-lens/pkg/types"
)

// APIBackend queries the YouTube Data API v3: search.list for IDs and
// snippets, then videos.list for statistics.
type APIBackend struct {
	Service *youtube.Service
}

// NewAPIBackend creates an APIBackend authenticated with apiKey.
func NewAPIBackend(ctx context.Context, apiKey string, opts ...option.ClientOption) (*APIBackend, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating YouTube service: %w", err)
	}
	return &APIBackend{Service: svc}, nil
}

// Name returns the backend identifier.
func (b *APIBackend) Name() string { return "youtube_api" }

// Search returns up to limit videos with view counts.
func (b *APIBackend) Search(ctx context.Context, query string, limit int) ([]types.VideoReference, error) {
	sresp, err := b.Service.Search.List([]string{"id", "snippet"}).
		Q(query).
		Type("video").
		MaxResults(int64(limit)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, types.NewFailure(types.KindSearchBackendUnavailable, b.Name(), fmt.Errorf("search.list: %w", err))
	}

	var ids []string
	for _, item := range sresp.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			ids = append(ids, item.Id.VideoId)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	vresp, err := b.Service.Videos.List([]string{"statistics", "contentDetails"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, types.NewFailure(types.KindSearchBackendUnavailable, b.Name(), fmt.Errorf("videos.list: %w", err))
	}

	return videosFromAPI(sresp.Items, vresp.Items), nil
}

// videosFromAPI joins search hits with their statistics. Hits missing from
// the statistics response keep "N/A" views.
func videosFromAPI(items []*youtube.SearchResult, details []*youtube.Video) []types.VideoReference {
	byID := make(map[string]*youtube.Video, len(details))
	for _, d := range details {
		byID[d.Id] = d
	}

	var videos []types.VideoReference
	for _, item := range items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		v := types.VideoReference{
			Title: "Untitled Video",
			URL:   watchURLPrefix + item.Id.VideoId,
			Views: "N/A",
		}
		if item.Snippet != nil {
			if item.Snippet.Title != "" {
				v.Title = html.UnescapeString(item.Snippet.Title)
			}
			v.Channel = html.UnescapeString(item.Snippet.ChannelTitle)
		}
		if d, ok := byID[item.Id.VideoId]; ok {
			if d.Statistics != nil {
				v.Views = humanize.Comma(int64(d.Statistics.ViewCount)) + " views"
			}
			if d.ContentDetails != nil {
				v.Duration = formatISODuration(d.ContentDetails.Duration)
			}
		}
		videos = append(videos, v)
	}
	return videos
}

var isoDuration = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// formatISODuration renders an ISO 8601 duration (PT1H2M3S) as 1:02:03.
// Unrecognized values are returned unchanged.
func formatISODuration(d string) string {
	m := isoDuration.FindStringSubmatch(d)
	if m == nil {
		return d
	}
	atoi := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}
	h, min, sec := atoi(m[1]), atoi(m[2]), atoi(m[3])
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, min, sec)
	}
	return fmt.Sprintf("%d:%02d", min, sec)
}
