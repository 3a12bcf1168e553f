// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package video

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sage-lens/internal/config"
	"github.com/pdiddy/sage-lens/pkg/types"
)

type mockBackend struct {
	videos    []types.VideoReference
	err       error
	lastLimit int
}

func (m *mockBackend) Name() string { return "mock" }

func (m *mockBackend) Search(_ context.Context, _ string, limit int) ([]types.VideoReference, error) {
	m.lastLimit = limit
	return m.videos, m.err
}

func vid(title, views string) types.VideoReference {
	return types.VideoReference{Title: title, URL: "https://youtube.com/watch?v=" + title, Views: views}
}

func titlesOf(videos []types.VideoReference) []string {
	out := make([]string, len(videos))
	for i, v := range videos {
		out[i] = v.Title
	}
	return out
}

func TestParseViews(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1.2M views", 1_200_000},
		{"340K", 340_000},
		{"500", 500},
		{"N/A", 0},
		{"", 0},
		{"1,234 views", 1234},
		{"1 view", 1},
		{"2.5K views", 2500},
		{"12M", 12_000_000},
		{"No views", 0},
		{"lots", 0},
		{"-5", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseViews(tt.in))
		})
	}
}

func TestSearchRanksByViews(t *testing.T) {
	m := &mockBackend{videos: []types.VideoReference{
		vid("a", "340K views"),
		vid("b", "1.2M views"),
		vid("c", "N/A"),
		vid("d", "500 views"),
		vid("e", "2M views"),
		vid("f", "12K views"),
		vid("g", "1,000 views"),
	}}
	a := NewAdapter(nil, m)

	got, diags := a.Search(context.Background(), "graph coloring", 5)
	assert.Empty(t, diags)
	assert.Equal(t, fetchLimit, m.lastLimit)
	assert.Equal(t, []string{"e", "b", "a", "f", "g"}, titlesOf(got))
	assert.Equal(t, 2_000_000.0, got[0].ViewsNumeric)
	assert.Equal(t, "2M views", got[0].Views, "display string is kept")
}

func TestSearchStableForEqualViews(t *testing.T) {
	m := &mockBackend{videos: []types.VideoReference{
		vid("first", "N/A"),
		vid("second", "1K"),
		vid("third", ""),
		vid("fourth", "1,000 views"),
	}}
	got, _ := NewAdapter(nil, m).Search(context.Background(), "q", 10)
	assert.Equal(t, []string{"second", "fourth", "first", "third"}, titlesOf(got))
}

func TestSearchDefaultLimit(t *testing.T) {
	var videos []types.VideoReference
	for i := 0; i < 8; i++ {
		videos = append(videos, vid(string(rune('a'+i)), "1K"))
	}
	got, _ := NewAdapter(nil, &mockBackend{videos: videos}).Search(context.Background(), "q", 0)
	assert.Len(t, got, DefaultMaxResults)
}

func TestSearchBackendFailure(t *testing.T) {
	m := &mockBackend{err: errors.New("connection refused")}
	got, diags := NewAdapter(nil, m).Search(context.Background(), "q", 5)

	assert.NotNil(t, got)
	assert.Empty(t, got)
	require.Len(t, diags, 1)
	assert.Equal(t, "video", diags[0].Component)
	assert.Equal(t, "mock", diags[0].Backend)
	assert.Equal(t, types.KindSearchBackendUnavailable, diags[0].Kind)
	assert.Contains(t, diags[0].Message, "connection refused")
}

func TestSearchWithoutBackend(t *testing.T) {
	a := NewAdapter(nil, nil)
	got, diags := a.Search(context.Background(), "q", 5)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, diags)
	assert.Equal(t, "", a.Name())
}

func TestFromConfig(t *testing.T) {
	ctx := context.Background()
	cfg := types.SearchConfig{VideoBackend: types.VideoBackendAuto}

	a, err := FromConfig(ctx, nil, config.Credentials{}, cfg)
	require.NoError(t, err)
	assert.Equal(t, "youtube", a.Name())

	a, err = FromConfig(ctx, nil, config.Credentials{YouTubeKey: "yt"}, cfg)
	require.NoError(t, err)
	assert.Equal(t, "youtube_api", a.Name())

	cfg.VideoBackend = types.VideoBackendAPI
	_, err = FromConfig(ctx, nil, config.Credentials{}, cfg)
	assert.ErrorIs(t, err, types.ErrConfiguration)

	cfg.VideoBackend = types.VideoBackendScrape
	a, err = FromConfig(ctx, nil, config.Credentials{YouTubeKey: "yt"}, cfg)
	require.NoError(t, err)
	assert.Equal(t, "youtube", a.Name())
}
