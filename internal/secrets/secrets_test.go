// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) string
		want   Set
		errMsg string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "openai-api-key", "  sk-proj-abc123  \n")
				writeFile(t, dir, "tavily-api-key", "tvly-xyz789")
				writeFile(t, dir, "serper-api-key", "serp\n")
				return dir
			},
			want: Set{
				"openai-api-key": "sk-proj-abc123",
				"tavily-api-key": "tvly-xyz789",
				"serper-api-key": "serp",
			},
		},
		{
			name: "strips surrounding quotes",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "anthropic-api-key", "\"sk-ant-1\"\n")
				writeFile(t, dir, "deepseek-api-key", "'ds-2'")
				writeFile(t, dir, "gemini-api-key", "\"unbalanced'")
				return dir
			},
			want: Set{
				"anthropic-api-key": "sk-ant-1",
				"deepseek-api-key":  "ds-2",
				"gemini-api-key":    "\"unbalanced'",
			},
		},
		{
			name: "returns empty set for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: Set{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "anthropic-api-key", "valid-key")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				return dir
			},
			want: Set{
				"anthropic-api-key": "valid-key",
			},
		},
		{
			name: "skips dotfiles",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, "serper-api-key", "sp_real")
				return dir
			},
			want: Set{
				"serper-api-key": "sp_real",
			},
		},
		{
			name: "skips subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "openai-api-key", "ok_123")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: Set{
				"openai-api-key": "ok_123",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := Load(dir)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read files without permission bits")
	}
	dir := t.TempDir()
	writeFile(t, dir, "good-key", "value123")

	badPath := filepath.Join(dir, "bad-key")
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "value123", got["good-key"])
	_, hasBad := got["bad-key"]
	assert.False(t, hasBad, "unreadable file should not appear in result")
}

func TestSetGet(t *testing.T) {
	s := Set{"openai-api-key": "sk-1", "CUSTOM": "c"}

	v, ok := s.Get("OPENAI_API_KEY")
	assert.True(t, ok)
	assert.Equal(t, "sk-1", v)

	v, ok = s.Get("openai-api-key")
	assert.True(t, ok)
	assert.Equal(t, "sk-1", v)

	v, ok = s.Get("CUSTOM")
	assert.True(t, ok)
	assert.Equal(t, "c", v)

	_, ok = s.Get("TAVILY_API_KEY")
	assert.False(t, ok)
}

func TestFileNameAndKeys(t *testing.T) {
	assert.Equal(t, "youtube-api-key", FileName("YOUTUBE_API_KEY"))

	keys := Set{"b": "2", "a": "1"}.Keys()
	sort.Strings(keys)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
