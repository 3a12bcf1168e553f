// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/sage-lens/pkg/types"
)

func TestNewWithWriterFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(types.LogConfig{Level: "warn"}, &buf)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("provider failed", zap.String("provider", "anthropic"))
	require.NoError(t, log.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"provider failed"`)
	assert.Contains(t, out, `"provider":"anthropic"`)
}

func TestNewWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "sage-lens.log")
	var buf bytes.Buffer
	log, err := NewWithWriter(types.LogConfig{Level: "info", File: path, Development: true}, &buf)
	require.NoError(t, err)

	log.Info("query assembled", zap.String("topic", "graph coloring"))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"topic":"graph coloring"`)
	assert.Contains(t, buf.String(), "query assembled")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := NewWithWriter(types.LogConfig{Level: "loud"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
}
