// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sage-lens/pkg/types"
)

func TestChatBackendComplete(t *testing.T) {
	var body map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"c1","object":"chat.completion","model":"gpt-4-turbo",
			"choices":[{"index":0,"message":{"role":"assistant","content":"Four colors suffice."},"finish_reason":"stop"}]}`)
	}))
	defer ts.Close()

	b := NewOpenAI(ChatOptions{
		APIKey:      "sk-test",
		BaseURL:     ts.URL + "/v1",
		Model:       "gpt-4-turbo",
		Temperature: 0.3,
		MaxTokens:   4000,
		HTTPClient:  ts.Client(),
	})
	got, err := b.Complete(context.Background(), "graph coloring")
	require.NoError(t, err)
	assert.Equal(t, "Four colors suffice.", got)

	assert.Equal(t, "gpt-4-turbo", body["model"])
	assert.EqualValues(t, 4000, body["max_tokens"])
	assert.InDelta(t, 0.3, body["temperature"], 1e-6)
	msgs := body["messages"].([]any)
	require.Len(t, msgs, 1)
	assert.Equal(t, "user", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "graph coloring", msgs[0].(map[string]any)["content"])
}

func TestDeepSeekUsesBaseURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`)
	}))
	defer ts.Close()

	b := NewDeepSeek(ChatOptions{APIKey: "ds", BaseURL: ts.URL, Model: "deepseek-chat", HTTPClient: ts.Client()})
	assert.Equal(t, DeepSeek, b.ID())
	got, err := b.Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestChatBackendErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Authorization"), "bad") {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":{"message":"Incorrect API key","type":"invalid_request_error"}}`)
			return
		}
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer ts.Close()

	bad := NewOpenAI(ChatOptions{APIKey: "bad", BaseURL: ts.URL, Model: "m", HTTPClient: ts.Client()})
	_, err := bad.Complete(context.Background(), "p")
	require.Error(t, err)

	empty := NewOpenAI(ChatOptions{APIKey: "good", BaseURL: ts.URL, Model: "m", HTTPClient: ts.Client()})
	_, err = empty.Complete(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")

	_, err = NewAdapter(nil, bad).Generate(context.Background(), OpenAI, "p")
	assert.ErrorIs(t, err, types.ErrProviderUnavailable)
}

func TestAnthropicBackendComplete(t *testing.T) {
	var body map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "ant-key", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"msg_1","type":"message","role":"assistant","model":"claude-3-5-sonnet-20241022",
			"content":[{"type":"text","text":"Chromatic "},{"type":"text","text":"number."}],
			"stop_reason":"end_turn","usage":{"input_tokens":3,"output_tokens":2}}`)
	}))
	defer ts.Close()

	b := NewAnthropic(AnthropicOptions{
		APIKey:      "ant-key",
		BaseURL:     ts.URL,
		Model:       "claude-3-5-sonnet-20241022",
		Temperature: 0.3,
		MaxTokens:   4000,
		HTTPClient:  ts.Client(),
	})
	got, err := b.Complete(context.Background(), "graph coloring")
	require.NoError(t, err)
	assert.Equal(t, "Chromatic number.", got)
	assert.Equal(t, "claude-3-5-sonnet-20241022", body["model"])
	assert.EqualValues(t, 4000, body["max_tokens"])
}

func TestAnthropicNoRetry(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`)
	}))
	defer ts.Close()

	b := NewAnthropic(AnthropicOptions{APIKey: "k", BaseURL: ts.URL, Model: "m", MaxTokens: 10, HTTPClient: ts.Client()})
	_, err := b.Complete(context.Background(), "p")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestGeminiBackendComplete(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-2.0-flash:generateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Greedy coloring."}]},"finishReason":"STOP"}]}`)
	}))
	defer ts.Close()

	b, err := NewGemini(context.Background(), GeminiOptions{
		APIKey:     "gm",
		BaseURL:    ts.URL + "/",
		Model:      "gemini-2.0-flash",
		MaxTokens:  4000,
		HTTPClient: ts.Client(),
	})
	require.NoError(t, err)
	got, err := b.Complete(context.Background(), "graph coloring")
	require.NoError(t, err)
	assert.Equal(t, "Greedy coloring.", got)
}
