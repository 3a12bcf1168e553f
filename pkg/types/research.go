// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the sage-lens research pipeline:
// generated content candidates, web and video references, the assembled
// research result, and the diagnostics attached to it.
package types

import (
	"strings"
	"time"
)

// Stage names the pipeline step that produced a ContentCandidate.
type Stage string

const (
	StageGeneration Stage = "generation"
	StagePolish     Stage = "polish"
	StageAnalysis   Stage = "analysis"
)

// ContentCandidate is one provider's generated text for one query.
// It is never modified after the adapter returns it.
type ContentCandidate struct {
	// Content is the generated text.
	Content string `json:"content" yaml:"content"`

	// Provider is the display name of the backend (e.g. "OpenAI-gpt-4-turbo").
	Provider string `json:"provider" yaml:"provider"`

	// Model is the model identifier sent to the backend.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`

	// Latency is the wall-clock duration of the backend call in seconds.
	Latency float64 `json:"latency" yaml:"latency"`

	Stage Stage `json:"stage,omitempty" yaml:"stage,omitempty"`
}

// WordCount returns the number of whitespace-separated words in Content.
func (c ContentCandidate) WordCount() int {
	return len(strings.Fields(c.Content))
}

// WebReference is a normalized web search hit. URL is the dedup key.
type WebReference struct {
	Title   string `json:"title" yaml:"title"`
	URL     string `json:"url" yaml:"url"`
	Snippet string `json:"snippet,omitempty" yaml:"snippet,omitempty"`

	// Source identifies which backend found this hit (e.g. "tavily", "serper").
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// VideoReference is a normalized video search hit.
type VideoReference struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`

	// Views is the view count as the backend displays it (e.g. "1.2M views").
	Views string `json:"views" yaml:"views"`

	// ViewsNumeric is Views parsed for ranking; 0 when unparseable.
	ViewsNumeric float64 `json:"views_numeric" yaml:"views_numeric"`

	Channel  string `json:"channel,omitempty" yaml:"channel,omitempty"`
	Duration string `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// References groups the web and video references of one result.
type References struct {
	Web    []WebReference   `json:"web" yaml:"web"`
	Videos []VideoReference `json:"videos" yaml:"videos"`
}

// Method records which generation path produced a result.
type Method string

const (
	MethodStandard Method = "standard"
	MethodEnriched Method = "enriched"
)

// State is a pipeline state. Assembled and Failed are terminal.
type State string

const (
	StateIdle       State = "idle"
	StateSearching  State = "searching"
	StateGenerating State = "generating"
	StateAssembled  State = "assembled"
	StateFailed     State = "failed"
)

// Terminal reports whether no further transition follows s.
func (s State) Terminal() bool {
	return s == StateAssembled || s == StateFailed
}

// Metadata describes how and when a result was produced.
type Metadata struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Topic     string    `json:"topic" yaml:"topic"`
	Method    Method    `json:"method" yaml:"method"`

	// WebSources lists the web search backends that were configured for the query.
	WebSources []string `json:"web_sources,omitempty" yaml:"web_sources,omitempty"`

	// Providers lists the LLM backends that returned a candidate.
	Providers []string `json:"providers,omitempty" yaml:"providers,omitempty"`
}

// ResearchResult is the assembled output of one query. Content is nil when
// every provider failed.
type ResearchResult struct {
	ID          string            `json:"id" yaml:"id"`
	Content     *ContentCandidate `json:"content" yaml:"content"`
	References  References        `json:"references" yaml:"references"`
	Analysis    *ContentCandidate `json:"analysis,omitempty" yaml:"analysis,omitempty"`
	Metadata    Metadata          `json:"metadata" yaml:"metadata"`
	State       State             `json:"state" yaml:"state"`
	Diagnostics []Diagnostic      `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Succeeded reports whether the result reached Assembled with content.
func (r *ResearchResult) Succeeded() bool {
	return r != nil && r.State == StateAssembled && r.Content != nil
}
