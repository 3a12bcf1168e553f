// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report formats research results for the terminal: plain text,
// Markdown (optionally rendered with glamour), JSON, and YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/sage-lens/pkg/types"
)

// Output formats accepted by Write.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatText, FormatMarkdown, FormatJSON, FormatYAML}

// VideoStats summarizes the view counts of a result's videos.
type VideoStats struct {
	Count        int
	TotalViews   float64
	AverageViews float64
}

// Videos computes VideoStats over videos.
func Videos(videos []types.VideoReference) VideoStats {
	s := VideoStats{Count: len(videos)}
	for _, v := range videos {
		s.TotalViews += v.ViewsNumeric
	}
	if s.Count > 0 {
		s.AverageViews = s.TotalViews / float64(s.Count)
	}
	return s
}

// Write formats res to w. Unknown formats are an error.
func Write(w io.Writer, res *types.ResearchResult, format string) error {
	switch format {
	case FormatText, "":
		WriteText(w, res)
		return nil
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(res))
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
}

// WriteText writes a human-readable summary of res to w.
func WriteText(w io.Writer, res *types.ResearchResult) {
	fmt.Fprintf(w, "Topic:   %s\n", res.Metadata.Topic)
	fmt.Fprintf(w, "Method:  %s\n", res.Metadata.Method)
	fmt.Fprintf(w, "State:   %s\n", res.State)
	if len(res.Metadata.WebSources) > 0 {
		fmt.Fprintf(w, "Sources: %s\n", strings.Join(res.Metadata.WebSources, ", "))
	}
	fmt.Fprintln(w)

	if res.Content == nil {
		fmt.Fprintln(w, "Generation failed: no provider returned content.")
	} else {
		writeCandidate(w, "Content", res.Content)
	}
	if res.Analysis != nil {
		writeCandidate(w, "Analysis", res.Analysis)
	}

	writeWebTable(w, res.References.Web)
	writeVideoTable(w, res.References.Videos)

	if len(res.Diagnostics) > 0 {
		fmt.Fprintf(w, "\nDiagnostics (%d):\n", len(res.Diagnostics))
		for _, d := range res.Diagnostics {
			fmt.Fprintf(w, "  %s\n", d)
		}
	}
}

func writeCandidate(w io.Writer, heading string, c *types.ContentCandidate) {
	fmt.Fprintf(w, "%s  [%s, %d words, %.1fs]\n", heading, c.Provider, c.WordCount(), c.Latency)
	fmt.Fprintln(w, strings.Repeat("-", 80))
	fmt.Fprintln(w, strings.TrimSpace(c.Content))
	fmt.Fprintln(w)
}

func writeWebTable(w io.Writer, refs []types.WebReference) {
	if len(refs) == 0 {
		fmt.Fprintln(w, "No web references found.")
		return
	}
	fmt.Fprintf(w, "%-4s  %-50s  %-8s  %s\n", "Rank", "Title", "Source", "URL")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for i, r := range refs {
		fmt.Fprintf(w, "%-4d  %-50s  %-8s  %s\n", i+1, truncate(r.Title, 50), r.Source, r.URL)
	}
	fmt.Fprintf(w, "\n%d web references\n\n", len(refs))
}

func writeVideoTable(w io.Writer, videos []types.VideoReference) {
	if len(videos) == 0 {
		fmt.Fprintln(w, "No videos found.")
		return
	}
	fmt.Fprintf(w, "%-4s  %-50s  %-16s  %-20s  %s\n", "Rank", "Title", "Views", "Channel", "URL")
	fmt.Fprintln(w, strings.Repeat("-", 120))
	for i, v := range videos {
		fmt.Fprintf(w, "%-4d  %-50s  %-16s  %-20s  %s\n",
			i+1, truncate(v.Title, 50), v.Views, truncate(v.Channel, 20), v.URL)
	}
	s := Videos(videos)
	fmt.Fprintf(w, "\n%d videos, %s total views, %s average\n",
		s.Count, humanize.Comma(int64(s.TotalViews)), humanize.Comma(int64(s.AverageViews)))
}

// Markdown renders res as a Markdown document.
func Markdown(res *types.ResearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", res.Metadata.Topic)
	fmt.Fprintf(&b, "*%s mode, %s*\n\n", res.Metadata.Method, res.Metadata.Timestamp.Format("2006-01-02 15:04"))

	if res.Content == nil {
		b.WriteString("> Generation failed: no provider returned content.\n\n")
	} else {
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(res.Content.Content))
		fmt.Fprintf(&b, "*Generated by %s: %d words in %.1fs.*\n\n", res.Content.Provider, res.Content.WordCount(), res.Content.Latency)
	}

	if res.Analysis != nil {
		fmt.Fprintf(&b, "## Analysis\n\n%s\n\n", strings.TrimSpace(res.Analysis.Content))
	}

	if len(res.References.Web) > 0 {
		b.WriteString("## Web References\n\n")
		for _, r := range res.References.Web {
			fmt.Fprintf(&b, "- [%s](%s)", r.Title, r.URL)
			if r.Snippet != "" {
				fmt.Fprintf(&b, ": %s", truncate(r.Snippet, 200))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(res.References.Videos) > 0 {
		b.WriteString("## Videos\n\n")
		for _, v := range res.References.Videos {
			fmt.Fprintf(&b, "- [%s](%s) (%s", v.Title, v.URL, v.Views)
			if v.Channel != "" {
				fmt.Fprintf(&b, ", %s", v.Channel)
			}
			b.WriteString(")\n")
		}
		s := Videos(res.References.Videos)
		fmt.Fprintf(&b, "\n%s total views, %s average.\n\n", humanize.Comma(int64(s.TotalViews)), humanize.Comma(int64(s.AverageViews)))
	}
	return b.String()
}

// Render renders Markdown for a terminal of the given width.
func Render(markdown string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

// WriteHistory lists results one per line with a 1-based index.
func WriteHistory(w io.Writer, results []*types.ResearchResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No research history.")
		return
	}
	fmt.Fprintf(w, "%-4s  %-16s  %-40s  %-8s  %s\n", "#", "Time", "Topic", "Method", "Provider")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for i, r := range results {
		provider := ""
		if r.Content != nil {
			provider = r.Content.Provider
		}
		fmt.Fprintf(w, "%-4d  %-16s  %-40s  %-8s  %s\n",
			i+1, r.Metadata.Timestamp.Format("2006-01-02 15:04"), truncate(r.Metadata.Topic, 40), r.Metadata.Method, provider)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
