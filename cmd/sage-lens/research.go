// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sage-lens/internal/pipeline"
	"github.com/pdiddy/sage-lens/internal/report"
	"github.com/pdiddy/sage-lens/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research <topic...>",
	Short: "Research a topic and print the assembled result",
	Long: `Research searches the web and YouTube for the topic, asks every configured
LLM provider for a research document, and prints the most detailed one with
its references. Provider and search failures are reported as diagnostics;
the command fails only when no provider returned content.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResearch,
}

func runResearch(cmd *cobra.Command, args []string) error {
	enriched, _ := cmd.Flags().GetBool("enriched")
	format, _ := cmd.Flags().GetString("format")
	render, _ := cmd.Flags().GetBool("render")

	s, err := loadSettings()
	if err != nil {
		return err
	}
	if enriched && !s.EnrichedModeAvailable {
		fmt.Fprintf(os.Stderr, "Enriched mode unavailable: no credential for refinement provider %q; using standard mode.\n",
			s.Provider.RefinementProvider)
	}

	p, err := buildPipeline(cmd.Context(), s)
	if err != nil {
		return err
	}
	p.OnState = progress(os.Stderr)

	res := p.RunQuery(cmd.Context(), strings.Join(args, " "), pipeline.Options{UseEnrichedMode: enriched})
	if err := writeResult(os.Stdout, res, format, render); err != nil {
		return err
	}
	if !res.Succeeded() {
		return fmt.Errorf("research failed: %s", res.State)
	}
	return nil
}

// writeResult prints res in format; render applies to markdown only.
func writeResult(w io.Writer, res *types.ResearchResult, format string, render bool) error {
	if format == report.FormatMarkdown && render {
		out, err := report.Render(report.Markdown(res), 100)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	}
	return report.Write(w, res, format)
}

// progress returns a state observer that prints one line per stage.
func progress(w io.Writer) func(types.State) {
	return func(s types.State) {
		switch s {
		case types.StateSearching:
			fmt.Fprintln(w, "Searching web and video sources...")
		case types.StateGenerating:
			fmt.Fprintln(w, "Generating content with configured providers...")
		}
	}
}

func init() {
	researchCmd.Flags().Bool("enriched", false, "run the polish and analysis stages with the refinement provider")
	researchCmd.Flags().String("format", report.FormatText, "output format: "+strings.Join(report.Formats, ", "))
	researchCmd.Flags().Bool("render", false, "render markdown output for the terminal")

	rootCmd.AddCommand(researchCmd)
}
