// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/pdiddy/sage-lens/internal/pipeline"
	"github.com/pdiddy/sage-lens/internal/report"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive research session with history",
	Long: `Shell starts an interactive session. Each line is researched as a topic;
results are kept in the session history. Commands:

  :history      list results of this session
  :show N       print result N again
  :clear        clear the history
  :enriched     toggle enriched mode
  :quit         leave the shell`,
	RunE: runShell,
}

func runShell(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	p, err := buildPipeline(cmd.Context(), s)
	if err != nil {
		return err
	}
	p.OnState = progress(os.Stderr)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "sage-lens> ",
		HistoryFile:     filepath.Join(os.TempDir(), ".sage_lens_history"),
		HistoryLimit:    100,
		InterruptPrompt: "^C",
		EOFPrompt:       ":quit",
	})
	if err != nil {
		return fmt.Errorf("starting readline: %w", err)
	}
	defer rl.Close()

	sh := &session{pipeline: p, out: rl.Stdout()}
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		if sh.handle(cmd.Context(), line) {
			return nil
		}
	}
}

// session holds the state of one interactive shell.
type session struct {
	pipeline *pipeline.Pipeline
	out      io.Writer
	enriched bool
}

// handle processes one input line and reports whether the shell should exit.
func (s *session) handle(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}
	if !strings.HasPrefix(input, ":") {
		res := s.pipeline.RunQuery(ctx, input, pipeline.Options{UseEnrichedMode: s.enriched})
		report.WriteText(s.out, res)
		return false
	}

	name, arg, _ := strings.Cut(input[1:], " ")
	hist := s.pipeline.History()
	switch name {
	case "quit", "q", "exit":
		return true
	case "history", "h":
		report.WriteHistory(s.out, hist.All())
	case "show":
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			fmt.Fprintln(s.out, "usage: :show N")
			return false
		}
		res, ok := hist.Get(n - 1)
		if !ok {
			fmt.Fprintf(s.out, "no result %d (history has %d)\n", n, hist.Len())
			return false
		}
		report.WriteText(s.out, res)
	case "clear":
		hist.Clear()
		fmt.Fprintln(s.out, "History cleared.")
	case "enriched":
		if !s.pipeline.EnrichedModeAvailable() {
			fmt.Fprintln(s.out, "Enriched mode unavailable: the refinement provider has no credential.")
			return false
		}
		s.enriched = !s.enriched
		fmt.Fprintf(s.out, "Enriched mode: %t\n", s.enriched)
	default:
		fmt.Fprintf(s.out, "unknown command :%s\n", name)
	}
	return false
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
