// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/sage-lens/internal/config"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Report which credentials and features are configured",
	Long: `Doctor checks every recognized credential, reports where it was found,
and lists the features it enables. It makes no network calls.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDoctor(os.Stdout, credentialChain, viper.GetString("provider.refinement"))
	},
}

func runDoctor(w io.Writer, chain config.Chain, refinement string) error {
	fmt.Fprintf(w, "%-20s  %-8s  %-12s  %s\n", "Credential", "Required", "Source", "Purpose")
	fmt.Fprintf(w, "%-20s  %-8s  %-12s  %s\n", "----------", "--------", "------", "-------")

	missingRequired := 0
	for _, ks := range config.CredentialKeys {
		src := chain.Source(ks.Key)
		status := src
		if src == "" {
			status = "missing"
			if ks.Required {
				missingRequired++
			}
		}
		req := ""
		if ks.Required {
			req = "yes"
		}
		fmt.Fprintf(w, "%-20s  %-8s  %-12s  %s\n", ks.Key, req, status, ks.Purpose)
	}

	creds := config.LoadCredentials(chain)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "LLM providers:   %v\n", creds.ProviderIDs())
	fmt.Fprintf(w, "Web search:      %s\n", webSources(creds))
	video := "YouTube results page"
	if creds.YouTubeKey != "" {
		video = "YouTube Data API"
	}
	fmt.Fprintf(w, "Video search:    %s\n", video)
	fmt.Fprintf(w, "Enriched mode:   %t (refinement provider %q)\n", creds.Has(refinement), refinement)

	if missingRequired > 0 {
		return fmt.Errorf("%d required credential(s) missing", missingRequired)
	}
	return nil
}

func webSources(c config.Credentials) string {
	switch {
	case c.TavilyKey != "" && c.SerperKey != "":
		return "tavily, serper"
	case c.TavilyKey != "":
		return "tavily"
	case c.SerperKey != "":
		return "serper"
	}
	return "none"
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
