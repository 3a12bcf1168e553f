// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the sage-lens CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/sage-lens/internal/config"
	"github.com/pdiddy/sage-lens/internal/logger"
	"github.com/pdiddy/sage-lens/internal/secrets"
	"github.com/pdiddy/sage-lens/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Process-wide state established in PersistentPreRunE.
var (
	credentialChain config.Chain
	log             *zap.Logger
)

// rootCmd is the base command for the sage-lens CLI.
var rootCmd = &cobra.Command{
	Use:   "sage-lens",
	Short: "Multi-provider research assistant",
	Long: `sage-lens researches a topic by querying web search (Tavily, Serper) and
YouTube in parallel, asking every configured LLM provider (OpenAI, Anthropic,
DeepSeek, Gemini) for a research document, and keeping the most detailed one.

Enriched mode adds a polish pass and an analysis pass using the refinement
provider. Credentials are read from .secrets/, the environment, or the
"credentials" section of the config file, in that order.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		secretsDir, _ := cmd.Flags().GetString("secrets")
		s, err := secrets.Load(secretsDir)
		if err != nil {
			return err
		}
		credentialChain = config.Chain{
			config.SecretsProvider{Secrets: s},
			config.EnvProvider{},
			config.ViperProvider{V: viper.GetViper()},
		}

		log, err = logger.New(types.LogConfig{
			Level:       viper.GetString("log.level"),
			File:        viper.GetString("log.file"),
			Development: viper.GetBool("log.development"),
		})
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		if len(s) > 0 {
			log.Debug("loaded secrets", zap.Strings("keys", s.Keys()))
		}
		if f := viper.ConfigFileUsed(); f != "" {
			log.Debug("using config file", zap.String("path", f))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./sage-lens.yaml or ~/.config/sage-lens/sage-lens.yaml)")
	rootCmd.PersistentFlags().String("secrets", ".secrets/", "directory of credential files")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	config.SetDefaults(viper.GetViper())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("sage-lens")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "sage-lens"))
		}
	}

	viper.SetEnvPrefix("SAGE_LENS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "Error reading config file:", err)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
