// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the socratic-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/socratic-engine/internal/secrets"
	"github.com/pdiddy/socratic-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the socratic-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "socratic-engine",
	Short: "Reflection-gated Socratic questioning for student writers",
	Long: `socratic-engine gates AI writing assistance behind reflection quality.
Students submit a reflection on their thinking; a deterministic assessor
scores it and grants a questioning tier. The AI then responds only with
Socratic questions matched to the student's tier, writing stage, and
emotional state, and every response is validated against a content policy
that forbids generated prose.

Run "serve" to start the HTTP service, or "assess" to score a reflection
offline.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./socratic-engine.yaml or ~/.config/socratic-engine/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("socratic-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "socratic-engine"))
		}
	}

	viper.SetEnvPrefix("SOCRATIC_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// engineConfig resolves the effective configuration: defaults, overlaid by
// the config file, with the API key falling back to the environment and the
// loaded secrets.
func engineConfig() (types.EngineConfig, error) {
	cfg := types.DefaultEngineConfig()

	if path := viper.ConfigFileUsed(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if cfg.Completion.APIKey == "" {
		cfg.Completion.APIKey = viper.GetString("anthropic_api_key")
	}
	if cfg.Completion.APIKey == "" {
		cfg.Completion.APIKey = loadedSecrets["anthropic-api-key"]
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
