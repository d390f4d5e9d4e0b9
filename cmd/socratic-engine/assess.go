// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/socratic-engine/internal/scoring"
)

var assessCmd = &cobra.Command{
	Use:   "assess [file]",
	Short: "Score a reflection offline",
	Long: `Assess scores a reflection without persisting anything or touching the
network. It reads the reflection text from the given file, or from stdin
when no file is provided, and prints the dimension scores, composite, and
granted tier.

Useful for tuning assessment thresholds against sample reflections.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAssess,
}

func init() {
	assessCmd.Flags().Bool("json", false, "output JSON instead of YAML")

	rootCmd.AddCommand(assessCmd)
}

func runAssess(cmd *cobra.Command, args []string) error {
	cfg, err := engineConfig()
	if err != nil {
		return err
	}

	var data []byte
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading reflection file: %w", err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading reflection from stdin: %w", err)
		}
	}

	assessor := scoring.NewAssessor(cfg.Assessment, cfg.Tiers)
	result := assessor.Assess(string(data))

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	out, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}
