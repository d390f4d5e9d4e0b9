// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/socratic-engine/internal/store"
)

var conversationsCmd = &cobra.Command{
	Use:   "conversations [document-id]",
	Short: "Dump a document's conversation history",
	Long: `Conversations prints the stored dialogue for a document in chronological
order, including the question register of each AI turn.`,
	Args: cobra.ExactArgs(1),
	RunE: runConversations,
}

func init() {
	conversationsCmd.Flags().String("data-dir", "", "data directory for the SQLite database (overrides config)")
	conversationsCmd.Flags().Bool("json", false, "output JSON instead of a transcript")

	rootCmd.AddCommand(conversationsCmd)
}

func runConversations(cmd *cobra.Command, args []string) error {
	cfg, err := engineConfig()
	if err != nil {
		return err
	}
	if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
		cfg.Store.DataDir = dataDir
	}

	st, err := store.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	turns, err := st.Turns(context.Background(), args[0])
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(turns)
	}

	if len(turns) == 0 {
		fmt.Println("No conversation found.")
		return nil
	}
	for _, turn := range turns {
		label := string(turn.Role)
		if turn.QuestionType != "" {
			label = fmt.Sprintf("%s (%s)", turn.Role, turn.QuestionType)
		}
		fmt.Fprintf(os.Stdout, "[%s] %s\n%s\n\n",
			turn.CreatedAt.Format("2006-01-02 15:04:05"), label, turn.Content)
	}
	return nil
}
