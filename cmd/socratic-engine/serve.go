// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/socratic-engine/internal/dialogue"
	"github.com/pdiddy/socratic-engine/internal/logging"
	"github.com/pdiddy/socratic-engine/internal/scoring"
	"github.com/pdiddy/socratic-engine/internal/server"
	"github.com/pdiddy/socratic-engine/internal/store"
	"github.com/pdiddy/socratic-engine/internal/tier"
	"github.com/pdiddy/socratic-engine/internal/validate"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP service",
	Long: `Serve starts the HTTP service exposing reflection submission, Socratic
dialogue, and conversation history. The service persists reflections and
conversations to a local SQLite database and calls the Claude API for
question generation.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides config)")
	serveCmd.Flags().String("data-dir", "", "data directory for the SQLite database (overrides config)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := engineConfig()
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
		cfg.Store.DataDir = dataDir
	}
	if err := tier.ValidateThresholds(cfg.Tiers); err != nil {
		return err
	}

	debug, _ := rootCmd.PersistentFlags().GetBool("debug")
	log, err := logging.New(debug)
	if err != nil {
		return err
	}
	defer log.Sync()

	st, err := store.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	orchestrator := dialogue.NewOrchestrator(
		scoring.NewAssessor(cfg.Assessment, cfg.Tiers),
		tier.NewController(st, cfg.Tiers),
		validate.New(cfg.Validation),
		dialogue.NewClaudeBackend(cfg.Completion),
		st,
		cfg.Completion,
		log,
	)
	srv := server.New(orchestrator, cfg.Server, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
