// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists Reflection and ConversationTurn records in SQLite.
// The engine writes records for later analytics and reads back only two
// projections: the latest accepted reflection per document and the ordered
// conversation history.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/socratic-engine/pkg/types"
)

const dbFile = "socratic.db"

// Store manages the engine's SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the database at dataDir/socratic.db and creates
// the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = types.DefaultEngineConfig().Store.DataDir
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS reflections (
			id TEXT PRIMARY KEY,
			document_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			content TEXT NOT NULL,
			word_count INTEGER NOT NULL,
			depth REAL NOT NULL,
			self_awareness REAL NOT NULL,
			critical_thinking REAL NOT NULL,
			growth_mindset REAL NOT NULL,
			composite REAL NOT NULL,
			accepted INTEGER NOT NULL,
			tier TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reflections_document ON reflections(document_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS conversation_turns (
			id TEXT PRIMARY KEY,
			document_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			question_type TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_turns_document ON conversation_turns(document_id, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveReflection persists one immutable reflection record. Records are never
// updated; resubmission inserts a new row.
func (s *Store) SaveReflection(ctx context.Context, r *types.Reflection) error {
	accepted := 0
	if r.Accepted {
		accepted = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reflections
			(id, document_id, user_id, content, word_count,
			 depth, self_awareness, critical_thinking, growth_mindset,
			 composite, accepted, tier, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.DocumentID, r.UserID, r.Text, r.WordCount,
		r.Scores.Depth, r.Scores.SelfAwareness, r.Scores.CriticalThinking, r.Scores.GrowthMindset,
		r.Composite, accepted, string(r.Tier), r.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting reflection %s: %w", r.ID, err)
	}
	return nil
}

// LatestAccepted returns the most recent accepted reflection for a document,
// or nil when the document has none. Denied reflections are skipped, so they
// never change the derived tier.
func (s *Store) LatestAccepted(ctx context.Context, documentID string) (*types.Reflection, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, document_id, user_id, content, word_count,
				depth, self_awareness, critical_thinking, growth_mindset,
				composite, tier, created_at
		 FROM reflections
		 WHERE document_id = ? AND accepted = 1
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT 1`,
		documentID,
	)

	var r types.Reflection
	var tierStr, createdAt string
	err := row.Scan(&r.ID, &r.DocumentID, &r.UserID, &r.Text, &r.WordCount,
		&r.Scores.Depth, &r.Scores.SelfAwareness, &r.Scores.CriticalThinking, &r.Scores.GrowthMindset,
		&r.Composite, &tierStr, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest accepted reflection: %w", err)
	}

	r.Accepted = true
	r.Tier = types.AccessTier(tierStr)
	if t, perr := time.Parse(time.RFC3339Nano, createdAt); perr == nil {
		r.CreatedAt = t
	}
	return &r, nil
}

// AppendTurns persists a set of conversation turns in one transaction. The
// orchestrator uses this to write the user and assistant turns of a dialogue
// exchange together, so a cancelled generation never leaves a partial turn.
func (s *Store) AppendTurns(ctx context.Context, turns ...types.ConversationTurn) error {
	if len(turns) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO conversation_turns (id, document_id, role, content, question_type, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, turn := range turns {
		_, err := stmt.ExecContext(ctx,
			turn.ID, turn.DocumentID, string(turn.Role), turn.Content,
			string(turn.QuestionType), turn.CreatedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("inserting turn %s: %w", turn.ID, err)
		}
	}

	return tx.Commit()
}

// Turns returns a document's conversation turns in chronological order.
func (s *Store) Turns(ctx context.Context, documentID string) ([]types.ConversationTurn, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, document_id, role, content, question_type, created_at
		 FROM conversation_turns
		 WHERE document_id = ?
		 ORDER BY created_at ASC, rowid ASC`,
		documentID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying conversation turns: %w", err)
	}
	defer rows.Close()

	var turns []types.ConversationTurn
	for rows.Next() {
		var turn types.ConversationTurn
		var role, questionType, createdAt string
		if err := rows.Scan(&turn.ID, &turn.DocumentID, &role, &turn.Content, &questionType, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning turn: %w", err)
		}
		turn.Role = types.TurnRole(role)
		turn.QuestionType = types.QuestionType(questionType)
		if t, perr := time.Parse(time.RFC3339Nano, createdAt); perr == nil {
			turn.CreatedAt = t
		}
		turns = append(turns, turn)
	}
	return turns, rows.Err()
}
