// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the engine over HTTP. It owns the JSON contracts,
// input hygiene, and the mapping from orchestrator errors to status codes.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/socratic-engine/internal/dialogue"
	"github.com/pdiddy/socratic-engine/pkg/types"
)

// Server is the HTTP boundary over the dialogue orchestrator.
type Server struct {
	orchestrator *dialogue.Orchestrator
	cfg          types.ServerConfig
	log          *zap.Logger
}

// New builds a Server. A nil logger is replaced with a no-op logger.
func New(orchestrator *dialogue.Orchestrator, cfg types.ServerConfig, log *zap.Logger) *Server {
	if cfg.MaxReflectionChars <= 0 {
		cfg.MaxReflectionChars = types.DefaultEngineConfig().Server.MaxReflectionChars
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{orchestrator: orchestrator, cfg: cfg, log: log}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/ai/reflect", s.handleReflect)
	mux.HandleFunc("POST /api/ai/ask", s.handleAsk)
	mux.HandleFunc("GET /api/ai/conversations/{documentID}", s.handleConversation)
	return s.logRequests(mux)
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully with a short drain window.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// logRequests wraps a handler with structured request logging.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// reflectRequest is the POST /api/ai/reflect body.
type reflectRequest struct {
	DocumentID string `json:"document_id"`
	UserID     string `json:"user_id"`
	Reflection string `json:"reflection"`
	Stage      string `json:"stage"`
}

// reflectResponse is the POST /api/ai/reflect result. AILevel and
// InitialQuestions are present only when access is granted; Suggestions only
// on denial.
type reflectResponse struct {
	AccessGranted    bool     `json:"access_granted"`
	QualityScore     float64  `json:"quality_score"`
	AILevel          string   `json:"ai_level,omitempty"`
	Feedback         string   `json:"feedback"`
	Suggestions      []string `json:"suggestions,omitempty"`
	InitialQuestions []string `json:"initial_questions,omitempty"`
}

func (s *Server) handleReflect(w http.ResponseWriter, r *http.Request) {
	var req reflectRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.DocumentID == "" || req.Reflection == "" {
		s.writeError(w, http.StatusBadRequest, "document_id and reflection are required")
		return
	}
	if err := checkText(req.Reflection, s.cfg.MaxReflectionChars); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.orchestrator.SubmitReflection(r.Context(), dialogue.SubmitReflectionRequest{
		DocumentID: req.DocumentID,
		UserID:     req.UserID,
		Text:       req.Reflection,
		Stage:      types.WritingStage(req.Stage),
	})
	if err != nil {
		s.writeOrchestratorError(w, err)
		return
	}

	resp := reflectResponse{
		AccessGranted:    result.AccessGranted,
		QualityScore:     result.QualityScore,
		Feedback:         result.Feedback,
		Suggestions:      result.Suggestions,
		InitialQuestions: result.InitialQuestions,
	}
	if result.AccessGranted {
		resp.AILevel = string(result.Tier)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// askRequest is the POST /api/ai/ask body. Affect is optional; when absent
// the engine infers it from the question text.
type askRequest struct {
	DocumentID string `json:"document_id"`
	Question   string `json:"question"`
	Context    string `json:"context"`
	Stage      string `json:"stage"`
	Affect     string `json:"affect,omitempty"`
}

// askResponse is the POST /api/ai/ask result.
type askResponse struct {
	Response        string   `json:"response"`
	QuestionType    string   `json:"question_type"`
	FollowUpPrompts []string `json:"follow_up_prompts"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.DocumentID == "" || req.Question == "" {
		s.writeError(w, http.StatusBadRequest, "document_id and question are required")
		return
	}
	if err := checkText(req.Question, s.cfg.MaxReflectionChars); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.orchestrator.Ask(r.Context(), dialogue.AskRequest{
		DocumentID: req.DocumentID,
		Question:   req.Question,
		Context:    req.Context,
		Stage:      types.WritingStage(req.Stage),
		Affect:     types.AffectState(req.Affect),
	})
	if err != nil {
		s.writeOrchestratorError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, askResponse{
		Response:        result.Response,
		QuestionType:    string(result.QuestionType),
		FollowUpPrompts: result.FollowUpPrompts,
	})
}

// conversationResponse is the GET /api/ai/conversations/{documentID} result.
type conversationResponse struct {
	DocumentID string                   `json:"document_id"`
	Turns      []types.ConversationTurn `json:"turns"`
}

func (s *Server) handleConversation(w http.ResponseWriter, r *http.Request) {
	documentID := r.PathValue("documentID")
	if documentID == "" {
		s.writeError(w, http.StatusBadRequest, "document id is required")
		return
	}

	turns, err := s.orchestrator.History(r.Context(), documentID)
	if err != nil {
		s.writeOrchestratorError(w, err)
		return
	}
	if turns == nil {
		turns = []types.ConversationTurn{}
	}
	s.writeJSON(w, http.StatusOK, conversationResponse{DocumentID: documentID, Turns: turns})
}

// decodeJSON parses a request body, rejecting unknown trailing content.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}

// checkText applies input hygiene: a length ceiling and rejection of script
// tags, which have no place in learner prose.
func checkText(text string, maxChars int) error {
	if len(text) > maxChars {
		return fmt.Errorf("text exceeds the %d character limit", maxChars)
	}
	if strings.Contains(strings.ToLower(text), "<script") {
		return errors.New("text contains disallowed markup")
	}
	return nil
}

// writeOrchestratorError maps orchestrator errors to HTTP status codes.
// Concurrent requests on one document get 409, missing reflections get 403,
// and completion outages get 503.
func (s *Server) writeOrchestratorError(w http.ResponseWriter, err error) {
	var cerr *dialogue.CompletionError
	switch {
	case errors.Is(err, dialogue.ErrDocumentBusy):
		s.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, dialogue.ErrReflectionRequired):
		s.writeError(w, http.StatusForbidden, err.Error())
	case errors.As(err, &cerr):
		s.writeError(w, http.StatusServiceUnavailable, "the questioning service is temporarily unavailable")
	default:
		s.log.Error("request failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encoding response", zap.Error(err))
	}
}
