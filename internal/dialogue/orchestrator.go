// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dialogue orchestrates the reflection gate and the Socratic
// conversation loop: reflection submission, tier lookup, policy selection,
// completion with retry, response validation with a regeneration budget, and
// atomic turn persistence.
package dialogue

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/pdiddy/socratic-engine/internal/prompt"
	"github.com/pdiddy/socratic-engine/internal/scoring"
	"github.com/pdiddy/socratic-engine/internal/tier"
	"github.com/pdiddy/socratic-engine/internal/validate"
	"github.com/pdiddy/socratic-engine/pkg/types"
)

// RetryBaseDelay is the base delay for transient completion retries. Tests
// override it to avoid real sleeps.
var RetryBaseDelay = 1 * time.Second

// Store is the persistence surface the orchestrator needs. The SQLite store
// implements it; tests may substitute fakes.
type Store interface {
	SaveReflection(ctx context.Context, r *types.Reflection) error
	LatestAccepted(ctx context.Context, documentID string) (*types.Reflection, error)
	AppendTurns(ctx context.Context, turns ...types.ConversationTurn) error
	Turns(ctx context.Context, documentID string) ([]types.ConversationTurn, error)
}

// Orchestrator wires assessment, tier control, prompt policy, completion,
// and validation into the two learner-facing operations: SubmitReflection
// and Ask. All operations on one document are serialized; concurrent
// requests fail fast with ErrDocumentBusy rather than queueing.
type Orchestrator struct {
	assessor  *scoring.Assessor
	tiers     *tier.Controller
	validator *validate.Validator
	completer Completer
	store     Store
	cfg       types.CompletionConfig
	log       *zap.Logger

	mu    sync.Mutex
	locks map[string]*semaphore.Weighted
}

// NewOrchestrator builds an Orchestrator. A nil logger is replaced with a
// no-op logger.
func NewOrchestrator(assessor *scoring.Assessor, tiers *tier.Controller, validator *validate.Validator, completer Completer, store Store, cfg types.CompletionConfig, log *zap.Logger) *Orchestrator {
	def := types.DefaultEngineConfig().Completion
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = def.MaxRetries
	}
	if cfg.MaxRegenerations <= 0 {
		cfg.MaxRegenerations = def.MaxRegenerations
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{
		assessor:  assessor,
		tiers:     tiers,
		validator: validator,
		completer: completer,
		store:     store,
		cfg:       cfg,
		log:       log,
		locks:     make(map[string]*semaphore.Weighted),
	}
}

// acquire takes the document's turn lock without blocking. It returns the
// release function, or ErrDocumentBusy when another operation holds the lock.
// Lock entries live only while a request is in flight, so the map is bounded
// by concurrency rather than by the number of documents ever seen.
func (o *Orchestrator) acquire(documentID string) (func(), error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	sem, ok := o.locks[documentID]
	if !ok {
		sem = semaphore.NewWeighted(1)
		o.locks[documentID] = sem
	}
	if !sem.TryAcquire(1) {
		return nil, ErrDocumentBusy
	}

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		sem.Release(1)
		// All acquires happen under mu, so nobody holds a stale reference
		// to this semaphore once it is released.
		delete(o.locks, documentID)
	}, nil
}

// SubmitReflectionRequest carries one reflection submission.
type SubmitReflectionRequest struct {
	DocumentID string
	UserID     string
	Text       string
	Stage      types.WritingStage
}

// SubmitReflectionResult is the outcome of a reflection submission.
type SubmitReflectionResult struct {
	AccessGranted    bool
	QualityScore     float64
	Tier             types.AccessTier
	Feedback         string
	Suggestions      []string
	InitialQuestions []string
}

// SubmitReflection assesses and persists a reflection. Every submission is
// recorded, accepted or not; acceptance grants the derived tier and returns
// opening questions matched to the tier and writing stage.
func (o *Orchestrator) SubmitReflection(ctx context.Context, req SubmitReflectionRequest) (*SubmitReflectionResult, error) {
	release, err := o.acquire(req.DocumentID)
	if err != nil {
		return nil, err
	}
	defer release()

	result := o.assessor.Assess(req.Text)

	reflection := &types.Reflection{
		ID:         uuid.NewString(),
		DocumentID: req.DocumentID,
		UserID:     req.UserID,
		Text:       req.Text,
		WordCount:  result.WordCount,
		Scores:     result.Scores,
		Composite:  result.Composite,
		Accepted:   result.Accepted,
		Tier:       result.Tier,
		CreatedAt:  time.Now().UTC(),
	}
	if err := o.store.SaveReflection(ctx, reflection); err != nil {
		return nil, err
	}

	o.log.Info("reflection assessed",
		zap.String("document_id", req.DocumentID),
		zap.Bool("accepted", result.Accepted),
		zap.Float64("composite", result.Composite),
		zap.String("tier", string(result.Tier)))

	out := &SubmitReflectionResult{
		AccessGranted: result.Accepted,
		QualityScore:  result.Composite,
		Tier:          result.Tier,
		Feedback:      result.Feedback,
		Suggestions:   result.Suggestions,
	}
	if result.Accepted {
		out.InitialQuestions = prompt.InitialQuestions(result.Tier, req.Stage)
	}
	return out, nil
}

// AskRequest carries one dialogue turn.
type AskRequest struct {
	DocumentID string
	Question   string

	// Context is an excerpt of the document the learner is working on.
	Context string

	Stage types.WritingStage

	// Affect is the learner's declared emotional state. When empty or
	// unrecognized it is inferred from the question text.
	Affect types.AffectState
}

// AskResult is one delivered Socratic response.
type AskResult struct {
	Response        string
	QuestionType    types.QuestionType
	FollowUpPrompts []string
}

// Ask runs one dialogue turn: tier gate, policy selection, completion with
// transient-failure retry, validation with a regeneration budget, and the
// fallback question when every attempt violates the content policy. Both
// turns are persisted only after a response is secured, so a failed turn
// leaves no partial conversation state.
func (o *Orchestrator) Ask(ctx context.Context, req AskRequest) (*AskResult, error) {
	release, err := o.acquire(req.DocumentID)
	if err != nil {
		return nil, err
	}
	defer release()

	current, err := o.tiers.Current(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}
	if current == types.TierNone {
		return nil, ErrReflectionRequired
	}

	affect := req.Affect
	if !affect.Valid() {
		affect = scoring.InferAffect(req.Question)
	}
	policy := prompt.SelectPolicy(req.Stage, affect, current)

	response, err := o.generateValid(ctx, req, policy)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	userTurn := types.ConversationTurn{
		ID:         uuid.NewString(),
		DocumentID: req.DocumentID,
		Role:       types.RoleUser,
		Content:    req.Question,
		CreatedAt:  now,
	}
	assistantTurn := types.ConversationTurn{
		ID:           uuid.NewString(),
		DocumentID:   req.DocumentID,
		Role:         types.RoleAssistant,
		Content:      response,
		QuestionType: policy.Ceiling,
		CreatedAt:    now.Add(time.Millisecond),
	}
	if err := o.store.AppendTurns(ctx, userTurn, assistantTurn); err != nil {
		return nil, err
	}

	return &AskResult{
		Response:        response,
		QuestionType:    policy.Ceiling,
		FollowUpPrompts: prompt.FollowUps(current),
	}, nil
}

// generateValid produces a policy-compliant response. Invalid responses are
// regenerated with a corrective notice up to the regeneration budget; once
// the budget is spent the canned fallback question is used so the learner
// always receives a question-shaped reply.
func (o *Orchestrator) generateValid(ctx context.Context, req AskRequest, policy types.PromptPolicy) (string, error) {
	for attempt := 0; attempt <= o.cfg.MaxRegenerations; attempt++ {
		turnPrompt, err := prompt.BuildTurnPrompt(req.Question, req.Context, policy, attempt > 0)
		if err != nil {
			return "", err
		}

		response, err := o.complete(ctx, turnPrompt)
		if err != nil {
			return "", err
		}

		verdict := o.validator.Check(response)
		if verdict.Valid {
			return response, nil
		}
		o.log.Warn("response rejected by content policy",
			zap.String("document_id", req.DocumentID),
			zap.Int("attempt", attempt+1),
			zap.String("reason", verdict.Reason))
	}

	o.log.Warn("regeneration budget exhausted, using fallback question",
		zap.String("document_id", req.DocumentID))
	return prompt.FallbackQuestion(policy), nil
}

// complete calls the completion capability, retrying transient failures with
// exponential backoff up to the configured retry budget.
func (o *Orchestrator) complete(ctx context.Context, turnPrompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= o.cfg.MaxRetries; attempt++ {
		response, err := o.completer.Complete(ctx, turnPrompt)
		if err == nil {
			return response, nil
		}
		lastErr = err

		if attempt >= o.cfg.MaxRetries {
			break
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
	}
	return "", &CompletionError{Attempts: o.cfg.MaxRetries + 1, Err: lastErr}
}

// History returns a document's conversation in chronological order.
func (o *Orchestrator) History(ctx context.Context, documentID string) ([]types.ConversationTurn, error) {
	return o.store.Turns(ctx, documentID)
}
