// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// AccessTier is the sophistication level of AI questioning a learner has
// unlocked for a document. It is always derived from the latest accepted
// Reflection, never stored as an independently mutable flag.
type AccessTier string

const (
	TierNone     AccessTier = "none"
	TierBasic    AccessTier = "basic"
	TierStandard AccessTier = "standard"
	TierAdvanced AccessTier = "advanced"
)

// Valid reports whether t is one of the defined tiers.
func (t AccessTier) Valid() bool {
	switch t {
	case TierNone, TierBasic, TierStandard, TierAdvanced:
		return true
	}
	return false
}

// WritingStage is the phase of the writing process a document is in. It is
// supplied by the caller from document context, not inferred by the engine.
type WritingStage string

const (
	StageBrainstorming WritingStage = "brainstorming"
	StageDrafting      WritingStage = "drafting"
	StageRevising      WritingStage = "revising"
	StageEditing       WritingStage = "editing"
)

// Valid reports whether s is one of the defined stages.
func (s WritingStage) Valid() bool {
	switch s {
	case StageBrainstorming, StageDrafting, StageRevising, StageEditing:
		return true
	}
	return false
}

// AffectState is the learner's declared or inferred emotional state. It only
// shapes prompt tone and question count; it never alters reflection scoring.
type AffectState string

const (
	AffectOverwhelmed AffectState = "overwhelmed"
	AffectFrustrated  AffectState = "frustrated"
	AffectConfident   AffectState = "confident"
	AffectCurious     AffectState = "curious"
	AffectNeutral     AffectState = "neutral"
)

// Valid reports whether a is one of the defined affect states.
func (a AffectState) Valid() bool {
	switch a {
	case AffectOverwhelmed, AffectFrustrated, AffectConfident, AffectCurious, AffectNeutral:
		return true
	}
	return false
}

// QuestionType labels the register of a delivered Socratic response.
type QuestionType string

const (
	QuestionClarifying QuestionType = "clarifying"
	QuestionAnalytical QuestionType = "analytical"
	QuestionCritical   QuestionType = "critical"
)

// TurnRole identifies the author of a conversation turn.
type TurnRole string

const (
	RoleUser      TurnRole = "user"
	RoleAssistant TurnRole = "assistant"
)

// DimensionScores holds the four rule-based quality dimension scores for a
// reflection, each bounded to [0, 10].
type DimensionScores struct {
	Depth            float64 `json:"depth" yaml:"depth"`
	SelfAwareness    float64 `json:"self_awareness" yaml:"self_awareness"`
	CriticalThinking float64 `json:"critical_thinking" yaml:"critical_thinking"`
	GrowthMindset    float64 `json:"growth_mindset" yaml:"growth_mindset"`
}

// Reflection is a learner's free-text statement of current thinking,
// submitted against a document before AI dialogue access. Records are
// immutable once scored: resubmission creates a new Reflection, it never
// mutates an old one.
type Reflection struct {
	// ID is a UUID assigned at submission.
	ID string `json:"id" yaml:"id"`

	// DocumentID is the document the reflection was submitted against.
	DocumentID string `json:"document_id" yaml:"document_id"`

	// UserID identifies the submitting learner.
	UserID string `json:"user_id" yaml:"user_id"`

	// Text is the reflection content as submitted.
	Text string `json:"text" yaml:"text"`

	// WordCount is the whitespace-tokenized word count of Text.
	WordCount int `json:"word_count" yaml:"word_count"`

	// Scores holds the per-dimension scores. Zero for reflections rejected
	// on word count alone, where dimension scoring is skipped.
	Scores DimensionScores `json:"scores" yaml:"scores"`

	// Composite is the weighted aggregate of the dimension scores in [0, 10].
	Composite float64 `json:"composite" yaml:"composite"`

	// Accepted records whether the reflection passed the gate and the
	// denial threshold. Denied reflections are kept for analytics but do
	// not change a document's current tier.
	Accepted bool `json:"accepted" yaml:"accepted"`

	// Tier is the access tier granted by this reflection. TierNone unless
	// Accepted is true.
	Tier AccessTier `json:"tier" yaml:"tier"`

	// CreatedAt is the submission time.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// ConversationTurn is one message in a document's dialogue. Turns form an
// append-only sequence per document ordered by CreatedAt.
type ConversationTurn struct {
	// ID is a UUID assigned when the turn is persisted.
	ID string `json:"id" yaml:"id"`

	// DocumentID is the document whose conversation this turn belongs to.
	DocumentID string `json:"document_id" yaml:"document_id"`

	// Role is "user" or "assistant".
	Role TurnRole `json:"role" yaml:"role"`

	// Content is the message text.
	Content string `json:"content" yaml:"content"`

	// QuestionType labels assistant turns; empty for user turns.
	QuestionType QuestionType `json:"question_type,omitempty" yaml:"question_type,omitempty"`

	// CreatedAt is the persistence time and the ordering key.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// PromptPolicy is the per-turn prompt construction policy selected from
// (WritingStage, AffectState, AccessTier). It is a value object recomputed on
// every turn and never persisted.
type PromptPolicy struct {
	// MaxQuestions caps how many questions a single response may pose.
	MaxQuestions int

	// Tone describes the register the response should take.
	Tone string

	// Ceiling is the most sophisticated question register the response may
	// reach, bounded above by the access tier.
	Ceiling QuestionType

	// Focus is the stage-driven topic of questioning, e.g. "divergent
	// exploration" for brainstorming.
	Focus string

	// AcknowledgeEmotion directs the response to name the learner's
	// emotional state before questioning.
	AcknowledgeEmotion bool

	// FollowTangents permits the response to pursue side threads the
	// learner raises rather than steering back to the stage focus.
	FollowTangents bool
}
