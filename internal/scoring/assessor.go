// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/socratic-engine/internal/tier"
	"github.com/pdiddy/socratic-engine/pkg/types"
)

// Assessor turns reflection text into an accept/reject decision with a
// composite score and tier. It performs pure text analysis only; it never
// calls the completion capability.
type Assessor struct {
	cfg   types.AssessmentConfig
	tiers types.TierConfig
}

// NewAssessor builds an Assessor, applying defaults for unset config values.
func NewAssessor(cfg types.AssessmentConfig, tiers types.TierConfig) *Assessor {
	def := types.DefaultEngineConfig()
	if cfg.MinWords <= 0 {
		cfg.MinWords = def.Assessment.MinWords
	}
	if cfg.DenialThreshold <= 0 {
		cfg.DenialThreshold = def.Assessment.DenialThreshold
	}
	// Each weight defaults independently, so a config that sets only some
	// weights never silently zeroes the others.
	if cfg.DepthWeight <= 0 {
		cfg.DepthWeight = def.Assessment.DepthWeight
	}
	if cfg.SelfAwarenessWeight <= 0 {
		cfg.SelfAwarenessWeight = def.Assessment.SelfAwarenessWeight
	}
	if cfg.CriticalThinkingWeight <= 0 {
		cfg.CriticalThinkingWeight = def.Assessment.CriticalThinkingWeight
	}
	if cfg.GrowthMindsetWeight <= 0 {
		cfg.GrowthMindsetWeight = def.Assessment.GrowthMindsetWeight
	}
	if tiers.BasicMin <= 0 {
		tiers = def.Tiers
	}
	return &Assessor{cfg: cfg, tiers: tiers}
}

// Result is the tagged outcome of assessing one reflection. Exactly one of
// Accepted or Rejected semantics applies, selected by the Accepted field.
type Result struct {
	// Accepted reports whether the reflection passed both the word-count
	// gate and the denial threshold.
	Accepted bool `json:"accepted" yaml:"accepted"`

	// WordCount is the whitespace-tokenized word count.
	WordCount int `json:"word_count" yaml:"word_count"`

	// Scores holds the dimension breakdown. Zero when the word-count gate
	// short-circuited assessment.
	Scores types.DimensionScores `json:"scores" yaml:"scores"`

	// Composite is the weighted aggregate score in [0, 10]. Zero when the
	// word-count gate short-circuited assessment.
	Composite float64 `json:"composite" yaml:"composite"`

	// Tier is the granted access tier. TierNone on rejection.
	Tier types.AccessTier `json:"tier" yaml:"tier"`

	// Feedback is the learner-facing message for this outcome.
	Feedback string `json:"feedback" yaml:"feedback"`

	// Suggestions holds targeted improvement prompts on rejection, one per
	// weakest dimension. Empty on acceptance.
	Suggestions []string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// dimensionSuggestions maps each dimension to its improvement prompt.
var dimensionSuggestions = map[string]string{
	"depth":             "Explain the reasoning behind your choices: what led you to this approach, and why?",
	"self_awareness":    "Describe what you notice about your own writing habits or tendencies on this piece.",
	"critical_thinking": "Question one of your own claims: what does it assume, and what might a skeptic say?",
	"growth_mindset":    "Name one thing you are learning from this draft and how it will shape your next step.",
}

// Assess scores one reflection. Reflections under the minimum word count are
// rejected without dimension scoring. Otherwise the weighted composite
// decides acceptance, and accepted reflections carry their derived tier.
func (a *Assessor) Assess(text string) Result {
	wordCount := len(strings.Fields(text))

	if wordCount < a.cfg.MinWords {
		return Result{
			Accepted:  false,
			WordCount: wordCount,
			Tier:      types.TierNone,
			Feedback: fmt.Sprintf(
				"Your reflection needs more depth. Aim for at least %d words to show your thinking process.",
				a.cfg.MinWords),
			Suggestions: []string{
				"What is the main point you're trying to make?",
				"What challenges are you facing with this topic?",
				"What questions do you have about your approach?",
			},
		}
	}

	scores := ScoreDimensions(text)
	composite := a.cfg.DepthWeight*scores.Depth +
		a.cfg.SelfAwarenessWeight*scores.SelfAwareness +
		a.cfg.CriticalThinkingWeight*scores.CriticalThinking +
		a.cfg.GrowthMindsetWeight*scores.GrowthMindset

	if composite < a.cfg.DenialThreshold {
		return Result{
			Accepted:    false,
			WordCount:   wordCount,
			Scores:      scores,
			Composite:   composite,
			Tier:        types.TierNone,
			Feedback:    "Take a moment to think deeper about your approach. What are you really trying to accomplish?",
			Suggestions: weakestSuggestions(scores),
		}
	}

	granted := tier.For(composite, a.tiers)
	return Result{
		Accepted:  true,
		WordCount: wordCount,
		Scores:    scores,
		Composite: composite,
		Tier:      granted,
		Feedback:  acceptanceFeedback(granted),
	}
}

// weakestSuggestions returns 2-4 improvement prompts, ordered weakest
// dimension first. Ties break on a fixed dimension order so the output is
// deterministic.
func weakestSuggestions(scores types.DimensionScores) []string {
	type dim struct {
		name  string
		score float64
	}
	dims := []dim{
		{"depth", scores.Depth},
		{"self_awareness", scores.SelfAwareness},
		{"critical_thinking", scores.CriticalThinking},
		{"growth_mindset", scores.GrowthMindset},
	}
	sort.SliceStable(dims, func(i, j int) bool { return dims[i].score < dims[j].score })

	var suggestions []string
	for _, d := range dims {
		if len(suggestions) >= 4 {
			break
		}
		if d.score < 6 || len(suggestions) < 2 {
			suggestions = append(suggestions, dimensionSuggestions[d.name])
		}
	}
	return suggestions
}

// acceptanceFeedback picks the learner-facing message for a granted tier.
func acceptanceFeedback(tier types.AccessTier) string {
	switch tier {
	case types.TierAdvanced:
		return "Excellent reflection! Your thoughtful analysis shows you're ready for advanced questioning."
	case types.TierStandard:
		return "Good reflection. You're thinking carefully about your writing process."
	default:
		return "You're starting to reflect on your process. I'm here to help you think through your ideas."
	}
}
