// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scoring computes rule-based quality scores for learner reflections.
// The four dimension scorers are deterministic pure functions over the
// reflection text; no model calls are involved.
package scoring

import (
	"strings"

	"github.com/pdiddy/socratic-engine/pkg/types"
)

// containsAny reports whether text contains at least one of the phrases.
func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// countDistinct counts how many of the phrases appear in text.
func countDistinct(text string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if strings.Contains(text, p) {
			n++
		}
	}
	return n
}

// clamp bounds a score to [0, 10].
func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

// sentenceStats returns the sentence count and average words per sentence.
func sentenceStats(text string) (sentences int, avgWords float64) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	var words int
	for _, f := range fields {
		n := len(strings.Fields(f))
		if n == 0 {
			continue
		}
		sentences++
		words += n
	}
	if sentences == 0 {
		return 0, 0
	}
	return sentences, float64(words) / float64(sentences)
}

// DepthScore scores elaboration: explanatory connectives, hedged claims, and
// multi-clause reasoning raise the score; short single-clause text lowers it.
// Empty or whitespace-only text scores 0.
func DepthScore(text string) float64 {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return 0
	}

	var score float64
	switch {
	case containsAny(lower, depthSophisticated):
		score = 8
	case containsAny(lower, depthThoughtful):
		score = 6
	case containsAny(lower, depthDeveloping):
		score = 4
	default:
		score = 2
	}

	causal := countDistinct(lower, causalConnectives)
	if causal > 3 {
		causal = 3
	}
	score += 0.5 * float64(causal)

	if containsAny(lower, hedgedClaims) {
		score += 0.5
	}

	sentences, avgWords := sentenceStats(lower)
	commas := strings.Count(lower, ",")
	switch {
	case commas >= 3 || avgWords >= 15:
		score += 1
	case sentences <= 1 && len(strings.Fields(lower)) < 15:
		score -= 2
	case avgWords < 8:
		score -= 1
	}

	return clamp(score)
}

// SelfAwarenessScore scores first-person meta-cognition. Explicit
// self-observation ("my tendency", "I notice") scores high; generic
// help-seeking with no self-observation scores low.
func SelfAwarenessScore(text string) float64 {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return 0
	}

	high := countDistinct(lower, selfAwareHigh)

	var score float64
	switch {
	case high >= 2:
		score = 9
	case high == 1:
		score = 8
	case containsAny(lower, selfAwareModerate):
		score = 5
	case containsAny(lower, helpSeeking):
		return 2
	default:
		score = 3
	}

	refs := countDistinct(lower, selfReference)
	if refs > 2 {
		refs = 2
	}
	score += 0.5 * float64(refs)

	return clamp(score)
}

// CriticalThinkingScore scores question-asking, analysis, evaluation, and
// synthesis language. Each marker category present contributes equally;
// assertion-only text with none of them scores the floor.
func CriticalThinkingScore(text string) float64 {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return 0
	}

	var score float64
	for _, category := range [][]string{ctQuestioning, ctAnalyzing, ctEvaluating, ctSynthesizing} {
		if containsAny(lower, category) {
			score += 2.5
		}
	}
	if strings.Contains(lower, "?") && !containsAny(lower, ctQuestioning) {
		score += 1
	}
	if score == 0 {
		score = 1
	}

	return clamp(score)
}

// GrowthMindsetScore scores forward-looking, process-oriented language over
// fixed or defeatist language.
func GrowthMindsetScore(text string) float64 {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return 0
	}

	var score float64
	switch {
	case containsAny(lower, growthForward):
		score = 8
	case containsAny(lower, growthMixed):
		score = 5
	case containsAny(lower, growthFixed):
		score = 2
	default:
		score = 3
	}

	fixed := countDistinct(lower, growthFixed)
	if fixed > 3 {
		fixed = 3
	}
	score -= float64(fixed)

	return clamp(score)
}

// ScoreDimensions runs all four dimension scorers over one reflection text.
func ScoreDimensions(text string) types.DimensionScores {
	return types.DimensionScores{
		Depth:            DepthScore(text),
		SelfAwareness:    SelfAwarenessScore(text),
		CriticalThinking: CriticalThinkingScore(text),
		GrowthMindset:    GrowthMindsetScore(text),
	}
}

// InferAffect guesses the learner's affect state from reflection text. It is
// used only to select a prompt policy and never feeds back into scoring.
// Text matching nothing returns AffectNeutral.
func InferAffect(text string) types.AffectState {
	lower := strings.ToLower(text)
	for _, entry := range affectKeywords {
		if containsAny(lower, entry.keywords) {
			return types.AffectState(entry.state)
		}
	}
	return types.AffectNeutral
}
