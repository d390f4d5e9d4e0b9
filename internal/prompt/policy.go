// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt selects per-turn prompt policies and builds the prompts sent
// to the completion capability. Policy selection is a total function over
// (WritingStage, AffectState, AccessTier): every combination, including
// unrecognized values, yields a defined policy.
package prompt

import "github.com/pdiddy/socratic-engine/pkg/types"

// stageFocus maps each writing stage to the topic of questioning.
var stageFocus = map[types.WritingStage]string{
	types.StageBrainstorming: "divergent exploration of the topic and possible angles",
	types.StageDrafting:      "structure and the connection between claims and evidence",
	types.StageRevising:      "analysis and evaluation of the argument's logic and organization",
	types.StageEditing:       "precision, clarity, and consistency at the sentence level",
}

// tierCeiling maps each access tier to the most sophisticated question
// register it permits.
var tierCeiling = map[types.AccessTier]types.QuestionType{
	types.TierBasic:    types.QuestionClarifying,
	types.TierStandard: types.QuestionAnalytical,
	types.TierAdvanced: types.QuestionCritical,
}

// SelectPolicy maps (stage, affect, tier) to a PromptPolicy. The affect state
// overrides tone and question budget regardless of stage; the tier bounds the
// complexity ceiling. Unrecognized inputs normalize to drafting, neutral, and
// basic rather than failing, so the function is total by construction.
func SelectPolicy(stage types.WritingStage, affect types.AffectState, tier types.AccessTier) types.PromptPolicy {
	if !stage.Valid() {
		stage = types.StageDrafting
	}
	if !affect.Valid() {
		affect = types.AffectNeutral
	}
	ceiling, ok := tierCeiling[tier]
	if !ok {
		ceiling = types.QuestionClarifying
	}

	policy := types.PromptPolicy{
		MaxQuestions: 3,
		Tone:         "warm and inquisitive",
		Ceiling:      ceiling,
		Focus:        stageFocus[stage],
	}

	switch affect {
	case types.AffectOverwhelmed:
		policy.MaxQuestions = 1
		policy.Tone = "supportive and calming"
		policy.Ceiling = types.QuestionClarifying
	case types.AffectFrustrated:
		policy.MaxQuestions = 2
		policy.Tone = "encouraging"
		policy.AcknowledgeEmotion = true
		if policy.Ceiling == types.QuestionCritical {
			policy.Ceiling = types.QuestionAnalytical
		}
	case types.AffectConfident:
		policy.MaxQuestions = 3
		policy.Tone = "intellectually stimulating"
	case types.AffectCurious:
		policy.MaxQuestions = 3
		policy.Tone = "exploratory"
		policy.FollowTangents = true
	case types.AffectNeutral:
		// Tier-driven defaults: basic access keeps the budget small.
		if tier == types.TierBasic {
			policy.MaxQuestions = 2
		}
	}

	return policy
}

// QuestionTypeFor labels the register of a response produced under a tier.
func QuestionTypeFor(tier types.AccessTier) types.QuestionType {
	if qt, ok := tierCeiling[tier]; ok {
		return qt
	}
	return types.QuestionClarifying
}
