package prompt

import (
	"strings"
	"testing"

	"github.com/pdiddy/socratic-engine/pkg/types"
)

var allStages = []types.WritingStage{
	types.StageBrainstorming, types.StageDrafting, types.StageRevising, types.StageEditing,
}

var allAffects = []types.AffectState{
	types.AffectOverwhelmed, types.AffectFrustrated, types.AffectConfident,
	types.AffectCurious, types.AffectNeutral,
}

var grantedTiers = []types.AccessTier{
	types.TierBasic, types.TierStandard, types.TierAdvanced,
}

func TestSelectPolicyTotal(t *testing.T) {
	for _, stage := range allStages {
		for _, affect := range allAffects {
			for _, tier := range grantedTiers {
				policy := SelectPolicy(stage, affect, tier)
				if policy.MaxQuestions < 1 || policy.MaxQuestions > 3 {
					t.Errorf("(%s,%s,%s): MaxQuestions = %d, want 1-3", stage, affect, tier, policy.MaxQuestions)
				}
				if policy.Tone == "" {
					t.Errorf("(%s,%s,%s): empty tone", stage, affect, tier)
				}
				if policy.Focus == "" {
					t.Errorf("(%s,%s,%s): empty focus", stage, affect, tier)
				}
				if policy.Ceiling == "" {
					t.Errorf("(%s,%s,%s): empty ceiling", stage, affect, tier)
				}
			}
		}
	}
}

func TestSelectPolicyUnknownInputsNormalize(t *testing.T) {
	policy := SelectPolicy("daydreaming", "elated", "platinum")
	if policy.MaxQuestions < 1 {
		t.Errorf("unknown inputs should still yield a usable policy, got %+v", policy)
	}
	if policy.Ceiling != types.QuestionClarifying {
		t.Errorf("unknown tier should bottom out at clarifying, got %s", policy.Ceiling)
	}
	if policy.Focus != stageFocus[types.StageDrafting] {
		t.Errorf("unknown stage should normalize to drafting focus, got %q", policy.Focus)
	}
}

func TestSelectPolicyAffectOverrides(t *testing.T) {
	overwhelmed := SelectPolicy(types.StageRevising, types.AffectOverwhelmed, types.TierAdvanced)
	if overwhelmed.MaxQuestions != 1 {
		t.Errorf("overwhelmed MaxQuestions = %d, want 1", overwhelmed.MaxQuestions)
	}
	if overwhelmed.Ceiling != types.QuestionClarifying {
		t.Errorf("overwhelmed ceiling = %s, want clarifying even at advanced tier", overwhelmed.Ceiling)
	}
	if !strings.Contains(overwhelmed.Tone, "supportive") {
		t.Errorf("overwhelmed tone = %q, want supportive", overwhelmed.Tone)
	}

	frustrated := SelectPolicy(types.StageDrafting, types.AffectFrustrated, types.TierStandard)
	if frustrated.MaxQuestions != 2 {
		t.Errorf("frustrated MaxQuestions = %d, want 2", frustrated.MaxQuestions)
	}
	if !frustrated.AcknowledgeEmotion {
		t.Error("frustrated policy should acknowledge emotion first")
	}

	confident := SelectPolicy(types.StageDrafting, types.AffectConfident, types.TierAdvanced)
	if confident.MaxQuestions != 3 {
		t.Errorf("confident MaxQuestions = %d, want 3", confident.MaxQuestions)
	}
	if confident.Ceiling != types.QuestionCritical {
		t.Errorf("confident ceiling = %s, want critical at advanced tier", confident.Ceiling)
	}

	curious := SelectPolicy(types.StageBrainstorming, types.AffectCurious, types.TierStandard)
	if !curious.FollowTangents {
		t.Error("curious policy should follow tangents")
	}
}

func TestSelectPolicyTierBoundsCeiling(t *testing.T) {
	basic := SelectPolicy(types.StageRevising, types.AffectConfident, types.TierBasic)
	if basic.Ceiling != types.QuestionClarifying {
		t.Errorf("basic tier ceiling = %s, want clarifying regardless of affect", basic.Ceiling)
	}
	standard := SelectPolicy(types.StageRevising, types.AffectNeutral, types.TierStandard)
	if standard.Ceiling != types.QuestionAnalytical {
		t.Errorf("standard tier ceiling = %s, want analytical", standard.Ceiling)
	}
}

func TestBuildTurnPrompt(t *testing.T) {
	policy := SelectPolicy(types.StageDrafting, types.AffectNeutral, types.TierStandard)
	out, err := BuildTurnPrompt("How do I start my second paragraph?", "An essay on tidal power.", policy, false)
	if err != nil {
		t.Fatalf("BuildTurnPrompt: %v", err)
	}
	for _, want := range []string{
		"How do I start my second paragraph?",
		"An essay on tidal power.",
		"analytical questions",
		"at most 3 questions",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("prompt missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "previous reply was rejected") {
		t.Error("non-regeneration prompt should not carry the corrective notice")
	}
}

func TestBuildTurnPromptRegeneration(t *testing.T) {
	policy := SelectPolicy(types.StageEditing, types.AffectOverwhelmed, types.TierBasic)
	out, err := BuildTurnPrompt("q", "ctx", policy, true)
	if err != nil {
		t.Fatalf("BuildTurnPrompt: %v", err)
	}
	if !strings.Contains(out, "previous reply was rejected") {
		t.Error("regeneration prompt should carry the corrective notice")
	}
	if !strings.Contains(out, "at most 1 question,") {
		t.Errorf("single-question budget should render without plural:\n%s", out)
	}
}

func TestInitialQuestionsAndFollowUps(t *testing.T) {
	for _, tier := range grantedTiers {
		for _, stage := range allStages {
			qs := InitialQuestions(tier, stage)
			if len(qs) < 3 {
				t.Errorf("InitialQuestions(%s,%s) returned %d questions, want >= 3", tier, stage, len(qs))
			}
			for _, q := range qs {
				if !strings.Contains(q, "?") {
					t.Errorf("initial question %q has no question mark", q)
				}
			}
		}
		for _, f := range FollowUps(tier) {
			if !strings.Contains(f, "?") {
				t.Errorf("follow-up %q has no question mark", f)
			}
		}
	}
	if len(FollowUps(types.TierNone)) == 0 {
		t.Error("FollowUps should fall back to the basic bank for unknown tiers")
	}
}

func TestFallbackQuestionsAreQuestionShaped(t *testing.T) {
	for _, tier := range grantedTiers {
		policy := SelectPolicy(types.StageDrafting, types.AffectNeutral, tier)
		q := FallbackQuestion(policy)
		if !strings.Contains(q, "?") {
			t.Errorf("fallback for %s has no question mark: %q", tier, q)
		}
	}
}
