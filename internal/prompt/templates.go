// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/pdiddy/socratic-engine/pkg/types"
)

// SystemPrompt is the standing instruction sent with every completion
// request. It encodes the questions-only contract that the response
// validator enforces on the way back.
const SystemPrompt = `You are a Socratic writing partner designed to help students develop stronger thinking
through thoughtful questioning. Your role is to guide students to discover insights
themselves, not to provide answers or write content for them.

Core principles:
1. NEVER write content for the student - no thesis statements, paragraphs, or sentences
2. ALWAYS respond with questions that prompt deeper thinking
3. Focus on the student's reasoning process, not the final product
4. Help them identify gaps in their logic or evidence
5. Encourage them to explore multiple perspectives

Remember: you are cultivating independent thinkers, not dependent users.`

// turnPromptTmpl renders the per-turn prompt from the selected policy, the
// learner's question, and the document context.
var turnPromptTmpl = template.Must(template.New("turn").Parse(`{{.System}}

The student is working on this writing:
"{{.Context}}"

They asked: "{{.Question}}"

Focus your questioning on {{.Focus}}.
{{.RegisterInstruction}}
{{- if .AcknowledgeEmotion}}
Briefly acknowledge that the student sounds frustrated before asking anything.
{{- end}}
{{- if .FollowTangents}}
If the student raises a side thread, it is fine to pursue it.
{{- end}}

Respond with at most {{.MaxQuestions}} question{{if gt .MaxQuestions 1}}s{{end}}, in a {{.Tone}} tone,
that guide the student to find their own answer. Do not provide direct answers
or write any content for them.`))

// registerInstructions maps each question register to its instruction line.
var registerInstructions = map[types.QuestionType]string{
	types.QuestionClarifying: "Ask simple clarifying questions that help them articulate their thoughts better.",
	types.QuestionAnalytical: "Ask analytical questions that help them examine their reasoning and evidence.",
	types.QuestionCritical:   "Ask sophisticated questions that challenge assumptions and explore deeper implications.",
}

// regenerationNotice is appended to the prompt when a previous attempt
// violated the content policy.
const regenerationNotice = `

Your previous reply was rejected because it contained content instead of
questions. Reply with questions only. Do not write, suggest, or complete any
text for the student.`

// BuildTurnPrompt renders the completion prompt for one dialogue turn.
// When regenerate is true a corrective notice is appended, used after a
// content-policy violation.
func BuildTurnPrompt(question, context string, policy types.PromptPolicy, regenerate bool) (string, error) {
	data := struct {
		System              string
		Context             string
		Question            string
		Focus               string
		RegisterInstruction string
		Tone                string
		MaxQuestions        int
		AcknowledgeEmotion  bool
		FollowTangents      bool
	}{
		System:              SystemPrompt,
		Context:             context,
		Question:            question,
		Focus:               policy.Focus,
		RegisterInstruction: registerInstructions[policy.Ceiling],
		Tone:                policy.Tone,
		MaxQuestions:        policy.MaxQuestions,
		AcknowledgeEmotion:  policy.AcknowledgeEmotion,
		FollowTangents:      policy.FollowTangents,
	}

	var buf bytes.Buffer
	if err := turnPromptTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering turn prompt: %w", err)
	}
	out := buf.String()
	if regenerate {
		out += regenerationNotice
	}
	return out, nil
}

// Initial question banks by tier, returned with an accepted reflection so
// the learner has somewhere to start.
var initialQuestionsByTier = map[types.AccessTier][]string{
	types.TierBasic: {
		"What is the main point you're trying to make?",
		"Can you tell me more about your topic?",
		"What challenges are you facing?",
	},
	types.TierStandard: {
		"What evidence supports your argument?",
		"How does this connect to your thesis?",
		"What are the key points you want to explore?",
	},
	types.TierAdvanced: {
		"What are the implications of your argument?",
		"How might different perspectives challenge your view?",
		"What assumptions underlie your reasoning?",
	},
}

// Stage-specific leads prepended to the initial question set so the opening
// questions match the phase of the writing process.
var stageLeadQuestions = map[types.WritingStage]string{
	types.StageBrainstorming: "What are three different angles you could take on this topic?",
	types.StageDrafting:      "How does the paragraph you're writing now connect to your main argument?",
	types.StageRevising:      "Does your evidence actually prove what you claim it proves?",
	types.StageEditing:       "Are there any vague words here that could be more specific?",
}

// InitialQuestions returns the opening question set for a granted tier and
// stage. The stage lead comes first, followed by the tier bank.
func InitialQuestions(tier types.AccessTier, stage types.WritingStage) []string {
	bank, ok := initialQuestionsByTier[tier]
	if !ok {
		bank = initialQuestionsByTier[types.TierBasic]
	}
	lead, ok := stageLeadQuestions[stage]
	if !ok {
		lead = stageLeadQuestions[types.StageDrafting]
	}

	out := make([]string, 0, len(bank)+1)
	out = append(out, lead)
	out = append(out, bank...)
	return out
}

// Follow-up prompt banks by tier, attached to every delivered response to
// keep the conversation going.
var followUpsByTier = map[types.AccessTier][]string{
	types.TierBasic: {
		"What's the main point you're trying to make?",
		"Can you explain that idea more?",
		"What made you think of this approach?",
	},
	types.TierStandard: {
		"What evidence supports this claim?",
		"How does this connect to your thesis?",
		"What would someone who disagrees say?",
	},
	types.TierAdvanced: {
		"What are the implications of this argument?",
		"How does this challenge conventional thinking?",
		"What assumptions are you making here?",
	},
}

// FollowUps returns the follow-up prompt set for a tier.
func FollowUps(tier types.AccessTier) []string {
	if prompts, ok := followUpsByTier[tier]; ok {
		return prompts
	}
	return followUpsByTier[types.TierBasic]
}

// fallbackQuestions are safe question-shaped responses by register, used when
// regeneration attempts are exhausted. Every entry must pass the response
// validator.
var fallbackQuestions = map[types.QuestionType]string{
	types.QuestionClarifying: "Let's take a step back: what do you think is the main idea you want your reader to take away?",
	types.QuestionAnalytical: "Let's look at your reasoning: what do you think is the strongest evidence for the point you're making here?",
	types.QuestionCritical:   "Consider your argument's foundations: what assumptions are you making, and how might someone challenge them?",
}

// FallbackQuestion returns the canned question for a policy's register. The
// learner always receives a question-shaped response, even when every
// generation attempt violated the content policy.
func FallbackQuestion(policy types.PromptPolicy) string {
	if q, ok := fallbackQuestions[policy.Ceiling]; ok {
		return q
	}
	return fallbackQuestions[types.QuestionClarifying]
}
