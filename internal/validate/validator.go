// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate checks candidate AI responses against the content policy:
// every response must be question-shaped and must never constitute generated
// content for the assignment. The check runs on every turn with no
// exceptions for tier or stage.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/socratic-engine/pkg/types"
)

// prohibitedPatterns match responses that generate content, provide direct
// answers, or otherwise do the student's thinking for them.
var prohibitedPatterns = []*regexp.Regexp{
	// Direct content generation.
	regexp.MustCompile(`(?i)here'?s (a|your) (thesis|paragraph|sentence|opening|conclusion)`),
	regexp.MustCompile(`(?i)you could write:`),
	regexp.MustCompile(`(?i)try this (opening|conclusion|transition|sentence):`),
	regexp.MustCompile(`(?i)your (thesis|topic sentence|argument) (should|could) be:`),

	// Providing specific answers.
	regexp.MustCompile(`(?i)the answer is`),
	regexp.MustCompile(`(?i)you should (write|say|argue)`),
	regexp.MustCompile(`(?i)here'?s what to do:`),

	// Doing the thinking for them.
	regexp.MustCompile(`(?i)your main argument is`),
	regexp.MustCompile(`(?i)the evidence shows that`),
	regexp.MustCompile(`(?i)in conclusion,`),

	// Removing productive struggle.
	regexp.MustCompile(`(?i)let me (write|create|draft) that`),
	regexp.MustCompile(`(?i)i'?ll (write|complete|finish) (it|that|this)`),
	regexp.MustCompile(`(?i)here'?s the (solution|answer|fix)`),

	// Imperative content edits.
	regexp.MustCompile(`(?i)(replace|rewrite|change) (this|that|it) (with|to):`),
}

// enhancementPatterns match the questioning and exploratory language a
// Socratic response is expected to carry.
var enhancementPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)what (do you think|might|could|would|if|is|are|makes)`),
	regexp.MustCompile(`(?i)how (might|could|would|do|does|did)`),
	regexp.MustCompile(`(?i)why (do you think|might|does|did|is)`),
	regexp.MustCompile(`(?i)consider (what|how|why|whether)`),
	regexp.MustCompile(`(?i)have you (considered|thought about|noticed)`),
	regexp.MustCompile(`(?i)which (of|part|point|paragraph|sentence)`),
	regexp.MustCompile(`(?i)where (do|does|might|could)`),
}

// defaultMaxRunes bounds response length when no config value is supplied.
// Long responses are treated as disguised paragraph generation.
const defaultMaxRunes = 1200

// Verdict is the tagged outcome of validating one candidate response.
// A zero Reason means Valid.
type Verdict struct {
	Valid  bool
	Reason string
}

// Validator applies the content-policy checks to candidate responses.
type Validator struct {
	maxRunes int
}

// New builds a Validator, applying the default length ceiling when the
// config leaves it unset.
func New(cfg types.ValidationConfig) *Validator {
	maxRunes := cfg.MaxResponseRunes
	if maxRunes <= 0 {
		maxRunes = defaultMaxRunes
	}
	return &Validator{maxRunes: maxRunes}
}

// Check validates one candidate response. A response is invalid when it
// contains no question mark, matches a prohibited pattern, lacks questioning
// language, or exceeds the length ceiling.
func (v *Validator) Check(response string) Verdict {
	trimmed := strings.TrimSpace(response)
	if trimmed == "" {
		return Verdict{Reason: "response is empty"}
	}

	if utf8.RuneCountInString(trimmed) > v.maxRunes {
		return Verdict{Reason: fmt.Sprintf("response exceeds %d characters", v.maxRunes)}
	}

	if !strings.Contains(trimmed, "?") {
		return Verdict{Reason: "response contains no question"}
	}

	for _, p := range prohibitedPatterns {
		if p.MatchString(trimmed) {
			return Verdict{Reason: fmt.Sprintf("response matches prohibited pattern %q", p.String())}
		}
	}

	if !hasEnhancementLanguage(trimmed) {
		return Verdict{Reason: "response lacks questioning or exploratory language"}
	}

	return Verdict{Valid: true}
}

// hasEnhancementLanguage reports whether the response carries at least one
// questioning or exploratory construction.
func hasEnhancementLanguage(response string) bool {
	for _, p := range enhancementPatterns {
		if p.MatchString(response) {
			return true
		}
	}
	return false
}
