// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

// Marker phrase tables for the rule-based dimension scorers. All matching is
// done against lowercased reflection text, so every phrase here must be
// lowercase. The ladders run from weakest to strongest language.

// depthSophisticated marks reflections that name and wrestle with complexity.
var depthSophisticated = []string{
	"upon reflection",
	"i've analyzed",
	"the complexity lies in",
	"i'm grappling with",
	"my hypothesis is",
}

// depthThoughtful marks deliberate, specific engagement with the work.
var depthThoughtful = []string{
	"i'm considering",
	"the challenge is",
	"i've noticed that",
	"my approach is",
	"i'm exploring",
}

// depthDeveloping marks tentative but present engagement.
var depthDeveloping = []string{
	"i think",
	"maybe",
	"it seems",
	"i'm trying to",
	"i want to",
}

// causalConnectives signal explanatory, multi-step reasoning.
var causalConnectives = []string{
	"because",
	"therefore",
	"as a result",
	"which means",
	"so that",
	"since",
}

// hedgedClaims signal calibrated rather than absolute assertions.
var hedgedClaims = []string{
	"perhaps",
	"might",
	"possibly",
	"it could be",
	"i suspect",
}

// selfAwareHigh marks explicit first-person meta-cognition.
var selfAwareHigh = []string{
	"i recognize that i",
	"my tendency",
	"i'm aware that",
	"i've noticed i",
	"i notice",
	"i realize",
}

// selfAwareModerate marks owned, named difficulties.
var selfAwareModerate = []string{
	"i'm struggling with",
	"i need to work on",
	"my weakness is",
}

// helpSeeking marks generic requests that show no self-observation.
var helpSeeking = []string{
	"i need help",
	"can you help",
	"i don't know",
	"i don't understand",
	"this doesn't make sense",
}

// selfReference marks ownership of process without full meta-cognition.
var selfReference = []string{
	"my approach",
	"my thinking",
	"my process",
	"my goal",
}

// Critical-thinking marker categories. Each category found in a reflection
// contributes equally to the dimension score.
var (
	ctQuestioning = []string{
		"what if",
		"how might",
		"could it be",
		"why does",
		"what causes",
	}
	ctAnalyzing = []string{
		"this connects to",
		"the relationship between",
		"this implies",
		"this suggests",
		"this demonstrates",
	}
	ctEvaluating = []string{
		"the strength of",
		"the weakness in",
		"assumes",
		"the evidence shows",
		"contradicts",
		"however",
	}
	ctSynthesizing = []string{
		"bringing together",
		"this combines",
		"integrating these ideas",
		"the pattern here",
		"the overall picture",
	}
)

// growthForward marks process-oriented, forward-looking language.
var growthForward = []string{
	"i'm learning to",
	"i can improve",
	"next time i'll",
	"i'm developing",
	"this will help me",
	"this challenge will help",
}

// growthMixed marks effort language without a forward plan.
var growthMixed = []string{
	"difficult but",
	"haven't figured out yet",
	"i need more practice",
	"i'm working on",
}

// growthFixed marks fixed or defeatist language.
var growthFixed = []string{
	"i can't",
	"i'm not good at",
	"this is too hard",
	"i give up",
	"i'll never",
}

// Affect inference keywords, checked in declaration order. The first state
// with a matching keyword wins; nothing matching means neutral.
var affectKeywords = []struct {
	state    string
	keywords []string
}{
	{"overwhelmed", []string{"overwhelmed", "overwhelming", "too much at once", "can't keep up", "drowning in"}},
	{"frustrated", []string{"frustrated", "frustrating", "annoyed", "fed up", "sick of"}},
	{"confident", []string{"confident", "i'm sure", "i am sure", "ready for more", "i've got this"}},
	{"curious", []string{"curious", "i wonder", "intrigued", "fascinated", "interested in"}},
}
