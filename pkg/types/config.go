package types

import "time"

// AssessmentConfig holds settings for reflection quality assessment.
type AssessmentConfig struct {
	// MinWords is the minimum reflection word count required before
	// dimension scoring runs (default 50).
	MinWords int `json:"min_words" yaml:"min_words"`

	// DenialThreshold is the composite score below which an otherwise
	// long-enough reflection is rejected (default 5.0).
	DenialThreshold float64 `json:"denial_threshold" yaml:"denial_threshold"`

	// DepthWeight, SelfAwarenessWeight, CriticalThinkingWeight, and
	// GrowthMindsetWeight control the composite aggregation. They should
	// sum to 1.0; defaults are 0.3, 0.2, 0.3, 0.2.
	DepthWeight            float64 `json:"depth_weight" yaml:"depth_weight"`
	SelfAwarenessWeight    float64 `json:"self_awareness_weight" yaml:"self_awareness_weight"`
	CriticalThinkingWeight float64 `json:"critical_thinking_weight" yaml:"critical_thinking_weight"`
	GrowthMindsetWeight    float64 `json:"growth_mindset_weight" yaml:"growth_mindset_weight"`
}

// TierConfig holds the score-to-tier boundaries. The exact boundaries are
// deliberately configurable rather than hard-coded.
type TierConfig struct {
	// BasicMin is the lowest composite score granting basic access (default 5.0).
	BasicMin float64 `json:"basic_min" yaml:"basic_min"`

	// StandardMin is the lowest composite score granting standard access (default 6.5).
	StandardMin float64 `json:"standard_min" yaml:"standard_min"`

	// AdvancedMin is the lowest composite score granting advanced access (default 8.0).
	AdvancedMin float64 `json:"advanced_min" yaml:"advanced_min"`
}

// CompletionConfig holds settings for the external text-completion capability.
type CompletionConfig struct {
	// Model is the completion model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the completion API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Timeout is the per-request timeout for completion calls (default 8s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MaxRetries is the number of retry attempts for transient completion
	// failures (default 3). Content-policy regenerations have a separate
	// budget and never consume these retries.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// MaxRegenerations is the number of regeneration attempts after a
	// content-policy violation before the fallback question is used (default 2).
	MaxRegenerations int `json:"max_regenerations" yaml:"max_regenerations"`
}

// ValidationConfig holds settings for response validation.
type ValidationConfig struct {
	// MaxResponseRunes is the longest response accepted before it is
	// treated as disguised paragraph generation (default 1200).
	MaxResponseRunes int `json:"max_response_runes" yaml:"max_response_runes"`
}

// StoreConfig holds settings for the reflection and conversation store.
type StoreConfig struct {
	// DataDir is the directory containing the SQLite database (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// ServerConfig holds settings for the HTTP service boundary.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// MaxReflectionChars caps the accepted reflection payload size (default 10000).
	MaxReflectionChars int `json:"max_reflection_chars" yaml:"max_reflection_chars"`
}

// EngineConfig groups all component configurations for the engine.
type EngineConfig struct {
	Assessment AssessmentConfig `json:"assessment" yaml:"assessment"`
	Tiers      TierConfig       `json:"tiers" yaml:"tiers"`
	Completion CompletionConfig `json:"completion" yaml:"completion"`
	Validation ValidationConfig `json:"validation" yaml:"validation"`
	Store      StoreConfig      `json:"store" yaml:"store"`
	Server     ServerConfig     `json:"server" yaml:"server"`
}

// DefaultEngineConfig returns an EngineConfig with every default applied.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Assessment: AssessmentConfig{
			MinWords:               50,
			DenialThreshold:        5.0,
			DepthWeight:            0.3,
			SelfAwarenessWeight:    0.2,
			CriticalThinkingWeight: 0.3,
			GrowthMindsetWeight:    0.2,
		},
		Tiers: TierConfig{
			BasicMin:    5.0,
			StandardMin: 6.5,
			AdvancedMin: 8.0,
		},
		Completion: CompletionConfig{
			Timeout:          8 * time.Second,
			MaxRetries:       3,
			MaxRegenerations: 2,
		},
		Validation: ValidationConfig{
			MaxResponseRunes: 1200,
		},
		Store: StoreConfig{
			DataDir: "data",
		},
		Server: ServerConfig{
			Addr:               ":8080",
			MaxReflectionChars: 10000,
		},
	}
}
