// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tier owns the score-to-tier mapping and the current-tier
// projection. A document's tier is always derived from its latest accepted
// reflection record; it is never held as a mutable flag, so there is no
// stale state to invalidate when reflections are resubmitted.
package tier

import (
	"context"
	"fmt"

	"github.com/pdiddy/socratic-engine/pkg/types"
)

// For maps a composite score to an access tier under the given boundaries.
// Scores below BasicMin map to TierNone.
func For(composite float64, cfg types.TierConfig) types.AccessTier {
	switch {
	case composite >= cfg.AdvancedMin:
		return types.TierAdvanced
	case composite >= cfg.StandardMin:
		return types.TierStandard
	case composite >= cfg.BasicMin:
		return types.TierBasic
	}
	return types.TierNone
}

// ValidateThresholds rejects boundary configurations that are not strictly
// increasing, which would make the mapping ambiguous.
func ValidateThresholds(cfg types.TierConfig) error {
	if cfg.BasicMin >= cfg.StandardMin || cfg.StandardMin >= cfg.AdvancedMin {
		return fmt.Errorf("tier thresholds must be strictly increasing: basic=%g standard=%g advanced=%g",
			cfg.BasicMin, cfg.StandardMin, cfg.AdvancedMin)
	}
	return nil
}

// ReflectionSource supplies the latest accepted reflection for a document.
// The store implements it; tests supply fakes.
type ReflectionSource interface {
	LatestAccepted(ctx context.Context, documentID string) (*types.Reflection, error)
}

// Controller projects a document's current tier from persisted reflections.
// The tier survives reconnects because it lives in the reflection record,
// scoped to the document rather than the process.
type Controller struct {
	source ReflectionSource
	cfg    types.TierConfig
}

// NewController builds a Controller over a reflection source.
func NewController(source ReflectionSource, cfg types.TierConfig) *Controller {
	if cfg.BasicMin <= 0 {
		cfg = types.DefaultEngineConfig().Tiers
	}
	return &Controller{source: source, cfg: cfg}
}

// Current returns the document's tier, derived on read from the latest
// accepted reflection. Documents with no accepted reflection are TierNone.
func (c *Controller) Current(ctx context.Context, documentID string) (types.AccessTier, error) {
	reflection, err := c.source.LatestAccepted(ctx, documentID)
	if err != nil {
		return types.TierNone, fmt.Errorf("loading latest accepted reflection: %w", err)
	}
	if reflection == nil {
		return types.TierNone, nil
	}
	return For(reflection.Composite, c.cfg), nil
}
