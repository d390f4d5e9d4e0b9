// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging constructs the engine's structured logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds a zap logger. Debug mode switches to the development encoder
// with human-readable output; production mode emits JSON.
func New(debug bool) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if debug {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return log, nil
}
