// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dialogue

import (
	"errors"
	"fmt"
)

// ErrDocumentBusy is returned when a turn or submission is already in flight
// for the document. Turns are serialized per document; the caller should
// retry after the in-flight operation completes.
var ErrDocumentBusy = errors.New("a request for this document is already in progress")

// ErrReflectionRequired is returned when dialogue is attempted against a
// document with no accepted reflection.
var ErrReflectionRequired = errors.New("an accepted reflection is required before AI dialogue")

// CompletionError reports that the completion capability failed after
// exhausting transient-failure retries. It is distinct from content-policy
// regeneration, which has its own budget and ends in a fallback question
// rather than an error.
type CompletionError struct {
	Attempts int
	Err      error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}
