// Package pipeline implements the three-stage document analysis pipeline:
// a preprocessing pass over raw text producing advisory hints, a primary
// extraction pass producing the authoritative result, and an independent
// validation pass cross-checking the extraction against the source text.
// It provides the provider abstraction, stage components, and the state
// graph that sequences them with graceful degradation.
package pipeline

import (
	"errors"
	"fmt"
)

// Sentinel errors for pipeline operations.
var (
	ErrUnavailable = errors.New("provider not configured")
	ErrMalformed   = errors.New("malformed provider output")
	ErrEmptyInput  = errors.New("empty input")
)

// ProviderError wraps a failed remote call or an unparseable response from
// a configured provider.
type ProviderError struct {
	Provider string
	Stage    Stage
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: stage %s: %v", e.Provider, e.Stage, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// FatalError aborts a document processing request. It is raised only when
// the primary extraction stage cannot produce an authoritative result.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("pipeline aborted: %v", e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

func fatal(err error) error {
	return &FatalError{Err: err}
}
