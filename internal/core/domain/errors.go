// internal/core/domain/errors.go
package domain

import "errors"

// Common domain errors.
var (
	// Runner errors
	ErrRunnerUnavailable = errors.New("hashing tool not available")
	ErrEmptyPath         = errors.New("input file path is empty")

	// Storage errors
	ErrArtifactCreateFailed = errors.New("failed to create output artifact")
	ErrArtifactWriteFailed  = errors.New("failed to write output artifact")

	// Envelope errors
	ErrEnvelopeDecodeFailed = errors.New("failed to decode task envelope")
	ErrEnvelopeEncodeFailed = errors.New("failed to encode task envelope")

	// Configuration errors
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrConfigLoadFailed = errors.New("failed to load configuration")
)
