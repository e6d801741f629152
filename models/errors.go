// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the story service matches one of
// these with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("conflict")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Specific errors
var (
	ErrStoryNotFound        = fmt.Errorf("story %w", ErrNotFound)
	ErrContributionNotFound = fmt.Errorf("contribution %w", ErrNotFound)
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)

	ErrStoryComplete      = fmt.Errorf("%w: story is already complete", ErrConflict)
	ErrContributionClosed = fmt.Errorf("%w: contribution is no longer pending", ErrConflict)
	ErrAlreadyAccepted    = fmt.Errorf("%w: story already has an accepted contribution", ErrConflict)
	ErrDuplicateVote      = fmt.Errorf("%w: you already voted for this contribution", ErrConflict)
)

// Invalid returns a validation error for a single field
func Invalid(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, reason)
}
