// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package stories implements the collaborative storytelling operations.

A story is opened by its owner with a title and initial content. Other users
submit contributions, vote on them, and the owner accepts one before
finalizing the story.

# Lifecycle

	create story ──► contributions + votes ──► accept one ──► finalize

Accepting a contribution archives every other pending contribution of the
story. Accepted and archived contributions are terminal, and a complete
story never reopens.

# Errors

Every error matches one kind from the models package with errors.Is:

  - models.ErrNotFound: unknown story, contribution or user
  - models.ErrValidation: empty title, content or unknown filter
  - models.ErrConflict: complete story, closed contribution, second accept,
    duplicate vote
  - models.ErrStoreUnavailable: anything the store failed to do

# Concurrency

The service holds no state of its own. AcceptContribution runs in one
transaction that locks the story row and re-checks the accepted state; the
partial unique index on contributions catches whatever slips past.
*/
package stories
