// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, domain, and error types.

# Request Types

Types bound from JSON or form bodies:

  - CreateStoryRequest: title, initial_content (form: initialContent)
  - CreateContributionRequest: content

# Domain Types

  - User: id, name, avatar
  - Story: owned by a user, complete is a one-way flag
  - Contribution: candidate continuation, accepted and archived are terminal
  - ContributionVote: one user's vote, story_id copied from the contribution

# View Types

The same structures are rendered as JSON and handed to the HTML templates:

  - StoryList, StoryDetail, PendingContributions
  - UserStories, UserContributions, Dashboard

# Errors

Four error kinds, matched with errors.Is:

	ErrNotFound         → 404
	ErrValidation       → 400
	ErrConflict         → 409
	ErrStoreUnavailable → 503

Specific errors such as ErrStoryNotFound or ErrAlreadyAccepted wrap one of
the kinds, so callers can test either level.
*/
package models
