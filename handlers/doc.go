// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the gin handlers for Storyline.

# Handler Types

Each handler is a struct holding the story service:

  - StoryHandler: story listings, detail, contributions, votes, accept, finalize
  - UserHandler: dashboard and per-user listings
  - SessionHandler: switching the session user

	storyHandler := handlers.NewStoryHandler(svc)

# Responses

Every route answers HTML by default and JSON when the client sends
Accept: application/json. Writes redirect browsers with 302 to the page
that shows the result:

	POST /stories/new                     → /stories/{id}
	POST /stories/{id}                    → /stories/{id}
	POST /stories/{id}/contributions      → /stories/{id}#submissions
	POST /stories/contributions/{id}      → /stories/{story_id}
	POST /stories/contributions/{id}/vote → /stories/{story_id}#submissions

JSON clients get the written entity with 201 (story, contribution, vote) or
200 (accept, finalize) and the same path in the Location header.

# Errors

Handlers pass service errors to middleware.ServiceError, which maps them to
400, 404, 409 or 503.

# Metrics

metrics.go registers counters for created stories, contributions, votes,
finalized stories, and accept attempts by outcome.
*/
package handlers
