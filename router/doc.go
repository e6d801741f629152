// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes for Storyline.

# Route Registration

NewRouter creates a configured gin engine with all endpoints:

	r := router.NewRouter(svc, cfg, sessions)

# Middleware

In order: panic recovery, request logging, CORS (cfg.CORSAllowedOrigins),
prometheus request metrics, session identity.

# Endpoints

Operations:

	GET  /health  - Store ping
	GET  /metrics - Prometheus metrics
	GET  /        - Redirect to /stories

Stories:

	GET  /stories                         - All stories
	GET  /stories/new                     - New story form
	GET  /stories/inprogress              - Stories still open
	GET  /stories/complete                - Finalized stories
	GET  /stories/{id}                    - Story with contributions
	GET  /stories/{id}/contributions      - Pending contributions
	POST /stories/new                     - Create story
	POST /stories/contributions/{id}      - Accept contribution
	POST /stories/contributions/{id}/vote - Vote for contribution
	POST /stories/{id}                    - Finalize story
	POST /stories/{id}/contributions      - Add contribution

Users:

	GET  /users/{id}/dashboard     - Stats overview
	GET  /users/{id}/stories       - Stories owned
	GET  /users/{id}/contributions - Contributions made
	POST /login/{id}               - Act as user
	POST /logout                   - Back to the default user

Unknown paths render the 404 error page.
*/
package router
