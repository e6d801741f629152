// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Storyline server.

Storyline is a collaborative storytelling service. A user starts a story,
others submit continuations and vote on them, and the owner accepts one
continuation before finalizing the story.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=storyline.db SESSION_KEY=dev go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." --session-key dev

A .env file in the working directory is loaded first.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - SESSION_KEY (--session-key): Secret for signing session cookies

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DEFAULT_USER_ID (--default-user): Caller without a session (default: 1)
  - LOG_LEVEL (--log-level), LOG_FORMAT (--log-format)
  - CORS_ALLOWED_ORIGINS (--cors-origins)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: gin handlers (stories, users, sessions) and counters
  - router: Route table and middleware stack
  - middleware: Request logging, identity, content negotiation, error mapping
  - stories: Story operations on the store
  - views: Embedded HTML templates
  - models: Request, domain and view types, error kinds
  - auth: Cookie session identity
  - db: Migrations, connections, dialects
  - cliparse: Configuration parsing

Migrations run at startup. SIGINT or SIGTERM drains in-flight requests for
up to ten seconds before exiting.

See package documentation for each component.
*/
package main
