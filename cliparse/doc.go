// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: PostgreSQL connection string or SQLite file path (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - SessionKey: Secret for signing session cookies (required)
  - DefaultUserID: Caller id when no session is present (default: 1)
  - LogLevel: debug, info, warn or error (default: info)
  - LogFormat: json or text (default: json)
  - CORSAllowedOrigins: Allowed browser origins (default: http://localhost:3318)

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type
	--session-key   Session signing key
	--default-user  Default caller id
	--log-level     Log level
	--log-format    Log format
	--cors-origins  Comma-separated origins

# Environment Variables

Flags fall back to environment variables:

	PORT                 → -p
	DATABASE_URL         → -d
	DATABASE_TYPE        → -t
	SESSION_KEY          → --session-key
	DEFAULT_USER_ID      → --default-user
	LOG_LEVEL            → --log-level
	LOG_FORMAT           → --log-format
	CORS_ALLOWED_ORIGINS → --cors-origins

CLI flags take precedence over environment variables. main.go loads a .env
file before parsing, so its values act as environment variables.

# Validation

ParseFlags returns an error if required values are missing or malformed:

  - DATABASE_URL must be provided
  - SESSION_KEY must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - DEFAULT_USER_ID must be a positive integer
*/
package cliparse
