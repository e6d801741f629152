package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port               int
	DatabaseURL        string
	DatabaseType       string
	SessionKey         string
	DefaultUserID      int64
	LogLevel           string
	LogFormat          string
	CORSAllowedOrigins []string
}

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var corsOrigins string

	fs := flag.NewFlagSet("storyline", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (file path for sqlite)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionKey, "session-key", "", "Session cookie signing key (prefer env)")

	fs.Int64Var(&cfg.DefaultUserID, "default-user", 0, "User id for callers without a session")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (json or text)")
	fs.StringVar(&corsOrigins, "cors-origins", "", "Comma-separated allowed CORS origins")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	switch strings.ToLower(cfg.DatabaseType) {
	case "sqlite", "postgres", "postgresql":
	default:
		return Config{}, fmt.Errorf("invalid database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.SessionKey == "" {
		cfg.SessionKey = os.Getenv("SESSION_KEY")
	}
	if cfg.SessionKey == "" {
		return Config{}, errors.New("SESSION_KEY required")
	}

	if cfg.DefaultUserID == 0 {
		if idStr := os.Getenv("DEFAULT_USER_ID"); idStr != "" {
			id, err := strconv.ParseInt(idStr, 10, 64)
			if err != nil {
				return Config{}, errors.New("invalid DEFAULT_USER_ID env variable")
			}
			cfg.DefaultUserID = id
		} else {
			cfg.DefaultUserID = 1
		}
	}
	if cfg.DefaultUserID < 1 {
		return Config{}, errors.New("default user id must be positive")
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = envOr("LOG_LEVEL", "info")
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = envOr("LOG_FORMAT", "json")
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return Config{}, fmt.Errorf("invalid log format %q (use json or text)", cfg.LogFormat)
	}

	if corsOrigins == "" {
		corsOrigins = envOr("CORS_ALLOWED_ORIGINS", "http://localhost:3318")
	}
	for _, origin := range strings.Split(corsOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, errors.New("at least one CORS origin required")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
