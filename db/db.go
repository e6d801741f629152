// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect names a supported database backend
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ParseDialect validates a DATABASE_TYPE value
func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(s))); d {
	case Postgres, SQLite:
		return d, nil
	case "postgresql":
		return Postgres, nil
	}
	return "", fmt.Errorf("unsupported database type %q (use sqlite or postgres)", s)
}

// sqlitePragmas are applied to every SQLite connection. Foreign keys are
// always forced on; the others yield to a caller-supplied value.
var sqlitePragmas = []struct {
	name   string
	value  string
	forced bool
}{
	{"foreign_keys", "1", true},
	{"busy_timeout", "5000", false},
	{"journal_mode", "WAL", false},
}

// DataSource returns the database/sql driver name and DSN for a database URL.
// For SQLite the URL is a file path, optionally with a query string.
func (d Dialect) DataSource(url string) (driverName, dsn string) {
	if d != SQLite {
		return "postgres", url
	}

	dsn = url
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	for _, p := range sqlitePragmas {
		if !p.forced && strings.Contains(dsn, "_pragma="+p.name+"(") {
			continue
		}
		sep := "&"
		if !strings.Contains(dsn, "?") {
			sep = "?"
		}
		dsn += sep + "_pragma=" + p.name + "(" + p.value + ")"
	}
	return "sqlite", dsn
}

// ForUpdate is the row-locking suffix for SELECT statements.
// SQLite has no row locks; its single writer does the serializing.
func (d Dialect) ForUpdate() string {
	if d == Postgres {
		return " FOR UPDATE"
	}
	return ""
}

// Rebind rewrites $N placeholders for the dialect. Queries are written with
// $1..$n in order, each used once, so SQLite can take plain ? markers.
func (d Dialect) Rebind(query string) string {
	if d != SQLite {
		return query
	}
	var b strings.Builder
	b.Grow(len(query))
	for i := 0; i < len(query); i++ {
		if query[i] == '$' && i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
			b.WriteByte('?')
			for i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
				i++
			}
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// DBTX is satisfied by *Store and *Tx
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is a connection pool bound to a dialect
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Open connects to the database and verifies the connection
func Open(ctx context.Context, dialect Dialect, url string) (*Store, error) {
	driverName, dsn := dialect.DataSource(url)
	conn, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dialect == SQLite {
		// One writer at a time; also keeps transactions from waiting on
		// each other's busy locks.
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(25)
		conn.SetMaxIdleConns(5)
		conn.SetConnMaxIdleTime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: conn, dialect: dialect}, nil
}

func (s *Store) Dialect() Dialect { return s.dialect }

// DB exposes the underlying pool for fixtures and health checks
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) PingContext(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.dialect.Rebind(query), args...)
}

func (s *Store) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, s.dialect.Rebind(query), args...)
}

func (s *Store) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, s.dialect.Rebind(query), args...)
}

// Tx is a transaction bound to the store's dialect
type Tx struct {
	tx      *sql.Tx
	dialect Dialect
}

func (t *Tx) Dialect() Dialect { return t.dialect }

func (t *Tx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, t.dialect.Rebind(query), args...)
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, t.dialect.Rebind(query), args...)
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, t.dialect.Rebind(query), args...)
}

// WithTx runs fn in a transaction. The transaction is rolled back when fn
// returns an error or panics, and committed otherwise.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := sqlTx.Rollback(); rbErr != nil {
				slog.Error("failed to rollback transaction after panic", "error", rbErr, "panic", p)
			}
			panic(p)
		}
	}()

	if err := fn(&Tx{tx: sqlTx, dialect: s.dialect}); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			slog.Error("failed to rollback transaction", "error", rbErr, "cause", err)
		}
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
