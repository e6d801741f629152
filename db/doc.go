// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db owns the relational store: schema migrations, connections, and
driver error classification.

# Dialects

Two backends share one set of queries:

  - postgres: production, via lib/pq
  - sqlite: development and tests, via modernc.org/sqlite

Queries are written with $N placeholders. Store and Tx rebind them for
SQLite, so every $N must appear once and in order.

# Migrations

Migrate applies the embedded golang-migrate files for the dialect:

	if err := db.Migrate(db.SQLite, "storyline.db"); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times.

# Tables

  - users: display identity (seeded, no signup flow)
  - stories: owned by a user, complete is one-way
  - contributions: candidate continuations of a story
  - contribution_votes: one row per user per contribution

# Relationships

	users 1──* stories
	stories 1──* contributions
	contributions 1──* contribution_votes

# Constraints

  - idx_contributions_one_accepted: partial unique index, at most one
    accepted contribution per story
  - CHECK (NOT (accepted AND archived))
  - UNIQUE (user_id, contribution_id) on contribution_votes

# Transactions

WithTx rolls back on error or panic and commits otherwise:

	err := store.WithTx(ctx, func(tx *db.Tx) error {
		_, err := tx.ExecContext(ctx, "UPDATE ...", id)
		return err
	})
*/
package db
