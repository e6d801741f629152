// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stories

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/danielhkuo/storyline/db"
	"github.com/danielhkuo/storyline/models"
)

// ListPendingContributions returns the contributions of a story that are
// neither accepted nor archived, most voted first
func (s *Service) ListPendingContributions(ctx context.Context, storyID int64) (models.PendingContributions, error) {
	if err := s.storyExists(ctx, s.store, storyID); err != nil {
		return models.PendingContributions{}, classify("list pending contributions", err)
	}

	rows, err := s.store.QueryContext(ctx, contributionViewQuery+`
		WHERE c.story_id = $1 AND c.accepted = FALSE AND c.archived = FALSE
		ORDER BY votes DESC, c.id ASC
	`, storyID)
	if err != nil {
		return models.PendingContributions{}, classify("list pending contributions", err)
	}
	contributions, err := collectContributionViews(rows)
	if err != nil {
		return models.PendingContributions{}, classify("list pending contributions", err)
	}

	return models.PendingContributions{StoryID: storyID, Contributions: contributions}, nil
}

// CreateContribution adds a pending contribution by callerID to an
// in-progress story
func (s *Service) CreateContribution(ctx context.Context, callerID, storyID int64, req models.CreateContributionRequest) (models.Contribution, error) {
	content, err := requireText("content", req.Content)
	if err != nil {
		return models.Contribution{}, err
	}

	var contribution models.Contribution
	err = s.store.WithTx(ctx, func(tx *db.Tx) error {
		var complete bool
		err := tx.QueryRowContext(ctx, `SELECT complete FROM stories WHERE id = $1`+tx.Dialect().ForUpdate(), storyID).Scan(&complete)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrStoryNotFound
		}
		if err != nil {
			return err
		}
		if complete {
			return models.ErrStoryComplete
		}

		var id int64
		err = tx.QueryRowContext(ctx, `
			INSERT INTO contributions (story_id, user_id, content)
			VALUES ($1, $2, $3)
			RETURNING id
		`, storyID, callerID, content).Scan(&id)
		if db.IsForeignKeyViolation(err) {
			return models.ErrUserNotFound
		}
		if err != nil {
			return err
		}

		contribution, err = scanContribution(tx.QueryRowContext(ctx, contributionQuery+` WHERE id = $1`, id))
		return err
	})
	if err != nil {
		return models.Contribution{}, classify("create contribution", err)
	}

	slog.Info("contribution created", "contribution_id", contribution.ID, "story_id", storyID, "user_id", callerID)
	return contribution, nil
}

// AcceptContribution accepts a pending contribution and archives every
// other pending contribution of the same story. A story accepts at most one
// contribution.
func (s *Service) AcceptContribution(ctx context.Context, contributionID int64) (models.Contribution, error) {
	var accepted models.Contribution
	err := s.store.WithTx(ctx, func(tx *db.Tx) error {
		target, err := scanContribution(tx.QueryRowContext(ctx, contributionQuery+` WHERE id = $1`, contributionID))
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrContributionNotFound
		}
		if err != nil {
			return err
		}

		// Serializes accepts on the same story
		var complete bool
		err = tx.QueryRowContext(ctx, `SELECT complete FROM stories WHERE id = $1`+tx.Dialect().ForUpdate(), target.StoryID).Scan(&complete)
		if err != nil {
			return err
		}
		if complete {
			return models.ErrStoryComplete
		}

		// Re-read under the lock
		target, err = scanContribution(tx.QueryRowContext(ctx, contributionQuery+` WHERE id = $1`, contributionID))
		if err != nil {
			return err
		}
		if !target.Pending() {
			return models.ErrContributionClosed
		}

		var acceptedSiblings int
		err = tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM contributions WHERE story_id = $1 AND accepted = TRUE
		`, target.StoryID).Scan(&acceptedSiblings)
		if err != nil {
			return err
		}
		if acceptedSiblings > 0 {
			return models.ErrAlreadyAccepted
		}

		archived, err := tx.ExecContext(ctx, `
			UPDATE contributions SET archived = TRUE
			WHERE story_id = $1 AND id <> $2 AND accepted = FALSE
		`, target.StoryID, target.ID)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `UPDATE contributions SET accepted = TRUE WHERE id = $1`, target.ID)
		if db.IsUniqueViolation(err) {
			return models.ErrAlreadyAccepted
		}
		if err != nil {
			return err
		}

		if n, err := archived.RowsAffected(); err == nil {
			slog.Debug("archived sibling contributions", "story_id", target.StoryID, "count", n)
		}

		target.Accepted = true
		accepted = target
		return nil
	})
	if err != nil {
		return models.Contribution{}, classify("accept contribution", err)
	}

	slog.Info("contribution accepted", "contribution_id", accepted.ID, "story_id", accepted.StoryID)
	return accepted, nil
}

// VoteForContribution records one vote by callerID for a pending
// contribution. The vote's story is resolved from the contribution.
func (s *Service) VoteForContribution(ctx context.Context, callerID, contributionID int64) (models.ContributionVote, error) {
	var vote models.ContributionVote
	err := s.store.WithTx(ctx, func(tx *db.Tx) error {
		// Story lock serializes the vote with accept and finalize
		var storyComplete bool
		err := tx.QueryRowContext(ctx, `
			SELECT complete FROM stories
			WHERE id = (SELECT story_id FROM contributions WHERE id = $1)
		`+tx.Dialect().ForUpdate(), contributionID).Scan(&storyComplete)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrContributionNotFound
		}
		if err != nil {
			return err
		}
		if storyComplete {
			return models.ErrStoryComplete
		}

		var c models.Contribution
		err = tx.QueryRowContext(ctx, `
			SELECT accepted, archived FROM contributions WHERE id = $1
		`, contributionID).Scan(&c.Accepted, &c.Archived)
		if err != nil {
			return err
		}
		if !c.Pending() {
			return models.ErrContributionClosed
		}

		var id int64
		err = tx.QueryRowContext(ctx, `
			INSERT INTO contribution_votes (user_id, contribution_id, story_id)
			VALUES ($1, $2, (SELECT story_id FROM contributions WHERE id = $3))
			RETURNING id
		`, callerID, contributionID, contributionID).Scan(&id)
		switch {
		case db.IsUniqueViolation(err):
			return models.ErrDuplicateVote
		case db.IsForeignKeyViolation(err):
			return models.ErrUserNotFound
		case err != nil:
			return err
		}

		return tx.QueryRowContext(ctx, `
			SELECT id, user_id, contribution_id, story_id, created_at
			FROM contribution_votes WHERE id = $1
		`, id).Scan(&vote.ID, &vote.UserID, &vote.ContributionID, &vote.StoryID, &vote.CreatedAt)
	})
	if err != nil {
		return models.ContributionVote{}, classify("vote for contribution", err)
	}

	slog.Info("vote recorded", "contribution_id", contributionID, "story_id", vote.StoryID, "user_id", callerID)
	return vote, nil
}

func (s *Service) storyExists(ctx context.Context, q db.DBTX, storyID int64) error {
	var id int64
	err := q.QueryRowContext(ctx, `SELECT id FROM stories WHERE id = $1`, storyID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrStoryNotFound
	}
	return err
}
