// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/storyline/db"
	"github.com/danielhkuo/storyline/models"
)

// Service implements the story operations on top of the store
type Service struct {
	store *db.Store
}

func NewService(store *db.Store) *Service {
	return &Service{store: store}
}

// Ping reports whether the store is reachable
func (s *Service) Ping(ctx context.Context) error {
	return s.store.PingContext(ctx)
}

type scanner interface {
	Scan(dest ...any) error
}

// classify passes service errors through and wraps everything else as a
// store failure
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{models.ErrNotFound, models.ErrValidation, models.ErrConflict, models.ErrStoreUnavailable} {
		if errors.Is(err, kind) {
			return err
		}
	}
	return fmt.Errorf("%s: %w: %w", op, models.ErrStoreUnavailable, err)
}

func requireText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", models.Invalid(field, "is required")
	}
	return value, nil
}

const storyListingQuery = `
	SELECT s.id, s.user_id, s.title, s.initial_content, s.complete, s.created_at, u.name, u.avatar
	FROM stories s
	JOIN users u ON u.id = s.user_id`

func scanStoryListing(row scanner) (models.StoryListing, error) {
	var l models.StoryListing
	err := row.Scan(&l.ID, &l.UserID, &l.Title, &l.InitialContent, &l.Complete, &l.CreatedAt,
		&l.AuthorName, &l.AuthorAvatar)
	return l, err
}

const storyQuery = `
	SELECT id, user_id, title, initial_content, complete, created_at
	FROM stories`

func scanStory(row scanner) (models.Story, error) {
	var st models.Story
	err := row.Scan(&st.ID, &st.UserID, &st.Title, &st.InitialContent, &st.Complete, &st.CreatedAt)
	return st, err
}

const contributionQuery = `
	SELECT id, story_id, user_id, content, accepted, archived, created_at
	FROM contributions`

func scanContribution(row scanner) (models.Contribution, error) {
	var c models.Contribution
	err := row.Scan(&c.ID, &c.StoryID, &c.UserID, &c.Content, &c.Accepted, &c.Archived, &c.CreatedAt)
	return c, err
}

// contributionViewQuery selects contributions with contributor, story title
// and vote count. Callers append WHERE and ORDER BY.
const contributionViewQuery = `
	SELECT c.id, c.story_id, c.user_id, c.content, c.accepted, c.archived, c.created_at,
		(SELECT COUNT(*) FROM contribution_votes v WHERE v.contribution_id = c.id) AS votes,
		u.name, u.avatar, s.title
	FROM contributions c
	JOIN users u ON u.id = c.user_id
	JOIN stories s ON s.id = c.story_id`

func scanContributionView(row scanner) (models.ContributionView, error) {
	var v models.ContributionView
	err := row.Scan(&v.ID, &v.StoryID, &v.UserID, &v.Content, &v.Accepted, &v.Archived, &v.CreatedAt,
		&v.Votes, &v.ContributorName, &v.ContributorAvatar, &v.StoryTitle)
	return v, err
}

func collectContributionViews(rows *sql.Rows) ([]models.ContributionView, error) {
	defer rows.Close()

	views := []models.ContributionView{}
	for rows.Next() {
		v, err := scanContributionView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

const userQuery = `SELECT id, name, avatar, created_at FROM users`

func scanUser(row scanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Avatar, &u.CreatedAt)
	return u, err
}
