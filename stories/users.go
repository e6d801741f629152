// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/danielhkuo/storyline/models"
)

// GetUser returns a single user
func (s *Service) GetUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := scanUser(s.store.QueryRowContext(ctx, userQuery+` WHERE id = $1`, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, classify("get user", err)
	}
	return user, nil
}

// ListStoriesForUser returns the stories a user owns, oldest first
func (s *Service) ListStoriesForUser(ctx context.Context, userID int64) (models.UserStories, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return models.UserStories{}, err
	}

	rows, err := s.store.QueryContext(ctx, storyQuery+` WHERE user_id = $1 ORDER BY id ASC`, userID)
	if err != nil {
		return models.UserStories{}, classify("list user stories", err)
	}
	defer rows.Close()

	result := models.UserStories{User: user, Stories: []models.Story{}}
	for rows.Next() {
		st, err := scanStory(rows)
		if err != nil {
			return models.UserStories{}, classify("scan story", err)
		}
		result.Stories = append(result.Stories, st)
	}
	if err := rows.Err(); err != nil {
		return models.UserStories{}, classify("list user stories", err)
	}

	if result.Stats, err = s.storyStats(ctx, userID); err != nil {
		return models.UserStories{}, err
	}
	return result, nil
}

// ListContributionsForUser returns a user's contributions with the story
// title and vote count of each, oldest first
func (s *Service) ListContributionsForUser(ctx context.Context, userID int64) (models.UserContributions, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return models.UserContributions{}, err
	}

	rows, err := s.store.QueryContext(ctx, contributionViewQuery+`
		WHERE c.user_id = $1
		ORDER BY c.id ASC
	`, userID)
	if err != nil {
		return models.UserContributions{}, classify("list user contributions", err)
	}
	contributions, err := collectContributionViews(rows)
	if err != nil {
		return models.UserContributions{}, classify("list user contributions", err)
	}

	stats, err := s.contributionStats(ctx, userID)
	if err != nil {
		return models.UserContributions{}, err
	}
	return models.UserContributions{User: user, Contributions: contributions, Stats: stats}, nil
}

// Dashboard returns a user with both stat blocks
func (s *Service) Dashboard(ctx context.Context, userID int64) (models.Dashboard, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return models.Dashboard{}, err
	}

	storyStats, err := s.storyStats(ctx, userID)
	if err != nil {
		return models.Dashboard{}, err
	}
	contributionStats, err := s.contributionStats(ctx, userID)
	if err != nil {
		return models.Dashboard{}, err
	}

	return models.Dashboard{User: user, StoryStats: storyStats, ContributionStats: contributionStats}, nil
}

func (s *Service) storyStats(ctx context.Context, userID int64) (models.StoryStats, error) {
	var stats models.StoryStats
	err := s.store.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN complete THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN complete THEN 0 ELSE 1 END), 0),
			COUNT(*)
		FROM stories
		WHERE user_id = $1
	`, userID).Scan(&stats.Complete, &stats.InProgress, &stats.Total)
	if err != nil {
		return models.StoryStats{}, classify("story stats", err)
	}
	return stats, nil
}

// contributionStats counts each state separately; archived counts archived
// rows only
func (s *Service) contributionStats(ctx context.Context, userID int64) (models.ContributionStats, error) {
	var stats models.ContributionStats
	err := s.store.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN accepted THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN archived THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN accepted OR archived THEN 0 ELSE 1 END), 0),
			COUNT(*)
		FROM contributions
		WHERE user_id = $1
	`, userID).Scan(&stats.Accepted, &stats.Archived, &stats.Pending, &stats.Total)
	if err != nil {
		return models.ContributionStats{}, classify("contribution stats", err)
	}
	return stats, nil
}
