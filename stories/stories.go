// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/storyline/db"
	"github.com/danielhkuo/storyline/models"
)

// ListStories returns stories with their author. The unfiltered list is
// oldest first; filtered lists are newest first.
func (s *Service) ListStories(ctx context.Context, filter models.StoryFilter) (models.StoryList, error) {
	if !filter.Valid() {
		return models.StoryList{}, models.Invalid("filter", fmt.Sprintf("%q is not one of all, inprogress, complete", filter))
	}

	query := storyListingQuery + ` ORDER BY s.id ASC`
	switch filter {
	case models.FilterInProgress:
		query = storyListingQuery + ` WHERE s.complete = FALSE ORDER BY s.id DESC`
	case models.FilterComplete:
		query = storyListingQuery + ` WHERE s.complete = TRUE ORDER BY s.id DESC`
	}

	rows, err := s.store.QueryContext(ctx, query)
	if err != nil {
		return models.StoryList{}, classify("list stories", err)
	}
	defer rows.Close()

	list := models.StoryList{Filter: filter, Stories: []models.StoryListing{}}
	for rows.Next() {
		l, err := scanStoryListing(rows)
		if err != nil {
			return models.StoryList{}, classify("scan story", err)
		}
		list.Stories = append(list.Stories, l)
	}
	if err := rows.Err(); err != nil {
		return models.StoryList{}, classify("list stories", err)
	}
	return list, nil
}

// GetStory returns a story with every contribution made to it
func (s *Service) GetStory(ctx context.Context, storyID int64) (models.StoryDetail, error) {
	story, err := scanStoryListing(s.store.QueryRowContext(ctx, storyListingQuery+` WHERE s.id = $1`, storyID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.StoryDetail{}, models.ErrStoryNotFound
	}
	if err != nil {
		return models.StoryDetail{}, classify("get story", err)
	}

	rows, err := s.store.QueryContext(ctx, contributionViewQuery+`
		WHERE c.story_id = $1
		ORDER BY c.id ASC
	`, storyID)
	if err != nil {
		return models.StoryDetail{}, classify("get story contributions", err)
	}
	contributions, err := collectContributionViews(rows)
	if err != nil {
		return models.StoryDetail{}, classify("get story contributions", err)
	}

	detail := models.StoryDetail{
		Story:         story,
		Pending:       []models.ContributionView{},
		Contributions: contributions,
	}
	for i := range contributions {
		switch c := contributions[i]; {
		case c.Accepted:
			detail.Accepted = &contributions[i]
		case c.Pending():
			detail.Pending = append(detail.Pending, c)
		}
	}
	return detail, nil
}

// CreateStory inserts a new in-progress story owned by callerID
func (s *Service) CreateStory(ctx context.Context, callerID int64, req models.CreateStoryRequest) (models.Story, error) {
	title, err := requireText("title", req.Title)
	if err != nil {
		return models.Story{}, err
	}
	initialContent, err := requireText("initial_content", req.InitialContent)
	if err != nil {
		return models.Story{}, err
	}

	var story models.Story
	err = s.store.WithTx(ctx, func(tx *db.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx, `
			INSERT INTO stories (user_id, title, initial_content)
			VALUES ($1, $2, $3)
			RETURNING id
		`, callerID, title, initialContent).Scan(&id)
		if db.IsForeignKeyViolation(err) {
			return models.ErrUserNotFound
		}
		if err != nil {
			return err
		}

		story, err = scanStory(tx.QueryRowContext(ctx, storyQuery+` WHERE id = $1`, id))
		return err
	})
	if err != nil {
		return models.Story{}, classify("create story", err)
	}

	slog.Info("story created", "story_id", story.ID, "user_id", callerID)
	return story, nil
}

// FinalizeStory marks a story complete. Finalizing a complete story is a
// no-op write.
func (s *Service) FinalizeStory(ctx context.Context, storyID int64) (models.Story, error) {
	var story models.Story
	err := s.store.WithTx(ctx, func(tx *db.Tx) error {
		result, err := tx.ExecContext(ctx, `UPDATE stories SET complete = TRUE WHERE id = $1`, storyID)
		if err != nil {
			return err
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return models.ErrStoryNotFound
		}

		story, err = scanStory(tx.QueryRowContext(ctx, storyQuery+` WHERE id = $1`, storyID))
		return err
	})
	if err != nil {
		return models.Story{}, classify("finalize story", err)
	}

	slog.Info("story finalized", "story_id", storyID)
	return story, nil
}
