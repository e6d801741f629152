// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stories_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/danielhkuo/storyline/db"
	"github.com/danielhkuo/storyline/models"
	"github.com/danielhkuo/storyline/stories"
	"github.com/danielhkuo/storyline/testutil"
)

// PostgresSuite runs the store-sensitive paths against a real PostgreSQL
type PostgresSuite struct {
	suite.Suite
	store *db.Store
	svc   *stories.Service
}

func TestPostgresSuite(t *testing.T) {
	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupSuite() {
	s.store = testutil.SetupPostgresDB(s.T())
	s.svc = stories.NewService(s.store)
}

func (s *PostgresSuite) TestAcceptRace() {
	assertSingleAccept(s.T(), s.store, s.svc)
}

func (s *PostgresSuite) TestVoteResolvesStory() {
	ctx := context.Background()
	storyID := testutil.CreateTestStory(s.T(), s.store, testutil.SeedUserAlice, "pg votes", false)
	c := testutil.CreateTestContribution(s.T(), s.store, storyID, testutil.SeedUserBastian, "x")

	vote, err := s.svc.VoteForContribution(ctx, testutil.SeedUserCora, c)
	s.Require().NoError(err)
	s.Equal(storyID, vote.StoryID)

	_, err = s.svc.VoteForContribution(ctx, testutil.SeedUserCora, c)
	s.ErrorIs(err, models.ErrDuplicateVote)
}

func (s *PostgresSuite) TestVoteWaitsForConcurrentAccept() {
	ctx := context.Background()
	storyID := testutil.CreateTestStory(s.T(), s.store, testutil.SeedUserAlice, "pg vote lock", false)
	winner := testutil.CreateTestContribution(s.T(), s.store, storyID, testutil.SeedUserBastian, "winner")
	loser := testutil.CreateTestContribution(s.T(), s.store, storyID, testutil.SeedUserCora, "loser")

	// Hold the story lock the way an accept does, archive the loser, and
	// commit only after the vote has started
	tx, err := s.store.DB().BeginTx(ctx, nil)
	s.Require().NoError(err)
	defer tx.Rollback()
	_, err = tx.ExecContext(ctx, `SELECT id FROM stories WHERE id = $1 FOR UPDATE`, storyID)
	s.Require().NoError(err)
	_, err = tx.ExecContext(ctx, `UPDATE contributions SET archived = TRUE WHERE id = $1`, loser)
	s.Require().NoError(err)
	_, err = tx.ExecContext(ctx, `UPDATE contributions SET accepted = TRUE WHERE id = $1`, winner)
	s.Require().NoError(err)

	voted := make(chan error, 1)
	go func() {
		_, err := s.svc.VoteForContribution(ctx, testutil.SeedUserAlice, loser)
		voted <- err
	}()

	select {
	case err := <-voted:
		s.FailNow("vote finished while the story was locked", "err=%v", err)
	case <-time.After(300 * time.Millisecond):
	}
	s.Require().NoError(tx.Commit())

	select {
	case err := <-voted:
		s.ErrorIs(err, models.ErrContributionClosed)
	case <-time.After(10 * time.Second):
		s.FailNow("vote did not finish after the accept committed")
	}

	var votes int
	s.Require().NoError(s.store.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contribution_votes WHERE contribution_id = $1`, loser).Scan(&votes))
	s.Zero(votes)
}

func (s *PostgresSuite) TestUserStats() {
	ctx := context.Background()
	user := testutil.CreateTestUser(s.T(), s.store, "Pg Writer")
	storyID := testutil.CreateTestStory(s.T(), s.store, user, "pg stats", false)
	a := testutil.CreateTestContribution(s.T(), s.store, storyID, user, "a")
	testutil.CreateTestContribution(s.T(), s.store, storyID, user, "b")

	_, err := s.svc.AcceptContribution(ctx, a)
	s.Require().NoError(err)

	result, err := s.svc.ListContributionsForUser(ctx, user)
	s.Require().NoError(err)
	s.Equal(models.ContributionStats{Accepted: 1, Archived: 1, Total: 2}, result.Stats)

	dash, err := s.svc.Dashboard(ctx, user)
	s.Require().NoError(err)
	s.Equal(models.StoryStats{InProgress: 1, Total: 1}, dash.StoryStats)
}
