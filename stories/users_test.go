// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/storyline/models"
	"github.com/danielhkuo/storyline/stories"
	"github.com/danielhkuo/storyline/testutil"
)

func TestGetUser(t *testing.T) {
	svc, ctx := newService(t)

	user, err := svc.GetUser(ctx(), testutil.SeedUserAlice)
	require.NoError(t, err)
	assert.Equal(t, "Alice Quill", user.Name)
	assert.Equal(t, "/images/avatars/alice.png", user.Avatar)

	_, err = svc.GetUser(ctx(), 999)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestListStoriesForUser(t *testing.T) {
	store := testutil.SetupTestDB(t)
	svc := stories.NewService(store)
	ctx := context.Background()

	a := testutil.CreateTestStory(t, store, testutil.SeedUserBastian, "One", false)
	b := testutil.CreateTestStory(t, store, testutil.SeedUserBastian, "Two", true)
	c := testutil.CreateTestStory(t, store, testutil.SeedUserBastian, "Three", false)
	testutil.CreateTestStory(t, store, testutil.SeedUserCora, "Not mine", true)

	result, err := svc.ListStoriesForUser(ctx, testutil.SeedUserBastian)
	require.NoError(t, err)

	assert.Equal(t, "Bastian Reed", result.User.Name)
	var ids []int64
	for _, s := range result.Stories {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int64{a, b, c}, ids)
	assert.Equal(t, models.StoryStats{Complete: 1, InProgress: 2, Total: 3}, result.Stats)
}

func TestListStoriesForUser_NoStories(t *testing.T) {
	svc, ctx := newService(t)

	result, err := svc.ListStoriesForUser(ctx(), testutil.SeedUserCora)
	require.NoError(t, err)
	assert.NotNil(t, result.Stories)
	assert.Empty(t, result.Stories)
	assert.Equal(t, models.StoryStats{}, result.Stats)

	_, err = svc.ListStoriesForUser(ctx(), 999)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestListContributionsForUser(t *testing.T) {
	store := testutil.SetupTestDB(t)
	svc := stories.NewService(store)
	ctx := context.Background()

	story := testutil.CreateTestStory(t, store, testutil.SeedUserAlice, "Shared", false)
	other := testutil.CreateTestStory(t, store, testutil.SeedUserAlice, "Other", false)

	accepted := testutil.CreateTestContribution(t, store, story, testutil.SeedUserCora, "accepted")
	archived := testutil.CreateTestContribution(t, store, story, testutil.SeedUserCora, "archived")
	pending := testutil.CreateTestContribution(t, store, other, testutil.SeedUserCora, "pending")
	testutil.CreateTestContribution(t, store, other, testutil.SeedUserBastian, "someone else")

	testutil.CastTestVote(t, store, testutil.SeedUserAlice, accepted)
	testutil.CastTestVote(t, store, testutil.SeedUserBastian, accepted)
	testutil.CastTestVote(t, store, testutil.SeedUserAlice, pending)

	_, err := svc.AcceptContribution(ctx, accepted)
	require.NoError(t, err)

	result, err := svc.ListContributionsForUser(ctx, testutil.SeedUserCora)
	require.NoError(t, err)
	assert.Equal(t, "Cora Vale", result.User.Name)
	require.Len(t, result.Contributions, 3)

	byID := map[int64]models.ContributionView{}
	for _, c := range result.Contributions {
		byID[c.ID] = c
	}
	assert.Equal(t, int64(2), byID[accepted].Votes)
	assert.Equal(t, int64(0), byID[archived].Votes)
	assert.Equal(t, int64(1), byID[pending].Votes)
	assert.Equal(t, "Shared", byID[accepted].StoryTitle)
	assert.Equal(t, "Other", byID[pending].StoryTitle)
	assert.True(t, byID[archived].Archived)

	assert.Equal(t, models.ContributionStats{Accepted: 1, Archived: 1, Pending: 1, Total: 3}, result.Stats,
		"archived counts archived rows only")
}

func TestListContributionsForUser_NotFound(t *testing.T) {
	svc, ctx := newService(t)

	_, err := svc.ListContributionsForUser(ctx(), 999)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestDashboard(t *testing.T) {
	store := testutil.SetupTestDB(t)
	svc := stories.NewService(store)
	ctx := context.Background()

	story := testutil.CreateTestStory(t, store, testutil.SeedUserAlice, "Mine", false)
	testutil.CreateTestStory(t, store, testutil.SeedUserAlice, "Finished", true)
	testutil.CreateTestContribution(t, store, story, testutil.SeedUserAlice, "self reply")

	dash, err := svc.Dashboard(ctx, testutil.SeedUserAlice)
	require.NoError(t, err)
	assert.Equal(t, testutil.SeedUserAlice, dash.User.ID)
	assert.Equal(t, models.StoryStats{Complete: 1, InProgress: 1, Total: 2}, dash.StoryStats)
	assert.Equal(t, models.ContributionStats{Pending: 1, Total: 1}, dash.ContributionStats)

	_, err = svc.Dashboard(ctx, 999)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestStoreUnavailable(t *testing.T) {
	store := testutil.SetupTestDB(t)
	svc := stories.NewService(store)
	require.NoError(t, store.Close())

	_, err := svc.ListStories(context.Background(), models.FilterAll)
	assert.ErrorIs(t, err, models.ErrStoreUnavailable)

	_, err = svc.AcceptContribution(context.Background(), 1)
	assert.ErrorIs(t, err, models.ErrStoreUnavailable)
}
