// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/danielhkuo/storyline/models"
	"github.com/danielhkuo/storyline/testutil"
)

func TestUserViews(t *testing.T) {
	r, store, _ := setupHandlers(t)

	storyID := testutil.CreateTestStory(t, store, testutil.SeedUserBastian, "Bastian's", false)
	testutil.CreateTestStory(t, store, testutil.SeedUserBastian, "Bastian's finished", true)
	a := testutil.CreateTestContribution(t, store, storyID, testutil.SeedUserCora, "a")
	testutil.CreateTestContribution(t, store, storyID, testutil.SeedUserCora, "b")
	testutil.SetContributionState(t, store, a, true, false)

	t.Run("stories", func(t *testing.T) {
		w := serve(r, testutil.MakeRequest("GET", fmt.Sprintf("/users/%d/stories", testutil.SeedUserBastian), nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var result models.UserStories
		testutil.AssertJSON(t, w, &result)
		if result.Stats != (models.StoryStats{Complete: 1, InProgress: 1, Total: 2}) {
			t.Errorf("Unexpected stats %+v", result.Stats)
		}
		if len(result.Stories) != 2 {
			t.Errorf("Expected 2 stories, got %d", len(result.Stories))
		}
	})

	t.Run("contributions", func(t *testing.T) {
		w := serve(r, testutil.MakeRequest("GET", fmt.Sprintf("/users/%d/contributions", testutil.SeedUserCora), nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var result models.UserContributions
		testutil.AssertJSON(t, w, &result)
		if result.Stats != (models.ContributionStats{Accepted: 1, Pending: 1, Total: 2}) {
			t.Errorf("Unexpected stats %+v", result.Stats)
		}
		for _, c := range result.Contributions {
			if c.StoryTitle != "Bastian's" {
				t.Errorf("Expected story title on contribution %d, got %q", c.ID, c.StoryTitle)
			}
		}
	})

	t.Run("dashboard html", func(t *testing.T) {
		w := serve(r, testutil.MakeFormRequest("GET", fmt.Sprintf("/users/%d/dashboard", testutil.SeedUserBastian), nil))
		testutil.AssertStatus(t, w, http.StatusOK)
		if !strings.Contains(w.Body.String(), "Bastian Reed") {
			t.Error("Expected user name on dashboard")
		}
	})

	t.Run("dashboard json", func(t *testing.T) {
		w := serve(r, testutil.MakeRequest("GET", fmt.Sprintf("/users/%d/dashboard", testutil.SeedUserCora), nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var dash models.Dashboard
		testutil.AssertJSON(t, w, &dash)
		if dash.ContributionStats.Total != 2 {
			t.Errorf("Expected 2 contributions, got %d", dash.ContributionStats.Total)
		}
	})

	for _, path := range []string{"/users/999/stories", "/users/999/contributions", "/users/999/dashboard"} {
		t.Run("unknown user "+path, func(t *testing.T) {
			w := serve(r, testutil.MakeRequest("GET", path, nil, nil))
			testutil.AssertStatus(t, w, http.StatusNotFound)
		})
	}

	t.Run("invalid id", func(t *testing.T) {
		w := serve(r, testutil.MakeRequest("GET", "/users/bob/stories", nil, nil))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestLoginLogout(t *testing.T) {
	r, _, _ := setupHandlers(t)

	w := serve(r, testutil.MakeFormRequest("POST", fmt.Sprintf("/login/%d", testutil.SeedUserBastian), nil))
	testutil.AssertRedirect(t, w, fmt.Sprintf("/users/%d/dashboard", testutil.SeedUserBastian))
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("Expected a session cookie")
	}

	// Stories created with the cookie belong to the session user
	req := testutil.MakeRequest("POST", "/stories/new", models.CreateStoryRequest{Title: "Mine", InitialContent: "x"}, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = serve(r, req)
	testutil.AssertStatus(t, w, http.StatusCreated)
	var story models.Story
	testutil.AssertJSON(t, w, &story)
	if story.UserID != testutil.SeedUserBastian {
		t.Errorf("Expected owner %d, got %d", testutil.SeedUserBastian, story.UserID)
	}

	req = testutil.MakeFormRequest("POST", "/logout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = serve(r, req)
	testutil.AssertRedirect(t, w, "/stories")

	t.Run("unknown user", func(t *testing.T) {
		w := serve(r, testutil.MakeRequest("POST", "/login/999", nil, nil))
		testutil.AssertStatus(t, w, http.StatusNotFound)
		if len(w.Result().Cookies()) != 0 {
			t.Error("No session should be set for an unknown user")
		}
	})
}
