// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/danielhkuo/storyline/auth"
	"github.com/danielhkuo/storyline/db"
	"github.com/danielhkuo/storyline/middleware"
	"github.com/danielhkuo/storyline/models"
	"github.com/danielhkuo/storyline/stories"
	"github.com/danielhkuo/storyline/testutil"
	"github.com/danielhkuo/storyline/views"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupHandlers mounts every handler on a bare engine backed by a fresh
// SQLite database
func setupHandlers(t *testing.T) (*gin.Engine, *db.Store, *auth.Sessions) {
	t.Helper()

	store := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	svc := stories.NewService(store)
	sessions := auth.NewSessions(cfg.SessionKey, cfg.DefaultUserID)

	r := gin.New()
	r.SetHTMLTemplate(views.Must())
	r.Use(middleware.Identity(sessions))

	sh := NewStoryHandler(svc)
	r.GET("/stories", sh.ListStories(models.FilterAll))
	r.GET("/stories/new", sh.NewStoryForm)
	r.GET("/stories/inprogress", sh.ListStories(models.FilterInProgress))
	r.GET("/stories/complete", sh.ListStories(models.FilterComplete))
	r.GET("/stories/:id", sh.GetStory)
	r.GET("/stories/:id/contributions", sh.ListPendingContributions)
	r.POST("/stories/new", sh.CreateStory)
	r.POST("/stories/contributions/:id", sh.AcceptContribution)
	r.POST("/stories/contributions/:id/vote", sh.VoteForContribution)
	r.POST("/stories/:id", sh.FinalizeStory)
	r.POST("/stories/:id/contributions", sh.CreateContribution)

	uh := NewUserHandler(svc)
	r.GET("/users/:id/dashboard", uh.Dashboard)
	r.GET("/users/:id/stories", uh.ListStories)
	r.GET("/users/:id/contributions", uh.ListContributions)

	sess := NewSessionHandler(svc, sessions)
	r.POST("/login/:id", sess.Login)
	r.POST("/logout", sess.Logout)

	return r, store, sessions
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
