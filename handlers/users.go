// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danielhkuo/storyline/auth"
	"github.com/danielhkuo/storyline/middleware"
	"github.com/danielhkuo/storyline/stories"
	"github.com/danielhkuo/storyline/views"
)

type UserHandler struct {
	svc *stories.Service
}

func NewUserHandler(svc *stories.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

// Dashboard handles GET /users/:id/dashboard
func (h *UserHandler) Dashboard(c *gin.Context) {
	userID, err := middleware.ParseID(c, "id")
	if err != nil {
		middleware.ServiceError(c, err)
		return
	}

	dash, err := h.svc.Dashboard(c.Request.Context(), userID)
	if err != nil {
		middleware.ServiceError(c, err)
		return
	}
	middleware.Render(c, http.StatusOK, views.UsersDashboard, dash.User.Name, dash)
}

// ListStories handles GET /users/:id/stories
func (h *UserHandler) ListStories(c *gin.Context) {
	userID, err := middleware.ParseID(c, "id")
	if err != nil {
		middleware.ServiceError(c, err)
		return
	}

	result, err := h.svc.ListStoriesForUser(c.Request.Context(), userID)
	if err != nil {
		middleware.ServiceError(c, err)
		return
	}
	middleware.Render(c, http.StatusOK, views.UsersStories, "Stories by "+result.User.Name, result)
}

// ListContributions handles GET /users/:id/contributions
func (h *UserHandler) ListContributions(c *gin.Context) {
	userID, err := middleware.ParseID(c, "id")
	if err != nil {
		middleware.ServiceError(c, err)
		return
	}

	result, err := h.svc.ListContributionsForUser(c.Request.Context(), userID)
	if err != nil {
		middleware.ServiceError(c, err)
		return
	}
	middleware.Render(c, http.StatusOK, views.UsersContributions, "Contributions by "+result.User.Name, result)
}

type SessionHandler struct {
	svc      *stories.Service
	sessions *auth.Sessions
}

func NewSessionHandler(svc *stories.Service, sessions *auth.Sessions) *SessionHandler {
	return &SessionHandler{svc: svc, sessions: sessions}
}

// Login handles POST /login/:id
func (h *SessionHandler) Login(c *gin.Context) {
	userID, err := middleware.ParseID(c, "id")
	if err != nil {
		middleware.ServiceError(c, err)
		return
	}

	user, err := h.svc.GetUser(c.Request.Context(), userID)
	if err != nil {
		middleware.ServiceError(c, err)
		return
	}

	if err := h.sessions.SetUserID(c.Writer, c.Request, user.ID); err != nil {
		middleware.ServiceError(c, err)
		return
	}

	slog.Info("session user set", "user_id", user.ID)
	middleware.Written(c, http.StatusOK, fmt.Sprintf("/users/%d/dashboard", user.ID), user)
}

// Logout handles POST /logout
func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.sessions.Clear(c.Writer, c.Request); err != nil {
		middleware.ServiceError(c, err)
		return
	}
	middleware.Written(c, http.StatusOK, "/stories", gin.H{"user_id": h.sessions.DefaultUserID()})
}
