// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danielhkuo/storyline/middleware"
	"github.com/danielhkuo/storyline/models"
	"github.com/danielhkuo/storyline/stories"
	"github.com/danielhkuo/storyline/views"
)

type StoryHandler struct {
	svc *stories.Service
}

func NewStoryHandler(svc *stories.Service) *StoryHandler {
	return &StoryHandler{svc: svc}
}

func storyPath(id int64) string {
	return fmt.Sprintf("/stories/%d", id)
}

func submissionsPath(storyID int64) string {
	return storyPath(storyID) + "#submissions"
}

// ListStories returns a handler for GET /stories, /stories/inprogress and
// /stories/complete
func (h *StoryHandler) ListStories(filter models.StoryFilter) gin.HandlerFunc {
	title := map[models.StoryFilter]string{
		models.FilterAll:        "All stories",
		models.FilterInProgress: "Stories in progress",
		models.FilterComplete:   "Complete stories",
	}[filter]

	return func(c *gin.Context) {
		list, err := h.svc.ListStories(c.Request.Context(), filter)
		if err != nil {
			middleware.ServiceError(c, err)
			return
		}
		middleware.Render(c, http.StatusOK, views.StoriesIndex, title, list)
	}
}

// NewStoryForm handles GET /stories/new
func (h *StoryHandler) NewStoryForm(c *gin.Context) {
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{
			"fields": []string{"title", "initial_content"},
		})
		return
	}
	middleware.Render(c, http.StatusOK, views.StoriesNew, "New story", nil)
}

// GetStory handles GET /stories/:id
func (h *StoryHandler) GetStory(c *gin.Context) {
	storyID, err := middleware.ParseID(c, "id")
	if err != nil {
		middleware.ServiceError(c, err)
		return
	}

	detail, err := h.svc.GetStory(c.Request.Context(), storyID)
	if err != nil {
		middleware.ServiceError(c, err)
		return
	}
	middleware.Render(c, http.StatusOK, views.StoriesShow, detail.Story.Title, detail)
}

// ListPendingContributions handles GET /stories/:id/contributions
func (h *StoryHandler) ListPendingContributions(c *gin.Context) {
	storyID, err := middleware.ParseID(c, "id")
	if err != nil {
		middleware.ServiceError(c, err)
		return
	}

	pending, err := h.svc.ListPendingContributions(c.Request.Context(), storyID)
	if err != nil {
		middleware.ServiceError(c, err)
		return
	}
	middleware.Render(c, http.StatusOK, views.StoriesContributions, "Pending submissions", pending)
}

// CreateStory handles POST /stories/new
func (h *StoryHandler) CreateStory(c *gin.Context) {
	var req models.CreateStoryRequest
	if err := middleware.Bind(c, &req); err != nil {
		middleware.ServiceError(c, err)
		return
	}

	story, err := h.svc.CreateStory(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		middleware.ServiceError(c, err)
		return
	}

	storiesCreatedTotal.Inc()
	middleware.Written(c, http.StatusCreated, storyPath(story.ID), story)
}

// FinalizeStory handles POST /stories/:id
func (h *StoryHandler) FinalizeStory(c *gin.Context) {
	storyID, err := middleware.ParseID(c, "id")
	if err != nil {
		middleware.ServiceError(c, err)
		return
	}

	story, err := h.svc.FinalizeStory(c.Request.Context(), storyID)
	if err != nil {
		middleware.ServiceError(c, err)
		return
	}

	storiesFinalizedTotal.Inc()
	middleware.Written(c, http.StatusOK, storyPath(story.ID), story)
}

// CreateContribution handles POST /stories/:id/contributions
func (h *StoryHandler) CreateContribution(c *gin.Context) {
	storyID, err := middleware.ParseID(c, "id")
	if err != nil {
		middleware.ServiceError(c, err)
		return
	}

	var req models.CreateContributionRequest
	if err := middleware.Bind(c, &req); err != nil {
		middleware.ServiceError(c, err)
		return
	}

	contribution, err := h.svc.CreateContribution(c.Request.Context(), middleware.CurrentUserID(c), storyID, req)
	if err != nil {
		middleware.ServiceError(c, err)
		return
	}

	contributionsCreatedTotal.Inc()
	middleware.Written(c, http.StatusCreated, submissionsPath(storyID), contribution)
}

// AcceptContribution handles POST /stories/contributions/:id
func (h *StoryHandler) AcceptContribution(c *gin.Context) {
	contributionID, err := middleware.ParseID(c, "id")
	if err != nil {
		middleware.ServiceError(c, err)
		return
	}

	contribution, err := h.svc.AcceptContribution(c.Request.Context(), contributionID)
	switch {
	case errors.Is(err, models.ErrConflict):
		acceptsTotal.WithLabelValues("conflict").Inc()
	case err != nil:
		acceptsTotal.WithLabelValues("error").Inc()
	default:
		acceptsTotal.WithLabelValues("accepted").Inc()
	}
	if err != nil {
		middleware.ServiceError(c, err)
		return
	}

	middleware.Written(c, http.StatusOK, storyPath(contribution.StoryID), contribution)
}

// VoteForContribution handles POST /stories/contributions/:id/vote
func (h *StoryHandler) VoteForContribution(c *gin.Context) {
	contributionID, err := middleware.ParseID(c, "id")
	if err != nil {
		middleware.ServiceError(c, err)
		return
	}

	vote, err := h.svc.VoteForContribution(c.Request.Context(), middleware.CurrentUserID(c), contributionID)
	if err != nil {
		middleware.ServiceError(c, err)
		return
	}

	votesCastTotal.Inc()
	middleware.Written(c, http.StatusCreated, submissionsPath(vote.StoryID), vote)
}
