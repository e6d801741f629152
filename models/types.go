// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// StoryFilter selects which stories ListStories returns
type StoryFilter string

// Story filter constants
const (
	FilterAll        StoryFilter = "all"
	FilterInProgress StoryFilter = "inprogress"
	FilterComplete   StoryFilter = "complete"
)

// Valid reports whether f is one of the known filters
func (f StoryFilter) Valid() bool {
	switch f {
	case FilterAll, FilterInProgress, FilterComplete:
		return true
	}
	return false
}

// Request types

type CreateStoryRequest struct {
	Title          string `json:"title" form:"title"`
	InitialContent string `json:"initial_content" form:"initialContent"`
}

type CreateContributionRequest struct {
	Content string `json:"content" form:"content"`
}

// Domain types

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

type Story struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Title          string    `json:"title"`
	InitialContent string    `json:"initial_content"`
	Complete       bool      `json:"complete"`
	CreatedAt      time.Time `json:"created_at"`
}

// StoryListing is a story joined with its owner's display attributes
type StoryListing struct {
	Story
	AuthorName   string `json:"author_name"`
	AuthorAvatar string `json:"author_avatar"`
}

type Contribution struct {
	ID        int64     `json:"id"`
	StoryID   int64     `json:"story_id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	Accepted  bool      `json:"accepted"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"created_at"`
}

// Pending reports whether the contribution can still be voted on or accepted
func (c Contribution) Pending() bool {
	return !c.Accepted && !c.Archived
}

// ContributionView is a contribution with its vote count and contributor
type ContributionView struct {
	Contribution
	Votes             int64  `json:"votes"`
	ContributorName   string `json:"contributor"`
	ContributorAvatar string `json:"contributor_avatar"`
	StoryTitle        string `json:"story_title,omitempty"`
}

type ContributionVote struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	ContributionID int64     `json:"contribution_id"`
	StoryID        int64     `json:"story_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// Response types

type StoryList struct {
	Filter  StoryFilter    `json:"filter"`
	Stories []StoryListing `json:"stories"`
}

type StoryDetail struct {
	Story         StoryListing       `json:"story"`
	Accepted      *ContributionView  `json:"accepted,omitempty"`
	Pending       []ContributionView `json:"pending"`
	Contributions []ContributionView `json:"contributions"`
}

type PendingContributions struct {
	StoryID       int64              `json:"story_id"`
	Contributions []ContributionView `json:"contributions"`
}

type StoryStats struct {
	Complete   int64 `json:"complete"`
	InProgress int64 `json:"in_progress"`
	Total      int64 `json:"total"`
}

type ContributionStats struct {
	Accepted int64 `json:"accepted"`
	Archived int64 `json:"archived"`
	Pending  int64 `json:"pending"`
	Total    int64 `json:"total"`
}

type UserStories struct {
	User    User       `json:"user"`
	Stories []Story    `json:"stories"`
	Stats   StoryStats `json:"stats"`
}

type UserContributions struct {
	User          User               `json:"user"`
	Contributions []ContributionView `json:"contributions"`
	Stats         ContributionStats  `json:"stats"`
}

type Dashboard struct {
	User              User              `json:"user"`
	StoryStats        StoryStats        `json:"story_stats"`
	ContributionStats ContributionStats `json:"contribution_stats"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
