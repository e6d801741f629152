// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/storyline/models"
)

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name string
		n    int
		in   string
		want string
	}{
		{"short text untouched", 20, "Once upon a time", "Once upon a time"},
		{"cut on word boundary", 12, "Once upon a time there was", "Once upon a…"},
		{"no space to cut on", 5, "abcdefghij", "abcde…"},
		{"multibyte runes", 3, "ééééé", "ééé…"},
		{"early space in multibyte text kept", 6, "éé ééééé", "éé ééé…"},
		{"multibyte word boundary", 8, "ééé ééé ééé", "ééé ééé…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := excerpt(tt.n, tt.in); got != tt.want {
				t.Errorf("excerpt(%d, %q) = %q, want %q", tt.n, tt.in, got, tt.want)
			}
		})
	}
}

func TestPlural(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 votes"},
		{1, "1 vote"},
		{2, "2 votes"},
	}
	for _, tt := range tests {
		if got := plural(tt.n, "vote"); got != tt.want {
			t.Errorf("plural(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestTemplatesRender(t *testing.T) {
	tmpl, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	now := time.Now().Add(-2 * time.Hour)
	user := models.User{ID: 1, Name: "Alice Quill", Avatar: "/images/avatars/alice.png", CreatedAt: now}
	story := models.StoryListing{
		Story:        models.Story{ID: 7, UserID: 1, Title: "The Lighthouse", InitialContent: "The lamp went out.", CreatedAt: now},
		AuthorName:   "Alice Quill",
		AuthorAvatar: "/images/avatars/alice.png",
	}
	pending := models.ContributionView{
		Contribution:    models.Contribution{ID: 3, StoryID: 7, UserID: 2, Content: "Someone knocked.", CreatedAt: now},
		Votes:           2,
		ContributorName: "Bastian Reed",
		StoryTitle:      "The Lighthouse",
	}
	accepted := pending
	accepted.ID = 4
	accepted.Accepted = true
	accepted.Content = "The keeper woke."

	tests := []struct {
		name     string
		data     any
		contains []string
	}{
		{StoriesIndex, models.StoryList{Filter: models.FilterInProgress, Stories: []models.StoryListing{story}}, []string{"Stories in progress", "The Lighthouse", "/stories/7"}},
		{StoriesIndex, models.StoryList{Filter: models.FilterAll, Stories: []models.StoryListing{}}, []string{"No stories yet"}},
		{StoriesNew, nil, []string{`name="initialContent"`, `action="/stories/new"`}},
		{StoriesShow, models.StoryDetail{
			Story:         story,
			Pending:       []models.ContributionView{pending},
			Contributions: []models.ContributionView{pending},
		}, []string{`id="submissions"`, "/stories/contributions/3/vote", "2 votes", `action="/stories/7/contributions"`}},
		{StoriesShow, models.StoryDetail{
			Story:         models.StoryListing{Story: models.Story{ID: 8, Title: "Done", Complete: true}},
			Accepted:      &accepted,
			Contributions: []models.ContributionView{accepted},
		}, []string{"The keeper woke.", "accepted"}},
		{StoriesContributions, models.PendingContributions{StoryID: 7, Contributions: []models.ContributionView{pending}}, []string{"Someone knocked.", "/stories/7"}},
		{UsersDashboard, models.Dashboard{User: user, StoryStats: models.StoryStats{Total: 1200}}, []string{"Alice Quill", "1,200 total"}},
		{UsersStories, models.UserStories{User: user, Stories: []models.Story{story.Story}, Stats: models.StoryStats{InProgress: 1, Total: 1}}, []string{"Stories by Alice Quill", "in progress"}},
		{UsersContributions, models.UserContributions{User: user, Contributions: []models.ContributionView{pending}, Stats: models.ContributionStats{Pending: 1, Total: 1}}, []string{"The Lighthouse", "pending"}},
		{Error, ErrorPage{Status: 404, Message: "story not found"}, []string{"404", "story not found"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tmpl.ExecuteTemplate(&buf, tt.name, Page{Title: "Test", UserID: 1, Data: tt.data}); err != nil {
				t.Fatalf("ExecuteTemplate(%s) error = %v", tt.name, err)
			}
			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("%s output missing %q", tt.name, want)
				}
			}
		})
	}
}

func TestTemplatesEscapeContent(t *testing.T) {
	tmpl := Must()

	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, StoriesIndex, Page{Data: models.StoryList{
		Filter:  models.FilterAll,
		Stories: []models.StoryListing{{Story: models.Story{ID: 1, Title: "<script>alert(1)</script>"}}},
	}})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "<script>alert") {
		t.Error("story title was not escaped")
	}
}
