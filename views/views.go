// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Template names
const (
	StoriesIndex         = "stories_index.tmpl"
	StoriesNew           = "stories_new.tmpl"
	StoriesShow          = "stories_show.tmpl"
	StoriesContributions = "stories_contributions.tmpl"
	UsersDashboard       = "users_dashboard.tmpl"
	UsersStories         = "users_stories.tmpl"
	UsersContributions   = "users_contributions.tmpl"
	Error                = "error.tmpl"
)

// Page is the value every template executes against
type Page struct {
	Title  string
	UserID int64
	Data   any
}

// ErrorPage is the Data of the error template
type ErrorPage struct {
	Status  int
	Message string
}

// Funcs is the template function map
var Funcs = template.FuncMap{
	"ago": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return humanize.Time(t)
	},
	"count":   humanize.Comma,
	"plural":  plural,
	"excerpt": excerpt,
}

func plural(n int64, singular string) string {
	return english.Plural(int(n), singular, "")
}

// excerpt shortens s to at most n runes, cutting on a word boundary
func excerpt(n int, s string) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)[:n]
	for i := len(runes) - 1; i > n/2; i-- {
		if runes[i] == ' ' {
			runes = runes[:i]
			break
		}
	}
	return strings.TrimRight(string(runes), " ,.;:") + "…"
}

// New parses the embedded templates
func New() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(Funcs).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// Must is New for package-level setup; it panics on a template error
func Must() *template.Template {
	return template.Must(New())
}
