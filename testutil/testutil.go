// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/danielhkuo/storyline/cliparse"
	"github.com/danielhkuo/storyline/db"
)

// Seeded users created by the migrations
const (
	SeedUserAlice   int64 = 1
	SeedUserBastian int64 = 2
	SeedUserCora    int64 = 3
)

// PostgresEnv enables tests that start a PostgreSQL container
const PostgresEnv = "STORYLINE_PG_TESTS"

// SetupTestDB creates a fresh SQLite database with the full schema
func SetupTestDB(t *testing.T) *db.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "storyline_test.db")
	if err := db.Migrate(db.SQLite, path); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	store, err := db.Open(context.Background(), db.SQLite, path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

// SetupPostgresDB starts a PostgreSQL container and migrates it. Skipped in
// -short mode or when STORYLINE_PG_TESTS is unset.
func SetupPostgresDB(t *testing.T) *db.Store {
	t.Helper()

	if testing.Short() || os.Getenv(PostgresEnv) == "" {
		t.Skipf("set %s to run PostgreSQL container tests", PostgresEnv)
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("storyline_test"),
		postgres.WithUsername("storyline"),
		postgres.WithPassword("storyline"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate postgres container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get postgres connection string: %v", err)
	}
	if err := db.Migrate(db.Postgres, connStr); err != nil {
		t.Fatalf("Failed to migrate postgres: %v", err)
	}

	store, err := db.Open(ctx, db.Postgres, connStr)
	if err != nil {
		t.Fatalf("Failed to open postgres: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:               3318,
		DatabaseURL:        "storyline_test.db",
		DatabaseType:       "sqlite",
		SessionKey:         "test-session-key",
		DefaultUserID:      SeedUserAlice,
		LogLevel:           "error",
		LogFormat:          "text",
		CORSAllowedOrigins: []string{"http://localhost:3318"},
	}
}

// CreateTestUser inserts a user and returns its ID
func CreateTestUser(t *testing.T, store *db.Store, name string) int64 {
	t.Helper()

	var id int64
	err := store.QueryRowContext(context.Background(), `
		INSERT INTO users (name, avatar) VALUES ($1, $2) RETURNING id
	`, name, "/images/avatars/default.png").Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return id
}

// CreateTestStory inserts a story owned by userID and returns its ID
func CreateTestStory(t *testing.T, store *db.Store, userID int64, title string, complete bool) int64 {
	t.Helper()

	var id int64
	err := store.QueryRowContext(context.Background(), `
		INSERT INTO stories (user_id, title, initial_content, complete)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, userID, title, "It was a dark and stormy night.", complete).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test story: %v", err)
	}
	return id
}

// CreateTestContribution inserts a pending contribution and returns its ID
func CreateTestContribution(t *testing.T, store *db.Store, storyID, userID int64, content string) int64 {
	t.Helper()

	var id int64
	err := store.QueryRowContext(context.Background(), `
		INSERT INTO contributions (story_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id
	`, storyID, userID, content).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test contribution: %v", err)
	}
	return id
}

// CastTestVote records a vote by userID
func CastTestVote(t *testing.T, store *db.Store, userID, contributionID int64) {
	t.Helper()

	_, err := store.ExecContext(context.Background(), `
		INSERT INTO contribution_votes (user_id, contribution_id, story_id)
		VALUES ($1, $2, (SELECT story_id FROM contributions WHERE id = $3))
	`, userID, contributionID, contributionID)
	if err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}
}

// SetContributionState overwrites the accepted and archived flags
func SetContributionState(t *testing.T, store *db.Store, contributionID int64, accepted, archived bool) {
	t.Helper()

	_, err := store.ExecContext(context.Background(), `
		UPDATE contributions SET accepted = $1, archived = $2 WHERE id = $3
	`, accepted, archived, contributionID)
	if err != nil {
		t.Fatalf("Failed to update test contribution: %v", err)
	}
}

// MakeRequest creates an HTTP test request with a JSON body. JSON requests
// also ask for a JSON response.
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Accept", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeFormRequest creates a browser-style request with a form body
func MakeFormRequest(method, path string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertRedirect checks for a 302 to location
func AssertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	AssertStatus(t, w, http.StatusFound)
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("Expected redirect to %q, got %q", location, got)
	}
}
