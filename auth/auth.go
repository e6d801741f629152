// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
)

// SessionName is the cookie holding the caller identity
const SessionName = "storyline"

const userIDKey = "user_id"

var ErrInvalidUserID = errors.New("invalid user id")

// Sessions resolves the caller's user id from a signed cookie session.
// Requests without a usable session act as the default user.
type Sessions struct {
	store         sessions.Store
	defaultUserID int64
}

// NewSessions creates a cookie-backed session store signed with key
func NewSessions(key string, defaultUserID int64) *Sessions {
	store := sessions.NewCookieStore([]byte(key))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Sessions{store: store, defaultUserID: defaultUserID}
}

func (s *Sessions) DefaultUserID() int64 {
	return s.defaultUserID
}

// UserID returns the session's user id, or the default user id when the
// request carries no valid session
func (s *Sessions) UserID(r *http.Request) int64 {
	session, err := s.store.Get(r, SessionName)
	if err != nil {
		// Tampered or stale cookies decode to a fresh session
		slog.Debug("ignoring invalid session cookie", "error", err)
		return s.defaultUserID
	}
	if id, ok := session.Values[userIDKey].(int64); ok && id > 0 {
		return id
	}
	return s.defaultUserID
}

// SetUserID stores id in the caller's session
func (s *Sessions) SetUserID(w http.ResponseWriter, r *http.Request, id int64) error {
	if id < 1 {
		return ErrInvalidUserID
	}
	session, _ := s.store.Get(r, SessionName)
	session.Values[userIDKey] = id
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Clear expires the caller's session cookie
func (s *Sessions) Clear(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.store.Get(r, SessionName)
	session.Values = map[interface{}]interface{}{}
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
