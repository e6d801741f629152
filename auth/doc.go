// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth resolves who is calling.

There is no login flow with credentials. The caller's user id lives in a
signed cookie session; requests without one act as the configured default
user.

# Sessions

	s := auth.NewSessions(cfg.SessionKey, cfg.DefaultUserID)

	id := s.UserID(r)            // session user or default
	err := s.SetUserID(w, r, 2)  // switch user
	err = s.Clear(w, r)          // back to the default user

Cookies are signed with the session key, HttpOnly, SameSite=Lax, and live
for 30 days. A cookie that fails verification is ignored rather than
rejected.
*/
package auth
