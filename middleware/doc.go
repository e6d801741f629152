// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides gin middleware and response helpers.

# Request Logging

	r.Use(middleware.RequestLogger())

Logs method, path, status, duration and request id once per request.
The X-Request-ID header is reused when the client sends one. /health and
/metrics are not logged.

# Identity

	r.Use(middleware.Identity(sessions))
	callerID := middleware.CurrentUserID(c)

# Responses

Render, Written and ErrorResponse pick JSON or HTML from the Accept header:

	middleware.Render(c, http.StatusOK, views.StoriesShow, title, detail)
	middleware.Written(c, http.StatusCreated, "/stories/5", story)

ServiceError maps errors from the stories package:

	models.ErrValidation       → 400
	models.ErrNotFound         → 404
	models.ErrConflict         → 409
	models.ErrStoreUnavailable → 503
	anything else              → 500

Store and internal errors are logged with the full chain; the response only
carries a generic message.

# Request Parsing

	id, err := middleware.ParseID(c, "id")   // positive integers only
	err = middleware.Bind(c, &req)          // JSON or form body
*/
package middleware
