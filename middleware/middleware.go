// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/danielhkuo/storyline/auth"
	"github.com/danielhkuo/storyline/models"
	"github.com/danielhkuo/storyline/views"
)

// RequestIDHeader carries the request id in and out
const RequestIDHeader = "X-Request-ID"

const (
	requestIDKey = "request_id"
	callerKey    = "caller_id"
)

// RequestLogger logs one line per request with its status and duration.
// Health checks and metric scrapes are not logged.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		path := c.Request.URL.Path
		if path == "/health" || path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()

		// Call the next handler
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote", c.ClientIP(),
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			attrs = append(attrs, "error", errs)
		}

		// Log completion
		switch {
		case status >= http.StatusInternalServerError:
			slog.Error("request completed", attrs...)
		case status >= http.StatusBadRequest:
			slog.Warn("request completed", attrs...)
		default:
			slog.Info("request completed", attrs...)
		}
	}
}

// RequestID returns the id assigned by RequestLogger
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// Identity resolves the caller's user id from the session
func Identity(s *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(callerKey, s.UserID(c.Request))
		c.Next()
	}
}

// CurrentUserID returns the caller resolved by Identity
func CurrentUserID(c *gin.Context) int64 {
	return c.GetInt64(callerKey)
}

// WantsJSON reports whether the client asked for JSON over HTML
func WantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

// Render writes data as JSON or through the named template
func Render(c *gin.Context, status int, tmpl, title string, data any) {
	if WantsJSON(c) {
		c.JSON(status, data)
		return
	}
	c.HTML(status, tmpl, views.Page{Title: title, UserID: CurrentUserID(c), Data: data})
}

// Written answers a successful write. Browsers are redirected to location;
// JSON clients get the entity with a Location header.
func Written(c *gin.Context, status int, location string, data any) {
	if WantsJSON(c) {
		c.Header("Location", location)
		c.JSON(status, data)
		return
	}
	c.Redirect(http.StatusFound, location)
}

// ErrorResponse writes an error as JSON or as the error page and aborts
func ErrorResponse(c *gin.Context, status int, message string) {
	if WantsJSON(c) {
		c.AbortWithStatusJSON(status, models.ErrorResponse{
			Error:   http.StatusText(status),
			Message: message,
		})
		return
	}
	c.HTML(status, views.Error, views.Page{
		Title:  http.StatusText(status),
		UserID: CurrentUserID(c),
		Data:   views.ErrorPage{Status: status, Message: message},
	})
	c.Abort()
}

// ServiceError maps a service error to its HTTP status. Store and unknown
// errors are logged and answered with a generic message.
func ServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrConflict):
		ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrStoreUnavailable):
		_ = c.Error(err)
		slog.Error("store unavailable", "error", err, "request_id", RequestID(c))
		ErrorResponse(c, http.StatusServiceUnavailable, "The story store is unavailable, try again later")
	default:
		_ = c.Error(err)
		slog.Error("unhandled internal error", "error", err, "request_id", RequestID(c))
		ErrorResponse(c, http.StatusInternalServerError, "An unexpected internal error occurred")
	}
}

// ParseID reads a positive integer path parameter
func ParseID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, models.Invalid(name, fmt.Sprintf("%q is not a valid id", raw))
	}
	return id, nil
}

// Bind decodes a JSON or form body into v
func Bind(c *gin.Context, v any) error {
	if err := c.ShouldBind(v); err != nil {
		return fmt.Errorf("%w: malformed request body", models.ErrValidation)
	}
	return nil
}
