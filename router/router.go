// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"

	"github.com/danielhkuo/storyline/auth"
	"github.com/danielhkuo/storyline/cliparse"
	"github.com/danielhkuo/storyline/handlers"
	"github.com/danielhkuo/storyline/middleware"
	"github.com/danielhkuo/storyline/models"
	"github.com/danielhkuo/storyline/stories"
	"github.com/danielhkuo/storyline/views"
)

// HTTP metrics register with the default prometheus registry, which only
// accepts them once per process
var httpMetrics = sync.OnceValue(func() *ginprometheus.Prometheus {
	p := ginprometheus.NewPrometheus("gin")
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		if route := c.FullPath(); route != "" {
			return route
		}
		return "unmatched"
	}
	return p
})

func NewRouter(svc *stories.Service, cfg cliparse.Config, sessions *auth.Sessions) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(views.Must())

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Location", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))

	// Registers GET /metrics
	httpMetrics().Use(r)

	r.Use(middleware.Identity(sessions))

	// Initialize handlers
	storyHandler := handlers.NewStoryHandler(svc)
	userHandler := handlers.NewUserHandler(svc)
	sessionHandler := handlers.NewSessionHandler(svc, sessions)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := svc.Ping(ctx); err != nil {
			slog.Error("health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/stories")
	})

	// Story reads
	r.GET("/stories", storyHandler.ListStories(models.FilterAll))
	r.GET("/stories/new", storyHandler.NewStoryForm)
	r.GET("/stories/inprogress", storyHandler.ListStories(models.FilterInProgress))
	r.GET("/stories/complete", storyHandler.ListStories(models.FilterComplete))
	r.GET("/stories/:id", storyHandler.GetStory)
	r.GET("/stories/:id/contributions", storyHandler.ListPendingContributions)

	// Story writes
	r.POST("/stories/new", storyHandler.CreateStory)
	r.POST("/stories/contributions/:id", storyHandler.AcceptContribution)
	r.POST("/stories/contributions/:id/vote", storyHandler.VoteForContribution)
	r.POST("/stories/:id", storyHandler.FinalizeStory)
	r.POST("/stories/:id/contributions", storyHandler.CreateContribution)

	// User views
	r.GET("/users/:id/dashboard", userHandler.Dashboard)
	r.GET("/users/:id/stories", userHandler.ListStories)
	r.GET("/users/:id/contributions", userHandler.ListContributions)

	// Caller identity
	r.POST("/login/:id", sessionHandler.Login)
	r.POST("/logout", sessionHandler.Logout)

	r.NoRoute(func(c *gin.Context) {
		middleware.ErrorResponse(c, http.StatusNotFound, "page not found")
	})

	return r
}
