package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/tracker-dashboard-go/internal/handler"
	"github.com/jengzang/tracker-dashboard-go/internal/middleware"
	"github.com/jengzang/tracker-dashboard-go/internal/service"
)

// Services are the collaborators the router exposes
type Services struct {
	Sessions *service.SessionService
	Prune    *service.PruneService
}

// Options tune the router
type Options struct {
	PruneRateLimit int           // prune requests per window per client
	PruneWindow    time.Duration // defaults to one minute
	Stop           <-chan struct{}
}

// SetupRouter wires middleware, handlers and routes
func SetupRouter(svc Services, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Tracker dashboard API is running",
		})
	})

	sessionHandler := handler.NewSessionHandler(svc.Sessions)
	maintenanceHandler := handler.NewMaintenanceHandler(svc.Prune)

	window := opts.PruneWindow
	if window <= 0 {
		window = time.Minute
	}
	limit := opts.PruneRateLimit
	if limit < 1 {
		limit = 1
	}
	pruneLimiter := middleware.NewRateLimiter(limit, window, opts.Stop)

	v1 := r.Group("/api/v1")
	{
		sessions := v1.Group("/sessions")
		{
			sessions.GET("", sessionHandler.ListSessions)
			sessions.GET("/:key", sessionHandler.GetSession)
			sessions.GET("/:key/export", sessionHandler.ExportSession)
		}

		maintenance := v1.Group("/maintenance")
		{
			maintenance.POST("/prune", middleware.RateLimit(pruneLimiter), maintenanceHandler.PruneIncomplete)
			maintenance.GET("/runs", maintenanceHandler.ListRuns)
		}
	}

	return r
}
