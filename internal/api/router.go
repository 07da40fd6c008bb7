package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/primate/internal/logging"
)

// NewRouter builds the gin engine serving the status API.
func NewRouter(deps Deps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(deps.Logger))

	h := NewHandler(deps)

	api := r.Group("/api")
	{
		api.GET("/conditions", h.ListConditions)

		subjects := api.Group("/subjects")
		{
			subjects.GET("", h.ListSubjects)
			subjects.GET("/:name", h.GetSubject)
			subjects.GET("/:name/trials", h.ListTrials)
		}
	}

	return r
}

// requestLogger writes one log line per request.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
