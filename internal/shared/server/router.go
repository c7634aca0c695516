package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"arvr-research-backend/internal/documents"
	"arvr-research-backend/internal/shared/config"
	"arvr-research-backend/internal/shared/metrics"
	"arvr-research-backend/internal/shared/server/middleware"
	"arvr-research-backend/internal/shared/server/respond"
	"arvr-research-backend/internal/summaries"
)

// RouterDeps carries the handlers wired into the router.
type RouterDeps struct {
	Config           config.Config
	DocumentsHandler *documents.Handler
	SummariesHandler *summaries.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	if deps.DocumentsHandler != nil {
		deps.DocumentsHandler.RegisterRoutes(api)
	}
	if deps.SummariesHandler != nil {
		deps.SummariesHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
