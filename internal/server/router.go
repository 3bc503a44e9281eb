package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careercraft-backend/internal/coach"
	"careercraft-backend/internal/interviews"
	"careercraft-backend/internal/resumes"
	"careercraft-backend/internal/shared/config"
	"careercraft-backend/internal/shared/metrics"
	"careercraft-backend/internal/shared/server/middleware"
	"careercraft-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config           config.Config
	ResumeHandler    *resumes.Handler
	CoachHandler     *coach.Handler
	InterviewHandler *interviews.Handler
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

	deps.ResumeHandler.RegisterRoutes(api)
	deps.CoachHandler.RegisterRoutes(api)
	deps.InterviewHandler.RegisterRoutes(api)

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
