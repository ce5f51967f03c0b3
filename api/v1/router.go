package v1

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/project-registry/middleware"
	"github.com/project-registry/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the collaborators the HTTP layer is built from
type Dependencies struct {
	Projects    *services.ProjectService
	Auth        *services.AuthService
	Store       Pinger
	ServiceName string
	Version     string
	CORSOrigins []string
}

// NewRouter builds the gin engine with middleware and every route registered
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(cors.New(corsConfig(deps.CORSOrigins)))

	RegisterRoutes(router, deps)
	return router
}

// RegisterRoutes registers all routes on router
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	// Health check endpoints
	NewHealthHandler(deps.ServiceName, deps.Version, deps.Store).RegisterRoutes(router)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Project endpoints
	NewProjectController(deps.Projects).RegisterRoutes(router.Group("/api"))

	// Auth endpoints
	NewAuthController(deps.Auth).RegisterRoutes(router.Group("/log"))
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
	}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
