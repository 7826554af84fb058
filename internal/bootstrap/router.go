package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/if-project/agenda-backend/internal/api/http"
	"github.com/if-project/agenda-backend/internal/api/http/middleware"
	"github.com/if-project/agenda-backend/internal/api/http/routes"
	"github.com/if-project/agenda-backend/internal/store"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	RateLimiter    *middleware.ClientRateLimiter
	Tree           store.Tree
	V1             routes.V1Deps
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(corsConfig(dep.AllowedOrigins)))
	r.Use(middleware.RateLimit(dep.RateLimiter))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Tree)
	healthHandler.RegisterRoutes(r)

	routes.RegisterV1(r, dep.V1)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-Id"},
		ExposeHeaders: []string{"X-Request-Id"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
