package app

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/techblog/core/internal/middleware"
	"github.com/techblog/core/internal/modules/auth"
	"github.com/techblog/core/internal/modules/content"
	"github.com/techblog/core/internal/modules/storage/upload"
	"github.com/techblog/core/internal/pkg/response"
)

// registerRoutes mounts the whole HTTP surface under /api.
func (a *App) registerRoutes(contentSvc *content.Service, authSvc *auth.Service, uploadSvc *upload.Service) {
	authMW := middleware.Auth(a.db)
	optionalMW := middleware.OptionalAuth(a.db)

	var rdb *redis.Client
	if a.redis != nil {
		rdb = a.redis.Raw()
	}

	api := a.router.Group("/api")
	api.Use(middleware.RateLimit(rdb))

	api.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok"})
	})

	auth.NewHandler(authSvc).RegisterRoutes(api)

	contentHandler := content.NewHandler(contentSvc)
	contentHandler.RegisterRoutes(api, authMW, optionalMW)

	admin := api.Group("/admin", authMW, middleware.RequireAdmin())
	contentHandler.RegisterAdminRoutes(admin)

	upload.NewHandler(uploadSvc).RegisterRoutes(api, authMW)

	a.router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "route not found")
	})
	a.router.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})
}
