// Package router assembles the gin engine: middleware stack, health
// endpoints, and the versioned listing API.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/infrastructure/auth"
	"github.com/shopsync/backend/internal/infrastructure/config"
	"github.com/shopsync/backend/internal/infrastructure/logger"
	"github.com/shopsync/backend/internal/interfaces/http/handler"
	"github.com/shopsync/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every handler the router mounts
type Handlers struct {
	System      *handler.SystemHandler
	Platform    *handler.PlatformHandler
	Credential  *handler.CredentialHandler
	Template    *handler.TemplateHandler
	Product     *handler.ProductHandler
	Listing     *handler.ListingHandler
}

// New builds the gin engine with the full middleware stack and all routes
func New(cfg *config.Config, jwtService *auth.JWTService, log *zap.Logger, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsCfg))

	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		Logger:     log,
	}))

	platforms := api.Group("/platforms")
	{
		platforms.GET("", h.Platform.List)
		platforms.GET("/:id", h.Platform.GetByID)
		platforms.GET("/:id/templates", h.Template.ListByPlatform)
		platforms.PUT("/:id/credentials", h.Credential.Store)
		platforms.DELETE("/:id/credentials", h.Credential.Delete)
		platforms.POST("/:id/credentials/test", h.Credential.Test)
	}

	api.GET("/credentials", h.Credential.List)

	templates := api.Group("/templates")
	{
		templates.POST("", h.Template.Create)
		templates.GET("/:id", h.Template.GetByID)
		templates.PUT("/:id", h.Template.Update)
		templates.DELETE("/:id", h.Template.Delete)
	}

	products := api.Group("/products")
	{
		products.POST("", h.Product.Create)
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.GetByID)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
		products.POST("/:id/bundle", h.Product.MakeBundle)

		products.POST("/:id/listings", h.Listing.Create)
		products.GET("/:id/listings", h.Listing.List)
		products.DELETE("/:id/listings", h.Listing.Delete)
		products.POST("/:id/listings/:platformId/reset", h.Listing.Reset)
	}

	api.POST("/listings/sync", h.Listing.Sync)

	return engine
}
