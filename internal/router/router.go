package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/viamundo/travel-sales-api/internal/config"
	"github.com/viamundo/travel-sales-api/internal/handler"
	"github.com/viamundo/travel-sales-api/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance. Currently it exposes only a health
// check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes.
// Unauthenticated operations live under /v1/auth, while protected
// endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout does not require JWT authentication; it accepts either a
	// refresh_token in the body or a bearer in the header.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "AGENT"))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated catalog. Responses are
// served through the Redis cache when one is configured; with a nil
// client both middlewares are no-ops.
func RegisterPublic(e *echo.Echo, p *handler.PackageHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	cache := middleware.NewRedisCache(cacheCfg, rdb)
	e.GET("/v1/packages", p.Browse, cache)
	e.GET("/v1/packages/:id", p.BrowseOne, cache)
}
