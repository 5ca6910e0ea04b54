package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/viamundo/travel-sales-api/internal/config"
	"github.com/viamundo/travel-sales-api/internal/handler"
	"github.com/viamundo/travel-sales-api/internal/middleware"
)

// AdminHandlers collects the handlers mounted under the operator API.
type AdminHandlers struct {
	Customers *handler.CustomerHandler
	Packages  *handler.PackageHandler
	Quotes    *handler.QuoteHandler
	Bookings  *handler.BookingHandler
	Payments  *handler.PaymentHandler
	Sales     *handler.SalesHandler
}

// RegisterAdmin registers the operator endpoints under
// /v1/admin/sales. All routes require a valid JWT with the ADMIN or
// AGENT role; both roles share the full surface for now. The token
// bucket throttles per user and route; with a nil Redis client it is
// a no-op.
func RegisterAdmin(e *echo.Echo, h AdminHandlers, jwtSecret string, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group(
		"/v1/admin/sales",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "AGENT"),
		middleware.NewTokenBucket(rlCfg, rdb),
	)

	// ---- Customers ----
	g.POST("/customers", h.Customers.Create)
	g.GET("/customers", h.Customers.List)        // ?q= filters name/email/phone
	g.GET("/customers/search", h.Customers.List) // alias kept for the admin UI
	g.GET("/customers/:id", h.Customers.Get)

	// ---- Packages ----
	g.POST("/packages", h.Packages.Create)
	g.GET("/packages", h.Packages.List) // includes inactive; ?q= searches
	g.GET("/packages/:id", h.Packages.Get)

	// ---- Quotes ----
	g.POST("/quotes", h.Quotes.Create)
	g.GET("/quotes", h.Quotes.List)
	g.GET("/quotes/:id", h.Quotes.Get)
	g.PATCH("/quotes/:id/status", h.Quotes.SetStatus)

	// ---- Bookings ----
	// POST converts a quote when quote_id is present, otherwise it
	// registers a direct booking.
	g.POST("/bookings", h.Bookings.Create)
	g.GET("/bookings", h.Bookings.List)
	g.GET("/bookings/:id", h.Bookings.Get)
	g.PATCH("/bookings/:id/status", h.Bookings.SetStatus)

	// ---- Payments ----
	g.POST("/bookings/:id/payments", h.Payments.Register)
	g.GET("/bookings/:id/payments", h.Payments.ListForBooking)
	g.GET("/payments", h.Payments.ListAll)

	// ---- Dashboard ----
	g.GET("", h.Sales.Feed)
	g.GET("/stats", h.Sales.Stats)
}
