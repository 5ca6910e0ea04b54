package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/viamundo/travel-sales-api/internal/repository"
	"github.com/viamundo/travel-sales-api/internal/sales"
)

// SalesHandler serves the combined dashboard views built from the
// quote and booking listings. Nothing here is persisted; the feed and
// the stats are recomputed on every request.
type SalesHandler struct {
	Quotes   *repository.QuoteRepo
	Bookings *repository.BookingRepo
}

func NewSalesHandler(q *repository.QuoteRepo, b *repository.BookingRepo) *SalesHandler {
	if q == nil || b == nil {
		panic("NewSalesHandler: nil dependency")
	}
	return &SalesHandler{Quotes: q, Bookings: b}
}

// Feed returns quotes and bookings merged into one list, newest
// first.
func (h *SalesHandler) Feed(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	quotes, err := h.Quotes.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	bookings, err := h.Bookings.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	items := sales.CombineFeed(quotes, bookings)
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// Stats returns the dashboard headline numbers for the current
// calendar month (UTC).
func (h *SalesHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	quotes, err := h.Quotes.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	bookings, err := h.Bookings.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	stats := sales.ComputeStats(bookings, quotes, time.Now())
	return c.JSON(http.StatusOK, echo.Map{"item": stats})
}
