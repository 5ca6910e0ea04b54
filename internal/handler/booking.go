package handler

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/viamundo/travel-sales-api/internal/model"
	"github.com/viamundo/travel-sales-api/internal/queue"
	"github.com/viamundo/travel-sales-api/internal/repository"
	"github.com/viamundo/travel-sales-api/internal/sales"
	queue_publisher "github.com/viamundo/travel-sales-api/internal/service"
)

// BookingHandler bundles dependencies for booking endpoints.
type BookingHandler struct {
	Bookings  *repository.BookingRepo
	Customers *repository.CustomerRepo
	Packages  *repository.PackageRepo
}

func NewBookingHandler(b *repository.BookingRepo, c *repository.CustomerRepo, p *repository.PackageRepo) *BookingHandler {
	if b == nil || c == nil || p == nil {
		panic("NewBookingHandler: nil dependency")
	}
	return &BookingHandler{Bookings: b, Customers: c, Packages: p}
}

// createBookingReq covers both entry points: with quote_id set the
// booking is converted from that quote and every other field is
// ignored; without it a direct booking is built from the inline items.
type createBookingReq struct {
	QuoteID      uint64         `json:"quote_id"`
	CustomerID   uint64         `json:"customer_id"`
	CurrencyCode string         `json:"currency_code"`
	Status       string         `json:"status"`
	Notes        string         `json:"notes"`
	Items        []quoteItemReq `json:"items"`
}

// Create converts a quote into a booking or registers a direct one.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if req.QuoteID != 0 {
		return h.convert(c, ctx, req.QuoteID)
	}
	return h.direct(c, ctx, req)
}

func (h *BookingHandler) convert(c echo.Context, ctx context.Context, quoteID uint64) error {
	b, err := h.Bookings.ConvertFromQuote(ctx, quoteID)
	if err != nil {
		switch {
		case err == sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "quote not found"})
		case err == repository.ErrQuoteAlreadyConverted:
			return c.JSON(http.StatusConflict, echo.Map{"error": "quote already converted"})
		case err == repository.ErrQuoteNotConvertible:
			return c.JSON(http.StatusConflict, echo.Map{"error": "quote is not in a convertible status"})
		case errors.Is(err, sales.ErrValidation):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "convert quote failed"})
		}
	}
	return h.created(c, ctx, b)
}

func (h *BookingHandler) direct(c echo.Context, ctx context.Context, req createBookingReq) error {
	if _, err := h.Customers.GetByID(ctx, req.CustomerID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	status := model.BookingPending
	if s := strings.TrimSpace(req.Status); s != "" {
		parsed, err := model.ParseBookingStatus(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		status = parsed
	}

	items, err := itemsFromReq(ctx, h.Packages, req.Items)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	b, err := sales.BuildDirectBooking(req.CustomerID, req.CurrencyCode, items, status, req.Notes)
	if err != nil {
		if errors.Is(err, sales.ErrValidation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "build booking failed"})
	}
	if err := h.Bookings.Create(ctx, &b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}
	return h.created(c, ctx, &b)
}

// created publishes the booking event and writes the 201 response.
func (h *BookingHandler) created(c echo.Context, ctx context.Context, b *model.Booking) error {
	if err := queue_publisher.PublishBookingCreated(ctx, queue.BookingCreatedEvent{
		BookingID:        b.ID,
		BookingCode:      b.BookingCode,
		QuoteID:          b.QuoteID,
		CustomerID:       b.CustomerID,
		Status:           string(b.Status),
		TotalAmountCents: b.TotalAmountCents,
		CurrencyCode:     b.CurrencyCode,
		CreatedAt:        b.CreatedAt.UTC().Format(time.RFC3339),
	}); err != nil {
		log.Printf("publish booking.created: %v", err)
	}

	detail, err := h.Bookings.Get(ctx, b.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": detail})
}

// List returns all bookings, newest first.
func (h *BookingHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Bookings.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// Get returns one booking with customer and items joined in.
func (h *BookingHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.Bookings.Get(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": detail})
}

// SetStatus moves a booking along its lifecycle with the same
// transition guard quotes use.
func (h *BookingHandler) SetStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req setStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	next, err := model.ParseBookingStatus(req.Status)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Bookings.SetStatus(ctx, id, next); err != nil {
		switch {
		case err == sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, model.ErrInvalidTransition):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		case err == repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking changed concurrently, retry"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}

	detail, err := h.Bookings.Get(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": detail})
}
