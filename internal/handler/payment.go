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
	queue_publisher "github.com/viamundo/travel-sales-api/internal/service"
)

// PaymentHandler bundles dependencies for payment endpoints.
type PaymentHandler struct {
	Payments *repository.PaymentRepo
	Bookings *repository.BookingRepo
}

func NewPaymentHandler(p *repository.PaymentRepo, b *repository.BookingRepo) *PaymentHandler {
	if p == nil || b == nil {
		panic("NewPaymentHandler: nil dependency")
	}
	return &PaymentHandler{Payments: p, Bookings: b}
}

type registerPaymentReq struct {
	AmountCents       int64  `json:"amount_cents"`
	Method            string `json:"method"`
	ProviderReference string `json:"provider_reference"`
	Notes             string `json:"notes"`
}

// Register records a payment against a booking. The balance update is
// a single guarded UPDATE, so an amount beyond the outstanding
// balance never lands even under concurrent submits; it comes back as
// 422.
func (h *PaymentHandler) Register(c echo.Context) error {
	bookingID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req registerPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.AmountCents <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount_cents must be positive"})
	}
	method, err := model.NormalizePaymentMethod(req.Method)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	booking, payment, err := h.Payments.Register(ctx, bookingID, req.AmountCents,
		method, strings.TrimSpace(req.ProviderReference), strings.TrimSpace(req.Notes))
	if err != nil {
		switch {
		case err == sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, model.ErrOverpayment):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "amount exceeds outstanding balance"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "register payment failed"})
		}
	}

	if err := queue_publisher.PublishPaymentReceived(ctx, queue.PaymentReceivedEvent{
		PaymentID:       payment.ID,
		BookingID:       booking.ID,
		BookingCode:     booking.BookingCode,
		AmountCents:     payment.AmountCents,
		CurrencyCode:    payment.CurrencyCode,
		Method:          string(payment.Method),
		Status:          string(payment.Status),
		PaidAmountCents: booking.PaidAmountCents,
		PendingCents:    booking.PendingCents(),
		ReceivedAt:      payment.CreatedAt.UTC().Format(time.RFC3339),
	}); err != nil {
		log.Printf("publish payment.received: %v", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"item": repository.PaymentPart{
			ID:                payment.ID,
			BookingID:         payment.BookingID,
			AmountCents:       payment.AmountCents,
			CurrencyCode:      payment.CurrencyCode,
			Method:            payment.Method,
			Status:            payment.Status,
			ProviderReference: payment.ProviderReference,
			Notes:             payment.Notes,
			CreatedAt:         payment.CreatedAt,
		},
		"booking": echo.Map{
			"id":                 booking.ID,
			"booking_code":       booking.BookingCode,
			"status":             booking.Status,
			"total_amount_cents": booking.TotalAmountCents,
			"paid_amount_cents":  booking.PaidAmountCents,
			"pending_cents":      booking.PendingCents(),
		},
	})
}

// ListForBooking returns the payment history of one booking, oldest
// first.
func (h *PaymentHandler) ListForBooking(c echo.Context) error {
	bookingID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Bookings.Get(ctx, bookingID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	items, err := h.Payments.ListForBooking(ctx, bookingID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// ListAll returns the cross-booking payment report, newest first.
func (h *PaymentHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Payments.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}
