package model

import "time"

// Sales item discriminators used in the combined dashboard feed.
const (
	SalesTypeQuote   = "quote"
	SalesTypeBooking = "booking"
)

// QuoteSummary is the list-view shape of a quote: customer name
// joined in, items omitted. The dashboard only needs headline fields,
// so list queries skip the item fan-out entirely.
type QuoteSummary struct {
	ID               uint64      `json:"id"`
	QuoteNumber      string      `json:"quote_number"`
	CustomerName     string      `json:"customer_name"`
	Status           QuoteStatus `json:"status"`
	TotalAmountCents int64       `json:"total_amount_cents"`
	CurrencyCode     string      `json:"currency_code"`
	ValidUntil       *time.Time  `json:"valid_until,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
}

// BookingSummary is the list-view shape of a booking with the
// customer name joined in and the paid balance included.
type BookingSummary struct {
	ID               uint64        `json:"id"`
	BookingCode      string        `json:"booking_code"`
	CustomerName     string        `json:"customer_name"`
	Status           BookingStatus `json:"status"`
	TotalAmountCents int64         `json:"total_amount_cents"`
	PaidAmountCents  int64         `json:"paid_amount_cents"`
	CurrencyCode     string        `json:"currency_code"`
	CreatedAt        time.Time     `json:"created_at"`
}

// PendingCents is the outstanding balance of the summarized booking.
func (b BookingSummary) PendingCents() int64 {
	return b.TotalAmountCents - b.PaidAmountCents
}

// SalesItem is a derived, read-only row in the unified sales feed. It
// is never persisted; the aggregator rebuilds it on every fetch from
// the quote and booking listings. PaidAmountCents is only meaningful
// for bookings and omitted from JSON for quotes.
type SalesItem struct {
	ID               uint64    `json:"id"`
	Type             string    `json:"type"` // "quote" | "booking"
	Folio            string    `json:"folio"`
	CustomerName     string    `json:"customer_name"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	PaidAmountCents  *int64    `json:"paid_amount_cents,omitempty"`
	CurrencyCode     string    `json:"currency_code"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// SalesStats holds the dashboard headline numbers. All values are
// pure reductions over already-fetched collections.
type SalesStats struct {
	MonthSalesCents     int64 `json:"month_sales_cents"`
	PendingPaymentCents int64 `json:"pending_payment_cents"`
	ActiveBookings      int   `json:"active_bookings"`
	QuotesPending       int   `json:"quotes_pending"`
}
