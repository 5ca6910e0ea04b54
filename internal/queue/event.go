// Package queue defines the domain events exchanged over the message
// broker and the background consumer that records them. Events carry
// enough information for downstream consumers (notifications,
// analytics) to act without querying the primary database.
package queue

import "encoding/json"

// Event kinds carried in the envelope.
const (
	KindQuoteCreated    = "sales.quote.created"
	KindBookingCreated  = "sales.booking.created"
	KindPaymentReceived = "sales.payment.received"
)

// Envelope wraps every published event with its kind so a single
// durable queue can carry the whole sales stream in order.
type Envelope struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// QuoteCreatedEvent is published after a quote and its items are
// committed.
type QuoteCreatedEvent struct {
	QuoteID          uint64 `json:"quote_id"`
	QuoteNumber      string `json:"quote_number"`
	CustomerID       uint64 `json:"customer_id"`
	CustomerName     string `json:"customer_name"`
	TotalAmountCents int64  `json:"total_amount_cents"`
	CurrencyCode     string `json:"currency_code"`
	ItemCount        int    `json:"item_count"`
	CreatedAt        string `json:"created_at"`
}

// BookingCreatedEvent is published after a booking is committed,
// whether converted from a quote or created directly.
type BookingCreatedEvent struct {
	BookingID        uint64  `json:"booking_id"`
	BookingCode      string  `json:"booking_code"`
	QuoteID          *uint64 `json:"quote_id,omitempty"`
	CustomerID       uint64  `json:"customer_id"`
	Status           string  `json:"status"`
	TotalAmountCents int64   `json:"total_amount_cents"`
	CurrencyCode     string  `json:"currency_code"`
	CreatedAt        string  `json:"created_at"`
}

// PaymentReceivedEvent is published after a payment row and the
// booking balance update are committed.
type PaymentReceivedEvent struct {
	PaymentID       uint64 `json:"payment_id"`
	BookingID       uint64 `json:"booking_id"`
	BookingCode     string `json:"booking_code"`
	AmountCents     int64  `json:"amount_cents"`
	CurrencyCode    string `json:"currency_code"`
	Method          string `json:"method"`
	Status          string `json:"status"`
	PaidAmountCents int64  `json:"paid_amount_cents"`
	PendingCents    int64  `json:"pending_cents"`
	ReceivedAt      string `json:"received_at"`
}
