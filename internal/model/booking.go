package model

import (
	"errors"
	"fmt"
	"time"
)

// BookingStatus enumerates the lifecycle states of a booking. The
// status is changed manually by admin action; it is not derived from
// the paid/total balance.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingOnHold    BookingStatus = "ON_HOLD"
)

// bookingTransitions lists the allowed next states per current state.
// COMPLETED and CANCELLED are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled, BookingOnHold},
	BookingOnHold:    {BookingPending, BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

// ParseBookingStatus validates a raw status string coming from the API.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted, BookingOnHold:
		return BookingStatus(s), nil
	}
	return "", fmt.Errorf("unknown booking status %q", s)
}

// CanTransition reports whether a booking may move from its current
// status to next.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ErrOverpayment is returned when registering a payment would push a
// booking's paid amount past its total. The ledger rejects the payment
// and leaves the balance unchanged. Handlers translate it into an
// HTTP 422 response.
var ErrOverpayment = errors.New("payment exceeds booking balance")

// Booking is a confirmed reservation with a binding amount owed. It
// owns an ordered item list and an append-only payment ledger. At most
// one booking may originate from any given quote.
//
// Fields:
//  ID               – primary key identifier.
//  BookingCode      – unique human-readable folio (B-YYYYMMDD-xxxxxx).
//  QuoteID          – source quote when converted (nullable, unique).
//  CustomerID       – customer who owns the booking.
//  Status           – lifecycle state, see BookingStatus.
//  TotalAmountCents – amount owed in cents.
//  PaidAmountCents  – amount received so far in cents.
//  CurrencyCode     – ISO 4217 code shared by items and payments.
//  Notes            – free-form internal notes (nullable).
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Booking struct {
	ID               uint64        // bookings.id
	BookingCode      string        // bookings.booking_code
	QuoteID          *uint64       // bookings.quote_id (nullable, unique)
	CustomerID       uint64        // bookings.customer_id
	Status           BookingStatus // bookings.status
	TotalAmountCents int64         // bookings.total_amount_cents
	PaidAmountCents  int64         // bookings.paid_amount_cents
	CurrencyCode     string        // bookings.currency_code
	Notes            *string       // bookings.notes (nullable)
	CreatedAt        time.Time     // bookings.created_at
	UpdatedAt        time.Time     // bookings.updated_at
	Items            []BookingItem // ordered line items
}

// BookingItem is one line of a booking, copied verbatim from the
// source quote item on conversion (or entered directly).
//
// Fields:
//  ID             – primary key identifier.
//  BookingID      – owning booking.
//  Title          – line description.
//  TravelDate     – planned travel date (nullable).
//  Adults         – adult traveller count.
//  Children       – child traveller count.
//  Quantity       – number of package units.
//  UnitPriceCents – per-person price in cents.
//  SubtotalCents  – frozen line subtotal in cents.
//  Position       – zero-based ordering within the booking.
type BookingItem struct {
	ID             uint64     // booking_items.id
	BookingID      uint64     // booking_items.booking_id
	Title          string     // booking_items.title
	TravelDate     *time.Time // booking_items.travel_date (nullable)
	Adults         int        // booking_items.adults
	Children       int        // booking_items.children
	Quantity       int        // booking_items.quantity
	UnitPriceCents int64      // booking_items.unit_price_cents
	SubtotalCents  int64      // booking_items.subtotal_cents
	Position       int        // booking_items.position
}

// PendingCents is the outstanding balance: total minus paid.
func (b Booking) PendingCents() int64 {
	return b.TotalAmountCents - b.PaidAmountCents
}

// ApplyPayment validates a payment amount against the booking balance
// and returns the new paid amount. It rejects non-positive amounts and
// overpayments without mutating the booking. The repository enforces
// the same guard inside a single UPDATE statement so that concurrent
// registrations cannot race past the total.
func (b Booking) ApplyPayment(amountCents int64) (int64, error) {
	if amountCents <= 0 {
		return b.PaidAmountCents, fmt.Errorf("payment amount must be positive, got %d", amountCents)
	}
	if b.PaidAmountCents+amountCents > b.TotalAmountCents {
		return b.PaidAmountCents, ErrOverpayment
	}
	return b.PaidAmountCents + amountCents, nil
}
