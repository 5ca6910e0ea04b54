package model

import (
	"errors"
	"fmt"
	"time"
)

// QuoteStatus enumerates the lifecycle states of a quote. The
// transition table is enforced by CanTransition; setting an arbitrary
// status is not possible through the store.
type QuoteStatus string

const (
	QuoteDraft    QuoteStatus = "DRAFT"
	QuoteSent     QuoteStatus = "SENT"
	QuoteAccepted QuoteStatus = "ACCEPTED"
	QuoteRejected QuoteStatus = "REJECTED"
	QuoteExpired  QuoteStatus = "EXPIRED"
)

// ErrInvalidTransition is returned when a status change is not listed
// in the transition table of the entity. Handlers translate it into
// an HTTP 409 response.
var ErrInvalidTransition = errors.New("invalid status transition")

// quoteTransitions lists the allowed next states per current state.
// ACCEPTED, REJECTED and EXPIRED are terminal. ACCEPTED is reached
// through admin action on a SENT quote or through booking conversion.
var quoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuoteDraft: {QuoteSent, QuoteRejected},
	QuoteSent:  {QuoteAccepted, QuoteRejected, QuoteExpired},
}

// ParseQuoteStatus validates a raw status string coming from the API.
func ParseQuoteStatus(s string) (QuoteStatus, error) {
	switch QuoteStatus(s) {
	case QuoteDraft, QuoteSent, QuoteAccepted, QuoteRejected, QuoteExpired:
		return QuoteStatus(s), nil
	}
	return "", fmt.Errorf("unknown quote status %q", s)
}

// CanTransition reports whether a quote may move from its current
// status to next.
func (s QuoteStatus) CanTransition(next QuoteStatus) bool {
	for _, allowed := range quoteTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Quote is a draft price proposal for a customer. It owns an ordered
// list of line items whose subtotals add up to TotalAmountCents at
// creation time. Quotes are never physically deleted.
//
// Fields:
//  ID               – primary key identifier.
//  QuoteNumber      – unique human-readable folio (Q-YYYYMMDD-xxxxxx).
//  CustomerID       – customer the quote was prepared for.
//  Status           – lifecycle state, see QuoteStatus.
//  TotalAmountCents – sum of item subtotals in cents.
//  CurrencyCode     – ISO 4217 code shared by all items.
//  ValidUntil       – expiry of the offer (nullable).
//  Notes            – free-form internal notes (nullable).
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Quote struct {
	ID               uint64      // quotes.id
	QuoteNumber      string      // quotes.quote_number
	CustomerID       uint64      // quotes.customer_id
	Status           QuoteStatus // quotes.status
	TotalAmountCents int64       // quotes.total_amount_cents
	CurrencyCode     string      // quotes.currency_code
	ValidUntil       *time.Time  // quotes.valid_until (nullable)
	Notes            *string     // quotes.notes (nullable)
	CreatedAt        time.Time   // quotes.created_at
	UpdatedAt        time.Time   // quotes.updated_at
	Items            []QuoteItem // ordered line items
}

// QuoteItem is one line of a quote. Subtotal is computed once at
// creation as unit price × (adults + children) × quantity and is not
// recomputed afterwards; there is no item edit path.
//
// Fields:
//  ID             – primary key identifier.
//  QuoteID        – owning quote.
//  PackageID      – catalog package the line came from (nullable).
//  Title          – line description shown to the customer.
//  UnitPriceCents – per-person price in cents.
//  Quantity       – number of package units.
//  Adults         – adult traveller count.
//  Children       – child traveller count.
//  TravelDate     – planned travel date (nullable).
//  SubtotalCents  – frozen line subtotal in cents.
//  Position       – zero-based ordering within the quote.
type QuoteItem struct {
	ID             uint64     // quote_items.id
	QuoteID        uint64     // quote_items.quote_id
	PackageID      *uint64    // quote_items.package_id (nullable)
	Title          string     // quote_items.title
	UnitPriceCents int64      // quote_items.unit_price_cents
	Quantity       int        // quote_items.quantity
	Adults         int        // quote_items.adults
	Children       int        // quote_items.children
	TravelDate     *time.Time // quote_items.travel_date (nullable)
	SubtotalCents  int64      // quote_items.subtotal_cents
	Position       int        // quote_items.position
}

// Subtotal derives the line subtotal from its pricing fields. The
// stored SubtotalCents must equal this value for freshly built quotes.
func (i QuoteItem) Subtotal() int64 {
	return i.UnitPriceCents * int64(i.Adults+i.Children) * int64(i.Quantity)
}
