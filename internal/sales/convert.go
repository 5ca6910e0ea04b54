package sales

import (
	"fmt"
	"time"

	"github.com/viamundo/travel-sales-api/internal/model"
)

// timeZero is passed to BuildQuote when no validity window applies;
// with validityDays 0 the timestamp is never read.
var timeZero time.Time

// CanConvert reports whether a quote in the given status may still be
// turned into a booking. REJECTED and EXPIRED quotes are dead.
// ACCEPTED stays convertible: an admin may mark a quote accepted
// before converting it, and the unique quote_id column on bookings is
// what rules out a second conversion.
func CanConvert(s model.QuoteStatus) bool {
	switch s {
	case model.QuoteDraft, model.QuoteSent, model.QuoteAccepted:
		return true
	}
	return false
}

// DraftFromQuote copies a quote into a booking draft: customer,
// currency and every line item carry over unchanged (title, travel
// date, traveller counts, quantity, unit price and subtotal), the
// total equals the quote total exactly, nothing is paid yet and the
// status starts PENDING. The caller persists the draft and marks the
// quote ACCEPTED inside one transaction.
func DraftFromQuote(q model.Quote) (model.Booking, error) {
	if len(q.Items) == 0 {
		return model.Booking{}, fmt.Errorf("%w: quote %s has no items to convert", ErrValidation, q.QuoteNumber)
	}
	quoteID := q.ID
	b := model.Booking{
		QuoteID:          &quoteID,
		CustomerID:       q.CustomerID,
		Status:           model.BookingPending,
		TotalAmountCents: q.TotalAmountCents,
		PaidAmountCents:  0,
		CurrencyCode:     q.CurrencyCode,
		Notes:            q.Notes,
		Items:            make([]model.BookingItem, len(q.Items)),
	}
	for i, it := range q.Items {
		b.Items[i] = model.BookingItem{
			Title:          it.Title,
			TravelDate:     it.TravelDate,
			Adults:         it.Adults,
			Children:       it.Children,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			SubtotalCents:  it.SubtotalCents,
			Position:       i,
		}
	}
	return b, nil
}

// BuildDirectBooking assembles a booking for the admin "new order"
// flow, which bypasses quotes entirely. Validation and totals follow
// the same rules as BuildQuote so both entry points agree on what a
// sellable line is.
func BuildDirectBooking(customerID uint64, currencyCode string, items []model.QuoteItem, status model.BookingStatus, notes string) (model.Booking, error) {
	q, err := BuildQuote(customerID, currencyCode, items, 0, notes, timeZero)
	if err != nil {
		return model.Booking{}, err
	}
	if status == "" {
		status = model.BookingPending
	}
	b := model.Booking{
		CustomerID:       q.CustomerID,
		Status:           status,
		TotalAmountCents: q.TotalAmountCents,
		PaidAmountCents:  0,
		CurrencyCode:     q.CurrencyCode,
		Notes:            q.Notes,
		Items:            make([]model.BookingItem, len(q.Items)),
	}
	for i, it := range q.Items {
		b.Items[i] = model.BookingItem{
			Title:          it.Title,
			TravelDate:     it.TravelDate,
			Adults:         it.Adults,
			Children:       it.Children,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			SubtotalCents:  it.SubtotalCents,
			Position:       i,
		}
	}
	return b, nil
}
