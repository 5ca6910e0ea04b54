// Package sales holds the pure domain logic of the quote → booking →
// payment lifecycle: assembling quote drafts, copying accepted quotes
// into bookings and reducing listings into the dashboard feed. Nothing
// in this package touches the database, so all of it is testable
// without I/O.
package sales

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/viamundo/travel-sales-api/internal/model"
)

// ErrValidation is wrapped by all input validation failures in this
// package. Handlers translate it into an HTTP 400 response. The
// checks exist server-side on purpose: the previous incarnation of
// this system only validated in the UI, which left the API unsafe to
// call directly.
var ErrValidation = errors.New("validation failed")

// ComputeTotal sums the line subtotals of a quote draft:
// unit price × (adults + children) × quantity per line, in cents.
// The persisted total of every quote must be re-derivable from its
// items through this function.
func ComputeTotal(items []model.QuoteItem) int64 {
	var total int64
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}

// NewItemFromPackage builds a quote line from a catalog package. The
// unit price pre-fills from the package's base price when it is set;
// otherwise the caller-supplied default applies. The subtotal is
// frozen immediately.
func NewItemFromPackage(pkg *model.TravelPackage, defaultUnitPriceCents int64, adults, children, quantity int, travelDate *time.Time) model.QuoteItem {
	it := model.QuoteItem{
		UnitPriceCents: defaultUnitPriceCents,
		Quantity:       quantity,
		Adults:         adults,
		Children:       children,
		TravelDate:     travelDate,
	}
	if pkg != nil {
		id := pkg.ID
		it.PackageID = &id
		it.Title = pkg.Title
		if pkg.BasePriceCents > 0 {
			it.UnitPriceCents = pkg.BasePriceCents
		}
	}
	it.SubtotalCents = it.Subtotal()
	return it
}

// BuildQuote assembles a DRAFT quote from a customer and a set of
// line items. It enforces every rule the API must not trust clients
// with: a customer and at least one item are required, quantities and
// traveller counts must be positive and prices non-negative. Item
// subtotals and the quote total are (re)computed here, positions are
// assigned in input order and valid_until is now + validityDays (left
// nil when validityDays is zero).
func BuildQuote(customerID uint64, currencyCode string, items []model.QuoteItem, validityDays int, notes string, now time.Time) (model.Quote, error) {
	if customerID == 0 {
		return model.Quote{}, fmt.Errorf("%w: customer is required", ErrValidation)
	}
	if len(items) == 0 {
		return model.Quote{}, fmt.Errorf("%w: at least one item is required", ErrValidation)
	}
	currencyCode = strings.ToUpper(strings.TrimSpace(currencyCode))
	if len(currencyCode) != 3 {
		return model.Quote{}, fmt.Errorf("%w: currency_code must be a 3-letter ISO code", ErrValidation)
	}
	if validityDays < 0 {
		return model.Quote{}, fmt.Errorf("%w: validity_days cannot be negative", ErrValidation)
	}

	q := model.Quote{
		CustomerID:   customerID,
		Status:       model.QuoteDraft,
		CurrencyCode: currencyCode,
		Items:        make([]model.QuoteItem, len(items)),
	}
	for i, it := range items {
		if strings.TrimSpace(it.Title) == "" {
			return model.Quote{}, fmt.Errorf("%w: item %d has no title", ErrValidation, i)
		}
		if it.Quantity <= 0 {
			return model.Quote{}, fmt.Errorf("%w: item %d quantity must be positive", ErrValidation, i)
		}
		if it.Adults < 0 || it.Children < 0 {
			return model.Quote{}, fmt.Errorf("%w: item %d traveller counts cannot be negative", ErrValidation, i)
		}
		if it.Adults+it.Children == 0 {
			return model.Quote{}, fmt.Errorf("%w: item %d needs at least one traveller", ErrValidation, i)
		}
		if it.UnitPriceCents < 0 {
			return model.Quote{}, fmt.Errorf("%w: item %d unit price cannot be negative", ErrValidation, i)
		}
		it.Position = i
		it.SubtotalCents = it.Subtotal()
		q.Items[i] = it
	}
	q.TotalAmountCents = ComputeTotal(q.Items)
	if validityDays > 0 {
		until := now.UTC().AddDate(0, 0, validityDays)
		q.ValidUntil = &until
	}
	if notes = strings.TrimSpace(notes); notes != "" {
		q.Notes = &notes
	}
	return q, nil
}
