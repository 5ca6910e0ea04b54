package sales

import (
	"sort"
	"time"

	"github.com/viamundo/travel-sales-api/internal/model"
)

// CombineFeed maps quote and booking summaries into one feed sorted
// by creation time descending (newest first). The feed is rebuilt on
// every call; nothing is cached or persisted. Ties are broken by
// folio so the ordering stays deterministic.
func CombineFeed(quotes []model.QuoteSummary, bookings []model.BookingSummary) []model.SalesItem {
	items := make([]model.SalesItem, 0, len(quotes)+len(bookings))
	for _, q := range quotes {
		items = append(items, model.SalesItem{
			ID:               q.ID,
			Type:             model.SalesTypeQuote,
			Folio:            q.QuoteNumber,
			CustomerName:     q.CustomerName,
			TotalAmountCents: q.TotalAmountCents,
			CurrencyCode:     q.CurrencyCode,
			Status:           string(q.Status),
			CreatedAt:        q.CreatedAt,
		})
	}
	for _, b := range bookings {
		paid := b.PaidAmountCents
		items = append(items, model.SalesItem{
			ID:               b.ID,
			Type:             model.SalesTypeBooking,
			Folio:            b.BookingCode,
			CustomerName:     b.CustomerName,
			TotalAmountCents: b.TotalAmountCents,
			PaidAmountCents:  &paid,
			CurrencyCode:     b.CurrencyCode,
			Status:           string(b.Status),
			CreatedAt:        b.CreatedAt,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].Folio < items[j].Folio
	})
	return items
}

// ComputeStats reduces already-fetched listings into the dashboard
// headline numbers:
//
//   MonthSalesCents     – Σ paid over bookings created in now's calendar month
//   PendingPaymentCents – Σ (total − paid) over PENDING and ON_HOLD bookings
//   ActiveBookings      – count of CONFIRMED and PENDING bookings
//   QuotesPending       – count of DRAFT and SENT quotes
//
// The month window is evaluated in UTC.
func ComputeStats(bookings []model.BookingSummary, quotes []model.QuoteSummary, now time.Time) model.SalesStats {
	var stats model.SalesStats
	year, month, _ := now.UTC().Date()
	for _, b := range bookings {
		by, bm, _ := b.CreatedAt.UTC().Date()
		if by == year && bm == month {
			stats.MonthSalesCents += b.PaidAmountCents
		}
		switch b.Status {
		case model.BookingPending:
			stats.PendingPaymentCents += b.PendingCents()
			stats.ActiveBookings++
		case model.BookingOnHold:
			stats.PendingPaymentCents += b.PendingCents()
		case model.BookingConfirmed:
			stats.ActiveBookings++
		}
	}
	for _, q := range quotes {
		if q.Status == model.QuoteDraft || q.Status == model.QuoteSent {
			stats.QuotesPending++
		}
	}
	return stats
}
