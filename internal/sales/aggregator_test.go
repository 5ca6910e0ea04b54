package sales_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/viamundo/travel-sales-api/internal/model"
	"github.com/viamundo/travel-sales-api/internal/sales"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 10, 0, 0, 0, time.UTC)
}

func TestCombineFeedMergesAndSorts(t *testing.T) {
	quotes := []model.QuoteSummary{
		{ID: 1, QuoteNumber: "Q-20260301-aaaaaa", CustomerName: "Juan Pérez", Status: model.QuoteSent, TotalAmountCents: 500_000, CurrencyCode: "MXN", CreatedAt: day(1)},
		{ID: 2, QuoteNumber: "Q-20260305-bbbbbb", CustomerName: "Ana Silva", Status: model.QuoteDraft, TotalAmountCents: 120_000, CurrencyCode: "MXN", CreatedAt: day(5)},
	}
	bookings := []model.BookingSummary{
		{ID: 9, BookingCode: "B-20260303-cccccc", CustomerName: "Juan Pérez", Status: model.BookingConfirmed, TotalAmountCents: 500_000, PaidAmountCents: 200_000, CurrencyCode: "MXN", CreatedAt: day(3)},
	}

	feed := sales.CombineFeed(quotes, bookings)

	if assert.Len(t, feed, 3) {
		assert.Equal(t, "Q-20260305-bbbbbb", feed[0].Folio)
		assert.Equal(t, "B-20260303-cccccc", feed[1].Folio)
		assert.Equal(t, "Q-20260301-aaaaaa", feed[2].Folio)
	}

	assert.Equal(t, model.SalesTypeQuote, feed[0].Type)
	assert.Nil(t, feed[0].PaidAmountCents, "quotes carry no paid amount")

	assert.Equal(t, model.SalesTypeBooking, feed[1].Type)
	if assert.NotNil(t, feed[1].PaidAmountCents) {
		assert.Equal(t, int64(200_000), *feed[1].PaidAmountCents)
	}
}

func TestCombineFeedBreaksTiesByFolio(t *testing.T) {
	ts := day(10)
	quotes := []model.QuoteSummary{
		{ID: 2, QuoteNumber: "Q-20260310-zzzzzz", CreatedAt: ts},
		{ID: 1, QuoteNumber: "Q-20260310-aaaaaa", CreatedAt: ts},
	}

	feed := sales.CombineFeed(quotes, nil)
	if assert.Len(t, feed, 2) {
		assert.Equal(t, "Q-20260310-aaaaaa", feed[0].Folio)
		assert.Equal(t, "Q-20260310-zzzzzz", feed[1].Folio)
	}
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)
	bookings := []model.BookingSummary{
		// In month, confirmed: counts toward sales and active.
		{Status: model.BookingConfirmed, TotalAmountCents: 500_000, PaidAmountCents: 300_000, CreatedAt: day(3)},
		// In month, pending: sales, active and pending balance.
		{Status: model.BookingPending, TotalAmountCents: 200_000, PaidAmountCents: 50_000, CreatedAt: day(15)},
		// On hold: pending balance only, not active.
		{Status: model.BookingOnHold, TotalAmountCents: 100_000, PaidAmountCents: 0, CreatedAt: day(16)},
		// Cancelled bookings still count their month payments.
		{Status: model.BookingCancelled, TotalAmountCents: 80_000, PaidAmountCents: 10_000, CreatedAt: day(17)},
		// Previous month: excluded from the sales window.
		{Status: model.BookingConfirmed, TotalAmountCents: 900_000, PaidAmountCents: 900_000,
			CreatedAt: time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC)},
	}
	quotes := []model.QuoteSummary{
		{Status: model.QuoteDraft, CreatedAt: day(1)},
		{Status: model.QuoteSent, CreatedAt: day(2)},
		{Status: model.QuoteAccepted, CreatedAt: day(3)},
		{Status: model.QuoteRejected, CreatedAt: day(4)},
	}

	stats := sales.ComputeStats(bookings, quotes, now)

	assert.Equal(t, int64(360_000), stats.MonthSalesCents)
	assert.Equal(t, int64(250_000), stats.PendingPaymentCents)
	assert.Equal(t, 3, stats.ActiveBookings)
	assert.Equal(t, 2, stats.QuotesPending)
}

func TestComputeStatsSumsPendingBalances(t *testing.T) {
	now := time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)
	bookings := []model.BookingSummary{
		{Status: model.BookingPending, TotalAmountCents: 1_000, PaidAmountCents: 300, CreatedAt: day(1)},
		{Status: model.BookingOnHold, TotalAmountCents: 1_000, PaidAmountCents: 300, CreatedAt: day(2)},
	}
	stats := sales.ComputeStats(bookings, nil, now)
	assert.Equal(t, int64(1_400), stats.PendingPaymentCents)
}

func TestComputeStatsEmptyInputs(t *testing.T) {
	stats := sales.ComputeStats(nil, nil, time.Now())
	assert.Zero(t, stats.MonthSalesCents)
	assert.Zero(t, stats.PendingPaymentCents)
	assert.Zero(t, stats.ActiveBookings)
	assert.Zero(t, stats.QuotesPending)
}
