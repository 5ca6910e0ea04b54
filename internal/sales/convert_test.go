package sales_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/viamundo/travel-sales-api/internal/model"
	"github.com/viamundo/travel-sales-api/internal/sales"
)

func TestCanConvert(t *testing.T) {
	assert.True(t, sales.CanConvert(model.QuoteDraft))
	assert.True(t, sales.CanConvert(model.QuoteSent))
	assert.True(t, sales.CanConvert(model.QuoteAccepted), "manually accepted quotes stay convertible")
	assert.False(t, sales.CanConvert(model.QuoteRejected))
	assert.False(t, sales.CanConvert(model.QuoteExpired))
}

func TestDraftFromQuoteCopiesEverything(t *testing.T) {
	travel := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)
	notes := "window seats"
	q := model.Quote{
		ID:               42,
		QuoteNumber:      "Q-20260310-1a2b3c",
		CustomerID:       7,
		Status:           model.QuoteSent,
		TotalAmountCents: 1_040_000,
		CurrencyCode:     "MXN",
		Notes:            &notes,
		Items: []model.QuoteItem{
			{Title: "Cancún all inclusive", TravelDate: &travel, Adults: 2, Children: 2, Quantity: 1, UnitPriceCents: 250_000, SubtotalCents: 1_000_000},
			{Title: "Airport transfer", Adults: 4, Quantity: 2, UnitPriceCents: 5_000, SubtotalCents: 40_000},
		},
	}

	b, err := sales.DraftFromQuote(q)
	assert.NoError(t, err)

	if assert.NotNil(t, b.QuoteID) {
		assert.Equal(t, q.ID, *b.QuoteID)
	}
	assert.Equal(t, q.CustomerID, b.CustomerID)
	assert.Equal(t, model.BookingPending, b.Status)
	assert.Equal(t, q.TotalAmountCents, b.TotalAmountCents, "booking total equals quote total exactly")
	assert.Equal(t, int64(0), b.PaidAmountCents)
	assert.Equal(t, q.CurrencyCode, b.CurrencyCode)
	assert.Equal(t, q.Notes, b.Notes)

	if assert.Len(t, b.Items, len(q.Items)) {
		for i, bi := range b.Items {
			qi := q.Items[i]
			assert.Equal(t, qi.Title, bi.Title)
			assert.Equal(t, qi.TravelDate, bi.TravelDate)
			assert.Equal(t, qi.Adults, bi.Adults)
			assert.Equal(t, qi.Children, bi.Children)
			assert.Equal(t, qi.Quantity, bi.Quantity)
			assert.Equal(t, qi.UnitPriceCents, bi.UnitPriceCents)
			assert.Equal(t, qi.SubtotalCents, bi.SubtotalCents)
			assert.Equal(t, i, bi.Position)
		}
	}
}

func TestDraftFromQuoteRejectsEmptyQuote(t *testing.T) {
	_, err := sales.DraftFromQuote(model.Quote{QuoteNumber: "Q-20260310-000000"})
	assert.ErrorIs(t, err, sales.ErrValidation)
}

func TestBuildDirectBooking(t *testing.T) {
	items := []model.QuoteItem{
		{Title: "Los Cabos weekend", UnitPriceCents: 120_000, Adults: 2, Quantity: 1},
	}

	b, err := sales.BuildDirectBooking(9, "mxn", items, model.BookingConfirmed, "walk-in sale")
	assert.NoError(t, err)

	assert.Nil(t, b.QuoteID)
	assert.Equal(t, model.BookingConfirmed, b.Status)
	assert.Equal(t, "MXN", b.CurrencyCode)
	assert.Equal(t, int64(240_000), b.TotalAmountCents)
	assert.Equal(t, int64(0), b.PaidAmountCents)
	if assert.Len(t, b.Items, 1) {
		assert.Equal(t, int64(240_000), b.Items[0].SubtotalCents)
	}
}

func TestBuildDirectBookingValidates(t *testing.T) {
	_, err := sales.BuildDirectBooking(0, "MXN", nil, model.BookingPending, "")
	assert.ErrorIs(t, err, sales.ErrValidation)
}

// Full lifecycle on the pure layer: quote for two adults, converted,
// settled in one payment, then over-settled.
func TestQuoteToSettledBookingFlow(t *testing.T) {
	items := []model.QuoteItem{
		{Title: "Huatulco beach escape", UnitPriceCents: 5_000, Adults: 2, Children: 0, Quantity: 1},
	}
	q, err := sales.BuildQuote(1, "MXN", items, 0, "", time.Now())
	assert.NoError(t, err)
	assert.Equal(t, int64(10_000), q.TotalAmountCents)

	b, err := sales.DraftFromQuote(q)
	assert.NoError(t, err)
	assert.Equal(t, model.BookingPending, b.Status)
	assert.Equal(t, int64(10_000), b.PendingCents())

	paid, err := b.ApplyPayment(10_000)
	assert.NoError(t, err)
	b.PaidAmountCents = paid
	assert.Equal(t, int64(0), b.PendingCents())

	_, err = b.ApplyPayment(1)
	assert.ErrorIs(t, err, model.ErrOverpayment)
}
