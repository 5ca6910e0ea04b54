package sales_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/viamundo/travel-sales-api/internal/model"
	"github.com/viamundo/travel-sales-api/internal/sales"
)

var buildNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestComputeTotal(t *testing.T) {
	items := []model.QuoteItem{
		{UnitPriceCents: 150_000, Adults: 2, Children: 1, Quantity: 1}, // 450000
		{UnitPriceCents: 20_000, Adults: 2, Children: 0, Quantity: 3},  // 120000
	}
	for i := range items {
		items[i].SubtotalCents = items[i].Subtotal()
	}
	assert.Equal(t, int64(570_000), sales.ComputeTotal(items))
}

func TestBuildQuoteComputesTotalsAndPositions(t *testing.T) {
	items := []model.QuoteItem{
		{Title: "Cancún all inclusive", UnitPriceCents: 250_000, Adults: 2, Children: 2, Quantity: 1},
		{Title: "Airport transfer", UnitPriceCents: 5_000, Adults: 4, Children: 0, Quantity: 2},
	}

	q, err := sales.BuildQuote(7, "mxn", items, 15, "  seasonal promo  ", buildNow)
	assert.NoError(t, err)

	assert.Equal(t, model.QuoteDraft, q.Status)
	assert.Equal(t, "MXN", q.CurrencyCode)
	assert.Equal(t, uint64(7), q.CustomerID)

	// 250000*(2+2)*1 + 5000*(4+0)*2 = 1000000 + 40000
	assert.Equal(t, int64(1_040_000), q.TotalAmountCents)
	assert.Equal(t, q.TotalAmountCents, sales.ComputeTotal(q.Items),
		"stored total must be re-derivable from items")

	for i, it := range q.Items {
		assert.Equal(t, i, it.Position)
		assert.Equal(t, it.Subtotal(), it.SubtotalCents)
	}

	if assert.NotNil(t, q.ValidUntil) {
		assert.Equal(t, buildNow.AddDate(0, 0, 15), *q.ValidUntil)
	}
	if assert.NotNil(t, q.Notes) {
		assert.Equal(t, "seasonal promo", *q.Notes)
	}
}

func TestBuildQuoteWithoutValidityHasNoExpiry(t *testing.T) {
	items := []model.QuoteItem{{Title: "City tour", UnitPriceCents: 10_000, Adults: 1, Quantity: 1}}

	q, err := sales.BuildQuote(1, "USD", items, 0, "", buildNow)
	assert.NoError(t, err)
	assert.Nil(t, q.ValidUntil)
	assert.Nil(t, q.Notes)
}

func TestBuildQuoteValidation(t *testing.T) {
	good := model.QuoteItem{Title: "Tour", UnitPriceCents: 10_000, Adults: 1, Quantity: 1}

	cases := []struct {
		name         string
		customerID   uint64
		currency     string
		items        []model.QuoteItem
		validityDays int
	}{
		{"missing customer", 0, "MXN", []model.QuoteItem{good}, 0},
		{"no items", 5, "MXN", nil, 0},
		{"bad currency", 5, "PESOS", []model.QuoteItem{good}, 0},
		{"negative validity", 5, "MXN", []model.QuoteItem{good}, -1},
		{"untitled item", 5, "MXN", []model.QuoteItem{{UnitPriceCents: 100, Adults: 1, Quantity: 1}}, 0},
		{"zero quantity", 5, "MXN", []model.QuoteItem{{Title: "T", UnitPriceCents: 100, Adults: 1, Quantity: 0}}, 0},
		{"no travellers", 5, "MXN", []model.QuoteItem{{Title: "T", UnitPriceCents: 100, Quantity: 1}}, 0},
		{"negative adults", 5, "MXN", []model.QuoteItem{{Title: "T", UnitPriceCents: 100, Adults: -1, Children: 2, Quantity: 1}}, 0},
		{"negative price", 5, "MXN", []model.QuoteItem{{Title: "T", UnitPriceCents: -100, Adults: 1, Quantity: 1}}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sales.BuildQuote(tc.customerID, tc.currency, tc.items, tc.validityDays, "", buildNow)
			assert.ErrorIs(t, err, sales.ErrValidation)
		})
	}
}

func TestNewItemFromPackagePrefillsPrice(t *testing.T) {
	pkg := &model.TravelPackage{ID: 3, Title: "Riviera Maya 5D", BasePriceCents: 180_000}

	it := sales.NewItemFromPackage(pkg, 99_000, 2, 0, 1, nil)
	assert.Equal(t, int64(180_000), it.UnitPriceCents, "package base price wins over the default")
	assert.Equal(t, "Riviera Maya 5D", it.Title)
	if assert.NotNil(t, it.PackageID) {
		assert.Equal(t, uint64(3), *it.PackageID)
	}
	assert.Equal(t, int64(360_000), it.SubtotalCents)

	// A package without a base price keeps the supplied unit price.
	free := &model.TravelPackage{ID: 4, Title: "Custom itinerary"}
	it = sales.NewItemFromPackage(free, 75_000, 1, 1, 1, nil)
	assert.Equal(t, int64(75_000), it.UnitPriceCents)

	// No package at all: free-form line.
	it = sales.NewItemFromPackage(nil, 12_000, 1, 0, 2, nil)
	assert.Nil(t, it.PackageID)
	assert.Equal(t, int64(24_000), it.SubtotalCents)
}
