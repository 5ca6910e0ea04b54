package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viamundo/travel-sales-api/internal/model"
)

func TestQuoteTransitions(t *testing.T) {
	allowed := []struct {
		from, to model.QuoteStatus
	}{
		{model.QuoteDraft, model.QuoteSent},
		{model.QuoteDraft, model.QuoteRejected},
		{model.QuoteSent, model.QuoteAccepted},
		{model.QuoteSent, model.QuoteRejected},
		{model.QuoteSent, model.QuoteExpired},
	}
	for _, tc := range allowed {
		assert.True(t, tc.from.CanTransition(tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct {
		from, to model.QuoteStatus
	}{
		{model.QuoteDraft, model.QuoteAccepted}, // must pass through SENT
		{model.QuoteDraft, model.QuoteExpired},
		{model.QuoteAccepted, model.QuoteRejected}, // terminal
		{model.QuoteRejected, model.QuoteSent},
		{model.QuoteExpired, model.QuoteSent},
		{model.QuoteSent, model.QuoteDraft}, // no going back
	}
	for _, tc := range denied {
		assert.False(t, tc.from.CanTransition(tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}

func TestBookingTransitions(t *testing.T) {
	allowed := []struct {
		from, to model.BookingStatus
	}{
		{model.BookingPending, model.BookingConfirmed},
		{model.BookingPending, model.BookingCancelled},
		{model.BookingPending, model.BookingOnHold},
		{model.BookingOnHold, model.BookingPending},
		{model.BookingOnHold, model.BookingConfirmed},
		{model.BookingOnHold, model.BookingCancelled},
		{model.BookingConfirmed, model.BookingCompleted},
		{model.BookingConfirmed, model.BookingCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, tc.from.CanTransition(tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct {
		from, to model.BookingStatus
	}{
		{model.BookingPending, model.BookingCompleted}, // must confirm first
		{model.BookingCompleted, model.BookingPending}, // terminal
		{model.BookingCancelled, model.BookingPending}, // terminal
		{model.BookingConfirmed, model.BookingOnHold},
	}
	for _, tc := range denied {
		assert.False(t, tc.from.CanTransition(tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}

func TestParseStatusRejectsUnknown(t *testing.T) {
	_, err := model.ParseQuoteStatus("SHIPPED")
	assert.Error(t, err)
	_, err = model.ParseQuoteStatus("draft") // case sensitive on purpose
	assert.Error(t, err)

	s, err := model.ParseQuoteStatus("SENT")
	assert.NoError(t, err)
	assert.Equal(t, model.QuoteSent, s)

	_, err = model.ParseBookingStatus("DONE")
	assert.Error(t, err)
	b, err := model.ParseBookingStatus("ON_HOLD")
	assert.NoError(t, err)
	assert.Equal(t, model.BookingOnHold, b)
}
