package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viamundo/travel-sales-api/internal/model"
)

func TestApplyPayment(t *testing.T) {
	b := model.Booking{TotalAmountCents: 100_000, PaidAmountCents: 30_000}

	paid, err := b.ApplyPayment(50_000)
	assert.NoError(t, err)
	assert.Equal(t, int64(80_000), paid)

	// Exact settlement is allowed.
	paid, err = b.ApplyPayment(70_000)
	assert.NoError(t, err)
	assert.Equal(t, int64(100_000), paid)
}

func TestApplyPaymentRejectsOverpayment(t *testing.T) {
	b := model.Booking{TotalAmountCents: 100_000, PaidAmountCents: 90_000}

	paid, err := b.ApplyPayment(10_001)
	assert.ErrorIs(t, err, model.ErrOverpayment)
	assert.Equal(t, int64(90_000), paid, "balance must be untouched on rejection")
}

func TestApplyPaymentRejectsNonPositive(t *testing.T) {
	b := model.Booking{TotalAmountCents: 100_000}

	_, err := b.ApplyPayment(0)
	assert.Error(t, err)
	_, err = b.ApplyPayment(-500)
	assert.Error(t, err)
}

func TestPendingCents(t *testing.T) {
	b := model.Booking{TotalAmountCents: 250_000, PaidAmountCents: 100_000}
	assert.Equal(t, int64(150_000), b.PendingCents())

	b.PaidAmountCents = 250_000
	assert.Equal(t, int64(0), b.PendingCents())
}
