package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viamundo/travel-sales-api/internal/model"
)

func TestNormalizePaymentMethod(t *testing.T) {
	cases := []struct {
		raw  string
		want model.PaymentMethod
	}{
		{"TRANSFER", model.MethodTransfer},
		{"wire", model.MethodTransfer},
		{"card", model.MethodCard},
		{"Credit_Card", model.MethodCard},
		{"CASH", model.MethodCash},
		{"bank_deposit", model.MethodBankDeposit},
		{"mercado_pago", model.MethodMercadoPago},
		{"mercadopago", model.MethodMercadoPago},
		{"mp", model.MethodMercadoPago},
		{"  cash  ", model.MethodCash},
	}
	for _, tc := range cases {
		got, err := model.NormalizePaymentMethod(tc.raw)
		assert.NoError(t, err, "raw=%q", tc.raw)
		assert.Equal(t, tc.want, got, "raw=%q", tc.raw)
	}
}

func TestNormalizePaymentMethodRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "bitcoin", "check", "pago"} {
		_, err := model.NormalizePaymentMethod(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}
