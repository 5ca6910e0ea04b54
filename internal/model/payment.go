package model

import (
	"fmt"
	"strings"
	"time"
)

// PaymentMethod is the canonical channel a payment arrived through.
// Historical data used inconsistent spellings ("transfer",
// "bank_deposit", "mercado_pago"); NormalizePaymentMethod maps those
// onto this enum so the ledger only ever stores canonical values.
type PaymentMethod string

const (
	MethodTransfer    PaymentMethod = "TRANSFER"
	MethodCard        PaymentMethod = "CARD"
	MethodCash        PaymentMethod = "CASH"
	MethodBankDeposit PaymentMethod = "BANK_DEPOSIT"
	MethodMercadoPago PaymentMethod = "MERCADO_PAGO"
)

// methodAliases maps legacy and shorthand spellings (already
// upper-cased) onto canonical methods.
var methodAliases = map[string]PaymentMethod{
	"TRANSFER":     MethodTransfer,
	"WIRE":         MethodTransfer,
	"CARD":         MethodCard,
	"CREDIT_CARD":  MethodCard,
	"CASH":         MethodCash,
	"BANK_DEPOSIT": MethodBankDeposit,
	"MERCADO_PAGO": MethodMercadoPago,
	"MERCADOPAGO":  MethodMercadoPago,
	"MP":           MethodMercadoPago,
}

// NormalizePaymentMethod canonicalizes a raw method string. Unknown
// values are rejected so that reports never see mixed spellings again.
func NormalizePaymentMethod(raw string) (PaymentMethod, error) {
	key := strings.ToUpper(strings.TrimSpace(raw))
	if m, ok := methodAliases[key]; ok {
		return m, nil
	}
	return "", fmt.Errorf("unknown payment method %q", raw)
}

// PaymentStatus reflects whether the money has actually been received.
// Card and Mercado Pago payments start PENDING until the provider
// confirms; cash, transfers and deposits are recorded as PAID.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
)

// Payment is a single money-received event applied against a booking.
// Rows are append-only: there is no edit or void path.
//
// Fields:
//  ID                – primary key identifier.
//  BookingID         – booking the payment applies to.
//  AmountCents       – amount received in cents (always positive).
//  CurrencyCode      – ISO 4217 code, matches the booking's.
//  Method            – canonical payment channel.
//  Status            – PENDING or PAID.
//  ProviderReference – external reference from the payment provider (nullable).
//  Notes             – free-form internal notes.
//  CreatedAt         – when the payment was registered.
type Payment struct {
	ID                uint64        // payments.id
	BookingID         uint64        // payments.booking_id
	AmountCents       int64         // payments.amount_cents
	CurrencyCode      string        // payments.currency_code
	Method            PaymentMethod // payments.method
	Status            PaymentStatus // payments.status
	ProviderReference *string       // payments.provider_reference (nullable)
	Notes             string        // payments.notes
	CreatedAt         time.Time     // payments.created_at
}
