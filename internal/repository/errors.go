// Package repository implements the data access layer over MySQL.
// This file defines sentinel error values reused across multiple
// repositories so that handlers can map failure scenarios onto HTTP
// status codes with errors.Is.
package repository

import "errors"

// ErrConflict is returned when an insert or update cannot proceed
// because of conflicting state, such as a duplicate customer email.
// Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrQuoteAlreadyConverted is returned when a conversion targets a
// quote that already produced a booking. The unique index on
// bookings.quote_id guarantees at most one booking per quote even
// under concurrent submits. Handlers translate this into HTTP 409.
var ErrQuoteAlreadyConverted = errors.New("quote already converted to a booking")

// ErrQuoteNotConvertible is returned when the source quote is in a
// terminal state (REJECTED or EXPIRED) and can no longer become a
// booking. Handlers translate this into HTTP 409.
var ErrQuoteNotConvertible = errors.New("quote is not convertible")
