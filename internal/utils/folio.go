package utils

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewFolio builds a human-readable unique identifier of the form
// PREFIX-YYYYMMDD-xxxxxx, where the suffix is six hex characters
// drawn from a random UUID. The date makes folios sortable at a
// glance; real uniqueness is backed by a unique index on the column,
// and repositories retry once on the unlikely collision.
func NewFolio(prefix string, now time.Time) string {
	id := uuid.New()
	return fmt.Sprintf("%s-%s-%s", prefix, now.UTC().Format("20060102"), hex.EncodeToString(id[0:3]))
}

// NewQuoteNumber returns a fresh quote folio (Q-YYYYMMDD-xxxxxx).
func NewQuoteNumber(now time.Time) string { return NewFolio("Q", now) }

// NewBookingCode returns a fresh booking folio (B-YYYYMMDD-xxxxxx).
func NewBookingCode(now time.Time) string { return NewFolio("B", now) }
