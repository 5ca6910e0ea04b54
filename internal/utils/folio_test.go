package utils_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/viamundo/travel-sales-api/internal/utils"
)

var folioRe = regexp.MustCompile(`^[QB]-\d{8}-[0-9a-f]{6}$`)

func TestNewFolioShape(t *testing.T) {
	now := time.Date(2026, 3, 10, 23, 59, 0, 0, time.FixedZone("CST", -6*3600))

	quote := utils.NewQuoteNumber(now)
	assert.Regexp(t, folioRe, quote)
	// The date segment is rendered in UTC, so late local evenings roll
	// into the next day.
	assert.Contains(t, quote, "Q-20260311-")

	booking := utils.NewBookingCode(now)
	assert.Regexp(t, folioRe, booking)
	assert.Contains(t, booking, "B-20260311-")
}

func TestNewFolioSuffixVaries(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		f := utils.NewQuoteNumber(now)
		assert.False(t, seen[f], "duplicate folio %s", f)
		seen[f] = true
	}
}
