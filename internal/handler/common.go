package handler // handler defines the HTTP handlers of the sales API

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// pathID parses the numeric :id path parameter. Zero is never a
// valid identifier.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// parseDate accepts a travel date either as a bare date (2006-01-02)
// or a full RFC 3339 timestamp, returning nil for an empty string.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}
