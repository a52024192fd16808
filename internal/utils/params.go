package utils

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gradewise-dev/gradewise/internal/types"
)

// GetIDParam parses a positive integer path parameter.
func GetIDParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	if raw == "" {
		return 0, errors.New(name + " is required")
	}

	return ParseID(raw)
}

// ParseID parses a positive integer identifier.
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)

	if err != nil || id == 0 {
		return 0, errors.New("must be a positive integer")
	}

	return uint(id), nil
}

var plainDecimal = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// ParseNumber parses a plain decimal number. Hex, exponent and underscore forms that
// strconv would accept are rejected.
func ParseNumber(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)

	if !plainDecimal.MatchString(raw) {
		return 0, errors.New("must be a number")
	}

	value, err := strconv.ParseFloat(raw, 64)

	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errors.New("must be a number")
	}

	return value, nil
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	if t, err := time.Parse(types.DateLayout, raw); err == nil {
		return t, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}

	return time.Time{}, errors.New("must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
}

// TruncateToDate drops the time of day, keeping the calendar date in UTC.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
