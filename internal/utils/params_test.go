package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, raw := range []string{"", "abc", "-1", "0", "1.5"} {
		_, err := ParseID(raw)
		assert.Error(t, err, raw)
	}
}

func TestParseNumber(t *testing.T) {
	v, err := ParseNumber("95")
	require.NoError(t, err)
	assert.Equal(t, 95.0, v)

	v, err = ParseNumber(" 87.5 ")
	require.NoError(t, err)
	assert.Equal(t, 87.5, v)

	v, err = ParseNumber("-.5")
	require.NoError(t, err)
	assert.Equal(t, -0.5, v)

	for _, raw := range []string{"", "ninety", "NaN", "Inf", "0x1p6", "0X40", "1e2", "1E2", "1_000", "."} {
		_, err := ParseNumber(raw)
		assert.Error(t, err, raw)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-03-05T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, d.Hour())

	_, err = ParseDate("01/02/2024")
	assert.Error(t, err)
}

func TestTruncateToDate(t *testing.T) {
	in := time.Date(2024, 5, 6, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), TruncateToDate(in))
}
