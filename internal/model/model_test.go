package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToday(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	now := time.Date(2024, 3, 2, 5, 30, 0, 0, loc)

	today := Today(now)

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), today)
}

func TestParseAndFormatDate(t *testing.T) {
	d, err := ParseDate("1990-01-01")
	require.NoError(t, err)
	assert.Equal(t, "1990-01-01", FormatDate(d))

	_, err = ParseDate("01/01/1990")
	assert.Error(t, err)
}
