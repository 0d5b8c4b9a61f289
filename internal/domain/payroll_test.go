package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	period, err := ParsePeriod("01-2023")
	require.NoError(t, err)
	assert.Equal(t, time.January, period.Month())
	assert.Equal(t, 2023, period.Year())

	_, err = ParsePeriod("13-2023")
	assert.Error(t, err)

	_, err = ParsePeriod("2023-01")
	assert.Error(t, err)
}

func TestFormatPeriod(t *testing.T) {
	period, err := ParsePeriod("03-2024")
	require.NoError(t, err)
	assert.Equal(t, "March-2024", FormatPeriod(period))
}

func TestFormatSalary(t *testing.T) {
	assert.Equal(t, "1234 dollar(s), 56 cent(s)", FormatSalary(123456))
	assert.Equal(t, "0 dollar(s), 0 cent(s)", FormatSalary(0))
	assert.Equal(t, "10 dollar(s), 0 cent(s)", FormatSalary(1000))
}
