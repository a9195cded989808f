package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "already two places", input: "340.00", expected: "340"},
		{name: "half rounds up", input: "33.335", expected: "33.34"},
		{name: "below half rounds down", input: "33.3333", expected: "33.33"},
		{name: "negative half rounds away from zero", input: "-0.005", expected: "-0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round2(decimal.RequireFromString(tt.input))
			assert.True(t, result.Equal(decimal.RequireFromString(tt.expected)),
				"Expected %s, but got %s", tt.expected, result)
		})
	}
}

func TestApplyFlatInterest(t *testing.T) {
	tests := []struct {
		name      string
		principal decimal.Decimal
		rate      decimal.Decimal
		expected  decimal.Decimal
	}{
		{
			name:      "two percent",
			principal: decimal.NewFromInt(1000),
			rate:      decimal.NewFromInt(2),
			expected:  decimal.NewFromInt(1020),
		},
		{
			name:      "zero interest rate",
			principal: decimal.NewFromInt(5000),
			rate:      decimal.Zero,
			expected:  decimal.NewFromInt(5000),
		},
		{
			name:      "fractional result is rounded",
			principal: decimal.RequireFromString("333.33"),
			rate:      decimal.RequireFromString("7.5"),
			expected:  decimal.RequireFromString("358.33"), // 358.329750
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ApplyFlatInterest(tt.principal, tt.rate)
			assert.True(t, result.Equal(tt.expected),
				"Expected %v, but got %v", tt.expected, result)
		})
	}
}

func TestAddDays(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), AddDays(base, 30))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), AddDays(base, 60))

	// time of day and location are discarded
	withClock := time.Date(2024, 1, 1, 23, 59, 0, 0, time.FixedZone("BRT", -3*3600))
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), AddDays(withClock, 1))
}

func TestDaysUntil(t *testing.T) {
	today := time.Date(2024, 2, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		date     time.Time
		expected int
	}{
		{name: "same day", date: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), expected: 0},
		{name: "future", date: time.Date(2024, 2, 22, 0, 0, 0, 0, time.UTC), expected: 7},
		{name: "past", date: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), expected: -15},
		{name: "across leap day", date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), expected: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysUntil(tt.date, today))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-01-01 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("01/01/2024")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}
