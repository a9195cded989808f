package utils

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the ISO-8601 calendar date layout used for due dates.
const DateFormat = "2006-01-02"

var hundred = decimal.NewFromInt(100)

// Round2 rounds a monetary amount to 2 decimal places, half away from zero.
// Every stored or reported amount goes through this.
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// ApplyFlatInterest returns principal * (1 + rate/100), rounded to cents.
// The rate is a percentage applied once, never compounded.
func ApplyFlatInterest(principal decimal.Decimal, ratePercent decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(ratePercent.Div(hundred))
	return Round2(principal.Mul(factor))
}

// StartOfDay drops the time of day and the location, keeping the calendar
// date the caller sees. Due dates carry no timezone.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays adds n calendar days to the date part of t.
func AddDays(t time.Time, n int) time.Time {
	return StartOfDay(t).AddDate(0, 0, n)
}

// DaysUntil returns the number of calendar days from today to date.
// Negative when date is in the past.
func DaysUntil(date time.Time, today time.Time) int {
	diff := StartOfDay(date).Sub(StartOfDay(today))
	return int(diff.Hours() / 24)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, strings.TrimSpace(s))
}

// DecimalFromString converts string to decimal.Decimal
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
