// Package money converts between major currency units used at the API
// boundary and the integer minor units (paise/cents) used everywhere inside
// the engine. All arithmetic on amounts happens on int64 minor units; decimal
// is used only to parse and format without float drift.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Tolerance is the rounding tolerance for split-total comparisons, in minor
// units (one paisa/cent either way).
const Tolerance int64 = 1

// ToMinor converts a major-unit amount (e.g. "10.50") to minor units (1050).
// Amounts with more than two decimal places are rejected rather than rounded.
func ToMinor(major decimal.Decimal) (int64, error) {
	minor := major.Mul(decimal.NewFromInt(100))
	if !minor.IsInteger() {
		return 0, fmt.Errorf("amount %s has more than two decimal places", major)
	}
	return minor.IntPart(), nil
}

// ParseMinor parses a major-unit amount string into minor units.
func ParseMinor(s string) (int64, error) {
	major, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return ToMinor(major)
}

// FromFloat converts a major-unit float (as bound from JSON) to minor units
// through decimal so 10.55 becomes exactly 1055.
func FromFloat(f float64) (int64, error) {
	return ToMinor(decimal.NewFromFloat(f).Round(2))
}

// ToMajor converts minor units to a major-unit decimal for display.
func ToMajor(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Div(decimal.NewFromInt(100))
}

// Format renders minor units as a plain major-unit string, e.g. 1050 -> "10.50".
func Format(minor int64) string {
	return ToMajor(minor).StringFixed(2)
}

// WithinTolerance reports whether two minor-unit amounts agree within the
// currency rounding tolerance.
func WithinTolerance(a, b int64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= Tolerance
}
