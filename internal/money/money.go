// Package money provides the fixed-precision comparison helpers used for
// all amount validation.
//
// Sums of per-member shares accumulate rounding error, so every comparison
// of computed sums uses a tolerance of 0.01 currency units instead of
// exact equality.
package money

import "github.com/shopspring/decimal"

// Tolerance is the comparison slack for sums of shares.
var Tolerance = decimal.New(1, -2)

// RoundToCents rounds an amount to two decimal places, rounding half away
// from zero. All call sites that round use this function so that rounding
// behaves identically everywhere.
func RoundToCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ApproxEqual reports whether a and b differ by at most the tolerance.
func ApproxEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Tolerance)
}

// ApproxLessOrEqual reports whether a is at most b plus the tolerance.
func ApproxLessOrEqual(a, b decimal.Decimal) bool {
	return a.LessThanOrEqual(b.Add(Tolerance))
}
