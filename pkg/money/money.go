// Package money holds the rounding rules shared by carts, bills and invoices.
package money

import "github.com/shopspring/decimal"

const places = 2

// Round rounds half away from zero to cents.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(places)
}

// Format renders d with exactly two decimals, e.g. "12.00".
func Format(d decimal.Decimal) string {
	return d.StringFixed(places)
}

// Float converts a rounded amount for JSON and BSON payloads that carry plain
// numbers.
func Float(d decimal.Decimal) float64 {
	return Round(d).InexactFloat64()
}

// Line returns unitPrice × quantity.
func Line(unitPrice float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(quantity)))
}
