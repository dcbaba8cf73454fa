// Package decimal wraps shopspring/decimal for the portal's money fields.
//
// The creation endpoint expects monetary amounts as fixed-point strings
// ("149.90"), while read endpoints return numbers or strings depending on
// the operation. These helpers normalize both directions without binary
// float drift.
package decimal

import (
	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// FromAny converts a value decoded from portal JSON into a decimal.
// Accepts float64, int variants and string-encoded numbers.
func FromAny(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case float64:
		return decimal.NewFromFloat(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return Zero, false
		}
		return d, true
	default:
		return Zero, false
	}
}

// Fixed renders v with exactly the given number of decimal places, the
// encoding the creation endpoint requires. Non-numeric values render as
// zero.
func Fixed(v any, places int32) string {
	d, ok := FromAny(v)
	if !ok {
		d = Zero
	}
	return d.StringFixed(places)
}

// Fixed2 renders v as a two-decimal monetary string.
func Fixed2(v any) string {
	return Fixed(v, 2)
}

// Number returns v as a float64, tolerating string encodings.
func Number(v any) float64 {
	d, ok := FromAny(v)
	if !ok {
		return 0
	}
	f, _ := d.Float64()
	return f
}
