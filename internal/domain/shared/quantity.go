package shared

import "github.com/shopspring/decimal"

const (
	// QuantityScale is the number of decimal places kept on every stored quantity
	QuantityScale int32 = 4
	// RatioScale is the number of decimal places kept on conversion ratios
	RatioScale int32 = 8
)

// RoundQuantity rounds half-up to QuantityScale places
func RoundQuantity(d decimal.Decimal) decimal.Decimal {
	return d.Round(QuantityScale)
}

// CeilQuantity rounds up to QuantityScale places. Used where under-drawing
// a physical quantity would leave the equivalent requirement short.
func CeilQuantity(d decimal.Decimal) decimal.Decimal {
	return d.RoundCeil(QuantityScale)
}

// RoundRatio rounds a conversion ratio to RatioScale places
func RoundRatio(d decimal.Decimal) decimal.Decimal {
	return d.Round(RatioScale)
}

// MinDecimal returns the smaller of a and b
func MinDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}
