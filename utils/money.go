package utils

import "github.com/shopspring/decimal"

// Round2 rounds a monetary value to 2 decimal places (half away from zero).
// Every derived monetary intermediate goes through here, not just outputs,
// so interacting rules never accumulate drift.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
