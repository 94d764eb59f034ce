package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RoundFloat rounds a float amount half away from zero to precision decimal places.
func RoundFloat(amount float64, precision int) float64 {
	return decimal.NewFromFloat(amount).Round(int32(precision)).InexactFloat64()
}

// ParseAmount parses a decimal string such as a Shopify price ("19.99").
// Blank or malformed input yields 0 and false.
func ParseAmount(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}
