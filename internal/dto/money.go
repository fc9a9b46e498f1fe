package dto

import "github.com/shopspring/decimal"

// minorUnitExponent is the number of decimal places in the smallest currency unit (cents, kobo).
const minorUnitExponent = -2

// FormatAmount renders an integer minor-unit amount as a fixed two-decimal string, e.g. 5000 -> "50.00".
func FormatAmount(minor int64) string {
	return decimal.New(minor, minorUnitExponent).StringFixed(2)
}
