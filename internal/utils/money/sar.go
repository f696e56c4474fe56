// Package money formats halala amounts for display. Arithmetic stays in integer minor units.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

const currencySuffix = " SAR"

// FormatSARFromHalalas renders an integer halala amount as "1,919.50 SAR".
func FormatSARFromHalalas(halalas int64) string {
	fixed := decimal.New(halalas, -2).StringFixed(2)
	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	whole, frac, _ := strings.Cut(fixed, ".")
	grouped := groupThousands(whole)
	if negative {
		grouped = "-" + grouped
	}
	return grouped + "." + frac + currencySuffix
}

// SARToHalalas converts a whole-SAR ledger amount to halalas.
func SARToHalalas(sar int64) int64 {
	return sar * 100
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
