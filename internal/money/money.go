package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money helpers for the minor-unit integer representation used across the
// engine. Cents everywhere; decimals only appear at the SKU-string and
// display boundaries.

// ParsePrice parses a decimal price string into a decimal value.
// Accepts comma as decimal separator, e.g. "950,00" -> 950.00.
func ParsePrice(s string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	return decimal.NewFromString(normalized)
}

// FromCents converts minor units to a major-unit decimal, e.g. 95000 -> 950.00.
func FromCents(cents int) decimal.Decimal {
	return decimal.New(int64(cents), -2)
}

// FormatCents renders minor units as a display string with a comma separator
// and two decimals, matching the SKU price encoding, e.g. 95000 -> "950,00".
func FormatCents(cents int) string {
	s := FromCents(cents).StringFixed(2)
	return strings.Replace(s, ".", ",", 1)
}
