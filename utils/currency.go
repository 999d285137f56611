package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatPrice renders an amount as "$1,234.50".
func FormatPrice(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}

	formatted := amount.StringFixed(2)
	integerPart, decimalPart, _ := strings.Cut(formatted, ".")

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	return sign + "$" + strings.Join(groups, ",") + "." + decimalPart
}
