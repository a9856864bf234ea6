package api

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatPrice renders d with two decimals and comma thousands separators,
// e.g. 65000.123 -> "65,000.12".
func FormatPrice(d decimal.Decimal) string {
	s := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	return sign + groupThousands(intPart) + "." + frac
}

// FormatChange renders a percentage with two decimals, e.g. "-2.50%".
func FormatChange(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	// Insert commas from right
	var result []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, c)
	}
	return string(result)
}
