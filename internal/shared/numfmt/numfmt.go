// Package numfmt formats decimal values for display.
package numfmt

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds d to two places (half away from zero) and renders it with trailing
// zeros trimmed, keeping one fractional digit for integral values: 12.345 -> "12.35",
// 12.30 -> "12.3", 1 -> "1.0".
func Round2(d decimal.Decimal) string {
	s := d.Round(2).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
