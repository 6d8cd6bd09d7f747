// Package money parses and formats Brazilian real amounts ("R$ 23.306,10").
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for empty, malformed or non-positive amounts.
var ErrInvalidAmount = errors.New("invalid amount")

func init() {
	// Amounts travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

var hundred = decimal.NewFromInt(100)

// Parse converts a user-typed amount into an exact value rounded to cents.
//
// Accepted forms: "23.306,10", "R$ 23.306,10", "23306,10", "23306.10",
// "1.500" (thousands separator, no cents). When the string has no comma, dots
// are treated as thousands separators only if every group after the first has
// exactly three digits. Exponent notation is rejected.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	if s == "" || strings.ContainsAny(s, "eE") {
		return decimal.Zero, ErrInvalidAmount
	}

	switch {
	case strings.Contains(s, ","):
		if strings.Count(s, ",") > 1 {
			return decimal.Zero, ErrInvalidAmount
		}
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case isThousandsGrouped(s):
		s = strings.ReplaceAll(s, ".", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	d = d.Round(2)
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

func isThousandsGrouped(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) < 2 || parts[0] == "" {
		return false
	}
	for _, p := range parts[1:] {
		if len(p) != 3 {
			return false
		}
	}
	return true
}

// Format renders v as "R$ 1.234,56". Negative values render as "R$ -1.234,56".
func Format(v float64) string {
	return "R$ " + formatNumber(decimal.NewFromFloat(v), 2)
}

// FormatPercent renders v with one decimal place as "23,4%".
func FormatPercent(v float64) string {
	return formatNumber(decimal.NewFromFloat(v), 1) + "%"
}

func formatNumber(d decimal.Decimal, places int32) string {
	d = d.Round(places)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	fixed := d.StringFixed(places)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteByte('.')
		b.WriteString(intPart[i : i+3])
	}

	out := sign + b.String()
	if places > 0 {
		out += "," + fracPart
	}
	return out
}

// Float converts an amount to the float64 carried by report payloads.
func Float(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// Percent returns part as a percentage of whole rounded to one decimal, or 0
// when whole is not positive.
func Percent(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	return part.Mul(hundred).Div(whole).Round(1).InexactFloat64()
}
