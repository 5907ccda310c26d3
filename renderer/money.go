package renderer

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatMoney formats value in the given ISO currency, e.g. "$1,234.50" in USD.
// Unknown currencies fall back to the plain value with two decimals followed
// by the code.
func FormatMoney(value decimal.Decimal, currency string) string {
	cur := money.GetCurrency(strings.ToUpper(currency))
	if cur == nil {
		s := value.StringFixed(2)
		if currency != "" {
			s += " " + currency
		}
		return s
	}
	minor := value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	if minor.GreaterThan(maxMinor) || minor.LessThan(minMinor) {
		return formatLarge(value, cur)
	}
	return cur.Formatter().Format(minor.IntPart())
}

var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// formatLarge formats like the currency formatter, for values whose minor
// units do not fit an int64.
func formatLarge(value decimal.Decimal, cur *money.Currency) string {
	whole, frac, _ := strings.Cut(value.Abs().StringFixed(int32(cur.Fraction)), ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(cur.Thousand)
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteString(cur.Decimal)
		b.WriteString(frac)
	}
	before, after, _ := strings.Cut(cur.Template, "1")
	s := strings.Replace(before, "$", cur.Grapheme, 1) + b.String() + strings.Replace(after, "$", cur.Grapheme, 1)
	if value.IsNegative() {
		s = "-" + s
	}
	return s
}

// SignedMoney is FormatMoney with an explicit sign. Zero is "-".
func SignedMoney(value decimal.Decimal, currency string) string {
	switch {
	case value.IsZero():
		return "-"
	case value.IsPositive():
		return "+" + FormatMoney(value, currency)
	default:
		return FormatMoney(value, currency)
	}
}
