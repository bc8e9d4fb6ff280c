// Package format renders amounts, dates and text for display.
package format

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const (
	dateLayout = "Jan 2, 2006"
	ellipsis   = "..."
)

var thousand = decimal.NewFromInt(1000)

// Currency formats amount as US dollars with grouped thousands and two
// decimals, e.g. $1,250.00 or -$12.50.
func Currency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	cents := amount.Abs().Round(2).Shift(2).IntPart()
	return fmt.Sprintf("%s$%s.%02d", sign, humanize.Comma(cents/100), cents%100)
}

// CompactCurrency is the short form used on chart axes: $950, $2.5k.
func CompactCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	abs := amount.Abs()
	if abs.LessThan(thousand) {
		return sign + "$" + abs.Round(0).String()
	}
	k, _ := abs.Div(thousand).Float64()
	return sign + "$" + humanize.FtoaWithDigits(k, 1) + "k"
}

// Date formats a calendar date as "Jul 1, 2023".
func Date(t time.Time) string {
	return t.Format(dateLayout)
}

// Truncate shortens text to max runes followed by "...". Text within the
// limit is returned as is.
func Truncate(text string, max int) string {
	if max < 0 {
		max = 0
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + ellipsis
}

// Percent renders a whole percentage.
func Percent(p int) string {
	return fmt.Sprintf("%d%%", p)
}
