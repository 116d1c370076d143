package markettable

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

const placeholder = "-"

func formatPercentage(value decimal.Decimal) string {
	return value.StringFixed(2) + "%"
}

func formatCentsToReadableValue(cents decimal.Decimal) string {
	dollars, _ := cents.Div(hundred).Float64()
	return "$" + humanize.FormatFloat("#,###.##", dollars)
}

func formatTokens(amount decimal.Decimal, symbol string) string {
	value, _ := amount.Float64()
	return strings.TrimSpace(humanize.CommafWithDigits(value, 4) + " " + symbol)
}

func compareStrings(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func compareBools(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}
