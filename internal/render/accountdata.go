package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"marketScope/internal/accountdata"
)

var (
	hundred      = decimal.NewFromInt(100)
	warningStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true)
)

// AccountData renders the account summary with a column for the current
// figures and, when an amount was given, one for the hypothetical figures.
func AccountData(summary accountdata.Summary) string {
	headers := []string{summary.Symbol + " " + string(summary.Action) + " " + summary.AmountTokens.String(), "Current"}
	if summary.Hypothetical != nil {
		headers = append(headers, "After")
	}

	type metric struct {
		name  string
		value func(f accountdata.Figures) string
	}
	metrics := []metric{
		{"Supply balance", func(f accountdata.Figures) string { return formatCents(f.SupplyBalanceCents) }},
		{"Borrow balance", func(f accountdata.Figures) string { return formatCents(f.BorrowBalanceCents) }},
		{"Borrow limit", func(f accountdata.Figures) string { return formatCents(f.BorrowLimitCents) }},
		{"Safe borrow limit", func(f accountdata.Figures) string { return formatCents(f.SafeBorrowLimitCents) }},
		{"Limit used", func(f accountdata.Figures) string { return formatPercentage(f.BorrowLimitUsedPercentage) }},
		{"Net APY", func(f accountdata.Figures) string { return formatPercentage(f.NetAPYPercentage) }},
		{"Daily earnings", func(f accountdata.Figures) string { return formatCents(f.DailyEarningsCents) }},
	}

	rows := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		row := []string{m.name, m.value(summary.Current)}
		if summary.Hypothetical != nil {
			row = append(row, m.value(*summary.Hypothetical))
		}
		rows = append(rows, row)
	}

	warn := summary.Current.AboveSafeLimit
	if summary.Hypothetical != nil {
		warn = summary.Hypothetical.AboveSafeLimit
	}
	usedRow := 4

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case warn && row == usedRow && col > 0:
				return warningStyle
			default:
				return cellStyle
			}
		}).
		Render()
}

func formatPercentage(value decimal.Decimal) string {
	return value.StringFixed(2) + "%"
}

func formatCents(cents decimal.Decimal) string {
	dollars, _ := cents.Div(hundred).Float64()
	return "$" + humanize.FormatFloat("#,###.##", dollars)
}
