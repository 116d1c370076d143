package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"marketScope/internal/markettable"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	linkStyle   = lipgloss.NewStyle().Padding(0, 1).Faint(true)
)

// Options tune terminal output.
type Options struct {
	// ShowTargets appends a column with the row href or modal tab.
	ShowTargets bool
}

// Table renders a market table for the terminal.
func Table(t *markettable.Table, opts Options) string {
	headers := t.Headers()
	if opts.ShowTargets {
		headers = append(headers, "Target")
	}

	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := t.Cells(row)
		if opts.ShowTargets {
			cells = append(cells, Target(row))
		}
		rows = append(rows, cells)
	}

	targetColumn := len(t.Columns)
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case opts.ShowTargets && col == targetColumn:
				return linkStyle
			default:
				return cellStyle
			}
		}).
		Render()
}

// Target describes what activating row does.
func Target(row markettable.Row) string {
	if row.Operation != nil {
		return "modal:" + row.Operation.InitialActiveTabIndex.String()
	}
	return row.Href
}
