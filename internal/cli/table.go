package cli

import (
	"strconv"
	"strings"

	"github.com/Veraticus/binder/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableWidth is the rendered width of every category table.
const TableWidth = 150

var tableHeaders = []string{"quantity", "name", "expansion", "price", "language", "foil"}

var columnAlign = []lipgloss.Position{
	lipgloss.Right,  // quantity
	lipgloss.Left,   // name
	lipgloss.Left,   // expansion
	lipgloss.Right,  // price
	lipgloss.Center, // language
	lipgloss.Center, // foil
}

// RenderCategory renders one category as a titled, bordered table.
func RenderCategory(cr model.CategoryReport, thresholdCents int64) string {
	color := CategoryColor(cr.Category)

	rows := make([][]string, 0, len(cr.Rows))
	for _, row := range cr.Rows {
		foil := ""
		if row.Item.Foil {
			foil = FoilIcon
		}
		rows = append(rows, []string{
			strconv.Itoa(row.Item.Quantity),
			row.Item.Name,
			row.Expansion,
			FormatEuros(row.Item.PriceCents),
			row.Item.Language,
			foil,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(color)).
		Headers(tableHeaders...).
		Rows(rows...).
		Width(TableWidth).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if col < len(columnAlign) {
				style = style.Align(columnAlign[col])
			}
			switch {
			case row == table.HeaderRow:
				return style.Bold(true)
			case row%2 == 1:
				return style.Faint(true)
			default:
				return style
			}
		})

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(color).
		Width(TableWidth).
		Align(lipgloss.Center).
		Render(CategoryTitle(cr.Category, thresholdCents))
	caption := lipgloss.NewStyle().
		Width(TableWidth).
		Align(lipgloss.Right).
		Render(CategoryCaption(cr))

	return lipgloss.JoinVertical(lipgloss.Left, title, t.String(), caption)
}

// RenderReport renders every category followed by the grand total.
func RenderReport(r *model.Report) string {
	sections := make([]string, 0, len(r.Categories)+1)
	for _, cr := range r.Categories {
		sections = append(sections, RenderCategory(cr, r.ThresholdCents))
	}
	sections = append(sections, BoldStyle.Render(GrandTotalLine(r)))
	return strings.Join(sections, "\n\n") + "\n"
}
