package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/stattrackr/stattrackr/internal/compare"
	"github.com/stattrackr/stattrackr/internal/ui/component"
	"github.com/stattrackr/stattrackr/internal/ui/styles"
)

const barWidth = 20

// renderBreakdown draws the share of each stat in a side's total as a labelled bar.
func renderBreakdown(title lipgloss.Style, name string, slices []compare.Slice) string {
	rows := []string{title.Render(name)}

	for idx, slice := range slices {
		colour := styles.ChartColours[idx%len(styles.ChartColours)]
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(16).Render(slice.Name),
			styles.Bar(barWidth, slice.Percentage/100, colour),
			lipgloss.NewStyle().Width(8).Align(lipgloss.Right).Render(fmt.Sprintf("%.1f%%", slice.Percentage)),
			styles.MutedText.Render(" ("+slice.Value.String()+")"),
		))
	}

	return styles.ContainerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderPairedTable lists both sides stat by stat, emphasising the larger value.
func renderPairedTable(result compare.Result) string {
	data := make([][]string, len(result.Table))
	for idx, row := range result.Table {
		data[idx] = []string{row.Label, row.A.String(), row.B.String()}
	}

	return component.NewUnstyledTable("Stat", result.NameA, result.NameB).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				switch col {
				case 1:
					return styles.HeaderStyle.Foreground(styles.Home)
				case 2:
					return styles.HeaderStyle.Foreground(styles.Away)
				default:
					return styles.HeaderStyle
				}
			}

			if col > 0 && leads(result.Table[row], col) {
				return styles.TableRow.Bold(true).Foreground(styles.Gold)
			}

			return styles.TableRow
		}).
		String()
}

// leads reports whether the side shown in col holds the strictly larger value of the row.
func leads(row compare.Row, col int) bool {
	valueA, okA := row.A.Get()
	valueB, okB := row.B.Get()

	switch col {
	case 1:
		return okA && (!okB || valueA > valueB)
	case 2:
		return okB && (!okA || valueB > valueA)
	default:
		return false
	}
}

func renderComparison(result compare.Result) string {
	charts := lipgloss.JoinHorizontal(lipgloss.Top,
		renderBreakdown(styles.SlotTitleA, result.NameA, result.Breakdown[compare.SlotA]),
		" ",
		renderBreakdown(styles.SlotTitleB, result.NameB, result.Breakdown[compare.SlotB]))

	return lipgloss.JoinVertical(lipgloss.Left,
		charts,
		"",
		styles.ContainerTitle.Render("Statistical Comparison"),
		renderPairedTable(result))
}
