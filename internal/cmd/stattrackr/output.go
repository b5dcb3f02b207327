package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/stattrackr/stattrackr/internal/compare"
	"github.com/stattrackr/stattrackr/internal/stats"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5885A2")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginTop(1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// field is a printable and sortable column of a command listing.
type field[T any] struct {
	key   string
	title string
	value func(T) any
}

func (f field[T]) render(item T) string {
	switch value := f.value(item).(type) {
	case stats.Value:
		return value.String()
	case string:
		return value
	default:
		return fmt.Sprint(value)
	}
}

var playerFields = []field[stats.Player]{ //nolint:gochecknoglobals
	{key: "id", title: "ID", value: func(p stats.Player) any { return p.ID.String() }},
	{key: "name", title: "Name", value: func(p stats.Player) any { return p.Name }},
	{key: "position", title: "Pos", value: func(p stats.Player) any { return string(p.Position) }},
	{key: "club", title: "Club", value: func(p stats.Player) any { return p.ClubName() }},
	{key: "appearances", title: "Apps", value: playerStat("appearances")},
	{key: "goals", title: "Goals", value: playerStat("goals")},
	{key: "assists", title: "Assists", value: playerStat("assists")},
	{key: "shots", title: "Shots", value: playerStat("shots")},
	{key: "passes", title: "Passes", value: playerStat("passes")},
	{key: "tackles", title: "Tackles", value: playerStat("tackles")},
	{key: "clean_sheets", title: "CS", value: playerStat("clean_sheets")},
	{key: "contributions", title: "G+A", value: func(p stats.Player) any { return p.Contributions() }},
}

var clubFields = []field[stats.Club]{ //nolint:gochecknoglobals
	{key: "id", title: "ID", value: func(c stats.Club) any { return c.ID.String() }},
	{key: "name", title: "Name", value: func(c stats.Club) any { return c.Name }},
	{key: "location", title: "Location", value: func(c stats.Club) any { return c.Location }},
	{key: "wins", title: "W", value: clubStat("wins")},
	{key: "losses", title: "L", value: clubStat("losses")},
	{key: "goals", title: "Goals", value: clubStat("goals")},
	{key: "clean_sheets", title: "CS", value: clubStat("clean_sheets")},
	{key: "tackles", title: "Tackles", value: clubStat("tackles")},
	{key: "win_percentage", title: "Win %", value: func(c stats.Club) any { return c.WinRate() }},
	{key: "goals_per_game", title: "G/Game", value: func(c stats.Club) any { return c.GoalsPerMatch() }},
}

func playerStat(key string) func(stats.Player) any {
	return func(p stats.Player) any { return p.Stats.Lookup(key) }
}

func clubStat(key string) func(stats.Club) any {
	return func(c stats.Club) any { return c.Stats.Lookup(key) }
}

func fieldValue[T any](fields []field[T]) func(T, string) any {
	return func(item T, key string) any {
		for _, f := range fields {
			if f.key == key {
				return f.value(item)
			}
		}

		return nil
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		})
}

func printEntities[T any](out io.Writer, fields []field[T], items []T) {
	headers := make([]string, len(fields))
	for idx, f := range fields {
		headers[idx] = f.title
	}

	rows := make([][]string, len(items))
	for rowIdx, item := range items {
		cells := make([]string, len(fields))
		for colIdx, f := range fields {
			cells[colIdx] = f.render(item)
		}
		rows[rowIdx] = cells
	}

	_, _ = fmt.Fprintln(out, newTable(headers...).Rows(rows...).String())
}

func printLeaderboard(out io.Writer, board stats.Leaderboard) {
	rows := make([][]string, len(board.Lines))
	for idx, line := range board.Lines {
		rows[idx] = []string{strconv.Itoa(idx + 1), line.Title(), line.Subtitle, line.Value(board.Key).String()}
	}

	_, _ = fmt.Fprintln(out, titleStyle.Render(board.Title))
	_, _ = fmt.Fprintln(out, newTable("#", "Name", "", stats.Label(board.Key)).Rows(rows...).String())
}

func printComparison(out io.Writer, result compare.Result) {
	for slot, name := range []string{result.NameA, result.NameB} {
		rows := make([][]string, len(result.Breakdown[slot]))
		for idx, slice := range result.Breakdown[slot] {
			rows[idx] = []string{slice.Name, slice.Value.String(), fmt.Sprintf("%.1f%%", slice.Percentage)}
		}

		_, _ = fmt.Fprintln(out, titleStyle.Render(name))
		_, _ = fmt.Fprintln(out, newTable("Stat", "Value", "Share").Rows(rows...).String())
	}

	rows := make([][]string, len(result.Table))
	for idx, row := range result.Table {
		rows[idx] = []string{row.Label, row.A.String(), row.B.String()}
	}

	_, _ = fmt.Fprintln(out, titleStyle.Render("Statistical Comparison"))
	_, _ = fmt.Fprintln(out, newTable("Stat", result.NameA, result.NameB).Rows(rows...).String())
}
