package ui

import (
	"github.com/stattrackr/stattrackr/internal/stats"
)

// column describes one sortable table column. value feeds the sorter, render the cell.
type column[T any] struct {
	key    string
	title  string
	value  func(T) any
	render func(T) string
}

func valueColumn[T any](key string, title string, value func(T) stats.Value) column[T] {
	return column[T]{
		key:    key,
		title:  title,
		value:  func(item T) any { return value(item) },
		render: func(item T) string { return value(item).String() },
	}
}

func textColumn[T any](key string, title string, value func(T) string) column[T] {
	return column[T]{
		key:    key,
		title:  title,
		value:  func(item T) any { return value(item) },
		render: value,
	}
}

func playerStat(key string) func(stats.Player) stats.Value {
	return func(player stats.Player) stats.Value {
		return player.Stats.Lookup(key)
	}
}

func clubStat(key string) func(stats.Club) stats.Value {
	return func(club stats.Club) stats.Value {
		return club.Stats.Lookup(key)
	}
}

func playerColumns() []column[stats.Player] {
	return []column[stats.Player]{
		textColumn("name", "Name", func(p stats.Player) string { return p.Name }),
		textColumn("position", "Pos", func(p stats.Player) string { return string(p.Position) }),
		textColumn("club", "Club", stats.Player.ClubName),
		valueColumn("appearances", "Apps", playerStat("appearances")),
		valueColumn("goals", "Goals", playerStat("goals")),
		valueColumn("assists", "Assists", playerStat("assists")),
		valueColumn("shots", "Shots", playerStat("shots")),
		valueColumn("passes", "Passes", playerStat("passes")),
		valueColumn("tackles", "Tackles", playerStat("tackles")),
		valueColumn("clean_sheets", "CS", playerStat("clean_sheets")),
		valueColumn("contributions", "G+A", stats.Player.Contributions),
		valueColumn("accuracy", "Acc %", stats.Player.Accuracy),
	}
}

func clubColumns() []column[stats.Club] {
	return []column[stats.Club]{
		textColumn("name", "Name", func(c stats.Club) string { return c.Name }),
		textColumn("location", "Location", func(c stats.Club) string { return c.Location }),
		valueColumn("wins", "W", clubStat("wins")),
		valueColumn("losses", "L", clubStat("losses")),
		valueColumn("goals", "Goals", clubStat("goals")),
		valueColumn("clean_sheets", "CS", clubStat("clean_sheets")),
		valueColumn("tackles", "Tackles", clubStat("tackles")),
		valueColumn("win_percentage", "Win %", stats.Club.WinRate),
		valueColumn("goals_per_game", "G/Game", stats.Club.GoalsPerMatch),
	}
}

// columnValue adapts a column set into a sorting value func.
func columnValue[T any](columns []column[T]) func(T, string) any {
	return func(item T, key string) any {
		for _, col := range columns {
			if col.key == key {
				return col.value(item)
			}
		}

		return nil
	}
}
