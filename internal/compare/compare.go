// Package compare derives the side by side view of two players or two clubs.
package compare

import (
	"errors"
	"fmt"
	"math"

	"github.com/stattrackr/stattrackr/internal/stats"
)

var (
	ErrIncomparable = errors.New("cannot compare players of different positions")
	ErrMixedKinds   = errors.New("cannot compare a player with a club")
	ErrIncomplete   = errors.New("two entities are required for a comparison")
)

// Slice is one entry of a percentage breakdown. Value keeps an absent stat absent while it
// counts as zero towards the shares. Percentage has one decimal place.
type Slice struct {
	Name       string
	Key        string
	Value      stats.Value
	Percentage float64
}

// Row pairs the values of both sides for one stat. Absent values stay absent.
type Row struct {
	Label string
	Key   string
	A     stats.Value
	B     stats.Value
}

type Result struct {
	NameA     string
	NameB     string
	Kind      stats.Kind
	Breakdown [2][]Slice
	Table     []Row
}

// Empty is true for players sharing a position without a known stat tuple.
func (r Result) Empty() bool {
	return len(r.Table) == 0
}

// Compare dispatches on the entity types. Mixed kinds are never comparable.
func Compare(entityA stats.Entity, entityB stats.Entity) (Result, error) {
	if entityA == nil || entityB == nil {
		return Result{}, ErrIncomplete
	}

	playerA, isPlayerA := asPlayer(entityA)
	playerB, isPlayerB := asPlayer(entityB)

	switch {
	case isPlayerA && isPlayerB:
		return Players(playerA, playerB)
	case isPlayerA || isPlayerB:
		return Result{}, errors.Join(ErrIncomparable, ErrMixedKinds)
	}

	clubA, isClubA := asClub(entityA)
	clubB, isClubB := asClub(entityB)

	if !isClubA || !isClubB {
		return Result{}, errors.Join(ErrIncomparable, ErrMixedKinds)
	}

	return Clubs(clubA, clubB)
}

// Players compares two players of the same position. Positions match case insensitively.
func Players(playerA stats.Player, playerB stats.Player) (Result, error) {
	playerA.Position = normalizePosition(playerA.Position)
	playerB.Position = normalizePosition(playerB.Position)

	if playerA.Position != playerB.Position {
		return Result{}, fmt.Errorf("%w: %s vs %s", ErrIncomparable, playerA.Position, playerB.Position)
	}

	result := Result{NameA: playerA.Name, NameB: playerB.Name}

	blockA, errA := playerA.StatBlock()
	blockB, errB := playerB.StatBlock()

	if errors.Is(errA, stats.ErrUnknownPosition) || errors.Is(errB, stats.ErrUnknownPosition) {
		result.Breakdown = [2][]Slice{{}, {}}

		return result, nil
	}

	return build(result, blockA, blockB), nil
}

func Clubs(clubA stats.Club, clubB stats.Club) (Result, error) {
	blockA, errA := clubA.StatBlock()
	if errA != nil {
		return Result{}, errA
	}

	blockB, errB := clubB.StatBlock()
	if errB != nil {
		return Result{}, errB
	}

	return build(Result{NameA: clubA.Name, NameB: clubB.Name}, blockA, blockB), nil
}

func build(result Result, blockA stats.StatBlock, blockB stats.StatBlock) Result {
	result.Kind = blockA.Kind()
	result.Breakdown = [2][]Slice{Breakdown(blockA.Chart()), Breakdown(blockB.Chart())}

	statsA, statsB := blockA.Stats(), blockB.Stats()
	result.Table = make([]Row, len(statsA))

	for idx, stat := range statsA {
		result.Table[idx] = Row{Label: stat.Label, Key: stat.Key, A: stat.Value, B: statsB[idx].Value}
	}

	return result
}

// Breakdown computes each stat's share of the total, each rounded on its own to one decimal
// place, so a non zero total sums to 100.0 within rounding. A zero total yields 0 for every
// entry. Absent and negative values count as zero.
func Breakdown(items []stats.Stat) []Slice {
	out := make([]Slice, len(items))
	amounts := make([]float64, len(items))

	var total float64

	for idx, item := range items {
		amounts[idx] = math.Max(0, item.Value.Float())
		out[idx] = Slice{Name: item.Label, Key: item.Key, Value: item.Value}
		total += amounts[idx]
	}

	if total == 0 {
		return out
	}

	for idx := range out {
		out[idx].Percentage = math.Round(amounts[idx]/total*1000) / 10
	}

	return out
}

// normalizePosition maps known positions onto their canonical code and leaves unknown ones as given.
func normalizePosition(position stats.Position) stats.Position {
	parsed, err := stats.ParsePosition(string(position))
	if err != nil {
		return position
	}

	return parsed
}

func asPlayer(entity stats.Entity) (stats.Player, bool) {
	switch typed := entity.(type) {
	case stats.Player:
		return typed, true
	case *stats.Player:
		if typed == nil {
			return stats.Player{}, false
		}

		return *typed, true
	default:
		return stats.Player{}, false
	}
}

func asClub(entity stats.Entity) (stats.Club, bool) {
	switch typed := entity.(type) {
	case stats.Club:
		return typed, true
	case *stats.Club:
		if typed == nil {
			return stats.Club{}, false
		}

		return *typed, true
	default:
		return stats.Club{}, false
	}
}
