// Package sorting tracks the active column of a sortable table and produces sorted views.
package sorting

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}

	return "asc"
}

const (
	IndicatorNeutral = "↕"
	IndicatorAsc     = "↑"
	IndicatorDesc    = "↓"
)

// Sorter is the sort state of one table. The zero value is unsorted.
type Sorter struct {
	column    string
	direction Direction
}

func New(column string) *Sorter {
	return &Sorter{column: column, direction: Ascending}
}

// Toggle flips the direction of the active column, or activates a new column ascending.
func (s *Sorter) Toggle(column string) {
	if s.column == column {
		if s.direction == Ascending {
			s.direction = Descending
		} else {
			s.direction = Ascending
		}

		return
	}

	s.column = column
	s.direction = Ascending
}

func (s *Sorter) Column() string {
	return s.column
}

func (s *Sorter) Direction() Direction {
	return s.direction
}

func (s *Sorter) IsAsc(column string) bool {
	return s.column == column && s.direction == Ascending
}

func (s *Sorter) IsDesc(column string) bool {
	return s.column == column && s.direction == Descending
}

func (s *Sorter) Indicator(column string) string {
	switch {
	case s.column == "" || s.column != column:
		return IndicatorNeutral
	case s.direction == Descending:
		return IndicatorDesc
	default:
		return IndicatorAsc
	}
}

// Ordering renders the sort state as an api ordering parameter, mapping table columns onto
// api fields. Unmapped columns are sent as is. Returns an empty string when unsorted.
func (s *Sorter) Ordering(fields map[string]string) string {
	if s.column == "" {
		return ""
	}

	field, found := fields[s.column]
	if !found {
		field = s.column
	}

	if s.direction == Descending {
		return "-" + field
	}

	return field
}

// ValueFunc extracts the value of column from an item. Strings are collated, numbers are
// compared numerically and values implementing Get() (float64, bool) may be absent.
type ValueFunc[T any] func(item T, column string) any

// SortedView returns a sorted copy of items. Items with equal keys keep their input order in
// either direction.
func SortedView[T any](sorter *Sorter, items []T, value ValueFunc[T]) []T {
	sorted := slices.Clone(items)
	if sorter == nil || sorter.column == "" || len(sorted) < 2 {
		return sorted
	}

	column := sorter.column
	sign := 1
	if sorter.direction == Descending {
		sign = -1
	}

	collator := collate.New(language.English, collate.IgnoreCase)

	slices.SortStableFunc(sorted, func(a, b T) int { //nolint:varnamelen
		return sign * compareValues(collator, value(a, column), value(b, column))
	})

	return sorted
}

type optional interface {
	Get() (float64, bool)
}

type kind int

const (
	kindMissing kind = iota
	kindNumber
	kindString
)

// compareValues orders absent values first, then numbers, then strings.
func compareValues(collator *collate.Collator, left any, right any) int {
	leftKind, leftNum, leftStr := classify(left)
	rightKind, rightNum, rightStr := classify(right)

	if leftKind != rightKind {
		return int(leftKind) - int(rightKind)
	}

	switch leftKind {
	case kindNumber:
		switch {
		case leftNum < rightNum:
			return -1
		case leftNum > rightNum:
			return 1
		default:
			return 0
		}
	case kindString:
		return collator.CompareString(leftStr, rightStr)
	case kindMissing:
		fallthrough
	default:
		return 0
	}
}

func classify(value any) (kind, float64, string) {
	switch typed := value.(type) {
	case nil:
		return kindMissing, 0, ""
	case string:
		return kindString, 0, typed
	case optional:
		if number, present := typed.Get(); present {
			return kindNumber, number, ""
		}

		return kindMissing, 0, ""
	case int:
		return kindNumber, toFloat(typed), ""
	case int8:
		return kindNumber, toFloat(typed), ""
	case int16:
		return kindNumber, toFloat(typed), ""
	case int32:
		return kindNumber, toFloat(typed), ""
	case int64:
		return kindNumber, toFloat(typed), ""
	case uint:
		return kindNumber, toFloat(typed), ""
	case uint8:
		return kindNumber, toFloat(typed), ""
	case uint16:
		return kindNumber, toFloat(typed), ""
	case uint32:
		return kindNumber, toFloat(typed), ""
	case uint64:
		return kindNumber, toFloat(typed), ""
	case float32:
		return kindNumber, toFloat(typed), ""
	case float64:
		return kindNumber, typed, ""
	case *int:
		if typed == nil {
			return kindMissing, 0, ""
		}

		return kindNumber, toFloat(*typed), ""
	case *float64:
		if typed == nil {
			return kindMissing, 0, ""
		}

		return kindNumber, *typed, ""
	case fmtStringer:
		return kindString, 0, typed.String()
	default:
		return kindMissing, 0, ""
	}
}

type fmtStringer interface {
	String() string
}

func toFloat[N constraints.Integer | constraints.Float](value N) float64 {
	return float64(value)
}
