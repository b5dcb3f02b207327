package stats

import (
	"errors"
	"strings"
)

var ErrUnknownPosition = errors.New("unknown position")

type Position string

const (
	Goalkeeper Position = "GK"
	Defender   Position = "DF"
	Midfielder Position = "MF"
	Forward    Position = "FW"
)

// Positions lists every known position in display order.
var Positions = []Position{Goalkeeper, Defender, Midfielder, Forward} //nolint:gochecknoglobals

func ParsePosition(value string) (Position, error) {
	switch pos := Position(strings.ToUpper(strings.TrimSpace(value))); pos {
	case Goalkeeper, Defender, Midfielder, Forward:
		return pos, nil
	default:
		return pos, ErrUnknownPosition
	}
}

func (p Position) Valid() bool {
	_, err := ParsePosition(string(p))

	return err == nil
}

func (p Position) Label() string {
	switch p {
	case Goalkeeper:
		return "Goalkeeper"
	case Defender:
		return "Defender"
	case Midfielder:
		return "Midfielder"
	case Forward:
		return "Forward"
	default:
		return string(p)
	}
}
