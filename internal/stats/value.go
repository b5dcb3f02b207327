package stats

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// NotAvailable is rendered for absent stat values. Zero is a real value and is printed as such.
const NotAvailable = "N/A"

var errInvalidID = errors.New("invalid id")

// Value is an optionally present numeric stat.
type Value struct {
	value   float64
	present bool
}

func Of(value float64) Value {
	return Value{value: value, present: true}
}

func Missing() Value {
	return Value{}
}

// FromInt converts a nullable json integer.
func FromInt(value *int) Value {
	if value == nil {
		return Missing()
	}

	return Of(float64(*value))
}

func FromFloat(value *float64) Value {
	if value == nil {
		return Missing()
	}

	return Of(*value)
}

func (v Value) Get() (float64, bool) {
	return v.value, v.present
}

func (v Value) Present() bool {
	return v.present
}

// Float returns the value, or 0 when absent.
func (v Value) Float() float64 {
	return v.value
}

func (v Value) String() string {
	if !v.present {
		return NotAvailable
	}

	return humanize.Ftoa(v.value)
}

// ID identifies an entity. The api uses integers but ids are treated as opaque.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""

		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return errors.Join(err, errInvalidID)
		}

		*id = ID(value)

		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return errors.Join(err, errInvalidID)
	}

	*id = ID(number.String())

	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}

	return json.Marshal(string(id))
}

func (id ID) String() string {
	return string(id)
}

// Stat is a single labelled value of a stat block.
type Stat struct {
	Label string
	Key   string
	Value Value
}

var labelOverrides = map[string]string{ //nolint:gochecknoglobals
	"shots_on_target":        "Shots on Target",
	"goals_from_header":      "Goals from Header",
	"goals_from_penalty":     "Goals from Penalty",
	"goals_from_freekick":    "Goals from Free Kick",
	"goals_from_inside_box":  "Goals from Inside Box",
	"goals_from_outside_box": "Goals from Outside Box",
	"substitution_on":        "Subbed On",
	"substitution_off":       "Subbed Off",
}

// Label converts a stat key such as clean_sheets into its display form "Clean Sheets".
func Label(key string) string {
	if label, found := labelOverrides[key]; found {
		return label
	}

	words := strings.Split(key, "_")
	for i, word := range words {
		if word == "" {
			continue
		}

		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}

	return strings.Join(words, " ")
}

func newStat(key string, value Value) Stat {
	return Stat{Label: Label(key), Key: key, Value: value}
}
