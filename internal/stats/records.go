package stats

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
)

var errInvalidPage = errors.New("invalid page")

// Page is a list endpoint response. Paginated endpoints wrap results with a count and links
// while unpaginated ones return a bare array, both decode into Results.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next,omitempty"`
	Previous *string `json:"previous,omitempty"`
	Results  []T     `json:"results"`
}

// rawPage has no methods so decoding into it skips the custom unmarshaler.
type rawPage[T any] Page[T]

func (p *Page[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var results []T
		if err := json.Unmarshal(data, &results); err != nil {
			return errors.Join(err, errInvalidPage)
		}

		*p = Page[T]{Count: len(results), Results: results}

		return nil
	}

	var page rawPage[T]
	if err := json.Unmarshal(data, &page); err != nil {
		return errors.Join(err, errInvalidPage)
	}

	if page.Count == 0 {
		page.Count = len(page.Results)
	}

	*p = Page[T](page)

	return nil
}

type SearchResults struct {
	Players []Player `json:"players"`
	Clubs   []Club   `json:"clubs"`
}

func (r SearchResults) Empty() bool {
	return len(r.Players) == 0 && len(r.Clubs) == 0
}

// StatLine is one ranked row of a dashboard leaderboard. The rows carry a raw stat record
// so any numeric field is kept and looked up by key.
type StatLine struct {
	ID       ID
	EntityID ID
	Name     string
	Subtitle string
	values   map[string]float64
}

func (l *StatLine) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	line := StatLine{values: map[string]float64{}}

	for key, value := range raw {
		var number float64
		if errNumber := json.Unmarshal(value, &number); errNumber == nil {
			switch key {
			case "id":
				line.ID = ID(string(value))
			case "player", "club":
				line.EntityID = ID(string(value))
			default:
				line.values[key] = number
			}

			continue
		}

		var text string
		if errText := json.Unmarshal(value, &text); errText != nil {
			continue
		}

		switch key {
		case "id":
			line.ID = ID(text)
		case "name":
			line.Name = text
		case "club", "location":
			line.Subtitle = text
		}
	}

	*l = line

	return nil
}

func (l StatLine) Value(key string) Value {
	value, found := l.values[key]
	if !found {
		return Missing()
	}

	return Of(value)
}

// Keys returns the numeric stat keys present on the line, sorted.
func (l StatLine) Keys() []string {
	keys := make([]string, 0, len(l.values))
	for key := range l.values {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	return keys
}

// Title is the display name of the row, falling back to the entity id for unnamed rows.
func (l StatLine) Title() string {
	if l.Name != "" {
		return l.Name
	}

	if l.EntityID != "" {
		return "#" + string(l.EntityID)
	}

	return "#" + string(l.ID)
}

type PlayerLeaders struct {
	TopScorers   []StatLine `json:"top_scorers"`
	TopAssisters []StatLine `json:"top_assisters"`
	TopPassers   []StatLine `json:"top_passers"`
	TopShooters  []StatLine `json:"top_shooters"`
}

type ClubLeaders struct {
	TopScoringClubs  []StatLine `json:"top_scoring_clubs"`
	TopWinningClubs  []StatLine `json:"top_winning_clubs"`
	MostTacklesClubs []StatLine `json:"most_tackles_clubs"`
}

type Dashboard struct {
	PlayerStats PlayerLeaders `json:"player_stats"`
	ClubStats   ClubLeaders   `json:"club_stats"`
}

// Leaderboard is a titled dashboard section ranked by Key.
type Leaderboard struct {
	Title string
	Key   string
	Lines []StatLine
}

func (d Dashboard) Leaderboards() []Leaderboard {
	return []Leaderboard{
		{Title: "Top Scorers", Key: "goals", Lines: d.PlayerStats.TopScorers},
		{Title: "Most Assists", Key: "assists", Lines: d.PlayerStats.TopAssisters},
		{Title: "Most Passes", Key: "passes", Lines: d.PlayerStats.TopPassers},
		{Title: "Most Shots", Key: "shots", Lines: d.PlayerStats.TopShooters},
		{Title: "Top Scoring Clubs", Key: "goals", Lines: d.ClubStats.TopScoringClubs},
		{Title: "Most Wins", Key: "wins", Lines: d.ClubStats.TopWinningClubs},
		{Title: "Most Tackles", Key: "tackles", Lines: d.ClubStats.MostTacklesClubs},
	}
}

type User struct {
	PK        ID     `json:"pk"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}
