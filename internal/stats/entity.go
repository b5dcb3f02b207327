// Package stats defines the player and club records served by the api and the position
// dependent stat blocks derived from them.
package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// PlayerStats is the full season stat line of a player. Every field is nullable, a nil
// field is rendered as not available rather than zero.
type PlayerStats struct {
	ID     ID `json:"id,omitempty"`
	Player ID `json:"player,omitempty"`

	Goals           *int `json:"goals"`
	Assists         *int `json:"assists"`
	Appearances     *int `json:"appearances"`
	MinutesPlayed   *int `json:"minutes_played"`
	YellowCards     *int `json:"yellow_cards"`
	RedCards        *int `json:"red_cards"`
	SubstitutionOn  *int `json:"substitution_on"`
	SubstitutionOff *int `json:"substitution_off"`

	Shots             *int `json:"shots"`
	ShotsOnTarget     *int `json:"shots_on_target"`
	GoalsFromHeader   *int `json:"goals_from_header"`
	GoalsFromPenalty  *int `json:"goals_from_penalty"`
	GoalsFromFreekick *int `json:"goals_from_freekick"`
	Offsides          *int `json:"offsides"`
	Passes            *int `json:"passes"`
	Crosses           *int `json:"crosses"`
	CornersTaken      *int `json:"corners_taken"`

	Interceptions     *int `json:"interceptions"`
	Blocks            *int `json:"blocks"`
	Tackles           *int `json:"tackles"`
	Clearances        *int `json:"clearances"`
	OwnGoals          *int `json:"own_goals"`
	PenaltiesConceded *int `json:"penalties_conceded"`
	AerialBattlesWon  *int `json:"aerial_battles_won"`
	AerialBattlesLost *int `json:"aerial_battles_lost"`

	CleanSheets       *int `json:"clean_sheets"`
	GoalsConceded     *int `json:"goals_conceded"`
	Saves             *int `json:"saves"`
	PenaltiesSaved    *int `json:"penalties_saved"`
	HighClaims        *int `json:"high_claims"`
	SweeperClearances *int `json:"sweeper_clearances"`
	GoalKicks         *int `json:"goal_kicks"`
}

// Lookup returns the value for a stat key, absent for unknown keys.
func (s *PlayerStats) Lookup(key string) Value {
	if s == nil {
		return Missing()
	}

	fields := map[string]*int{
		"goals": s.Goals, "assists": s.Assists, "appearances": s.Appearances,
		"minutes_played": s.MinutesPlayed, "yellow_cards": s.YellowCards, "red_cards": s.RedCards,
		"substitution_on": s.SubstitutionOn, "substitution_off": s.SubstitutionOff,
		"shots": s.Shots, "shots_on_target": s.ShotsOnTarget, "goals_from_header": s.GoalsFromHeader,
		"goals_from_penalty": s.GoalsFromPenalty, "goals_from_freekick": s.GoalsFromFreekick,
		"offsides": s.Offsides, "passes": s.Passes, "crosses": s.Crosses, "corners_taken": s.CornersTaken,
		"interceptions": s.Interceptions, "blocks": s.Blocks, "tackles": s.Tackles,
		"clearances": s.Clearances, "own_goals": s.OwnGoals, "penalties_conceded": s.PenaltiesConceded,
		"aerial_battles_won": s.AerialBattlesWon, "aerial_battles_lost": s.AerialBattlesLost,
		"clean_sheets": s.CleanSheets, "goals_conceded": s.GoalsConceded, "saves": s.Saves,
		"penalties_saved": s.PenaltiesSaved, "high_claims": s.HighClaims,
		"sweeper_clearances": s.SweeperClearances, "goal_kicks": s.GoalKicks,
	}

	return FromInt(fields[key])
}

type ClubStats struct {
	ID   ID `json:"id,omitempty"`
	Club ID `json:"club,omitempty"`

	Wins        *int `json:"wins"`
	Losses      *int `json:"losses"`
	Goals       *int `json:"goals"`
	YellowCards *int `json:"yellow_cards"`
	RedCards    *int `json:"red_cards"`

	Shots               *int `json:"shots"`
	ShotsOnTarget       *int `json:"shots_on_target"`
	GoalsFromHeader     *int `json:"goals_from_header"`
	GoalsFromPenalty    *int `json:"goals_from_penalty"`
	GoalsFromFreekick   *int `json:"goals_from_freekick"`
	GoalsFromInsideBox  *int `json:"goals_from_inside_box"`
	GoalsFromOutsideBox *int `json:"goals_from_outside_box"`
	Offsides            *int `json:"offsides"`

	CleanSheets       *int `json:"clean_sheets"`
	GoalsConceded     *int `json:"goals_conceded"`
	Saves             *int `json:"saves"`
	Blocks            *int `json:"blocks"`
	Interceptions     *int `json:"interceptions"`
	Tackles           *int `json:"tackles"`
	Clearances        *int `json:"clearances"`
	OwnGoals          *int `json:"own_goals"`
	PenaltiesConceded *int `json:"penalties_conceded"`
	Fouls             *int `json:"fouls"`
}

func (s *ClubStats) Lookup(key string) Value {
	if s == nil {
		return Missing()
	}

	fields := map[string]*int{
		"wins": s.Wins, "losses": s.Losses, "goals": s.Goals,
		"yellow_cards": s.YellowCards, "red_cards": s.RedCards,
		"shots": s.Shots, "shots_on_target": s.ShotsOnTarget, "goals_from_header": s.GoalsFromHeader,
		"goals_from_penalty": s.GoalsFromPenalty, "goals_from_freekick": s.GoalsFromFreekick,
		"goals_from_inside_box": s.GoalsFromInsideBox, "goals_from_outside_box": s.GoalsFromOutsideBox,
		"offsides": s.Offsides, "clean_sheets": s.CleanSheets, "goals_conceded": s.GoalsConceded,
		"saves": s.Saves, "blocks": s.Blocks, "interceptions": s.Interceptions, "tackles": s.Tackles,
		"clearances": s.Clearances, "own_goals": s.OwnGoals, "penalties_conceded": s.PenaltiesConceded,
		"fouls": s.Fouls,
	}

	return FromInt(fields[key])
}

// PlayerStatKeys lists every player stat in display order.
var PlayerStatKeys = []string{ //nolint:gochecknoglobals
	"appearances", "minutes_played", "goals", "assists", "shots", "shots_on_target",
	"goals_from_header", "goals_from_penalty", "goals_from_freekick", "offsides", "passes",
	"crosses", "corners_taken", "interceptions", "blocks", "tackles", "clearances", "own_goals",
	"penalties_conceded", "aerial_battles_won", "aerial_battles_lost", "clean_sheets",
	"goals_conceded", "saves", "penalties_saved", "high_claims", "sweeper_clearances",
	"goal_kicks", "yellow_cards", "red_cards", "substitution_on", "substitution_off",
}

// ClubStatKeys lists every club stat in display order.
var ClubStatKeys = []string{ //nolint:gochecknoglobals
	"wins", "losses", "goals", "goals_conceded", "clean_sheets", "shots", "shots_on_target",
	"goals_from_header", "goals_from_penalty", "goals_from_freekick", "goals_from_inside_box",
	"goals_from_outside_box", "offsides", "saves", "blocks", "interceptions", "tackles",
	"clearances", "own_goals", "penalties_conceded", "fouls", "yellow_cards", "red_cards",
}

// All returns the present stats in display order.
func (s *PlayerStats) All() []Stat {
	return present(PlayerStatKeys, s.Lookup)
}

func (s *ClubStats) All() []Stat {
	return present(ClubStatKeys, s.Lookup)
}

func present(keys []string, lookup func(string) Value) []Stat {
	var out []Stat

	for _, key := range keys {
		if value := lookup(key); value.Present() {
			out = append(out, newStat(key, value))
		}
	}

	return out
}

// Entity is a record that can be placed in a comparison slot.
type Entity interface {
	EntityID() ID
	DisplayName() string
	StatBlock() (StatBlock, error)
}

type Club struct {
	ID            ID         `json:"id"`
	Name          string     `json:"name"`
	Location      string     `json:"location,omitempty"`
	Stats         *ClubStats `json:"stats,omitempty"`
	WinPercentage *float64   `json:"win_percentage,omitempty"`
	GoalsPerGame  *float64   `json:"goals_per_game,omitempty"`
}

func (c Club) EntityID() ID        { return c.ID }
func (c Club) DisplayName() string { return c.Name }

func (c Club) StatBlock() (StatBlock, error) {
	return ClubStatBlock{
		Wins:        c.Stats.Lookup("wins"),
		Losses:      c.Stats.Lookup("losses"),
		Goals:       c.Stats.Lookup("goals"),
		CleanSheets: c.Stats.Lookup("clean_sheets"),
		Tackles:     c.Stats.Lookup("tackles"),
	}, nil
}

// WinRate prefers the value computed by the api, deriving it locally when absent.
func (c Club) WinRate() Value {
	if c.WinPercentage != nil {
		return Of(*c.WinPercentage)
	}

	wins, losses := c.Stats.Lookup("wins"), c.Stats.Lookup("losses")
	if !wins.Present() || !losses.Present() {
		return Missing()
	}

	return Of(WinPercentage(int(wins.Float()), int(losses.Float())))
}

func (c Club) GoalsPerMatch() Value {
	if c.GoalsPerGame != nil {
		return Of(*c.GoalsPerGame)
	}

	wins, losses, goals := c.Stats.Lookup("wins"), c.Stats.Lookup("losses"), c.Stats.Lookup("goals")
	if !wins.Present() || !losses.Present() || !goals.Present() {
		return Missing()
	}

	return Of(GoalsPerGame(int(goals.Float()), int(wins.Float()), int(losses.Float())))
}

// ClubRef is the club a player belongs to. The api embeds either the full club or just its id.
type ClubRef struct {
	Club
}

func (r *ClubRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		return json.Unmarshal(data, &r.Club)
	}

	return json.Unmarshal(data, &r.ID)
}

type Player struct {
	ID                ID           `json:"id"`
	Name              string       `json:"name"`
	Position          Position     `json:"position"`
	Club              *ClubRef     `json:"club,omitempty"`
	Stats             *PlayerStats `json:"stats,omitempty"`
	GoalContributions *int         `json:"goal_contributions,omitempty"`
	ShotsAccuracy     *float64     `json:"shots_accuracy,omitempty"`
}

func (p Player) EntityID() ID        { return p.ID }
func (p Player) DisplayName() string { return p.Name }

func (p Player) ClubName() string {
	if p.Club == nil {
		return ""
	}

	return p.Club.Name
}

// StatBlock selects the fixed stat tuple for the players position.
func (p Player) StatBlock() (StatBlock, error) {
	stat := p.Stats.Lookup

	switch p.Position {
	case Goalkeeper:
		return GKStats{
			CleanSheets:   stat("clean_sheets"),
			GoalsConceded: stat("goals_conceded"),
			Saves:         stat("saves"),
			GoalKicks:     stat("goal_kicks"),
			HighClaims:    stat("high_claims"),
		}, nil
	case Defender:
		return DFStats{
			Tackles:     stat("tackles"),
			Passes:      stat("passes"),
			CleanSheets: stat("clean_sheets"),
			Goals:       stat("goals"),
			Appearances: stat("appearances"),
		}, nil
	case Midfielder:
		return MFStats{
			Passes:  stat("passes"),
			Assists: stat("assists"),
			Shots:   stat("shots"),
			Tackles: stat("tackles"),
			Goals:   stat("goals"),
		}, nil
	case Forward:
		return FWStats{
			Goals:         stat("goals"),
			Shots:         stat("shots"),
			Assists:       stat("assists"),
			Passes:        stat("passes"),
			ShotsOnTarget: stat("shots_on_target"),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPosition, p.Position)
	}
}

func (p Player) Contributions() Value {
	if p.GoalContributions != nil {
		return Of(float64(*p.GoalContributions))
	}

	goals, assists := p.Stats.Lookup("goals"), p.Stats.Lookup("assists")
	if !goals.Present() || !assists.Present() {
		return Missing()
	}

	return Of(goals.Float() + assists.Float())
}

func (p Player) Accuracy() Value {
	if p.ShotsAccuracy != nil {
		return Of(*p.ShotsAccuracy)
	}

	shots, onTarget := p.Stats.Lookup("shots"), p.Stats.Lookup("shots_on_target")
	if !shots.Present() || !onTarget.Present() {
		return Missing()
	}

	return Of(ShotsAccuracy(int(onTarget.Float()), int(shots.Float())))
}

// WinPercentage is wins over matches played, rounded to two decimals. No matches yields 0.
func WinPercentage(wins int, losses int) float64 {
	total := wins + losses
	if total == 0 {
		return 0
	}

	return round2(float64(wins) / float64(total) * 100)
}

func GoalsPerGame(goals int, wins int, losses int) float64 {
	total := wins + losses
	if total == 0 {
		return 0
	}

	return round2(float64(goals) / float64(total))
}

func ShotsAccuracy(onTarget int, shots int) float64 {
	if shots == 0 {
		return 0
	}

	return round2(float64(onTarget) / float64(shots) * 100)
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
