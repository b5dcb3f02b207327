package stats

type Kind string

const (
	KindGoalkeeper Kind = "goalkeeper"
	KindDefender   Kind = "defender"
	KindMidfielder Kind = "midfielder"
	KindForward    Kind = "forward"
	KindClub       Kind = "club"
)

// StatBlock is the closed set of fixed stat tuples used for comparisons. Stats returns the
// tabled tuple while Chart returns the subset plotted in a breakdown.
type StatBlock interface {
	Kind() Kind
	Stats() []Stat
	Chart() []Stat
	sealed()
}

type GKStats struct {
	CleanSheets   Value
	GoalsConceded Value
	Saves         Value
	GoalKicks     Value
	HighClaims    Value
}

func (GKStats) Kind() Kind { return KindGoalkeeper }

func (b GKStats) Stats() []Stat {
	return []Stat{
		newStat("clean_sheets", b.CleanSheets),
		newStat("goals_conceded", b.GoalsConceded),
		newStat("saves", b.Saves),
		newStat("goal_kicks", b.GoalKicks),
		newStat("high_claims", b.HighClaims),
	}
}

func (b GKStats) Chart() []Stat { return b.Stats() }
func (GKStats) sealed()         {}

type DFStats struct {
	Tackles     Value
	Passes      Value
	CleanSheets Value
	Goals       Value
	Appearances Value
}

func (DFStats) Kind() Kind { return KindDefender }

func (b DFStats) Stats() []Stat {
	return []Stat{
		newStat("tackles", b.Tackles),
		newStat("passes", b.Passes),
		newStat("clean_sheets", b.CleanSheets),
		newStat("goals", b.Goals),
		newStat("appearances", b.Appearances),
	}
}

func (b DFStats) Chart() []Stat { return b.Stats() }
func (DFStats) sealed()         {}

type MFStats struct {
	Passes  Value
	Assists Value
	Shots   Value
	Tackles Value
	Goals   Value
}

func (MFStats) Kind() Kind { return KindMidfielder }

func (b MFStats) Stats() []Stat {
	return []Stat{
		newStat("passes", b.Passes),
		newStat("assists", b.Assists),
		newStat("shots", b.Shots),
		newStat("tackles", b.Tackles),
		newStat("goals", b.Goals),
	}
}

func (b MFStats) Chart() []Stat { return b.Stats() }
func (MFStats) sealed()         {}

type FWStats struct {
	Goals         Value
	Shots         Value
	Assists       Value
	Passes        Value
	ShotsOnTarget Value
}

func (FWStats) Kind() Kind { return KindForward }

func (b FWStats) Stats() []Stat {
	return []Stat{
		newStat("goals", b.Goals),
		newStat("shots", b.Shots),
		newStat("assists", b.Assists),
		newStat("passes", b.Passes),
		newStat("shots_on_target", b.ShotsOnTarget),
	}
}

func (b FWStats) Chart() []Stat { return b.Stats() }
func (FWStats) sealed()         {}

type ClubStatBlock struct {
	Wins        Value
	Losses      Value
	Goals       Value
	CleanSheets Value
	Tackles     Value
}

func (ClubStatBlock) Kind() Kind { return KindClub }

func (b ClubStatBlock) Stats() []Stat {
	return []Stat{
		newStat("wins", b.Wins),
		newStat("losses", b.Losses),
		newStat("goals", b.Goals),
		newStat("clean_sheets", b.CleanSheets),
		newStat("tackles", b.Tackles),
	}
}

// Chart only plots the match outcomes, the other club totals are not parts of a whole.
func (b ClubStatBlock) Chart() []Stat {
	return []Stat{
		newStat("wins", b.Wins),
		newStat("losses", b.Losses),
	}
}

func (ClubStatBlock) sealed() {}
