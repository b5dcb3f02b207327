package stats_test

import (
	"encoding/json"
	"testing"

	"github.com/stattrackr/stattrackr/internal/stats"
	"github.com/stretchr/testify/require"
)

func TestParsePosition(t *testing.T) {
	pos, err := stats.ParsePosition(" gk")
	require.NoError(t, err)
	require.Equal(t, stats.Goalkeeper, pos)
	require.Equal(t, "Goalkeeper", pos.Label())

	_, errUnknown := stats.ParsePosition("ST")
	require.ErrorIs(t, errUnknown, stats.ErrUnknownPosition)
}

func TestValueString(t *testing.T) {
	require.Equal(t, stats.NotAvailable, stats.Missing().String())
	require.Equal(t, "0", stats.Of(0).String())
	require.Equal(t, "12.5", stats.Of(12.5).String())

	zero := 0
	require.True(t, stats.FromInt(&zero).Present())
	require.False(t, stats.FromInt(nil).Present())
}

func TestLabel(t *testing.T) {
	require.Equal(t, "Clean Sheets", stats.Label("clean_sheets"))
	require.Equal(t, "Goals Conceded", stats.Label("goals_conceded"))
	require.Equal(t, "Shots on Target", stats.Label("shots_on_target"))
	require.Equal(t, "Wins", stats.Label("wins"))
}

func TestPlayerDecode(t *testing.T) {
	const body = `{
		"id": 9, "name": "Bukayo Saka", "position": "FW",
		"club": {"id": 1, "name": "Arsenal", "location": "London"},
		"stats": {"goals": 12, "shots": 60, "assists": 9, "passes": null, "shots_on_target": 30},
		"goal_contributions": 21, "shots_accuracy": 50.0
	}`

	var player stats.Player
	require.NoError(t, json.Unmarshal([]byte(body), &player))
	require.Equal(t, stats.ID("9"), player.ID)
	require.Equal(t, "Arsenal", player.ClubName())

	block, err := player.StatBlock()
	require.NoError(t, err)
	require.Equal(t, stats.KindForward, block.Kind())

	fw, ok := block.(stats.FWStats)
	require.True(t, ok)
	require.Equal(t, "12", fw.Goals.String())
	require.Equal(t, stats.NotAvailable, fw.Passes.String())

	require.Equal(t, []string{"goals", "shots", "assists", "passes", "shots_on_target"}, keys(block.Stats()))
	require.Equal(t, 21.0, player.Contributions().Float())
	require.Equal(t, 50.0, player.Accuracy().Float())
}

func TestPlayerClubAsID(t *testing.T) {
	var player stats.Player
	require.NoError(t, json.Unmarshal([]byte(`{"id":"p1","name":"X","position":"MF","club":4}`), &player))
	require.Equal(t, stats.ID("4"), player.Club.ID)
	require.Empty(t, player.ClubName())
}

func TestStatBlockPositions(t *testing.T) {
	for _, testCase := range []struct {
		pos  stats.Position
		keys []string
	}{
		{stats.Goalkeeper, []string{"clean_sheets", "goals_conceded", "saves", "goal_kicks", "high_claims"}},
		{stats.Defender, []string{"tackles", "passes", "clean_sheets", "goals", "appearances"}},
		{stats.Midfielder, []string{"passes", "assists", "shots", "tackles", "goals"}},
		{stats.Forward, []string{"goals", "shots", "assists", "passes", "shots_on_target"}},
	} {
		block, err := stats.Player{Position: testCase.pos}.StatBlock()
		require.NoError(t, err)
		require.Equal(t, testCase.keys, keys(block.Stats()))

		for _, stat := range block.Stats() {
			require.False(t, stat.Value.Present())
		}
	}

	_, err := stats.Player{Position: "ST"}.StatBlock()
	require.ErrorIs(t, err, stats.ErrUnknownPosition)
}

func TestClubDerived(t *testing.T) {
	wins, losses, goals := 10, 5, 30
	club := stats.Club{Stats: &stats.ClubStats{Wins: &wins, Losses: &losses, Goals: &goals}}

	require.Equal(t, 66.67, club.WinRate().Float())
	require.Equal(t, 2.0, club.GoalsPerMatch().Float())

	block, err := club.StatBlock()
	require.NoError(t, err)
	require.Equal(t, []string{"wins", "losses"}, keys(block.Chart()))
	require.Len(t, block.Stats(), 5)

	require.Zero(t, stats.WinPercentage(0, 0))
	require.False(t, stats.Club{}.WinRate().Present())
}

func TestPageDecode(t *testing.T) {
	var wrapped stats.Page[stats.Club]
	require.NoError(t, json.Unmarshal([]byte(`{"count":12,"next":"http://x/?page=2","results":[{"id":1,"name":"A"}]}`), &wrapped))
	require.Equal(t, 12, wrapped.Count)
	require.Len(t, wrapped.Results, 1)

	var bare stats.Page[stats.Club]
	require.NoError(t, json.Unmarshal([]byte(`[{"id":1,"name":"A"},{"id":2,"name":"B"}]`), &bare))
	require.Equal(t, 2, bare.Count)
}

func TestDashboardDecode(t *testing.T) {
	const body = `{
		"player_stats": {"top_scorers": [{"id": 3, "player": 7, "goals": 20, "assists": 4}]},
		"club_stats": {"top_winning_clubs": [{"id": 1, "club": 2, "name": "Arsenal", "location": "London", "wins": 25}]}
	}`

	var dash stats.Dashboard
	require.NoError(t, json.Unmarshal([]byte(body), &dash))

	scorer := dash.PlayerStats.TopScorers[0]
	require.Equal(t, stats.ID("7"), scorer.EntityID)
	require.Equal(t, "#7", scorer.Title())
	require.Equal(t, "20", scorer.Value("goals").String())
	require.Equal(t, []string{"assists", "goals"}, scorer.Keys())

	club := dash.ClubStats.TopWinningClubs[0]
	require.Equal(t, "Arsenal", club.Title())
	require.Equal(t, "London", club.Subtitle)
	require.False(t, club.Value("losses").Present())

	require.Len(t, dash.Leaderboards(), 7)
}

func TestAllStatsSkipsAbsent(t *testing.T) {
	goals, saves := 4, 0
	player := stats.PlayerStats{Goals: &goals, Saves: &saves}

	all := player.All()
	require.Equal(t, []string{"goals", "saves"}, keys(all))
	require.Equal(t, "Goals", all[0].Label)

	var missing *stats.ClubStats
	require.Empty(t, missing.All())
}

func keys(items []stats.Stat) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Key
	}

	return out
}
