package compare_test

import (
	"testing"

	"github.com/stattrackr/stattrackr/internal/compare"
	"github.com/stattrackr/stattrackr/internal/stats"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int {
	return &v
}

func club(name string, wins int, losses int) stats.Club {
	return stats.Club{
		ID:   stats.ID(name),
		Name: name,
		Stats: &stats.ClubStats{
			Wins:        intp(wins),
			Losses:      intp(losses),
			Goals:       intp(wins * 2),
			CleanSheets: intp(0),
		},
	}
}

func sum(slices []compare.Slice) float64 {
	var total float64
	for _, slice := range slices {
		total += slice.Percentage
	}

	return total
}

func TestGoalkeeperVersusForward(t *testing.T) {
	keeper := stats.Player{ID: "1", Name: "Raya", Position: stats.Goalkeeper, Stats: &stats.PlayerStats{
		CleanSheets: intp(10), GoalsConceded: intp(5), Saves: intp(20), GoalKicks: intp(8), HighClaims: intp(3),
	}}
	forward := stats.Player{ID: "2", Name: "Haaland", Position: stats.Forward, Stats: &stats.PlayerStats{Goals: intp(30)}}

	result, err := compare.Compare(keeper, forward)
	require.ErrorIs(t, err, compare.ErrIncomparable)
	require.Empty(t, result.Table)
	require.Empty(t, result.Breakdown[0])
}

func TestClubs(t *testing.T) {
	result, err := compare.Compare(club("Arsenal", 10, 5), club("Everton", 3, 12))
	require.NoError(t, err)
	require.Equal(t, stats.KindClub, result.Kind)
	require.Equal(t, "Arsenal", result.NameA)

	require.Equal(t, compare.Row{Label: "Wins", Key: "wins", A: stats.Of(10), B: stats.Of(3)}, result.Table[0])
	require.Len(t, result.Table, 5)
	require.False(t, result.Table[4].A.Present())
	require.Equal(t, stats.NotAvailable, result.Table[4].B.String())
	require.Equal(t, "0", result.Table[3].A.String())

	require.Len(t, result.Breakdown[0], 2)
	require.InDelta(t, 100.0, sum(result.Breakdown[0]), 0.1)
	require.InDelta(t, 66.7, result.Breakdown[0][0].Percentage, 0.001)
	require.InDelta(t, 33.3, result.Breakdown[0][1].Percentage, 0.001)
	require.InDelta(t, 20.0, result.Breakdown[1][0].Percentage, 0.001)
}

func TestBreakdownZeroSum(t *testing.T) {
	slices := compare.Breakdown([]stats.Stat{
		{Label: "Wins", Key: "wins", Value: stats.Of(0)},
		{Label: "Losses", Key: "losses", Value: stats.Missing()},
	})

	require.Len(t, slices, 2)
	for _, slice := range slices {
		require.Zero(t, slice.Percentage)
	}
}

func TestBreakdownSumsToHundred(t *testing.T) {
	for _, values := range [][]float64{
		{1, 1, 1},
		{1, 2, 3, 4, 5},
		{7, 0, 0, 0, 0},
		{333, 333, 334, 1, 1},
		{0.5, 0.25, 0.25},
	} {
		items := make([]stats.Stat, len(values))
		for i, value := range values {
			items[i] = stats.Stat{Key: "k", Value: stats.Of(value)}
		}

		require.InDelta(t, 100.0, sum(compare.Breakdown(items)), 0.1)
	}

	thirds := compare.Breakdown([]stats.Stat{{Value: stats.Of(1)}, {Value: stats.Of(1)}, {Value: stats.Of(1)}})
	for _, slice := range thirds {
		require.InDelta(t, 33.3, slice.Percentage, 0.001)
	}
}

func TestBreakdownRoundsEachShare(t *testing.T) {
	values := []float64{1, 2, 2, 2, 2}
	items := make([]stats.Stat, len(values))
	for i, value := range values {
		items[i] = stats.Stat{Key: "k", Value: stats.Of(value)}
	}

	slices := compare.Breakdown(items)
	require.InDelta(t, 11.1, slices[0].Percentage, 0.001)
	for _, slice := range slices[1:] {
		require.InDelta(t, 22.2, slice.Percentage, 0.001)
	}
}

func TestBreakdownKeepsAbsentValues(t *testing.T) {
	slices := compare.Breakdown([]stats.Stat{
		{Label: "Goals", Key: "goals", Value: stats.Of(3)},
		{Label: "Assists", Key: "assists", Value: stats.Missing()},
		{Label: "Shots", Key: "shots", Value: stats.Of(0)},
	})

	require.Equal(t, "3", slices[0].Value.String())
	require.False(t, slices[1].Value.Present())
	require.Equal(t, stats.NotAvailable, slices[1].Value.String())
	require.Equal(t, "0", slices[2].Value.String())
	require.InDelta(t, 100.0, slices[0].Percentage, 0.001)
	require.Zero(t, slices[1].Percentage)
}

func TestPlayersSamePosition(t *testing.T) {
	playerA := stats.Player{Name: "Rice", Position: stats.Midfielder, Stats: &stats.PlayerStats{
		Passes: intp(900), Assists: intp(8), Shots: intp(40), Tackles: intp(60), Goals: intp(7),
	}}
	playerB := stats.Player{Name: "Rodri", Position: stats.Midfielder, Stats: &stats.PlayerStats{Passes: intp(1200)}}

	result, err := compare.Compare(&playerA, playerB)
	require.NoError(t, err)
	require.Equal(t, stats.KindMidfielder, result.Kind)
	require.Len(t, result.Breakdown[0], 5)
	require.InDelta(t, 100.0, sum(result.Breakdown[0]), 0.1)
	require.InDelta(t, 100.0, result.Breakdown[1][0].Percentage, 0.001)
	require.Equal(t, "Assists", result.Table[1].Label)
	require.False(t, result.Table[1].B.Present())
}

func TestPositionsMatchCaseInsensitively(t *testing.T) {
	keeperA := stats.Player{Name: "Raya", Position: "gk", Stats: &stats.PlayerStats{Saves: intp(20)}}
	keeperB := stats.Player{Name: "Pickford", Position: stats.Goalkeeper, Stats: &stats.PlayerStats{Saves: intp(30)}}

	result, err := compare.Compare(keeperA, keeperB)
	require.NoError(t, err)
	require.Equal(t, stats.KindGoalkeeper, result.Kind)
	require.False(t, result.Empty())
}

func TestUnknownPositions(t *testing.T) {
	result, err := compare.Compare(stats.Player{Position: "ST"}, stats.Player{Position: "ST"})
	require.NoError(t, err)
	require.True(t, result.Empty())

	_, errMixed := compare.Compare(stats.Player{Position: "ST"}, stats.Player{Position: stats.Forward})
	require.ErrorIs(t, errMixed, compare.ErrIncomparable)
}

func TestMixedKinds(t *testing.T) {
	_, err := compare.Compare(stats.Player{Position: stats.Forward}, club("Arsenal", 1, 1))
	require.ErrorIs(t, err, compare.ErrIncomparable)
	require.ErrorIs(t, err, compare.ErrMixedKinds)
}

func TestSelection(t *testing.T) {
	var selection compare.Selection
	require.False(t, selection.Ready())

	_, err := selection.Result()
	require.ErrorIs(t, err, compare.ErrIncomplete)

	selection.Set(compare.SlotA, club("Arsenal", 10, 5))
	selection.Set(compare.SlotB, club("Everton", 3, 12))
	require.True(t, selection.Ready())

	result, errResult := selection.Result()
	require.NoError(t, errResult)
	require.Equal(t, "Everton", result.NameB)

	selection.Clear(compare.SlotA)
	require.False(t, selection.Ready())
	require.Nil(t, selection.Get(compare.SlotA))
}
