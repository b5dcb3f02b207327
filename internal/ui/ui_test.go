package ui

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stattrackr/stattrackr/internal/api"
	"github.com/stattrackr/stattrackr/internal/compare"
	"github.com/stattrackr/stattrackr/internal/config"
	"github.com/stattrackr/stattrackr/internal/resource"
	"github.com/stattrackr/stattrackr/internal/session"
	"github.com/stattrackr/stattrackr/internal/stats"
	"github.com/stattrackr/stattrackr/internal/ui/input"
	"github.com/stattrackr/stattrackr/internal/ui/styles"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	m.Run()
}

func configFixture() config.Config {
	return config.Config{APIBaseURL: config.DefaultAPIBaseURL, PageSize: config.DefaultPageSize}
}

func intp(v int) *int {
	return &v
}

func player(id string, name string, position stats.Position, goals int) stats.Player {
	return stats.Player{
		ID:       stats.ID(id),
		Name:     name,
		Position: position,
		Stats: &stats.PlayerStats{
			Goals: intp(goals), Shots: intp(goals * 3), Assists: intp(1), Passes: intp(10),
			ShotsOnTarget: intp(goals), CleanSheets: intp(0), GoalsConceded: intp(2),
			Saves: intp(5), GoalKicks: intp(3), HighClaims: intp(1),
		},
	}
}

type recordingFetcher[T any] struct {
	mu     sync.Mutex
	params []url.Values
	data   T
}

func (f *recordingFetcher[T]) fetch(_ context.Context, _ string, params url.Values) (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.params = append(f.params, params)

	return f.data, nil
}

func (f *recordingFetcher[T]) last() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.params[len(f.params)-1]
}

func (f *recordingFetcher[T]) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.params)
}

func wait[T any](t *testing.T, res *resource.Resource[T]) {
	t.Helper()

	ctx, cancel := context.WithTimeout(t.Context(), time.Second)
	defer cancel()

	require.NoError(t, res.Wait(ctx))
}

func keyPress(value string) tea.KeyMsg {
	switch value {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(value)}
	}
}

func names(players []stats.Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Name
	}

	return out
}

func TestPlayerTableSortAndPage(t *testing.T) {
	fetcher := &recordingFetcher[stats.Page[stats.Player]]{data: stats.Page[stats.Player]{Results: []stats.Player{
		player("1", "Saka", stats.Forward, 12),
		player("2", "Ødegaard", stats.Midfielder, 8),
		player("3", "Havertz", stats.Forward, 9),
	}}}

	model := newPlayerTableModel(t.Context(), fetcher.fetch, 2)
	model.activate()
	wait(t, model.res)

	require.Equal(t, []string{"Havertz", "Ødegaard"}, names(model.rows()))

	model, _ = model.Update(keyPress("right"))
	require.Equal(t, []string{"Saka"}, names(model.rows()))

	model.sortBy("goals")
	wait(t, model.res)
	require.Equal(t, "stats__goals", fetcher.last().Get("ordering"))
	require.Equal(t, 1, model.pager.Page())
	require.Equal(t, []string{"Ødegaard", "Havertz"}, names(model.rows()))

	model.sortBy("goals")
	wait(t, model.res)
	require.Equal(t, "-stats__goals", fetcher.last().Get("ordering"))
	require.Equal(t, []string{"Saka", "Havertz"}, names(model.rows()))

	selected, found := model.selected()
	require.True(t, found)
	require.Equal(t, "Saka", selected.Name)
}

func TestPlayerTablePositionFilter(t *testing.T) {
	fetcher := &recordingFetcher[stats.Page[stats.Player]]{}
	model := newPlayerTableModel(t.Context(), fetcher.fetch, 10)
	model.activate()
	wait(t, model.res)

	model, _ = model.Update(keyPress("f"))
	wait(t, model.res)
	require.Equal(t, string(stats.Goalkeeper), fetcher.last().Get("position"))

	// Sorting by a column the api cannot order by does not refetch.
	calls := fetcher.calls()
	model.sortBy("club")
	wait(t, model.res)
	require.Equal(t, calls, fetcher.calls())

	require.Contains(t, model.View(), "No players found")
}

func TestCompareIncomparablePositions(t *testing.T) {
	fetcher := &recordingFetcher[stats.Page[stats.Player]]{data: stats.Page[stats.Player]{Results: []stats.Player{
		player("1", "Raya", stats.Goalkeeper, 0),
		player("2", "Saka", stats.Forward, 12),
	}}}

	model := newComparePlayersModel(t.Context(), fetcher.fetch)
	model, _ = model.Update(contentSizeMsg{width: 160, height: 40})
	model.activate()
	wait(t, model.res)

	require.Contains(t, model.View(), "Select two players to compare")

	model, _ = model.Update(keyPress("down"))
	model, _ = model.Update(keyPress("right"))
	model, _ = model.Update(keyPress("down"))
	model, _ = model.Update(keyPress("down"))

	require.Equal(t, "Raya", model.selection.Get(compare.SlotA).DisplayName())
	require.Equal(t, "Saka", model.selection.Get(compare.SlotB).DisplayName())
	require.Contains(t, model.View(), compare.ErrIncomparable.Error())
}

func TestCompareSlotFromTable(t *testing.T) {
	fetcher := &recordingFetcher[stats.Page[stats.Player]]{data: stats.Page[stats.Player]{Results: []stats.Player{
		player("1", "Saka", stats.Forward, 12),
		player("2", "Havertz", stats.Forward, 9),
	}}}

	model := newComparePlayersModel(t.Context(), fetcher.fetch)
	model, _ = model.Update(contentSizeMsg{width: 160, height: 40})

	model, _ = model.Update(compareSlotMsg{slot: compare.SlotA, entity: fetcher.data.Results[0]})
	wait(t, model.res)
	model, _ = model.Update(compareSlotMsg{slot: compare.SlotB, entity: fetcher.data.Results[1]})
	// Clubs are ignored by a player comparison.
	model, _ = model.Update(compareSlotMsg{slot: compare.SlotB, entity: stats.Club{ID: "9", Name: "Arsenal"}})

	require.Equal(t, 1, model.cursors[compare.SlotB])

	view := model.View()
	require.Contains(t, view, "Statistical Comparison")
	require.Contains(t, view, "Shots on Target")
	require.Contains(t, view, "50.7%")
}

func TestRenderComparisonClubs(t *testing.T) {
	result, err := compare.Compare(
		stats.Club{ID: "1", Name: "Arsenal", Stats: &stats.ClubStats{Wins: intp(10), Losses: intp(5)}},
		stats.Club{ID: "2", Name: "Spurs", Stats: &stats.ClubStats{Wins: intp(3), Losses: intp(12)}})
	require.NoError(t, err)

	view := renderComparison(result)
	require.Contains(t, view, "66.7%")
	require.Contains(t, view, "80.0%")
	require.Contains(t, view, "N/A")

	require.True(t, leads(result.Table[0], 1))
	require.False(t, leads(result.Table[0], 2))
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	fetcher := &recordingFetcher[stats.SearchResults]{}
	model := newSearchModel(t.Context(), fetcher.fetch)
	model.activate()

	model, cmd := model.Update(keyPress("enter"))
	require.NotNil(t, cmd)
	require.Equal(t, statusMsg{Message: api.ErrEmptyQuery.Error(), Err: true}, cmd())
	require.Equal(t, 0, fetcher.calls())

	for _, r := range "saka" {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	model, _ = model.Update(keyPress("enter"))
	wait(t, model.res)
	require.Equal(t, "saka", fetcher.last().Get("q"))
	require.False(t, model.capturing())
}

func TestSignupPasswordMismatch(t *testing.T) {
	client, err := api.New("http://127.0.0.1:1/api", session.NewMemory("", ""))
	require.NoError(t, err)

	model := newAccountModel(t.Context(), client, nil, configFixture())
	model.mode = modeSignup
	model.signup[fieldSignupUsername].Input.SetValue("bukayo")
	model.signup[fieldSignupEmail].Input.SetValue("bukayo@example.com")
	model.signup[fieldSignupPassword1].Input.SetValue("starboy777")
	model.signup[fieldSignupPassword2].Input.SetValue("starboy778")
	model.activate()
	model.focusField(len(model.signup))

	model, cmd := model.Update(keyPress("enter"))
	require.NotNil(t, cmd)

	msg, ok := cmd().(statusMsg)
	require.True(t, ok)
	require.True(t, msg.Err)
	require.Equal(t, api.ErrPasswordMismatch.Error(), msg.Message)
	require.False(t, model.busy)
	require.True(t, strings.Contains(model.View(), "Create account"))
}

type memoryWriter struct {
	written []config.Config
}

func (w *memoryWriter) Write(conf config.Config) error {
	w.written = append(w.written, conf)

	return nil
}

func (w *memoryWriter) Path() string {
	return "stattrackr.yaml"
}

func TestConfigFormSave(t *testing.T) {
	writer := &memoryWriter{}
	model := newConfigModel(configFixture(), writer)
	model.open()

	model.fields[fieldPageSize].Input.SetValue("25")
	model.changeInput(input.Down)
	model.changeInput(input.Down)
	model.changeInput(input.Down)
	require.Equal(t, fieldSave, model.focusIndex)

	model, cmd := model.Update(keyPress("enter"))
	require.NotNil(t, cmd)
	require.Len(t, writer.written, 1)
	require.Equal(t, 25, writer.written[0].PageSize)

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)

	var saved config.Config
	for _, inner := range batch {
		if conf, isConfig := inner().(config.Config); isConfig {
			saved = conf
		}
	}

	require.Equal(t, 25, saved.PageSize)
	require.Equal(t, 25, model.config.PageSize)
}

func TestConfigFormRejectsInvalid(t *testing.T) {
	writer := &memoryWriter{}
	model := newConfigModel(configFixture(), writer)
	model.open()

	model.fields[fieldAPIBaseURL].Input.SetValue("not a url")
	model.focusIndex = fieldSave

	_, cmd := model.Update(keyPress("enter"))
	require.NotNil(t, cmd)
	require.Empty(t, writer.written)

	msg, ok := cmd().(statusMsg)
	require.True(t, ok)
	require.True(t, msg.Err)
}

func TestBreakdownShowsAbsentStat(t *testing.T) {
	view := renderBreakdown(styles.SlotTitleA, "Saka", compare.Breakdown([]stats.Stat{
		{Label: "Goals", Key: "goals", Value: stats.Of(4)},
		{Label: "Assists", Key: "assists", Value: stats.Missing()},
	}))

	require.Contains(t, view, "(N/A)")
	require.NotContains(t, view, "(0)")
	require.Contains(t, view, "100.0%")
}
