package ui

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stattrackr/stattrackr/internal/api"
	"github.com/stattrackr/stattrackr/internal/compare"
	"github.com/stattrackr/stattrackr/internal/resource"
	"github.com/stattrackr/stattrackr/internal/stats"
	"github.com/stattrackr/stattrackr/internal/ui/component"
	"github.com/stattrackr/stattrackr/internal/ui/input"
	"github.com/stattrackr/stattrackr/internal/ui/styles"
)

// searchFetcher adapts Client.Search, which validates the query, to a resource fetcher.
func searchFetcher(client *api.Client) resource.Fetcher[stats.SearchResults] {
	return func(ctx context.Context, _ string, params url.Values) (stats.SearchResults, error) {
		return client.Search(ctx, params.Get("q"))
	}
}

type searchModel struct {
	id       string
	res      *resource.Resource[stats.SearchResults]
	query    textinput.Model
	editing  bool
	cursor   int
	spinner  spinner.Model
	width    int
	resolved bool
}

func newSearchModel(ctx context.Context, fetch resource.Fetcher[stats.SearchResults]) *searchModel {
	query := component.NewTextInputModel("", "player or club name")
	query.Prompt = styles.IconSearch + " "

	return &searchModel{
		id:      zone.NewPrefix(),
		res:     resource.New(ctx, fetch, api.PathSearch, nil),
		query:   query,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m *searchModel) Init() tea.Cmd {
	return listen(m.id, m.res.Changes())
}

// activate hands the keyboard to the query input.
func (m *searchModel) activate() tea.Cmd {
	m.editing = true

	return m.query.Focus()
}

func (m *searchModel) capturing() bool {
	return m.editing
}

// results flattens players then clubs into one selectable list.
func (m *searchModel) results() []stats.Entity {
	data := m.res.State().Data
	entities := make([]stats.Entity, 0, len(data.Players)+len(data.Clubs))

	for _, player := range data.Players {
		entities = append(entities, player)
	}

	for _, club := range data.Clubs {
		entities = append(entities, club)
	}

	return entities
}

func (m *searchModel) Update(msg tea.Msg) (*searchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case contentSizeMsg:
		m.width = msg.width
	case resourceChangedMsg:
		if msg.id != m.id {
			return m, nil
		}
		m.cursor = max(0, min(m.cursor, len(m.results())-1))

		return m, listen(m.id, m.res.Changes())
	case spinner.TickMsg:
		if !m.res.State().Loading {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	case tea.KeyMsg:
		if m.editing {
			return m, m.onQueryKey(msg)
		}

		return m, m.onKey(msg)
	}

	return m, nil
}

func (m *searchModel) onQueryKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, input.Default.Back):
		m.editing = false
		m.query.Blur()

		return nil
	case key.Matches(msg, input.Default.Accept):
		query := strings.TrimSpace(m.query.Value())
		if query == "" {
			return setStatusMessage(api.ErrEmptyQuery.Error(), true)
		}

		m.editing = false
		m.query.Blur()
		m.cursor = 0
		m.resolved = true

		if m.res.SetParams(url.Values{"q": []string{query}}) {
			return m.spinner.Tick
		}

		return nil
	}

	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)

	return cmd
}

func (m *searchModel) onKey(msg tea.KeyMsg) tea.Cmd {
	results := m.results()

	switch {
	case key.Matches(msg, input.Default.Filter), key.Matches(msg, input.Default.Edit):
		return m.activate()
	case key.Matches(msg, input.Default.Up):
		m.cursor = max(0, m.cursor-1)
	case key.Matches(msg, input.Default.Down):
		m.cursor = max(0, min(len(results)-1, m.cursor+1))
	case key.Matches(msg, input.Default.Refresh):
		if m.resolved {
			m.res.Refetch()

			return m.spinner.Tick
		}
	case key.Matches(msg, input.Default.Accept):
		if m.cursor < len(results) {
			return showDetail(results[m.cursor])
		}
	case key.Matches(msg, input.Default.SlotA), key.Matches(msg, input.Default.SlotB):
		if m.cursor >= len(results) {
			return nil
		}
		slot := compare.SlotA
		if key.Matches(msg, input.Default.SlotB) {
			slot = compare.SlotB
		}

		return tea.Batch(setCompareSlot(slot, results[m.cursor]),
			setStatusMessage(fmt.Sprintf("%s set as comparison %s", results[m.cursor].DisplayName(), slot), false))
	}

	return nil
}

func (m *searchModel) View() string {
	state := m.res.State()

	var body string
	switch {
	case !m.resolved:
		body = styles.InfoMessage.Render("Type a name and press enter")
	case state.Loading:
		body = styles.InfoMessage.Render(m.spinner.View() + " Searching…")
	case state.IsError():
		body = styles.ErrorMessage.Render(api.Message(state.Err))
	case state.Data.Empty():
		body = styles.InfoMessage.Render("No results")
	default:
		body = m.renderResults()
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.query.View(), "", body)
}

func (m *searchModel) renderResults() string {
	var rows []string

	for idx, entity := range m.results() {
		label := entity.DisplayName()
		switch entity := entity.(type) {
		case stats.Player:
			label = fmt.Sprintf("%s %s %s", styles.IconPlayers, label,
				styles.MutedText.Render(strings.TrimSpace(string(entity.Position)+" "+entity.ClubName())))
		case stats.Club:
			label = fmt.Sprintf("%s %s %s", styles.IconClubs, label, styles.MutedText.Render(entity.Location))
		}

		if idx == m.cursor {
			rows = append(rows, styles.ListSelectedRow.Render("▸ "+label))
		} else {
			rows = append(rows, styles.ListUnselectedRow.Render("  "+label))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
