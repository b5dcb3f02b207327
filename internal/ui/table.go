package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stattrackr/stattrackr/internal/api"
	"github.com/stattrackr/stattrackr/internal/compare"
	"github.com/stattrackr/stattrackr/internal/pagination"
	"github.com/stattrackr/stattrackr/internal/resource"
	"github.com/stattrackr/stattrackr/internal/sorting"
	"github.com/stattrackr/stattrackr/internal/stats"
	"github.com/stattrackr/stattrackr/internal/ui/component"
	"github.com/stattrackr/stattrackr/internal/ui/input"
	"github.com/stattrackr/stattrackr/internal/ui/styles"
)

const (
	minPageSize = 5
	maxPageSize = 50
)

// entityTableModel lists a collection endpoint with client side sorting and pagination. Filter
// and position changes are sent to the api as query parameters.
type entityTableModel[T stats.Entity] struct {
	id        string
	noun      string
	columns   []column[T]
	ordering  map[string]string
	res       *resource.Resource[stats.Page[T]]
	sorter    *sorting.Sorter
	pager     *pagination.Pager
	filter    textinput.Model
	filtering bool
	positions bool
	position  int
	cursor    int
	spinner   spinner.Model
	width     int
	height    int
}

func newPlayerTableModel(ctx context.Context, fetch resource.Fetcher[stats.Page[stats.Player]], pageSize int) *entityTableModel[stats.Player] {
	return newEntityTableModel(ctx, "players", api.PathPlayers, playerColumns(), api.PlayerOrdering, fetch, pageSize, true)
}

func newClubTableModel(ctx context.Context, fetch resource.Fetcher[stats.Page[stats.Club]], pageSize int) *entityTableModel[stats.Club] {
	return newEntityTableModel(ctx, "clubs", api.PathClubs, clubColumns(), api.ClubOrdering, fetch, pageSize, false)
}

func newEntityTableModel[T stats.Entity](ctx context.Context, noun string, endpoint string, columns []column[T],
	ordering map[string]string, fetch resource.Fetcher[stats.Page[T]], pageSize int, positions bool,
) *entityTableModel[T] {
	filter := component.NewTextInputModel("", "search by name")
	filter.Prompt = styles.IconSearch + " "

	return &entityTableModel[T]{
		id:        zone.NewPrefix(),
		noun:      noun,
		columns:   columns,
		ordering:  ordering,
		res:       resource.New(ctx, fetch, endpoint, nil),
		sorter:    sorting.New("name"),
		pager:     pagination.NewPager(pageSize),
		filter:    filter,
		positions: positions,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m *entityTableModel[T]) Init() tea.Cmd {
	return listen(m.id, m.res.Changes())
}

// activate loads the collection the first time the tab is shown.
func (m *entityTableModel[T]) activate() tea.Cmd {
	if m.res.Fetch() {
		return m.spinner.Tick
	}

	return nil
}

func (m *entityTableModel[T]) capturing() bool {
	return m.filtering
}

func (m *entityTableModel[T]) Update(msg tea.Msg) (*entityTableModel[T], tea.Cmd) {
	switch msg := msg.(type) {
	case contentSizeMsg:
		m.width = msg.width
		m.height = msg.height
	case setPageSizeMsg:
		if msg.size != m.pager.PageSize() {
			m.pager.SetPageSize(msg.size)
			m.cursor = 0
		}
	case resourceChangedMsg:
		if msg.id != m.id {
			return m, nil
		}

		state := m.res.State()
		m.pager.Clamp(len(state.Data.Results))
		m.clampCursor()

		cmds := []tea.Cmd{listen(m.id, m.res.Changes())}
		if state.IsError() {
			cmds = append(cmds, setStatusMessage(api.Message(state.Err), true))
		}

		return m, tea.Batch(cmds...)
	case spinner.TickMsg:
		if !m.res.State().Loading {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	case tea.MouseMsg:
		return m, m.onMouse(msg)
	case tea.KeyMsg:
		if m.filtering {
			return m, m.onFilterKey(msg)
		}

		return m, m.onKey(msg)
	}

	return m, nil
}

func (m *entityTableModel[T]) onMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	for _, col := range m.columns {
		if zone.Get(m.id + col.key).InBounds(msg) {
			return m.sortBy(col.key)
		}
	}

	for idx := range m.rows() {
		if zone.Get(fmt.Sprintf("%srow%d", m.id, idx)).InBounds(msg) {
			m.cursor = idx

			return nil
		}
	}

	return nil
}

func (m *entityTableModel[T]) onFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, input.Default.Back):
		m.filtering = false
		m.filter.Blur()

		return nil
	case key.Matches(msg, input.Default.Accept):
		m.filtering = false
		m.filter.Blur()

		return m.apply()
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)

	return cmd
}

func (m *entityTableModel[T]) onKey(msg tea.KeyMsg) tea.Cmd {
	total := len(m.res.State().Data.Results)

	switch {
	case key.Matches(msg, input.Default.Up):
		m.cursor = max(0, m.cursor-1)
	case key.Matches(msg, input.Default.Down):
		m.cursor = min(len(m.rows())-1, m.cursor+1)
		m.clampCursor()
	case key.Matches(msg, input.Default.PrevPage):
		if m.pager.Prev() {
			m.cursor = 0
		}
	case key.Matches(msg, input.Default.NextPage):
		if m.pager.Next(total) {
			m.cursor = 0
		}
	case key.Matches(msg, input.Default.PageLarger):
		m.pager.SetPageSize(min(maxPageSize, m.pager.PageSize()+minPageSize))
		m.cursor = 0
	case key.Matches(msg, input.Default.PageSmall):
		m.pager.SetPageSize(max(minPageSize, m.pager.PageSize()-minPageSize))
		m.cursor = 0
	case key.Matches(msg, input.Default.Filter):
		m.filtering = true

		return m.filter.Focus()
	case key.Matches(msg, input.Default.Position):
		if !m.positions {
			return nil
		}
		m.position = (m.position + 1) % (len(stats.Positions) + 1)

		return m.apply()
	case key.Matches(msg, input.Default.SortNext):
		return m.sortBy(m.nextColumn())
	case key.Matches(msg, input.Default.SortFlip):
		return m.sortBy(m.sorter.Column())
	case key.Matches(msg, input.Default.Refresh):
		m.res.Refetch()

		return m.spinner.Tick
	case key.Matches(msg, input.Default.SlotA), key.Matches(msg, input.Default.SlotB):
		selected, found := m.selected()
		if !found {
			return nil
		}
		slot := compare.SlotA
		if key.Matches(msg, input.Default.SlotB) {
			slot = compare.SlotB
		}

		return tea.Batch(setCompareSlot(slot, selected),
			setStatusMessage(fmt.Sprintf("%s set as comparison %s", selected.DisplayName(), slot), false))
	case key.Matches(msg, input.Default.Accept):
		if selected, found := m.selected(); found {
			return showDetail(selected)
		}
	}

	return nil
}

func (m *entityTableModel[T]) nextColumn() string {
	for idx, col := range m.columns {
		if col.key == m.sorter.Column() {
			return m.columns[(idx+1)%len(m.columns)].key
		}
	}

	return m.columns[0].key
}

// sortBy toggles the column and refetches when the api can order by it.
func (m *entityTableModel[T]) sortBy(column string) tea.Cmd {
	m.sorter.Toggle(column)
	m.cursor = 0

	return m.apply()
}

// apply pushes the current filters to the resource, which only refetches when they changed.
func (m *entityTableModel[T]) apply() tea.Cmd {
	m.pager.SetPage(1)
	m.cursor = 0

	if m.res.SetParams(m.params()) {
		return m.spinner.Tick
	}

	return nil
}

func (m *entityTableModel[T]) params() url.Values {
	var params api.ListParams

	if search := strings.TrimSpace(m.filter.Value()); search != "" {
		params.Search = &search
	}

	if position := m.selectedPosition(); position != "" {
		value := string(position)
		params.Position = &value
	}

	if _, found := m.ordering[m.sorter.Column()]; found {
		ordering := m.sorter.Ordering(m.ordering)
		params.Ordering = &ordering
	}

	values, err := params.Values()
	if err != nil {
		slog.Error("Failed to encode list params", slog.String("error", err.Error()))

		return url.Values{}
	}

	return values
}

func (m *entityTableModel[T]) selectedPosition() stats.Position {
	if !m.positions || m.position == 0 {
		return ""
	}

	return stats.Positions[m.position-1]
}

// rows returns the sorted items of the current page.
func (m *entityTableModel[T]) rows() []T {
	items := m.res.State().Data.Results
	sorted := sorting.SortedView(m.sorter, items, columnValue(m.columns))

	return pagination.Paginate(sorted, m.pager.Page(), m.pager.PageSize())
}

func (m *entityTableModel[T]) selected() (T, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		var empty T

		return empty, false
	}

	return rows[m.cursor], true
}

func (m *entityTableModel[T]) clampCursor() {
	m.cursor = max(0, min(m.cursor, len(m.rows())-1))
}

func (m *entityTableModel[T]) View() string {
	state := m.res.State()

	var body string
	switch {
	case state.IsError():
		body = styles.ErrorMessage.Render(api.Message(state.Err))
	case !state.HasData && state.Loading:
		body = styles.InfoMessage.Render(m.spinner.View() + " Loading " + m.noun + "…")
	case len(state.Data.Results) == 0 && state.Phase == resource.Settled:
		body = styles.InfoMessage.Render("No " + m.noun + " found")
	default:
		body = m.renderTable()
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderToolbar(), body, m.renderFooter())
}

func (m *entityTableModel[T]) renderToolbar() string {
	parts := []string{m.filter.View()}

	if m.positions {
		label := "All positions"
		if position := m.selectedPosition(); position != "" {
			label = position.Label()
		}
		parts = append(parts, styles.MutedText.Render("  position: ")+styles.FocusedStyle.Render(label))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *entityTableModel[T]) renderTable() string {
	rows := m.rows()

	headers := make([]string, len(m.columns))
	for idx, col := range m.columns {
		headers[idx] = zone.Mark(m.id+col.key, col.title+" "+m.sorter.Indicator(col.key))
	}

	data := make([][]string, len(rows))
	for rowIdx, item := range rows {
		cells := make([]string, len(m.columns))
		for colIdx, col := range m.columns {
			cells[colIdx] = col.render(item)
		}
		cells[0] = zone.Mark(fmt.Sprintf("%srow%d", m.id, rowIdx), cells[0])
		data[rowIdx] = cells
	}

	return component.NewUnstyledTable(headers...).
		Width(m.width).
		Rows(data...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.HeaderStyle
			case row == m.cursor:
				return styles.SelectedRow
			case row%2 == 0:
				return styles.TableRow
			default:
				return styles.TableRowOdd
			}
		}).
		String()
}

func (m *entityTableModel[T]) renderFooter() string {
	state := m.res.State()
	total := len(state.Data.Results)
	start, end := m.pager.Summary(total)

	footer := fmt.Sprintf("Showing %d-%d of %d · Page %d/%d · %d per page · sorted by %s %s",
		start, end, total, m.pager.Page(), max(1, pagination.TotalPages(total, m.pager.PageSize())),
		m.pager.PageSize(), m.sorter.Column(), m.sorter.Direction())

	if state.Loading && state.HasData {
		footer = m.spinner.View() + " " + footer
	}

	return styles.MutedText.Render(footer)
}
