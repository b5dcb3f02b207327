package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"
	"github.com/stattrackr/stattrackr/internal/api"
	"github.com/stattrackr/stattrackr/internal/compare"
	"github.com/stattrackr/stattrackr/internal/resource"
	"github.com/stattrackr/stattrackr/internal/stats"
	"github.com/stattrackr/stattrackr/internal/ui/input"
	"github.com/stattrackr/stattrackr/internal/ui/styles"
)

const pickerRows = 7

// compareModel lets the user pick two entities of the same collection and renders their comparison.
type compareModel[T stats.Entity] struct {
	id        string
	noun      string
	res       *resource.Resource[stats.Page[T]]
	label     func(T) string
	selection compare.Selection
	cursors   [2]int
	focus     compare.Slot
	spinner   spinner.Model
	width     int
	height    int
}

func newComparePlayersModel(ctx context.Context, fetch resource.Fetcher[stats.Page[stats.Player]]) *compareModel[stats.Player] {
	return newCompareModel(ctx, "players", api.PathPlayers, fetch, func(p stats.Player) string {
		if club := p.ClubName(); club != "" {
			return fmt.Sprintf("%s (%s, %s)", p.Name, p.Position, club)
		}

		return fmt.Sprintf("%s (%s)", p.Name, p.Position)
	})
}

func newCompareClubsModel(ctx context.Context, fetch resource.Fetcher[stats.Page[stats.Club]]) *compareModel[stats.Club] {
	return newCompareModel(ctx, "clubs", api.PathClubs, fetch, func(c stats.Club) string {
		if c.Location != "" {
			return fmt.Sprintf("%s (%s)", c.Name, c.Location)
		}

		return c.Name
	})
}

func newCompareModel[T stats.Entity](ctx context.Context, noun string, endpoint string,
	fetch resource.Fetcher[stats.Page[T]], label func(T) string,
) *compareModel[T] {
	return &compareModel[T]{
		id:      zone.NewPrefix(),
		noun:    noun,
		res:     resource.New(ctx, fetch, endpoint, nil),
		label:   label,
		cursors: [2]int{-1, -1},
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m *compareModel[T]) Init() tea.Cmd {
	return listen(m.id, m.res.Changes())
}

func (m *compareModel[T]) activate() tea.Cmd {
	if m.res.Fetch() {
		return m.spinner.Tick
	}

	return nil
}

func (m *compareModel[T]) candidates() []T {
	return m.res.State().Data.Results
}

func (m *compareModel[T]) Update(msg tea.Msg) (*compareModel[T], tea.Cmd) {
	switch msg := msg.(type) {
	case contentSizeMsg:
		m.width = msg.width
		m.height = msg.height
	case compareSlotMsg:
		entity, ok := msg.entity.(T)
		if !ok {
			return m, nil
		}
		m.assign(msg.slot, entity)

		return m, m.activate()
	case resourceChangedMsg:
		if msg.id != m.id {
			return m, nil
		}
		m.resync()

		return m, listen(m.id, m.res.Changes())
	case spinner.TickMsg:
		if !m.res.State().Loading {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		for _, slot := range []compare.Slot{compare.SlotA, compare.SlotB} {
			if zone.Get(m.id + slot.String()).InBounds(msg) {
				m.focus = slot
			}
		}
	case tea.KeyMsg:
		return m, m.onKey(msg)
	}

	return m, nil
}

func (m *compareModel[T]) onKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, input.Default.SwitchSlot):
		if m.focus == compare.SlotA {
			m.focus = compare.SlotB
		} else {
			m.focus = compare.SlotA
		}
	case key.Matches(msg, input.Default.Up):
		m.step(-1)
	case key.Matches(msg, input.Default.Down):
		m.step(1)
	case key.Matches(msg, input.Default.SlotA):
		m.focus = compare.SlotA
	case key.Matches(msg, input.Default.SlotB):
		m.focus = compare.SlotB
	case key.Matches(msg, input.Default.ClearSlots):
		m.selection.Reset()
		m.cursors = [2]int{-1, -1}
	case key.Matches(msg, input.Default.Refresh):
		m.res.Refetch()

		return m.spinner.Tick
	}

	return nil
}

// step moves the focused slot through the candidate list, selecting as it goes.
func (m *compareModel[T]) step(delta int) {
	candidates := m.candidates()
	if len(candidates) == 0 {
		return
	}

	cursor := m.cursors[m.focus] + delta
	if cursor < 0 {
		cursor = len(candidates) - 1
	} else if cursor >= len(candidates) {
		cursor = 0
	}

	m.cursors[m.focus] = cursor
	m.selection.Set(m.focus, candidates[cursor])
}

func (m *compareModel[T]) assign(slot compare.Slot, entity T) {
	m.selection.Set(slot, entity)
	m.cursors[slot] = m.indexOf(entity.EntityID())
	m.focus = slot
}

// resync points the cursors at the selected entities within a reloaded candidate list.
func (m *compareModel[T]) resync() {
	for _, slot := range []compare.Slot{compare.SlotA, compare.SlotB} {
		selected := m.selection.Get(slot)
		if selected == nil {
			m.cursors[slot] = -1

			continue
		}

		m.cursors[slot] = m.indexOf(selected.EntityID())
	}
}

func (m *compareModel[T]) indexOf(id stats.ID) int {
	for idx, candidate := range m.candidates() {
		if candidate.EntityID() == id {
			return idx
		}
	}

	return -1
}

func (m *compareModel[T]) View() string {
	state := m.res.State()

	var pickers string
	switch {
	case state.IsError():
		pickers = styles.ErrorMessage.Render(api.Message(state.Err))
	case !state.HasData && state.Loading:
		pickers = styles.InfoMessage.Render(m.spinner.View() + " Loading " + m.noun + "…")
	default:
		pickers = lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderPicker(compare.SlotA), " ", m.renderPicker(compare.SlotB))
	}

	return lipgloss.JoinVertical(lipgloss.Left, pickers, "", m.renderResult())
}

func (m *compareModel[T]) renderPicker(slot compare.Slot) string {
	title := styles.SlotTitleA
	if slot == compare.SlotB {
		title = styles.SlotTitleB
	}

	selected := "none"
	if entity := m.selection.Get(slot); entity != nil {
		selected = entity.DisplayName()
	}

	rows := []string{title.Render(fmt.Sprintf("%s %s", strings.ToUpper(slot.String()), selected))}

	candidates := m.candidates()
	cursor := m.cursors[slot]
	start := max(0, min(cursor-pickerRows/2, len(candidates)-pickerRows))
	for idx := start; idx < min(len(candidates), start+pickerRows); idx++ {
		if idx == cursor {
			rows = append(rows, styles.ListSelectedRow.Render("▸ "+m.label(candidates[idx])))
		} else {
			rows = append(rows, styles.ListUnselectedRow.Render("  "+m.label(candidates[idx])))
		}
	}

	if len(candidates) == 0 {
		rows = append(rows, styles.MutedText.Render("No "+m.noun+" available"))
	}

	container := styles.ContainerStyle
	if slot == m.focus {
		container = styles.ContainerStyleActive
	}

	width := max(30, m.width/2-2)

	return zone.Mark(m.id+slot.String(), container.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
}

func (m *compareModel[T]) renderResult() string {
	if !m.selection.Ready() {
		return styles.InfoMessage.Render(fmt.Sprintf("Select two %s to compare", m.noun))
	}

	result, err := m.selection.Result()
	if err != nil {
		msg := err.Error()
		if errors.Is(err, compare.ErrIncomparable) {
			msg = compare.ErrIncomparable.Error()
		}

		return styles.ErrorMessage.Render(wordwrap.String(msg, max(20, m.width-4)))
	}

	if result.Empty() {
		return styles.InfoMessage.Render("No comparable stats for these " + m.noun)
	}

	return renderComparison(result)
}
