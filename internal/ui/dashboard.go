package ui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stattrackr/stattrackr/internal/api"
	"github.com/stattrackr/stattrackr/internal/resource"
	"github.com/stattrackr/stattrackr/internal/stats"
	"github.com/stattrackr/stattrackr/internal/ui/component"
	"github.com/stattrackr/stattrackr/internal/ui/input"
	"github.com/stattrackr/stattrackr/internal/ui/styles"
)

const leaderboardWidth = 38

type dashboardModel struct {
	id      string
	res     *resource.Resource[stats.Dashboard]
	spinner spinner.Model
	width   int
}

func newDashboardModel(ctx context.Context, fetch resource.Fetcher[stats.Dashboard]) *dashboardModel {
	return &dashboardModel{
		id:      zone.NewPrefix(),
		res:     resource.New(ctx, fetch, api.PathDashboard, nil),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m *dashboardModel) Init() tea.Cmd {
	return listen(m.id, m.res.Changes())
}

func (m *dashboardModel) activate() tea.Cmd {
	if m.res.Fetch() {
		return m.spinner.Tick
	}

	return nil
}

func (m *dashboardModel) Update(msg tea.Msg) (*dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case contentSizeMsg:
		m.width = msg.width
	case resourceChangedMsg:
		if msg.id != m.id {
			return m, nil
		}

		return m, listen(m.id, m.res.Changes())
	case spinner.TickMsg:
		if !m.res.State().Loading {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	case tea.KeyMsg:
		if key.Matches(msg, input.Default.Refresh) {
			m.res.Refetch()

			return m, m.spinner.Tick
		}
	}

	return m, nil
}

func (m *dashboardModel) View() string {
	state := m.res.State()

	switch {
	case !state.HasData && state.Loading:
		return styles.InfoMessage.Render(m.spinner.View() + " Loading dashboard…")
	case state.IsError():
		return styles.ErrorMessage.Render(api.Message(state.Err))
	case !state.HasData:
		return ""
	}

	boards := state.Data.Leaderboards()
	columns := max(1, m.width/(leaderboardWidth+4))

	var (
		grid []string
		line []string
	)

	for _, board := range boards {
		line = append(line, renderLeaderboard(board))
		if len(line) == columns {
			grid = append(grid, lipgloss.JoinHorizontal(lipgloss.Top, line...))
			line = nil
		}
	}

	if len(line) > 0 {
		grid = append(grid, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	}

	updated := ""
	if !state.UpdatedOn.IsZero() {
		updated = styles.MutedText.Render("updated " + humanize.Time(state.UpdatedOn))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		component.RenderTitleBar(m.width, "Season Stats"),
		lipgloss.JoinVertical(lipgloss.Left, grid...),
		updated)
}

func renderLeaderboard(board stats.Leaderboard) string {
	rows := make([][]string, len(board.Lines))
	for idx, line := range board.Lines {
		name := line.Title()
		if line.Subtitle != "" {
			name += styles.MutedText.Render(" " + line.Subtitle)
		}
		rows[idx] = []string{strconv.Itoa(idx + 1), name, line.Value(board.Key).String()}
	}

	content := component.NewUnstyledTable("#", "Name", stats.Label(board.Key)).
		Width(leaderboardWidth).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := styles.TableRow
			if row == table.HeaderRow {
				style = styles.HeaderStyle
			}
			if col == 2 {
				style = style.Align(lipgloss.Right)
			}

			return style
		}).
		String()

	if len(board.Lines) == 0 {
		content = styles.MutedText.Render("No data")
	}

	return styles.ContainerStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.ContainerTitle.Render(board.Title), content))
}
