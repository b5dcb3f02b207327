package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stattrackr/stattrackr/internal/api"
	"github.com/stattrackr/stattrackr/internal/cache"
	"github.com/stattrackr/stattrackr/internal/directory"
	"github.com/stattrackr/stattrackr/internal/stats"
	"github.com/stattrackr/stattrackr/internal/ui/input"
	"github.com/stattrackr/stattrackr/internal/ui/styles"
)

var errUnknownEntity = errors.New("unknown entity type")

type detailLoadedMsg struct {
	entity stats.Entity
	err    error
}

// detailModel shows every stat of one player or club, loaded through the directory cache.
type detailModel struct {
	ctx      context.Context //nolint:containedctx
	dir      *directory.Directory
	visible  bool
	loading  bool
	entity   stats.Entity
	err      error
	spinner  spinner.Model
	viewport viewport.Model
	width    int
	height   int
}

func newDetailModel(ctx context.Context, dir *directory.Directory) *detailModel {
	return &detailModel{
		ctx:      ctx,
		dir:      dir,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		viewport: viewport.New(0, 0),
	}
}

func (m *detailModel) load(entity stats.Entity) tea.Cmd {
	dir, ctx := m.dir, m.ctx

	return func() tea.Msg {
		switch entity := entity.(type) {
		case stats.Player:
			players, err := dir.Players(ctx, entity.ID)
			if err != nil {
				return detailLoadedMsg{entity: entity, err: err}
			}

			return detailLoadedMsg{entity: players[0]}
		case stats.Club:
			clubs, err := dir.Clubs(ctx, entity.ID)
			if err != nil {
				return detailLoadedMsg{entity: entity, err: err}
			}

			return detailLoadedMsg{entity: clubs[0]}
		default:
			return detailLoadedMsg{entity: entity, err: errUnknownEntity}
		}
	}
}

func (m *detailModel) Update(msg tea.Msg) (*detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case contentSizeMsg:
		m.width = msg.width
		m.height = msg.height
		m.viewport.Width = msg.width
		m.viewport.Height = max(1, msg.height-4)
	case showDetailMsg:
		m.visible = true
		m.loading = true
		m.err = nil
		m.entity = msg.entity
		m.refresh()

		return m, tea.Batch(m.load(msg.entity), m.spinner.Tick)
	case detailLoadedMsg:
		if m.entity == nil || msg.entity.EntityID() != m.entity.EntityID() {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		m.entity = msg.entity
		m.refresh()
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	case tea.KeyMsg:
		if !m.visible {
			return m, nil
		}

		switch {
		case key.Matches(msg, input.Default.Back):
			m.visible = false

			return m, nil
		case key.Matches(msg, input.Default.Refresh):
			m.invalidate()
			m.loading = true

			return m, tea.Batch(m.load(m.entity), m.spinner.Tick)
		}

		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m *detailModel) invalidate() {
	switch m.entity.(type) {
	case stats.Player:
		m.dir.Invalidate(cache.KindPlayer, m.entity.EntityID())
	case stats.Club:
		m.dir.Invalidate(cache.KindClub, m.entity.EntityID())
	}
}

func (m *detailModel) refresh() {
	m.viewport.SetContent(m.renderStats())
	m.viewport.GotoTop()
}

func (m *detailModel) renderStats() string {
	var rows []string

	switch entity := m.entity.(type) {
	case stats.Player:
		rows = append(rows,
			styles.DetailRow("Position", entity.Position.Label()),
			styles.DetailRow("Club", entity.ClubName()),
			styles.DetailRow("Goal Contributions", entity.Contributions().String()),
			styles.DetailRow("Shots Accuracy %", entity.Accuracy().String()),
			"")
		for _, stat := range entity.Stats.All() {
			rows = append(rows, styles.DetailRow(stat.Label, stat.Value.String()))
		}
	case stats.Club:
		rows = append(rows,
			styles.DetailRow("Location", entity.Location),
			styles.DetailRow("Win %", entity.WinRate().String()),
			styles.DetailRow("Goals per Game", entity.GoalsPerMatch().String()),
			"")
		for _, stat := range entity.Stats.All() {
			rows = append(rows, styles.DetailRow(stat.Label, stat.Value.String()))
		}
	}

	return strings.Join(rows, "\n")
}

func (m *detailModel) View() string {
	if m.entity == nil {
		return ""
	}

	status := styles.MutedText.Render("esc to close · r to reload")
	switch {
	case m.loading:
		status = m.spinner.View() + " Loading…"
	case m.err != nil:
		status = styles.StatusError.Render(api.Message(m.err))
	}

	return styles.ContainerStyleActive.Width(max(0, m.width-2)).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.ContainerTitle.Render(m.entity.DisplayName()),
		status,
		m.viewport.View()))
}
