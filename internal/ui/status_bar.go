package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/stattrackr/stattrackr/internal/ui/input"
	"github.com/stattrackr/stattrackr/internal/ui/styles"
)

type statusBarModel struct {
	width       int
	username    string
	server      string
	statusMsg   string
	statusError bool
	version     string
}

func newStatusBarModel(version string, server string, username string) statusBarModel {
	return statusBarModel{version: version, server: server, username: username}
}

func (m statusBarModel) Init() tea.Cmd {
	return nil
}

func (m statusBarModel) Update(msg tea.Msg) (statusBarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		m.statusMsg = msg.Message
		m.statusError = msg.Err

		return m, clearErrorAfter(clearMessageTimeout)
	case clearStatusMessageMsg:
		m.statusError = false
		m.statusMsg = ""
	case sessionMsg:
		m.username = msg.username
	case contentSizeMsg:
		m.width = msg.width
	}

	return m, nil
}

func (m statusBarModel) View() string {
	user := "anonymous"
	if m.username != "" {
		user = m.username
	}

	left := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.StatusUser.Render(styles.IconUser+" "+user),
		styles.StatusVersion.Render(m.version),
		styles.StatusHelp.Render(fmt.Sprintf("%s %s", input.Default.Help.Help().Key, input.Default.Help.Help().Desc)))

	status := m.status(max(0, m.width-lipgloss.Width(left)))

	return lipgloss.NewStyle().Width(m.width).Background(styles.Black).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, left, status))
}

func (m statusBarModel) status(width int) string {
	if m.statusMsg != "" {
		msg := truncate.StringWithTail(m.statusMsg, uint(max(0, width-3)), "…") //nolint:gosec
		if m.statusError {
			return styles.StatusError.Render(msg)
		}

		return styles.StatusMessage.Render(msg)
	}

	return styles.MutedText.Render(m.server)
}
