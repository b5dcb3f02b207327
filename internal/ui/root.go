package ui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stattrackr/stattrackr/internal/api"
	"github.com/stattrackr/stattrackr/internal/config"
	"github.com/stattrackr/stattrackr/internal/stats"
	"github.com/stattrackr/stattrackr/internal/ui/input"
	"github.com/stattrackr/stattrackr/internal/ui/styles"
)

const (
	headerHeight = 1
	footerHeight = 1
)

// capturer is implemented by models that can own the keyboard, such as a focused text input.
type capturer interface {
	capturing() bool
}

// rootModel is the top level model for the ui side of the app.
type rootModel struct {
	activeTab      tabView
	showHelp       bool
	showConfig     bool
	height         int
	width          int
	pageSize       int
	tabs           tabsModel
	status         statusBarModel
	help           helpModel
	dashboard      *dashboardModel
	players        *entityTableModel[stats.Player]
	clubs          *entityTableModel[stats.Club]
	comparePlayers *compareModel[stats.Player]
	compareClubs   *compareModel[stats.Club]
	search         *searchModel
	account        *accountModel
	detail         *detailModel
	config         *configModel
}

func newRootModel(ctx context.Context, services Services) *rootModel {
	client := services.Client
	username := services.Config.Username
	if client.Session().Access() == "" {
		username = ""
	}

	return &rootModel{
		activeTab:      tabDashboard,
		pageSize:       services.Config.PageSize,
		tabs:           newTabsModel(),
		status:         newStatusBarModel(services.Build.Version, client.Server(), username),
		help:           newHelpModel(services.Build, services.Writer.Path(), services.CachePath, client.Server()),
		dashboard:      newDashboardModel(ctx, api.Fetcher[stats.Dashboard](client)),
		players:        newPlayerTableModel(ctx, api.Fetcher[stats.Page[stats.Player]](client), services.Config.PageSize),
		clubs:          newClubTableModel(ctx, api.Fetcher[stats.Page[stats.Club]](client), services.Config.PageSize),
		comparePlayers: newComparePlayersModel(ctx, api.Fetcher[stats.Page[stats.Player]](client)),
		compareClubs:   newCompareClubsModel(ctx, api.Fetcher[stats.Page[stats.Club]](client)),
		search:         newSearchModel(ctx, searchFetcher(client)),
		account:        newAccountModel(ctx, client, services.Writer, services.Config),
		detail:         newDetailModel(ctx, services.Directory),
		config:         newConfigModel(services.Config, services.Writer),
	}
}

func (m rootModel) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("stattrackr"),
		textinput.Blink,
		m.dashboard.Init(),
		m.players.Init(),
		m.clubs.Init(),
		m.comparePlayers.Init(),
		m.compareClubs.Init(),
		m.search.Init(),
		m.account.Init(),
		setTab(tabDashboard),
	)
}

func (m rootModel) Update(inMsg tea.Msg) (tea.Model, tea.Cmd) {
	logMsg(inMsg)

	switch msg := inMsg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.width = msg.Width

		return m.propagate(contentSizeMsg{
			width:  max(0, m.width-2),
			height: max(0, m.height-headerHeight-footerHeight),
		})
	case tabView:
		m.activeTab = msg
		m.showHelp = false
		m.showConfig = false
		m.detail.visible = false

		next, cmd := m.propagate(msg)

		return next, tea.Batch(cmd, m.activate(msg))
	case AuthExpiredMsg:
		message := "Session expired, please sign in again"
		if msg.Err != nil {
			slog.Warn("Authentication expired", slog.String("error", msg.Err.Error()))
		}

		next, cmd := m.propagate(msg)

		return next, tea.Batch(cmd, setTab(tabAccount), setSession(""), setStatusMessage(message, true))
	case config.Config:
		if msg.PageSize > 0 && msg.PageSize != m.pageSize {
			m.pageSize = msg.PageSize
			next, cmd := m.propagate(msg)

			return next, tea.Batch(cmd, func() tea.Msg { return setPageSizeMsg{size: msg.PageSize} })
		}
	case closeConfigMsg:
		m.showConfig = false

		return m, nil
	case tea.KeyMsg:
		return m.onKey(msg)
	case tea.MouseMsg:
		return m.onMouse(msg)
	}

	return m.propagate(inMsg)
}

func (m rootModel) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showConfig {
		var cmd tea.Cmd
		m.config, cmd = m.config.Update(msg)

		return m, cmd
	}

	if active, ok := m.activeModel().(capturer); ok && active.capturing() {
		return m.updateActive(msg)
	}

	if m.showHelp {
		switch {
		case key.Matches(msg, input.Default.Help), key.Matches(msg, input.Default.Back):
			m.showHelp = false
		case key.Matches(msg, input.Default.Quit):
			return m, tea.Quit
		}

		return m, nil
	}

	if m.detail.visible {
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)

		return m, cmd
	}

	switch {
	case key.Matches(msg, input.Default.Quit):
		return m, tea.Quit
	case key.Matches(msg, input.Default.Help):
		m.showHelp = true

		return m, nil
	case key.Matches(msg, input.Default.Config):
		m.showConfig = true

		return m, m.config.open()
	}

	var cmd tea.Cmd
	if m.tabs, cmd = m.tabs.Update(msg); cmd != nil {
		return m, cmd
	}

	return m.updateActive(msg)
}

func (m rootModel) onMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.tabs, cmd = m.tabs.Update(msg); cmd != nil {
		return m, cmd
	}

	if m.showHelp || m.showConfig || m.detail.visible {
		return m, nil
	}

	return m.updateActive(msg)
}

func (m rootModel) activeModel() any {
	switch m.activeTab {
	case tabPlayers:
		return m.players
	case tabClubs:
		return m.clubs
	case tabComparePlayers:
		return m.comparePlayers
	case tabCompareClubs:
		return m.compareClubs
	case tabSearch:
		return m.search
	case tabAccount:
		return m.account
	case tabDashboard:
		fallthrough
	default:
		return m.dashboard
	}
}

// updateActive routes input events to the visible tab only.
func (m rootModel) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.activeTab {
	case tabDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case tabPlayers:
		m.players, cmd = m.players.Update(msg)
	case tabClubs:
		m.clubs, cmd = m.clubs.Update(msg)
	case tabComparePlayers:
		m.comparePlayers, cmd = m.comparePlayers.Update(msg)
	case tabCompareClubs:
		m.compareClubs, cmd = m.compareClubs.Update(msg)
	case tabSearch:
		m.search, cmd = m.search.Update(msg)
	case tabAccount:
		m.account, cmd = m.account.Update(msg)
	}

	return m, cmd
}

// activate runs the mount behaviour of a tab, fetching its data the first time it is shown.
func (m rootModel) activate(tab tabView) tea.Cmd {
	switch tab {
	case tabDashboard:
		return m.dashboard.activate()
	case tabPlayers:
		return m.players.activate()
	case tabClubs:
		return m.clubs.activate()
	case tabComparePlayers:
		return m.comparePlayers.activate()
	case tabCompareClubs:
		return m.compareClubs.activate()
	case tabSearch:
		return m.search.activate()
	case tabAccount:
		return m.account.activate()
	}

	return nil
}

func (m rootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := styles.HeaderContainerStyle.Width(m.width).Render(m.tabs.View())
	footer := styles.FooterContainerStyle.Width(m.width).Render(m.status.View())
	height := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(footer))

	var content string
	switch {
	case m.showHelp:
		content = m.help.View()
	case m.showConfig:
		content = m.config.View()
	case m.detail.visible:
		content = m.detail.View()
	default:
		content = m.activeView()
	}

	ctr := styles.ContentContainerStyle.Width(m.width).Height(height).MaxHeight(height).Render(content)

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, header, ctr, footer))
}

func (m rootModel) activeView() string {
	switch m.activeTab {
	case tabPlayers:
		return m.players.View()
	case tabClubs:
		return m.clubs.View()
	case tabComparePlayers:
		return m.comparePlayers.View()
	case tabCompareClubs:
		return m.compareClubs.View()
	case tabSearch:
		return m.search.View()
	case tabAccount:
		return m.account.View()
	case tabDashboard:
		fallthrough
	default:
		return m.dashboard.View()
	}
}

// propagate broadcasts non input messages to every model.
func (m rootModel) propagate(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 11)

	m.tabs, cmds[0] = m.tabs.Update(msg)
	m.status, cmds[1] = m.status.Update(msg)
	m.dashboard, cmds[2] = m.dashboard.Update(msg)
	m.players, cmds[3] = m.players.Update(msg)
	m.clubs, cmds[4] = m.clubs.Update(msg)
	m.comparePlayers, cmds[5] = m.comparePlayers.Update(msg)
	m.compareClubs, cmds[6] = m.compareClubs.Update(msg)
	m.search, cmds[7] = m.search.Update(msg)
	m.account, cmds[8] = m.account.Update(msg)
	m.detail, cmds[9] = m.detail.Update(msg)
	m.config, cmds[10] = m.config.Update(msg)

	return m, tea.Batch(cmds...)
}

// logMsg is useful for debugging events. Tail the log file ~/.config/stattrackr/stattrackr.log
func logMsg(inMsg tea.Msg) {
	switch inMsg.(type) {
	case spinner.TickMsg, resourceChangedMsg, tea.MouseMsg:
	default:
		slog.Debug("tea.Msg", slog.Any("msg", inMsg))
	}
}
