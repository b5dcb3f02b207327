package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stattrackr/stattrackr/internal/ui/input"
	"github.com/stattrackr/stattrackr/internal/ui/styles"
)

type tabView int

const (
	tabDashboard tabView = iota
	tabPlayers
	tabClubs
	tabComparePlayers
	tabCompareClubs
	tabSearch
	tabAccount
)

type tabLabel struct {
	label   string
	tab     tabView
	binding key.Binding
}

func newTabsModel() tabsModel {
	return tabsModel{
		id: zone.NewPrefix(),
		tabs: []tabLabel{
			{label: styles.IconGoal + " Dashboard", tab: tabDashboard, binding: input.Default.Dashboard},
			{label: styles.IconPlayers + " Players", tab: tabPlayers, binding: input.Default.Players},
			{label: styles.IconClubs + " Clubs", tab: tabClubs, binding: input.Default.Clubs},
			{label: styles.IconCompare + " Players", tab: tabComparePlayers, binding: input.Default.ComparePl},
			{label: styles.IconCompare + " Clubs", tab: tabCompareClubs, binding: input.Default.CompareCl},
			{label: styles.IconSearch + " Search", tab: tabSearch, binding: input.Default.Search},
			{label: styles.IconUser + " Account", tab: tabAccount, binding: input.Default.Account},
		},
		selectedTab: tabDashboard,
	}
}

type tabsModel struct {
	tabs        []tabLabel
	selectedTab tabView
	width       int
	id          string
}

func (m tabsModel) Init() tea.Cmd {
	return nil
}

// Update handles tab switching. Keyboard shortcuts are only routed here when no input owns the keyboard.
func (m tabsModel) Update(msg tea.Msg) (tabsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tabView:
		m.selectedTab = msg
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		for _, item := range m.tabs {
			if zone.Get(m.id + item.label).InBounds(msg) {
				return m, setTab(item.tab)
			}
		}
	case contentSizeMsg:
		m.width = msg.width
	case tea.KeyMsg:
		last := m.tabs[len(m.tabs)-1].tab
		switch {
		case key.Matches(msg, input.Default.NextTab):
			next := m.selectedTab + 1
			if next > last {
				next = tabDashboard
			}

			return m, setTab(next)
		case key.Matches(msg, input.Default.PrevTab):
			prev := m.selectedTab - 1
			if prev < tabDashboard {
				prev = last
			}

			return m, setTab(prev)
		}

		for _, item := range m.tabs {
			if key.Matches(msg, item.binding) {
				return m, setTab(item.tab)
			}
		}
	}

	return m, nil
}

func (m tabsModel) View() string {
	if m.width == 0 {
		return ""
	}

	tabs := make([]string, 0, len(m.tabs))
	for _, tab := range m.tabs {
		style := styles.TabsInactive
		if tab.tab == m.selectedTab {
			style = styles.TabsActive
		}
		tabs = append(tabs, zone.Mark(m.id+tab.label, style.Render(tab.label)))
	}

	return styles.TabContainer.Width(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}
