package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stattrackr/stattrackr/internal/ui/input"
	"github.com/stattrackr/stattrackr/internal/ui/styles"
)

func newHelpModel(build BuildInfo, configPath string, cachePath string, server string) helpModel {
	return helpModel{
		helpView:   help.New(),
		configPath: configPath,
		cachePath:  cachePath,
		server:     server,
		build:      build,
	}
}

type helpModel struct {
	helpView   help.Model
	configPath string
	cachePath  string
	server     string
	build      BuildInfo
}

func (m helpModel) View() string {
	left := m.helpView.FullHelpView([][]key.Binding{
		{
			input.Default.Quit,
			input.Default.Help,
			input.Default.Accept,
			input.Default.Back,
			input.Default.Refresh,
			input.Default.Config,
			input.Default.NextTab,
			input.Default.PrevTab,
		},
	})

	middle := m.helpView.FullHelpView([][]key.Binding{
		{
			input.Default.Dashboard,
			input.Default.Players,
			input.Default.Clubs,
			input.Default.ComparePl,
			input.Default.CompareCl,
			input.Default.Search,
			input.Default.Account,
		},
	})

	right := m.helpView.FullHelpView([][]key.Binding{
		{
			input.Default.Up,
			input.Default.Down,
			input.Default.PrevPage,
			input.Default.NextPage,
			input.Default.Filter,
			input.Default.Position,
			input.Default.SortNext,
			input.Default.SortFlip,
		},
	})

	extra := m.helpView.FullHelpView([][]key.Binding{
		{
			input.Default.PageLarger,
			input.Default.PageSmall,
			input.Default.SlotA,
			input.Default.SlotB,
			input.Default.ClearSlots,
			input.Default.Mode,
			input.Default.Edit,
			input.Default.Logout,
		},
	})

	helpContent := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.HelpBox.Render(left), styles.HelpBox.Render(middle),
		styles.HelpBox.Render(right), styles.HelpBox.Render(extra))

	commit := m.build.Commit
	if len(commit) > 8 {
		commit = commit[0:8]
	}

	content := lipgloss.JoinVertical(lipgloss.Center, helpContent,
		styles.DetailRow("Version", m.build.Version),
		styles.DetailRow("Commit", commit),
		styles.DetailRow("Date", m.build.Date),
		styles.DetailRow("API", m.server),
		styles.DetailRow("Config Path", m.configPath),
		styles.DetailRow("Cache Path", m.cachePath),
	)

	return lipgloss.Place(lipgloss.Width(content), lipgloss.Height(content),
		lipgloss.Center, lipgloss.Center, content)
}
