package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Accent = lipgloss.Color("#f4722b")

	ContainerTitle       = lipgloss.NewStyle().Bold(true)
	ContainerBorder      = lipgloss.RoundedBorder()
	ContainerStyle       = lipgloss.NewStyle().Border(ContainerBorder).BorderForeground(Gray).Padding(0, 1)
	ContainerStyleActive = lipgloss.NewStyle().Border(ContainerBorder).BorderForeground(Home).Padding(0, 1)

	HeaderContainerStyle  = lipgloss.NewStyle().Align(lipgloss.Center)
	ContentContainerStyle = lipgloss.NewStyle().Align(lipgloss.Left).PaddingLeft(1).PaddingRight(1)
	FooterContainerStyle  = lipgloss.NewStyle().Align(lipgloss.Center)

	FocusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	BlurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	CursorStyle  = FocusedStyle
	NoStyle      = lipgloss.NewStyle()
	HelpStyle    = BlurredStyle

	FocusedSubmitButton = lipgloss.NewStyle().Foreground(Accent).Render("[ Submit ]")
	BlurredSubmitButton = fmt.Sprintf("[ %s ]", BlurredStyle.Render("Submit"))

	Black       = lipgloss.Color("#111111")
	Gray        = lipgloss.Color("#3e3e3e")
	GrayDark    = lipgloss.Color("#2f3030")
	GrayDarkAlt = lipgloss.Color("#0f0f0f")
	White       = lipgloss.Color("#cccccc")
	Whiter      = lipgloss.Color("#aaaaaa")

	// Home and Away colour the two sides of a comparison.
	Home = lipgloss.Color("#5885A2")
	Away = lipgloss.Color("#B8383B")

	Pitch  = lipgloss.Color("#4d7455")
	Gold   = lipgloss.Color("#ffd700")
	Purple = lipgloss.Color("#8650ac")
	Steel  = lipgloss.Color("#476291")
	Orange = lipgloss.Color("#cf6a32")

	// ChartColours are cycled through for the entries of a breakdown.
	ChartColours = []lipgloss.Color{"#22c55e", "#f97316", "#3b82f6", "#eab308", "#ef4444"}

	HeaderStyle = lipgloss.NewStyle().Foreground(Home).Bold(true).Align(lipgloss.Left).PaddingRight(1)

	SelectedRow = lipgloss.NewStyle().Bold(true).Background(Home).Foreground(Black).PaddingRight(1)
	TableRow    = lipgloss.NewStyle().Foreground(White).PaddingRight(1)
	TableRowOdd = lipgloss.NewStyle().Foreground(Whiter).PaddingRight(1)

	ListSelectedRow   = lipgloss.NewStyle().Padding(0).Bold(true).Foreground(Home).Inline(true)
	ListUnselectedRow = lipgloss.NewStyle().Padding(0).Bold(false).Foreground(White).Inline(true)

	SlotTitleA = lipgloss.NewStyle().Foreground(Home).Bold(true)
	SlotTitleB = lipgloss.NewStyle().Foreground(Away).Bold(true)

	PanelLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Align(lipgloss.Right).Width(20)
	PanelValue   = lipgloss.NewStyle().Width(40)
	TabContainer = lipgloss.NewStyle().Align(lipgloss.Center)
	TabsInactive = lipgloss.NewStyle().Bold(true).
			Foreground(Steel).PaddingLeft(2).PaddingRight(2)
	TabsActive = lipgloss.NewStyle().
			Foreground(Purple).PaddingLeft(2).PaddingRight(2).Underline(true)

	StatusUser    = lipgloss.NewStyle().Foreground(Orange).PaddingRight(2).PaddingLeft(1).Bold(true)
	StatusError   = lipgloss.NewStyle().Foreground(Away).Align(lipgloss.Right).Bold(true).PaddingRight(2)
	StatusMessage = lipgloss.NewStyle().Foreground(Pitch).Align(lipgloss.Right).Bold(true).PaddingRight(2)
	StatusHelp    = lipgloss.NewStyle().Foreground(Gray).Bold(true).Align(lipgloss.Center).PaddingRight(2)
	StatusVersion = lipgloss.NewStyle().Foreground(Pitch).Bold(true).Align(lipgloss.Center).PaddingRight(2)

	ErrorMessage = lipgloss.NewStyle().Foreground(Away).Bold(true).Padding(1)
	InfoMessage  = lipgloss.NewStyle().Align(lipgloss.Center).Padding(1)
	MutedText    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	HelpBox = lipgloss.NewStyle().Padding(2)

	IconPlayers = "👥"
	IconClubs   = "🏟️"
	IconGoal    = "⚽"
	IconCompare = "🆚"
	IconSearch  = "🔎"
	IconUser    = "👤"
	IconInfo    = "💡"
)

func DetailRow(label string, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		PanelLabel.Render(label+" "),
		PanelValue.Render(value))
}

// WrapX will wrap a centered string with the supplied character up to the length specified.
func WrapX(width int, value string, character string) string {
	all := max(0, width-lipgloss.Width(value))

	return strings.Repeat(character, all/2) + value + strings.Repeat(character, all/2)
}

// Bar renders a horizontal bar filling ratio of width cells.
func Bar(width int, ratio float64, colour lipgloss.Color) string {
	filled := int(float64(width)*ratio + 0.5)
	filled = max(0, min(width, filled))

	return lipgloss.NewStyle().Foreground(colour).Render(strings.Repeat("█", filled)) +
		MutedText.Render(strings.Repeat("░", width-filled))
}
