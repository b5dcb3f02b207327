package input

import "github.com/charmbracelet/bubbles/key"

type Map struct {
	Quit       key.Binding
	Help       key.Binding
	Up         key.Binding
	Down       key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
	Accept     key.Binding
	Back       key.Binding
	PrevTab    key.Binding
	NextTab    key.Binding
	Dashboard  key.Binding
	Players    key.Binding
	Clubs      key.Binding
	ComparePl  key.Binding
	CompareCl  key.Binding
	Search     key.Binding
	Account    key.Binding
	Filter     key.Binding
	Position   key.Binding
	SortNext   key.Binding
	SortFlip   key.Binding
	PageLarger key.Binding
	PageSmall  key.Binding
	Refresh    key.Binding
	SlotA      key.Binding
	SlotB      key.Binding
	SwitchSlot key.Binding
	ClearSlots key.Binding
	Mode       key.Binding
	Logout     key.Binding
	Edit       key.Binding
	FieldNext  key.Binding
	FieldPrev  key.Binding
	Config     key.Binding
}

var Default = Map{ //nolint:gochecknoglobals
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "Quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "Help"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑", "Up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓", "Down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←", "Prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→", "Next page"),
	),
	Accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "Select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "Back"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "Next Tab"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift tab", "Prev Tab"),
	),
	Dashboard: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "Dashboard"),
	),
	Players: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "Players"),
	),
	Clubs: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "Clubs"),
	),
	ComparePl: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "Compare Players"),
	),
	CompareCl: key.NewBinding(
		key.WithKeys("5"),
		key.WithHelp("5", "Compare Clubs"),
	),
	Search: key.NewBinding(
		key.WithKeys("6"),
		key.WithHelp("6", "Search"),
	),
	Account: key.NewBinding(
		key.WithKeys("7"),
		key.WithHelp("7", "Account"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "Filter"),
	),
	Position: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "Position"),
	),
	SortNext: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "Sort column"),
	),
	SortFlip: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "Sort order"),
	),
	PageLarger: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "Page size"),
	),
	PageSmall: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "Page size"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "Reload"),
	),
	SlotA: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "Compare as A"),
	),
	SlotB: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "Compare as B"),
	),
	SwitchSlot: key.NewBinding(
		key.WithKeys("left", "right", "h", "l"),
		key.WithHelp("←/→", "Switch slot"),
	),
	ClearSlots: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "Clear"),
	),
	Mode: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "Login/Signup"),
	),
	Logout: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "Logout"),
	),
	Edit: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "Edit form"),
	),
	FieldNext: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "Next field"),
	),
	FieldPrev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift tab", "Prev field"),
	),
	Config: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "Settings"),
	),
}
