package ui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stattrackr/stattrackr/internal/config"
	"github.com/stattrackr/stattrackr/internal/ui/component"
	"github.com/stattrackr/stattrackr/internal/ui/input"
	"github.com/stattrackr/stattrackr/internal/ui/styles"
)

type configIdx int

const (
	fieldAPIBaseURL configIdx = iota
	fieldPageSize
	fieldCacheMaxAge
	fieldSave
)

type closeConfigMsg struct{}

func setConfig(conf config.Config) tea.Cmd {
	return func() tea.Msg { return conf }
}

// configModel edits the persisted settings. The page size applies immediately, the api url on restart.
type configModel struct {
	fields     []*component.ValidatingTextInputModel
	focusIndex configIdx
	config     config.Config
	width      int
	writer     config.Writer
}

func newConfigModel(conf config.Config, writer config.Writer) *configModel {
	return &configModel{
		config: conf,
		fields: []*component.ValidatingTextInputModel{
			component.NewValidatingTextInputModel("API Base URL", conf.APIBaseURL, config.DefaultAPIBaseURL,
				component.URLValidator{}),
			component.NewValidatingTextInputModel("Page Size", strconv.Itoa(conf.PageSize), "",
				component.RangeValidator{Min: minPageSize, Max: maxPageSize}),
			component.NewValidatingTextInputModel("Cache Max Age (h)", strconv.Itoa(conf.CacheMaxAgeHours), "",
				component.RangeValidator{Min: 0, Max: 24 * 30}),
		},
		focusIndex: fieldAPIBaseURL,
		writer:     writer,
	}
}

// open resets the form to the current config and focuses the first field.
func (m *configModel) open() tea.Cmd {
	m.fields[fieldAPIBaseURL].Input.SetValue(m.config.APIBaseURL)
	m.fields[fieldPageSize].Input.SetValue(strconv.Itoa(m.config.PageSize))
	m.fields[fieldCacheMaxAge].Input.SetValue(strconv.Itoa(m.config.CacheMaxAgeHours))
	m.focusIndex = fieldAPIBaseURL

	return m.changeInput(-1)
}

func (m *configModel) Update(msg tea.Msg) (*configModel, tea.Cmd) {
	switch msg := msg.(type) {
	case config.Config:
		m.config = msg
	case contentSizeMsg:
		m.width = msg.width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, input.Default.Back):
			return m, func() tea.Msg { return closeConfigMsg{} }
		case key.Matches(msg, input.Default.FieldPrev):
			if m.focusIndex > fieldAPIBaseURL {
				return m, m.changeInput(input.Up)
			}

			return m, nil
		case key.Matches(msg, input.Default.FieldNext):
			if m.focusIndex < fieldSave {
				return m, m.changeInput(input.Down)
			}

			return m, nil
		case key.Matches(msg, input.Default.Accept):
			if m.focusIndex != fieldSave {
				return m, m.changeInput(input.Down)
			}

			return m, m.save()
		}

		if m.focusIndex < fieldSave {
			var cmd tea.Cmd
			m.fields[m.focusIndex], cmd = m.fields[m.focusIndex].Update(msg)

			return m, cmd
		}
	}

	return m, nil
}

func (m *configModel) save() tea.Cmd {
	for _, field := range m.fields {
		if !field.Valid() {
			return setStatusMessage("Config is not valid, cannot save", true)
		}
	}

	cfg := m.config
	cfg.APIBaseURL = m.fields[fieldAPIBaseURL].Value()
	cfg.PageSize, _ = strconv.Atoi(m.fields[fieldPageSize].Value())
	cfg.CacheMaxAgeHours, _ = strconv.Atoi(m.fields[fieldCacheMaxAge].Value())

	if err := m.writer.Write(cfg); err != nil {
		return setStatusMessage(err.Error(), true)
	}

	message := "Saved config"
	if cfg.APIBaseURL != m.config.APIBaseURL {
		message = "Saved config, restart to use the new api"
	}

	m.config = cfg

	return tea.Batch(
		setConfig(cfg),
		setStatusMessage(message, false),
		func() tea.Msg { return closeConfigMsg{} })
}

// changeInput moves focus one field in direction. Any other direction refocuses the current field.
func (m *configModel) changeInput(direction input.Direction) tea.Cmd {
	switch direction { //nolint:exhaustive
	case input.Up:
		m.focusIndex--
	case input.Down:
		m.focusIndex++
	}

	var cmd tea.Cmd
	for i := range m.fields {
		if configIdx(i) == m.focusIndex {
			cmd = m.fields[i].Focus()
		} else {
			m.fields[i].Blur()
		}
	}

	return cmd
}

func (m *configModel) View() string {
	fields := []string{styles.ContainerTitle.Render("Settings"), ""}
	for _, field := range m.fields {
		fields = append(fields, field.View())
	}

	if m.focusIndex == fieldSave {
		fields = append(fields, styles.FocusedSubmitButton)
	} else {
		fields = append(fields, styles.BlurredSubmitButton)
	}

	fields = append(fields, "", styles.MutedText.Render("esc to cancel · config file "+m.writer.Path()))

	return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Left).
		Render(lipgloss.JoinVertical(lipgloss.Top, fields...))
}
