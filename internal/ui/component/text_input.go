package component

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stattrackr/stattrackr/internal/ui/styles"
)

var (
	errEmptyValue   = errors.New("cannot be empty")
	errInvalidURL   = errors.New("invalid URL")
	errInvalidEmail = errors.New("invalid email")
	errTooShort     = errors.New("too short")
	errInvalidRange = errors.New("out of range")
)

type InputValidator interface {
	Validate(string) error
}

func NewValidatingTextInputModel(label string, value string, placeholder string, validators ...InputValidator) *ValidatingTextInputModel {
	input := NewTextInputModel(value, placeholder)

	if len(validators) > 0 {
		input.Validate = func(s string) error {
			for _, validator := range validators {
				if err := validator.Validate(s); err != nil {
					return err
				}
			}

			return nil
		}
	}

	return &ValidatingTextInputModel{Input: input, Label: label}
}

// NewPasswordInputModel masks the typed value.
func NewPasswordInputModel(label string, validators ...InputValidator) *ValidatingTextInputModel {
	model := NewValidatingTextInputModel(label, "", "", validators...)
	model.Input.EchoMode = textinput.EchoPassword
	model.Input.EchoCharacter = '•'

	return model
}

type ValidatingTextInputModel struct {
	Label string
	Input textinput.Model
}

func (m *ValidatingTextInputModel) Init() tea.Cmd {
	return nil
}

func (m *ValidatingTextInputModel) Update(msg tea.Msg) (*ValidatingTextInputModel, tea.Cmd) {
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)

	return m, cmd
}

func (m *ValidatingTextInputModel) View() string {
	var errRow string
	if m.Input.Err != nil {
		errRow = lipgloss.NewStyle().Foreground(styles.Away).Render("Validation Error: " + m.Input.Err.Error())
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.HelpStyle.Width(18).Render(m.Label+": "),
		lipgloss.JoinVertical(lipgloss.Top, m.Input.View(), errRow))
}

func (m *ValidatingTextInputModel) Value() string {
	return strings.TrimSpace(m.Input.Value())
}

// Valid runs the validators against the current value, which textinput only does on change.
func (m *ValidatingTextInputModel) Valid() bool {
	if m.Input.Validate != nil {
		m.Input.Err = m.Input.Validate(m.Input.Value())
	}

	return m.Input.Err == nil
}

func (m *ValidatingTextInputModel) Reset() {
	m.Input.Reset()
	m.Input.Err = nil
}

func (m *ValidatingTextInputModel) Focus() tea.Cmd {
	m.Input.PromptStyle = styles.FocusedStyle
	m.Input.TextStyle = styles.FocusedStyle

	return m.Input.Focus()
}

func (m *ValidatingTextInputModel) Blur() {
	m.Input.PromptStyle = styles.NoStyle
	m.Input.TextStyle = styles.NoStyle
	m.Input.Blur()
}

type NotEmptyValidator struct{}

func (v NotEmptyValidator) Validate(value string) error {
	if strings.TrimSpace(value) == "" {
		return errEmptyValue
	}

	return nil
}

type MinLengthValidator struct {
	Length int
}

func (v MinLengthValidator) Validate(value string) error {
	if len(value) < v.Length {
		return fmt.Errorf("%w: minimum %d characters", errTooShort, v.Length)
	}

	return nil
}

type EmailValidator struct{}

func (v EmailValidator) Validate(value string) error {
	at := strings.LastIndex(value, "@")
	if at < 1 || at == len(value)-1 || !strings.Contains(value[at:], ".") {
		return errInvalidEmail
	}

	return nil
}

type URLValidator struct {
	EmptyOk bool
}

func (v URLValidator) Validate(value string) error {
	if value == "" {
		if v.EmptyOk {
			return nil
		}

		return errInvalidURL
	}

	parsed, errParse := url.Parse(value)
	if errParse != nil {
		return errors.Join(errParse, errInvalidURL)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" || parsed.Host == "" {
		return errInvalidURL
	}

	return nil
}

// RangeValidator accepts whole numbers within [Min, Max].
type RangeValidator struct {
	Min int
	Max int
}

func (v RangeValidator) Validate(value string) error {
	number, errParse := strconv.Atoi(strings.TrimSpace(value))
	if errParse != nil {
		return errors.Join(errParse, errInvalidRange)
	}

	if number < v.Min || number > v.Max {
		return fmt.Errorf("%w: must be between %d and %d", errInvalidRange, v.Min, v.Max)
	}

	return nil
}
