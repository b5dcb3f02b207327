package ui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/stattrackr/stattrackr/internal/api"
	"github.com/stattrackr/stattrackr/internal/config"
	"github.com/stattrackr/stattrackr/internal/session"
	"github.com/stattrackr/stattrackr/internal/stats"
	"github.com/stattrackr/stattrackr/internal/ui/component"
	"github.com/stattrackr/stattrackr/internal/ui/input"
	"github.com/stattrackr/stattrackr/internal/ui/styles"
)

type accountMode int

const (
	modeLogin accountMode = iota
	modeSignup
)

const (
	fieldUsername = iota
	fieldPassword
)

const (
	fieldSignupUsername = iota
	fieldSignupEmail
	fieldSignupPassword1
	fieldSignupPassword2
)

type loginResultMsg struct {
	username string
	err      error
}

type registerResultMsg struct {
	username string
	err      error
}

type userLoadedMsg struct {
	user stats.User
	err  error
}

type logoutResultMsg struct {
	err error
}

// accountModel owns the login and signup forms and shows the signed in user.
type accountModel struct {
	ctx        context.Context //nolint:containedctx
	client     *api.Client
	writer     config.Writer
	config     config.Config
	mode       accountMode
	login      []*component.ValidatingTextInputModel
	signup     []*component.ValidatingTextInputModel
	focusIndex int
	editing    bool
	busy       bool
	user       *stats.User
	width      int
}

func newAccountModel(ctx context.Context, client *api.Client, writer config.Writer, conf config.Config) *accountModel {
	notEmpty := component.NotEmptyValidator{}

	return &accountModel{
		ctx:    ctx,
		client: client,
		writer: writer,
		config: conf,
		login: []*component.ValidatingTextInputModel{
			component.NewValidatingTextInputModel("Username", conf.Username, "", notEmpty),
			component.NewPasswordInputModel("Password", notEmpty),
		},
		signup: []*component.ValidatingTextInputModel{
			component.NewValidatingTextInputModel("Username", "", "", notEmpty),
			component.NewValidatingTextInputModel("Email", "", "you@example.com", component.EmailValidator{}),
			component.NewPasswordInputModel("Password", component.MinLengthValidator{Length: 8}),
			component.NewPasswordInputModel("Confirm Password", notEmpty),
		},
	}
}

func (m *accountModel) Init() tea.Cmd {
	if !m.signedIn() {
		return nil
	}

	return m.loadUser()
}

func (m *accountModel) signedIn() bool {
	return m.client.Session().Access() != ""
}

func (m *accountModel) capturing() bool {
	return m.editing
}

func (m *accountModel) fields() []*component.ValidatingTextInputModel {
	if m.mode == modeSignup {
		return m.signup
	}

	return m.login
}

// activate focuses the form when nobody is signed in.
func (m *accountModel) activate() tea.Cmd {
	if m.signedIn() || m.busy {
		return nil
	}

	m.editing = true

	return m.focusField(m.focusIndex)
}

func (m *accountModel) focusField(index int) tea.Cmd {
	fields := m.fields()
	m.focusIndex = max(0, min(index, len(fields)))

	var cmd tea.Cmd
	for idx, field := range fields {
		if idx == m.focusIndex {
			cmd = field.Focus()
		} else {
			field.Blur()
		}
	}

	return cmd
}

func (m *accountModel) blurAll() {
	for _, field := range m.fields() {
		field.Blur()
	}
}

func (m *accountModel) Update(msg tea.Msg) (*accountModel, tea.Cmd) {
	switch msg := msg.(type) {
	case contentSizeMsg:
		m.width = msg.width
	case config.Config:
		m.config = msg
	case AuthExpiredMsg:
		m.user = nil
		m.mode = modeLogin
		m.login[fieldPassword].Reset()
		m.focusIndex = fieldPassword

		return m, m.activate()
	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			return m, tea.Batch(setStatusMessage(api.Message(msg.err), true), m.activate())
		}
		m.login[fieldPassword].Reset()
		m.rememberUsername(msg.username)

		return m, tea.Batch(
			setStatusMessage("Signed in as "+msg.username, false),
			setSession(msg.username),
			m.loadUser())
	case registerResultMsg:
		m.busy = false
		if msg.err != nil {
			return m, tea.Batch(setStatusMessage(api.Message(msg.err), true), m.activate())
		}
		for _, field := range m.signup {
			field.Reset()
		}
		m.mode = modeLogin
		m.login[fieldUsername].Input.SetValue(msg.username)
		m.focusIndex = fieldPassword

		return m, tea.Batch(setStatusMessage("Account created, sign in to continue", false), m.activate())
	case userLoadedMsg:
		if msg.err != nil {
			slog.Warn("Failed to load user", slog.String("error", msg.err.Error()))

			return m, nil
		}
		user := msg.user
		m.user = &user

		return m, setSession(user.Username)
	case logoutResultMsg:
		m.user = nil
		if msg.err != nil {
			slog.Warn("Logout request failed", slog.String("error", msg.err.Error()))
		}

		return m, tea.Batch(setStatusMessage("Signed out", false), setSession(""))
	case tea.KeyMsg:
		if m.editing {
			return m, m.onFormKey(msg)
		}

		return m, m.onKey(msg)
	}

	return m, nil
}

func (m *accountModel) onKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case m.signedIn():
		if key.Matches(msg, input.Default.Logout) {
			return m.logout()
		}
	case key.Matches(msg, input.Default.Mode):
		m.blurAll()
		if m.mode == modeLogin {
			m.mode = modeSignup
		} else {
			m.mode = modeLogin
		}
		m.focusIndex = 0
	case key.Matches(msg, input.Default.Edit), key.Matches(msg, input.Default.Accept):
		return m.activate()
	}

	return nil
}

func (m *accountModel) onFormKey(msg tea.KeyMsg) tea.Cmd {
	fields := m.fields()

	switch {
	case key.Matches(msg, input.Default.Back):
		m.editing = false
		m.blurAll()

		return nil
	case key.Matches(msg, input.Default.FieldPrev):
		if m.focusIndex > 0 {
			return m.focusField(m.focusIndex - 1)
		}

		return nil
	case key.Matches(msg, input.Default.FieldNext):
		return m.focusField(m.focusIndex + 1)
	case key.Matches(msg, input.Default.Accept):
		if m.focusIndex < len(fields) {
			return m.focusField(m.focusIndex + 1)
		}

		return m.submit()
	}

	if m.focusIndex >= len(fields) {
		return nil
	}

	var cmd tea.Cmd
	fields[m.focusIndex], cmd = fields[m.focusIndex].Update(msg)

	return cmd
}

func (m *accountModel) submit() tea.Cmd {
	for _, field := range m.fields() {
		if !field.Valid() {
			return setStatusMessage("Form is not valid, cannot submit", true)
		}
	}

	if m.mode == modeSignup {
		return m.register()
	}

	username, password := m.login[fieldUsername].Value(), m.login[fieldPassword].Input.Value()
	client, ctx := m.client, m.ctx
	m.busy = true
	m.editing = false
	m.blurAll()

	return tea.Batch(setStatusMessage("Signing in…", false), func() tea.Msg {
		return loginResultMsg{username: username, err: client.Login(ctx, username, password)}
	})
}

func (m *accountModel) register() tea.Cmd {
	registration := api.Registration{
		Username:  m.signup[fieldSignupUsername].Value(),
		Email:     m.signup[fieldSignupEmail].Value(),
		Password1: m.signup[fieldSignupPassword1].Input.Value(),
		Password2: m.signup[fieldSignupPassword2].Input.Value(),
	}

	if err := registration.Validate(); err != nil {
		m.signup[fieldSignupPassword2].Input.Err = err

		return setStatusMessage(err.Error(), true)
	}

	client, ctx := m.client, m.ctx
	m.busy = true
	m.editing = false
	m.blurAll()

	return tea.Batch(setStatusMessage("Creating account…", false), func() tea.Msg {
		return registerResultMsg{username: registration.Username, err: client.Register(ctx, registration)}
	})
}

func (m *accountModel) loadUser() tea.Cmd {
	client, ctx := m.client, m.ctx

	return func() tea.Msg {
		user, err := client.User(ctx)

		return userLoadedMsg{user: user, err: err}
	}
}

func (m *accountModel) logout() tea.Cmd {
	client, ctx := m.client, m.ctx

	return func() tea.Msg {
		return logoutResultMsg{err: client.Logout(ctx)}
	}
}

// rememberUsername prefills the login form on the next start.
func (m *accountModel) rememberUsername(username string) {
	if m.writer == nil || m.config.Username == username {
		return
	}

	conf := m.config
	conf.Username = username
	if err := m.writer.Write(conf); err != nil {
		slog.Error("Failed to save username", slog.String("error", err.Error()))

		return
	}

	m.config = conf
}

func (m *accountModel) View() string {
	if m.signedIn() {
		return m.renderProfile()
	}

	fields := m.fields()
	title := "Sign in"
	hint := "m to create an account"
	if m.mode == modeSignup {
		title = "Create account"
		hint = "m to sign in instead"
	}

	rows := []string{styles.ContainerTitle.Render(title), ""}
	for _, field := range fields {
		rows = append(rows, field.View())
	}

	if m.focusIndex == len(fields) && m.editing {
		rows = append(rows, styles.FocusedSubmitButton)
	} else {
		rows = append(rows, styles.BlurredSubmitButton)
	}

	if !m.editing {
		rows = append(rows, "", styles.MutedText.Render("enter to edit · "+hint))
	}

	return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Left).
		Render(lipgloss.JoinVertical(lipgloss.Top, rows...))
}

func (m *accountModel) renderProfile() string {
	rows := []string{styles.ContainerTitle.Render("Signed in"), ""}

	if m.user != nil {
		name := strings.TrimSpace(m.user.FirstName + " " + m.user.LastName)
		rows = append(rows,
			styles.DetailRow("Username", m.user.Username),
			styles.DetailRow("Email", m.user.Email))
		if name != "" {
			rows = append(rows, styles.DetailRow("Name", name))
		}
	}

	if claims, err := session.AccessClaims(m.client.Session()); err == nil && !claims.ExpiresAt.IsZero() {
		expiry := humanize.Time(claims.ExpiresAt)
		if claims.Expired(time.Now()) {
			expiry += " (will refresh on next request)"
		}
		rows = append(rows, styles.DetailRow("Access token expires", expiry))
	}

	rows = append(rows, styles.DetailRow("API", m.client.Server()), "",
		styles.MutedText.Render("L to sign out"))

	return lipgloss.NewStyle().Width(m.width).Render(lipgloss.JoinVertical(lipgloss.Top, rows...))
}
