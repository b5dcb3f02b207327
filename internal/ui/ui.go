package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stattrackr/stattrackr/internal/api"
	"github.com/stattrackr/stattrackr/internal/config"
	"github.com/stattrackr/stattrackr/internal/directory"
)

const (
	clearMessageTimeout = time.Second * 10
)

var ErrUIExit = errors.New("ui error returned")

type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Services are the dependencies the ui drives. Writer persists config edits such as the
// remembered username.
type Services struct {
	Client    *api.Client
	Directory *directory.Directory
	Config    config.Config
	Writer    config.Writer
	CachePath string
	Build     BuildInfo
}

type UI struct {
	program *tea.Program
}

func New(ctx context.Context, services Services) *UI {
	zone.NewGlobal()

	return &UI{
		program: tea.NewProgram(
			newRootModel(ctx, services),
			tea.WithMouseCellMotion(),
			tea.WithAltScreen(),
			tea.WithContext(ctx),
			tea.WithFPS(30)),
	}
}

func (t UI) Run() error {
	if _, err := t.program.Run(); err != nil {
		return errors.Join(err, ErrUIExit)
	}

	return nil
}

func (t UI) Send(msg tea.Msg) {
	t.program.Send(msg)
}
