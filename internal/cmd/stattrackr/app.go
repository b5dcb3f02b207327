package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stattrackr/stattrackr/internal/config"
	"github.com/stattrackr/stattrackr/internal/ui"
)

type UI interface {
	Send(msg tea.Msg)
	Run() error
}

// App is the main application container. Very little logic is contained within this struct. Its mostly
// responsible for routing messages from background systems to the ui.
type App struct {
	ui            UI
	uiUpdates     chan any
	configUpdates chan config.Config
	authFailures  chan error
}

// NewApp returns a new application instance. To actually start the app you must call
// Start().
func NewApp(configUpdates chan config.Config, authFailures chan error) *App {
	return &App{
		configUpdates: configUpdates,
		authFailures:  authFailures,
		uiUpdates:     make(chan any),
	}
}

// Start begins routing events until the context is cancelled or the ui exits.
func (app *App) Start(ctx context.Context, done <-chan any) {
	go app.uiSender(ctx)

	for {
		select {
		case conf := <-app.configUpdates:
			app.send(ctx, conf)
		case err := <-app.authFailures:
			app.send(ctx, ui.AuthExpiredMsg{Err: err})
		case <-ctx.Done():
			return
		case <-done:
			return
		}
	}
}

func (app *App) send(ctx context.Context, msg any) {
	select {
	case app.uiUpdates <- msg:
	case <-ctx.Done():
	}
}

// uiSender handles forwarding all events to the UI.
func (app *App) uiSender(ctx context.Context) {
	for {
		select {
		case msg := <-app.uiUpdates:
			if app.ui != nil {
				app.ui.Send(msg)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (app *App) createUI(ctx context.Context, services ui.Services) UI {
	if app.ui == nil {
		app.ui = ui.New(ctx, services)
	}

	return app.ui
}
