package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stattrackr/stattrackr/internal/compare"
	"github.com/stattrackr/stattrackr/internal/stats"
)

type clearStatusMessageMsg struct{}

func clearErrorAfter(t time.Duration) tea.Cmd {
	return tea.Tick(t, func(_ time.Time) tea.Msg {
		return clearStatusMessageMsg{}
	})
}

type statusMsg struct {
	Message string
	Err     bool
}

func setStatusMessage(msg string, err bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{Message: msg, Err: err}
	}
}

func setTab(tab tabView) tea.Cmd {
	return func() tea.Msg { return tab }
}

// contentSizeMsg carries the space left for the active tab once the header and footer are drawn.
type contentSizeMsg struct {
	width  int
	height int
}

// resourceChangedMsg is emitted whenever the resource owned by the model with the given id
// publishes a new state.
type resourceChangedMsg struct {
	id string
}

// listen waits for the next state change of a resource. The returned command must be
// re-issued after every delivery to keep receiving.
func listen(id string, changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}

		return resourceChangedMsg{id: id}
	}
}

// compareSlotMsg assigns an entity to one side of a comparison.
type compareSlotMsg struct {
	slot   compare.Slot
	entity stats.Entity
}

func setCompareSlot(slot compare.Slot, entity stats.Entity) tea.Cmd {
	return func() tea.Msg { return compareSlotMsg{slot: slot, entity: entity} }
}

// showDetailMsg opens the detail panel for an entity.
type showDetailMsg struct {
	entity stats.Entity
}

func showDetail(entity stats.Entity) tea.Cmd {
	return func() tea.Msg { return showDetailMsg{entity: entity} }
}

// AuthExpiredMsg is sent from outside of the ui when the session could not be refreshed.
type AuthExpiredMsg struct {
	Err error
}

// sessionMsg announces the signed in user, an empty username meaning signed out.
type sessionMsg struct {
	username string
}

func setSession(username string) tea.Cmd {
	return func() tea.Msg { return sessionMsg{username: username} }
}

// setPageSizeMsg applies a changed default page size to every table.
type setPageSizeMsg struct {
	size int
}
