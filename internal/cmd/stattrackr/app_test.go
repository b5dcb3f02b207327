package main

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stattrackr/stattrackr/internal/config"
	"github.com/stattrackr/stattrackr/internal/stats"
	"github.com/stattrackr/stattrackr/internal/ui"
	"github.com/stretchr/testify/require"
)

type fakeUI struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (f *fakeUI) Send(msg tea.Msg) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.msgs = append(f.msgs, msg)
}

func (f *fakeUI) Run() error {
	return nil
}

func (f *fakeUI) received() []tea.Msg {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]tea.Msg(nil), f.msgs...)
}

func TestAppRoutesEvents(t *testing.T) {
	configUpdates := make(chan config.Config)
	authFailures := make(chan error, 1)
	done := make(chan any)

	target := &fakeUI{}
	app := NewApp(configUpdates, authFailures)
	app.ui = target

	go app.Start(t.Context(), done)

	errExpired := errors.New("expired")
	configUpdates <- config.Config{PageSize: 25}
	authFailures <- errExpired

	require.Eventually(t, func() bool { return len(target.received()) == 2 }, time.Second, 10*time.Millisecond)

	msgs := target.received()
	require.Equal(t, config.Config{PageSize: 25}, msgs[0])
	require.Equal(t, ui.AuthExpiredMsg{Err: errExpired}, msgs[1])

	close(done)
}

func TestPrintPage(t *testing.T) {
	goals := func(v int) *int { return &v }
	players := []stats.Player{
		{ID: "1", Name: "Saka", Position: stats.Forward, Stats: &stats.PlayerStats{Goals: goals(12)}},
		{ID: "2", Name: "Rice", Position: stats.Midfielder, Stats: &stats.PlayerStats{Goals: goals(4)}},
		{ID: "3", Name: "Havertz", Position: stats.Forward, Stats: &stats.PlayerStats{Goals: goals(9)}},
	}

	var out bytes.Buffer
	printPage(&out, listOptions{sort: "goals", desc: true, page: 2}, 2, playerFields, players)

	text := out.String()
	require.Contains(t, text, "Rice")
	require.False(t, strings.Contains(text, "Saka"))
	require.Contains(t, text, "Showing 3-3 of 3 · Page 2/2")
}
