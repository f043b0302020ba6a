// Package tui provides the Bubble Tea front-end for Mindgrid: menus, the
// play screen, the scoreboard and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mindgrid/internal/games/mindgrid"
)

// TickMsg redraws the turn timer bar.
type TickMsg time.Time

// tickCmd returns a command that sends tick messages at the specified rate.
func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 30
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// runEventMsg carries a Run event into the Bubble Tea loop.
type runEventMsg struct {
	ev mindgrid.Event
}

// runEventsClosedMsg is sent once the event stream is shut down.
type runEventsClosedMsg struct{}

// waitForEvent blocks on the run's event stream until an event arrives or
// the stream is shut down.
func waitForEvent(events <-chan mindgrid.Event, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case ev := <-events:
			return runEventMsg{ev: ev}
		case <-done:
			return runEventsClosedMsg{}
		}
	}
}
