// Package tui provides the Bubble Tea integration for the sandbox.
// It handles the terminal UI loop, input mapping, frame timing and the
// menu, run history and SSH session flows.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation frame.
type TickMsg time.Time

// tickInterval converts a frame cap to the delay between ticks.
func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}

// tickCmd returns a Bubble Tea command that sends one tick after the
// interval of the given frame cap.
func tickCmd(fps float64) tea.Cmd {
	return tea.Tick(tickInterval(fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
