// Package tui provides the Bubble Tea front end for Sokoban: the game view,
// the level picker, the scoreboard and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// flashDuration is how long a status message stays under the board.
const flashDuration = 1200 * time.Millisecond

// FlashExpiredMsg clears the status message with the matching sequence number.
type FlashExpiredMsg struct {
	Seq int
}

// flashCmd schedules the expiry of status message seq.
func flashCmd(seq int) tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return FlashExpiredMsg{Seq: seq}
	})
}
