// Package tui provides the Bubble Tea host for the game: the
// display-refresh tick scheduler, key input, rendering, the progression hub
// and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick of one round's generation.
type TickMsg struct {
	Gen  uint64
	Time time.Time
}

// SettleMsg is sent when a round's deferred settlement is due.
type SettleMsg struct {
	Game int
}

// tickCmd returns a Bubble Tea command that sends one tick message for gen
// after one frame at the given rate.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}

// settleCmd schedules the settlement of game after delay.
func settleCmd(delay time.Duration, game int) tea.Cmd {
	if delay <= 0 {
		return func() tea.Msg { return SettleMsg{Game: game} }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return SettleMsg{Game: game}
	})
}
