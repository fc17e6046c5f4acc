package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappy-quest/internal/core"
)

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"space flaps", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionJump, false},
		{"up flaps", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump, false},
		{"enter starts", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionStart, false},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"c checks in", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}}, core.ActionCheckIn, false},
		{"t opens tasks", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}}, core.ActionTasks, false},
		{"l opens board", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}}, core.ActionBoard, false},
		{"f opens friends", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}}, core.ActionFriends, false},
		{"q quits", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound key", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}}, core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action {
				t.Errorf("MapKey() action = %v, want %v", action, tt.action)
			}
			if quit != tt.quit {
				t.Errorf("MapKey() quit = %v, want %v", quit, tt.quit)
			}
		})
	}
}
