package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappy-quest/internal/core"
)

// KeyMapper translates Bubble Tea key messages to actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case " ", "w", "up":
		return core.ActionJump, false
	case "enter":
		return core.ActionStart, false
	case "b", "esc":
		return core.ActionBack, false
	case "c":
		return core.ActionCheckIn, false
	case "t":
		return core.ActionTasks, false
	case "l":
		return core.ActionBoard, false
	case "f":
		return core.ActionFriends, false
	case "n":
		return core.ActionName, false
	case "s":
		return core.ActionShare, false
	}

	return core.ActionNone, false
}

// HubKeyMap defines the key bindings shown in the hub's help bar.
type HubKeyMap struct {
	Play    key.Binding
	CheckIn key.Binding
	Tasks   key.Binding
	Board   key.Binding
	Friends key.Binding
	Name    key.Binding
	Share   key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HubKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.CheckIn, k.Tasks, k.Board, k.Friends, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HubKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.CheckIn, k.Tasks, k.Board},
		{k.Friends, k.Name, k.Share, k.Back, k.Quit},
	}
}

// DefaultHubKeyMap returns default key bindings.
func DefaultHubKeyMap() HubKeyMap {
	return HubKeyMap{
		Play:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		CheckIn: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "check in")),
		Tasks:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tasks")),
		Board:   key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "leaderboard")),
		Friends: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "friends")),
		Name:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "name")),
		Share:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "share")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
