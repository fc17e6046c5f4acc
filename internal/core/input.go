package core

// Action represents a semantic action, abstracted from physical key presses.
// This allows the session to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionJump            // Space, W, Up - flap
	ActionStart           // Enter - start or replay a round
	ActionBack            // B, Escape - return to the hub
	ActionCheckIn         // C - daily check-in
	ActionTasks           // T - weekly tasks panel
	ActionBoard           // L - leaderboard panel
	ActionFriends         // F - friends and invites panel
	ActionName            // N - edit display name
	ActionShare           // S - show share text
	ActionQuit            // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionStart:
		return "Start"
	case ActionBack:
		return "Back"
	case ActionCheckIn:
		return "CheckIn"
	case ActionTasks:
		return "Tasks"
	case ActionBoard:
		return "Board"
	case ActionFriends:
		return "Friends"
	case ActionName:
		return "Name"
	case ActionShare:
		return "Share"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
