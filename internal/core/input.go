package core

// Action represents a semantic action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow - move cursor up
	ActionDown           // S, J, Down arrow - move cursor down
	ActionLeft           // A, H, Left arrow - move cursor left
	ActionRight          // D, L, Right arrow - move cursor right
	ActionSelect         // Space, Enter - play the tile under the cursor
	ActionNext           // N - next level after a clear
	ActionRetry          // R - spend a retry credit after a failure
	ActionRestart        // Enter after game over - start a new run
	ActionBack           // B, Escape - back to the menu
	ActionQuit           // Q, Ctrl+C - exit
	ActionHelp           // ? - toggle full help
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSelect:
		return "Select"
	case ActionNext:
		return "Next"
	case ActionRetry:
		return "Retry"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// IsMove reports whether the action moves the grid cursor.
func (a Action) IsMove() bool {
	return a >= ActionUp && a <= ActionRight
}

// Delta returns the row and column offset of a move action.
func (a Action) Delta() (dRow, dCol int) {
	switch a {
	case ActionUp:
		return -1, 0
	case ActionDown:
		return 1, 0
	case ActionLeft:
		return 0, -1
	case ActionRight:
		return 0, 1
	}
	return 0, 0
}
