package state

// Action is the base interface for all state mutations
type Action interface{}

// ===== QUERY ACTIONS =====

type QueryCharAction struct {
	Char rune
}
type QueryBackspaceAction struct{}
type QueryDeleteWordAction struct{}
type QueryClearAction struct{}

// QuerySetAction replaces the whole query, e.g. for an initial query
// passed on the command line.
type QuerySetAction struct {
	Query string
}

// ===== FOCUS ACTIONS =====

type MoveAction struct {
	Offset int
}
type PageUpAction struct{}
type PageDownAction struct{}
type MoveToStartAction struct{}
type MoveToEndAction struct{}

// FocusPositionAction focuses a list position directly (mouse click).
type FocusPositionAction struct {
	Position int
}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

// ===== APPLICATION ACTIONS =====

type ConfirmAction struct{} // Enter - run the focused candidate
type CancelAction struct{}  // Esc - exit without action
type SuspendAction struct{} // Ctrl-Z - stop the process, handled by the app loop
