package state

import (
	"log/slog"
	"unicode"
)

// StateReducer applies actions to an AppState. Every action runs on the
// event loop; ranking happens synchronously inside Reduce.
type StateReducer struct {
	logger *slog.Logger
}

// NewStateReducer creates a new reducer
func NewStateReducer(logger *slog.Logger) *StateReducer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &StateReducer{logger: logger}
}

func isSearchWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func previousWordBoundary(runes []rune, pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}

	i := pos - 1
	for i >= 0 && !isSearchWordChar(runes[i]) {
		i--
	}
	for i >= 0 && isSearchWordChar(runes[i]) {
		i--
	}
	return i + 1
}

// Reduce applies action and returns the updated state.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	if state.Done {
		return state, nil
	}

	switch a := action.(type) {

	// ===== QUERY =====

	case QueryCharAction:
		if !unicode.IsPrint(a.Char) {
			return state, nil
		}
		r.setQuery(state, state.Query+string(a.Char))
		return state, nil

	case QueryBackspaceAction:
		if state.Query == "" {
			return state, nil
		}
		runes := []rune(state.Query)
		r.setQuery(state, string(runes[:len(runes)-1]))
		return state, nil

	case QueryDeleteWordAction:
		if state.Query == "" {
			return state, nil
		}
		runes := []rune(state.Query)
		start := previousWordBoundary(runes, len(runes))
		r.setQuery(state, string(runes[:start]))
		return state, nil

	case QueryClearAction:
		if state.Query == "" {
			return state, nil
		}
		r.setQuery(state, "")
		return state, nil

	case QuerySetAction:
		r.setQuery(state, a.Query)
		return state, nil

	// ===== FOCUS =====

	case MoveAction:
		state.Mode.Move(a.Offset)
		return state, nil

	case PageDownAction:
		r.pageDown(state)
		return state, nil

	case PageUpAction:
		step := state.ListHeight()
		if step < 1 {
			step = 1
		}
		state.Mode.Move(-step)
		return state, nil

	case MoveToStartAction:
		state.Mode.Move(-state.Matched())
		return state, nil

	case MoveToEndAction:
		pos, ok := state.Mode.Focus().Position()
		if !ok {
			state.Mode.Move(0)
			pos, ok = state.Mode.Focus().Position()
		}
		if ok {
			if last := state.Matched() - 1; pos < last {
				state.Mode.Move(last - pos)
			}
		}
		return state, nil

	case FocusPositionAction:
		if a.Position < 0 || a.Position >= state.Matched() {
			return state, nil
		}
		pos, ok := state.Mode.Focus().Position()
		if !ok {
			state.Mode.Move(0)
			pos = 0
		}
		if a.Position != pos {
			state.Mode.Move(a.Position - pos)
		}
		return state, nil

	// ===== VIEW =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.View.Resize(state.ListHeight())
		state.View.Invalidate()
		return state, nil

	// ===== APPLICATION =====

	case ConfirmAction:
		item, ok := state.Mode.Confirm()
		if !ok {
			return state, nil
		}
		state.Selected = &item
		state.Done = true
		return state, nil

	case CancelAction:
		r.logger.Info("cancelled", "query", state.Query)
		state.Cancelled = true
		state.Done = true
		return state, nil
	}

	return state, nil
}

func (r *StateReducer) setQuery(state *AppState, query string) {
	state.Query = query
	state.Mode.Search(query)
}

// pageDown advances a screenful but stops on the last row; only a step
// from the last row triggers the scroll-to-end directive.
func (r *StateReducer) pageDown(state *AppState) {
	step := state.ListHeight()
	if step < 1 {
		step = 1
	}
	pos, ok := state.Mode.Focus().Position()
	if ok {
		if remaining := state.Matched() - 1 - pos; remaining > 0 && step > remaining {
			step = remaining
		}
	}
	state.Mode.Move(step)
}
