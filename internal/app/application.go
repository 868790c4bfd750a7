package app

import (
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rpick/internal/candidate"
	statepkg "github.com/kk-code-lab/rpick/internal/state"
	inputui "github.com/kk-code-lab/rpick/internal/ui/input"
	renderui "github.com/kk-code-lab/rpick/internal/ui/render"
)

// Options configures an Application.
type Options struct {
	Prompt string
	// Query is typed into the prompt before the first frame.
	Query  string
	Theme  renderui.ColorTheme
	Logger *slog.Logger
	// Screen overrides the terminal screen; it must not be initialized yet.
	Screen tcell.Screen
}

// Application represents the running app.
type Application struct {
	screen     tcell.Screen
	state      *statepkg.AppState
	reducer    *statepkg.StateReducer
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	actionCh   chan statepkg.Action
	logger     *slog.Logger
	shouldQuit bool
	closed     bool

	lastClickTime time.Time
	lastClickRow  int
}

// Result reports how a session ended. Item is only meaningful when
// Confirmed is true.
type Result struct {
	Item      candidate.Item
	Confirmed bool
}

// Close tears down the terminal. It is safe to call more than once and
// must run before a confirmed candidate is launched.
func (app *Application) Close() error {
	if app.closed {
		return nil
	}
	app.closed = true
	app.screen.Fini()
	return nil
}
