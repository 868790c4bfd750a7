package app

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rpick/internal/mode"
	statepkg "github.com/kk-code-lab/rpick/internal/state"
	"github.com/kk-code-lab/rpick/internal/ui/input"
	renderui "github.com/kk-code-lab/rpick/internal/ui/render"
)

const doubleClickThreshold = 300 * time.Millisecond

// NewApplication initializes the screen and the picker state for m.
func NewApplication(m *mode.Mode, opts Options) (*Application, error) {
	screen := opts.Screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return nil, err
		}
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	prompt := opts.Prompt
	if prompt == "" {
		prompt = m.Kind().DefaultPrompt()
	}

	w, h := screen.Size()
	state := statepkg.NewAppState(m, prompt, w, h)

	actionCh := make(chan statepkg.Action, 16)
	reducer := statepkg.NewStateReducer(logger)
	inputHandler := input.NewInputHandler(actionCh)
	inputHandler.SetState(state)

	app := &Application{
		screen:       screen,
		state:        state,
		reducer:      reducer,
		renderer:     renderui.NewRenderer(screen, opts.Theme),
		input:        inputHandler,
		actionCh:     actionCh,
		logger:       logger,
		lastClickRow: -1,
	}

	if opts.Query != "" {
		app.handleAction(statepkg.QuerySetAction{Query: opts.Query})
	}
	logger.Info("picker started", "mode", m.Kind().String(), "candidates", state.Total(), "width", w, "height", h)
	return app, nil
}

// Run processes events until a candidate is confirmed or the user
// cancels. The screen stays initialized; call Close afterwards.
func (app *Application) Run() Result {
	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-quit:
				return
			}
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Draw(app.state)
			renderPending = false
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}

	return app.result()
}

func (app *Application) result() Result {
	if app.state.Selected == nil {
		return Result{}
	}
	return Result{Item: *app.state.Selected, Confirmed: true}
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey, *tcell.EventResize:
		app.input.ProcessEvent(ev)
		return app.processActions()
	case *tcell.EventMouse:
		app.handleMouse(ev)
		return app.processActions()
	case *tcell.EventInterrupt:
		app.renderer.Render(app.state)
		return false
	default:
		return false
	}
}

// handleMouse maps wheel to focus steps, clicks to focus and double
// clicks to confirm.
func (app *Application) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		app.actionCh <- statepkg.MoveAction{Offset: -1}
		return
	case buttons&tcell.WheelDown != 0:
		app.actionCh <- statepkg.MoveAction{Offset: 1}
		return
	case buttons&tcell.Button1 == 0:
		return
	}

	_, y := ev.Position()
	row := y - 1 // list starts below the prompt
	if row < 0 || row >= app.state.ListHeight() {
		return
	}
	position := app.state.View.Offset() + row
	if position >= app.state.Matched() {
		return
	}

	doubleClick := app.lastClickRow == position && time.Since(app.lastClickTime) <= doubleClickThreshold
	app.lastClickRow = position
	app.lastClickTime = time.Now()

	app.actionCh <- statepkg.FocusPositionAction{Position: position}
	if doubleClick {
		app.actionCh <- statepkg.ConfirmAction{}
	}
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	}

	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.logger.Error("action failed", "action", fmt.Sprintf("%T", action), "error", err)
	}
	if app.state.Done {
		app.shouldQuit = true
		return false
	}
	return true
}
