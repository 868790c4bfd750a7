package input

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rpick/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference used for page-size decisions
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false
// once the event ends the session without a selection.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

// processKeyEvent handles keyboard input
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyCtrlG:
		ih.actionChan <- statepkg.CancelAction{}
		return false

	case tcell.KeyEnter:
		ih.actionChan <- statepkg.ConfirmAction{}
		return true

	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.SuspendAction{}
		return true

	case tcell.KeyUp, tcell.KeyCtrlP, tcell.KeyBacktab:
		ih.actionChan <- statepkg.MoveAction{Offset: -1}
		return true

	case tcell.KeyDown, tcell.KeyCtrlN, tcell.KeyTab:
		ih.actionChan <- statepkg.MoveAction{Offset: 1}
		return true

	case tcell.KeyPgUp:
		ih.actionChan <- statepkg.PageUpAction{}
		return true

	case tcell.KeyPgDn:
		ih.actionChan <- statepkg.PageDownAction{}
		return true

	case tcell.KeyHome:
		ih.actionChan <- statepkg.MoveToStartAction{}
		return true

	case tcell.KeyEnd:
		ih.actionChan <- statepkg.MoveToEndAction{}
		return true

	// KeyBackspace is also Ctrl-H.
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.QueryBackspaceAction{}
		return true

	case tcell.KeyCtrlW:
		ih.actionChan <- statepkg.QueryDeleteWordAction{}
		return true

	case tcell.KeyCtrlU:
		ih.actionChan <- statepkg.QueryClearAction{}
		return true

	case tcell.KeyRune:
		r := ev.Rune()
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			switch r {
			case 'w', 'W':
				if ev.Modifiers()&tcell.ModCtrl != 0 {
					ih.actionChan <- statepkg.QueryDeleteWordAction{}
				}
			case 'j', 'J':
				ih.actionChan <- statepkg.MoveAction{Offset: 1}
			case 'k', 'K':
				ih.actionChan <- statepkg.MoveAction{Offset: -1}
			}
			return true
		}
		ih.actionChan <- statepkg.QueryCharAction{Char: r}
		return true

	default:
		return true
	}
}
