package app

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rpick/internal/state"
)

func TestHandleMouseClickFocusesRow(t *testing.T) {
	app, _ := newTestApp(t, "alpha", "beta", "gamma")

	app.handleMouse(tcell.NewEventMouse(3, 3, tcell.Button1, tcell.ModNone))
	app.processActions()

	pos, ok := app.state.Mode.Focus().Position()
	if !ok || pos != 2 {
		t.Fatalf("expected focus at 2, got %d (%v)", pos, ok)
	}
	if app.state.Done {
		t.Fatalf("single click must not confirm")
	}
}

func TestHandleMouseDoubleClickConfirms(t *testing.T) {
	app, _ := newTestApp(t, "alpha", "beta")

	app.handleMouse(tcell.NewEventMouse(2, 2, tcell.Button1, tcell.ModNone))
	app.handleMouse(tcell.NewEventMouse(2, 2, tcell.Button1, tcell.ModNone))
	app.processActions()

	if !app.state.Done || app.state.Selected == nil || app.state.Selected.Name != "beta" {
		t.Fatalf("expected double click to confirm beta, got %+v", app.state.Selected)
	}
}

func TestHandleMouseIgnoresPromptAndEmptyRows(t *testing.T) {
	app, _ := newTestApp(t, "alpha")

	app.handleMouse(tcell.NewEventMouse(1, 0, tcell.Button1, tcell.ModNone))
	app.handleMouse(tcell.NewEventMouse(1, 5, tcell.Button1, tcell.ModNone))

	select {
	case action := <-app.actionCh:
		t.Fatalf("expected no action, got %T", action)
	default:
	}
}

func TestHandleMouseWheel(t *testing.T) {
	app, _ := newTestApp(t, "alpha", "beta")

	app.handleMouse(tcell.NewEventMouse(0, 0, tcell.WheelDown, tcell.ModNone))
	action := <-app.actionCh
	if move, ok := action.(statepkg.MoveAction); !ok || move.Offset != 1 {
		t.Fatalf("expected MoveAction{1}, got %#v", action)
	}
}
