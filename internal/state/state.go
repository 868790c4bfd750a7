package state

import (
	"github.com/kk-code-lab/rpick/internal/candidate"
	"github.com/kk-code-lab/rpick/internal/mode"
	"github.com/kk-code-lab/rpick/internal/ui/listview"
)

// Screen rows reserved outside the candidate list: prompt and status line.
const chromeRows = 2

// AppState is the single source of truth
type AppState struct {
	Mode *mode.Mode
	View *listview.View

	Prompt string
	Query  string

	ScreenWidth  int
	ScreenHeight int

	// Selected is set once a candidate is confirmed.
	Selected  *candidate.Item
	Cancelled bool
	Done      bool
}

// NewAppState installs the startup projection of m and a list view sized
// for a width x height screen.
func NewAppState(m *mode.Mode, prompt string, width, height int) *AppState {
	s := &AppState{
		Mode:         m,
		Prompt:       prompt,
		ScreenWidth:  width,
		ScreenHeight: height,
	}
	s.View = listview.New(m.Projection(), m.Focus(), s.ListHeight())
	m.Filled()
	return s
}

// ListHeight is the number of rows available to candidates.
func (s *AppState) ListHeight() int {
	h := s.ScreenHeight - chromeRows
	if h < 0 {
		return 0
	}
	return h
}

// Matched is the number of candidates in the current projection.
func (s *AppState) Matched() int {
	return s.Mode.Projection().Len()
}

// Total is the size of the candidate store.
func (s *AppState) Total() int {
	return s.Mode.Store().Len()
}

// Item returns the candidate for a store index, or the zero item.
func (s *AppState) Item(index uint32) candidate.Item {
	item, err := s.Mode.Store().ItemOf(int(index))
	if err != nil {
		return candidate.Item{}
	}
	return item
}
