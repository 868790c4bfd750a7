// Package mode binds a candidate store to the ranking engine, the index
// projection and the focus controller for one picker session.
package mode

import (
	"log/slog"
	"time"

	"github.com/kk-code-lab/rpick/internal/candidate"
	"github.com/kk-code-lab/rpick/internal/focus"
	"github.com/kk-code-lab/rpick/internal/projection"
	"github.com/kk-code-lab/rpick/internal/search"
)

// Mode owns the search state of a picker. It is not safe for concurrent
// use; every method runs on the event loop.
type Mode struct {
	kind   Kind
	store  *candidate.Store
	ranker *search.Ranker
	proj   *projection.Projection
	focus  *focus.Controller
	logger *slog.Logger

	indices   []uint32
	query     string
	confirmed bool
}

// New creates a Mode over store. The focus controller is subscribed to the
// projection before anything else so it reclamps ahead of any view.
func New(kind Kind, store *candidate.Store, logger *slog.Logger) *Mode {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	n := store.Len()
	proj := projection.New(n)
	ctrl := focus.New(0)
	proj.Subscribe(ctrl)

	return &Mode{
		kind:    kind,
		store:   store,
		ranker:  search.NewRanker(n),
		proj:    proj,
		focus:   ctrl,
		logger:  logger,
		indices: make([]uint32, 0, n),
	}
}

// Kind is the variant this mode was built for.
func (m *Mode) Kind() Kind { return m.kind }

// Store is the candidate set, fixed for the mode's lifetime.
func (m *Mode) Store() *candidate.Store { return m.store }

// Projection is the current result list.
func (m *Mode) Projection() *projection.Projection { return m.proj }

// Focus is the controller tracking the focused result.
func (m *Mode) Focus() *focus.Controller { return m.focus }

// Query is the text of the last Search, empty after Filled.
func (m *Mode) Query() string { return m.query }

// Filled installs the startup projection: every candidate in original
// order, focused on the first one.
func (m *Mode) Filled() *projection.Projection {
	m.query = ""
	m.focus.Reset()
	m.proj.SetRange(m.store.Len())
	m.focus.FocusFirst()
	return m.proj
}

// Search ranks the store against query and installs the result.
func (m *Mode) Search(query string) *projection.Projection {
	start := time.Now()
	m.query = query
	m.focus.Reset()

	scored := m.ranker.Rank(query, m.store)
	m.indices = search.Indices(m.indices[:0], scored)
	m.proj.SetIndices(m.indices)
	m.focus.FocusFirst()

	m.logger.Debug("search",
		"query", query,
		"matched", m.proj.Len(),
		"total", m.store.Len(),
		"elapsed", time.Since(start))
	return m.proj
}

// Resolve returns the candidate shown at position.
func (m *Mode) Resolve(position int) (candidate.Item, error) {
	idx, err := m.proj.At(position)
	if err != nil {
		return candidate.Item{}, err
	}
	return m.store.ItemOf(int(idx))
}

// Move steps the focus; see focus.Controller.Move.
func (m *Mode) Move(offset int) focus.Scroll {
	return m.focus.Move(offset)
}

// Confirm resolves the focused candidate. It reports false when nothing is
// focused or a candidate was already confirmed in this session.
func (m *Mode) Confirm() (candidate.Item, bool) {
	if m.confirmed {
		return candidate.Item{}, false
	}
	pos, ok := m.focus.Position()
	if !ok {
		return candidate.Item{}, false
	}
	item, err := m.Resolve(pos)
	if err != nil {
		m.logger.Warn("confirm resolve failed", "position", pos, "error", err)
		return candidate.Item{}, false
	}
	m.confirmed = true
	m.logger.Info("confirmed", "mode", m.kind.String(), "name", item.Name)
	return item, true
}
