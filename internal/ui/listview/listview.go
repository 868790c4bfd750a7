// Package listview keeps the visible window over a projection: which row
// identities are bound on screen, where the viewport starts and which rows
// need repainting.
package listview

import (
	"github.com/kk-code-lab/rpick/internal/focus"
	"github.com/kk-code-lab/rpick/internal/projection"
)

// Row is one visible line.
type Row struct {
	Position int
	ID       projection.RowID
	Index    uint32
	Focused  bool
}

// View implements projection.Listener and focus.Listener. Subscribe it
// to the projection after the focus controller.
type View struct {
	proj  *projection.Projection
	focus *focus.Controller

	offset int
	height int
	// bound[i] is the identity shown at position offset+i.
	bound []projection.RowID

	dirty     map[int]struct{}
	fullDirty bool
}

// New creates a view of the given height and subscribes it to proj and
// ctrl.
func New(proj *projection.Projection, ctrl *focus.Controller, height int) *View {
	v := &View{
		proj:      proj,
		focus:     ctrl,
		dirty:     make(map[int]struct{}),
		fullDirty: true,
	}
	proj.Subscribe(v)
	ctrl.Subscribe(v)
	v.height = max(height, 0)
	v.rebind()
	return v
}

func (v *View) Offset() int { return v.offset }
func (v *View) Height() int { return v.height }

// ItemsChanged drops every binding touched by the change and rebinds the
// window. A replacement starting at 0 scrolls back to the top.
func (v *View) ItemsChanged(position, removed, added int) {
	if position == 0 {
		v.offset = 0
	}
	v.releaseAll()
	v.clampOffset()
	v.rebind()
	v.fullDirty = true
}

// PositionsInvalidated marks visible positions for repaint.
func (v *View) PositionsInvalidated(positions ...int) {
	for _, p := range positions {
		if p >= v.offset && p < v.offset+len(v.bound) {
			v.dirty[p] = struct{}{}
		}
	}
}

// ScrollTo applies a scroll directive.
func (v *View) ScrollTo(s focus.Scroll) {
	offset := v.offset
	switch s.Kind {
	case focus.ScrollEnsureVisible:
		if s.Position < offset {
			offset = s.Position
		} else if v.height > 0 && s.Position >= offset+v.height {
			offset = s.Position - v.height + 1
		}
	case focus.ScrollToEnd:
		offset = v.proj.Len() - v.height
	default:
		return
	}
	v.setOffset(offset)
}

// Resize changes the number of visible rows.
func (v *View) Resize(height int) {
	height = max(height, 0)
	if height == v.height {
		return
	}
	v.height = height
	offset := v.offset
	if pos, ok := v.focus.Position(); ok && height > 0 && pos >= offset+height {
		offset = pos - height + 1
	}
	v.offset = offset
	v.releaseAll()
	v.clampOffset()
	v.rebind()
	v.fullDirty = true
}

func (v *View) setOffset(offset int) {
	old := v.offset
	v.offset = offset
	v.clampOffset()
	if v.offset == old {
		return
	}
	v.shift(old)
	v.fullDirty = true
}

func (v *View) clampOffset() {
	maxOffset := v.proj.Len() - v.height
	if v.offset > maxOffset {
		v.offset = maxOffset
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

// shift moves the window from oldOffset to the current offset, keeping
// identities of rows that stay on screen and releasing the rest.
func (v *View) shift(oldOffset int) {
	keep := make(map[int]projection.RowID, len(v.bound))
	for i, id := range v.bound {
		pos := oldOffset + i
		if pos >= v.offset && pos < v.offset+v.height {
			keep[pos] = id
			continue
		}
		_ = v.proj.Release(id)
	}
	v.bound = v.bound[:0]
	for pos := v.offset; pos < v.offset+v.height && pos < v.proj.Len(); pos++ {
		if id, ok := keep[pos]; ok {
			v.bound = append(v.bound, id)
			continue
		}
		id, ok := v.proj.IdentityAt(pos)
		if !ok {
			break
		}
		v.bound = append(v.bound, id)
	}
}

func (v *View) releaseAll() {
	for _, id := range v.bound {
		_ = v.proj.Release(id)
	}
	v.bound = v.bound[:0]
}

func (v *View) rebind() {
	for pos := v.offset; pos < v.offset+v.height; pos++ {
		id, ok := v.proj.IdentityAt(pos)
		if !ok {
			break
		}
		v.bound = append(v.bound, id)
	}
}

// Visible returns the rows currently on screen, top to bottom.
func (v *View) Visible() []Row {
	focused, hasFocus := v.focus.Position()
	rows := make([]Row, 0, len(v.bound))
	for i, id := range v.bound {
		idx, err := v.proj.Index(id)
		if err != nil {
			continue
		}
		pos := v.offset + i
		rows = append(rows, Row{
			Position: pos,
			ID:       id,
			Index:    idx,
			Focused:  hasFocus && pos == focused,
		})
	}
	return rows
}

// TakeDirty returns the positions to repaint and clears the record. full
// means the whole viewport, including rows below the last item.
func (v *View) TakeDirty() (positions []int, full bool) {
	full = v.fullDirty
	if !full {
		for p := range v.dirty {
			positions = append(positions, p)
		}
	}
	clear(v.dirty)
	v.fullDirty = false
	return positions, full
}

// Invalidate forces a full repaint on the next TakeDirty.
func (v *View) Invalidate() {
	v.fullDirty = true
}

// Close releases every bound identity.
func (v *View) Close() {
	v.releaseAll()
}
