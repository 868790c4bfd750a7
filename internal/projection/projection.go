// Package projection maps list positions to original candidate indices
// and hands out recyclable row identities for the positions on screen.
package projection

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned for positions or row ids the projection
	// does not know about.
	ErrOutOfRange = errors.New("projection position out of range")
	// ErrNotBound is returned when a row id is used after it was released.
	ErrNotBound = errors.New("row identity is not bound")
)

// RowID is a stable handle for whatever occupies a visible row. It names a
// slot in the projection's arena; the slot's original index is fixed while
// the id is bound and may be overwritten only after Release.
type RowID uint32

// Listener receives structural change notifications. The changed range
// starts at position; removed rows were replaced by added rows.
type Listener interface {
	ItemsChanged(position, removed, added int)
}

type slot struct {
	index uint32
	bound bool
}

// Projection is the current position -> original index mapping.
type Projection struct {
	mapping   []uint32
	slots     []slot
	free      []RowID
	listeners []Listener
}

// New creates an empty projection with room for capacity positions.
func New(capacity int) *Projection {
	if capacity < 0 {
		capacity = 0
	}
	return &Projection{mapping: make([]uint32, 0, capacity)}
}

// Subscribe registers l for change notifications. Listeners are notified
// in subscription order.
func (p *Projection) Subscribe(l Listener) {
	p.listeners = append(p.listeners, l)
}

// SetIndices replaces the mapping wholesale and announces one change
// covering every old and new position. indices is copied; callers may
// reuse it. Indices are not validated against the candidate store.
func (p *Projection) SetIndices(indices []uint32) {
	oldLen := len(p.mapping)
	p.mapping = append(p.mapping[:0], indices...)
	p.notify(0, oldLen, len(p.mapping))
}

// SetRange installs the identity mapping 0..n-1.
func (p *Projection) SetRange(n int) {
	oldLen := len(p.mapping)
	p.mapping = p.mapping[:0]
	for i := 0; i < n; i++ {
		p.mapping = append(p.mapping, uint32(i))
	}
	p.notify(0, oldLen, len(p.mapping))
}

func (p *Projection) notify(position, removed, added int) {
	for _, l := range p.listeners {
		l.ItemsChanged(position, removed, added)
	}
}

// Len returns the number of positions.
func (p *Projection) Len() int {
	return len(p.mapping)
}

// At returns the original index at position.
func (p *Projection) At(position int) (uint32, error) {
	if position < 0 || position >= len(p.mapping) {
		return 0, fmt.Errorf("position %d of %d: %w", position, len(p.mapping), ErrOutOfRange)
	}
	return p.mapping[position], nil
}

// IdentityAt binds a row identity to the candidate at position. Free slots
// are reused before the arena grows. The caller owns the returned id until
// it calls Release.
func (p *Projection) IdentityAt(position int) (RowID, bool) {
	if position < 0 || position >= len(p.mapping) {
		return 0, false
	}
	index := p.mapping[position]

	if n := len(p.free); n > 0 {
		id := p.free[n-1]
		p.free = p.free[:n-1]
		p.slots[id] = slot{index: index, bound: true}
		return id, true
	}

	p.slots = append(p.slots, slot{index: index, bound: true})
	return RowID(len(p.slots) - 1), true
}

// Index returns the original index a bound row identity carries.
func (p *Projection) Index(id RowID) (uint32, error) {
	if int(id) >= len(p.slots) {
		return 0, fmt.Errorf("row %d: %w", id, ErrOutOfRange)
	}
	s := p.slots[id]
	if !s.bound {
		return 0, fmt.Errorf("row %d: %w", id, ErrNotBound)
	}
	return s.index, nil
}

// Release returns a row identity to the free list. It must only be called
// once the row's visual element is detached.
func (p *Projection) Release(id RowID) error {
	if int(id) >= len(p.slots) {
		return fmt.Errorf("release row %d: %w", id, ErrOutOfRange)
	}
	if !p.slots[id].bound {
		return fmt.Errorf("release row %d: %w", id, ErrNotBound)
	}
	p.slots[id].bound = false
	p.free = append(p.free, id)
	return nil
}

// Stats reports arena usage: bound identities and free slots.
func (p *Projection) Stats() (bound, free int) {
	return len(p.slots) - len(p.free), len(p.free)
}
