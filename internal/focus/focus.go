// Package focus tracks which projection position is highlighted.
package focus

// ScrollKind tells the list view how to react to a keyboard focus change.
type ScrollKind int

const (
	// ScrollNone means no scroll is needed.
	ScrollNone ScrollKind = iota
	// ScrollEnsureVisible asks the view to bring Position into the viewport.
	ScrollEnsureVisible
	// ScrollToEnd asks the view to scroll to its bottom edge.
	ScrollToEnd
)

func (k ScrollKind) String() string {
	switch k {
	case ScrollEnsureVisible:
		return "ensure-visible"
	case ScrollToEnd:
		return "to-end"
	default:
		return "none"
	}
}

// Scroll is a vertical scroll directive.
type Scroll struct {
	Kind     ScrollKind
	Position int
}

// Listener is notified about highlight changes and scroll directives.
type Listener interface {
	// PositionsInvalidated reports rows whose highlight changed.
	PositionsInvalidated(positions ...int)
	ScrollTo(s Scroll)
}

// Controller holds Unfocused or FocusedAt(position). While focused,
// position < length always holds.
type Controller struct {
	position  int
	focused   bool
	length    int
	listeners []Listener
}

// New returns a controller for a projection of the given length, focused
// on the first row when length > 0.
func New(length int) *Controller {
	c := &Controller{}
	c.Reclamp(length)
	if length > 0 {
		c.position, c.focused = 0, true
	}
	return c
}

// Subscribe registers l for highlight and scroll notifications.
func (c *Controller) Subscribe(l Listener) {
	c.listeners = append(c.listeners, l)
}

// Position returns the focused position, or false when Unfocused.
func (c *Controller) Position() (int, bool) {
	return c.position, c.focused
}

// Len is the projection length the controller was last clamped to.
func (c *Controller) Len() int {
	return c.length
}

// Reclamp adjusts focus to a projection of newLen positions.
func (c *Controller) Reclamp(newLen int) {
	if newLen < 0 {
		newLen = 0
	}
	c.length = newLen
	switch {
	case newLen == 0:
		c.focused = false
		c.position = 0
	case c.focused && c.position >= newLen:
		c.position = newLen - 1
	}
}

// ItemsChanged implements projection.Listener. The controller must be
// subscribed before any view so focus is valid when views react.
func (c *Controller) ItemsChanged(position, removed, added int) {
	c.Reclamp(c.length - removed + added)
}

// Reset drops focus without notifying; the structural change that follows
// repaints everything.
func (c *Controller) Reset() {
	c.focused = false
	c.position = 0
}

// FocusFirst focuses position 0 when the projection is non-empty.
func (c *Controller) FocusFirst() {
	if c.length == 0 {
		return
	}
	prev, had := c.position, c.focused
	c.position, c.focused = 0, true
	if had && prev != 0 {
		c.invalidate(prev, 0)
	} else if !had {
		c.invalidate(0)
	}
}

// Move steps focus by offset and returns the scroll directive it also
// delivers to listeners. Moving past the end keeps focus and scrolls the
// view to its end; moving before the start clamps to 0. An unfocused
// controller with a non-empty projection lands on 0.
func (c *Controller) Move(offset int) Scroll {
	if c.length == 0 {
		return Scroll{Kind: ScrollNone}
	}

	if !c.focused {
		c.position, c.focused = 0, true
		c.invalidate(0)
		return c.scroll(Scroll{Kind: ScrollEnsureVisible, Position: 0})
	}

	target := c.position + offset
	if target >= c.length {
		return c.scroll(Scroll{Kind: ScrollToEnd, Position: c.position})
	}
	if target < 0 {
		target = 0
	}
	if target != c.position {
		prev := c.position
		c.position = target
		c.invalidate(prev, target)
	}
	return c.scroll(Scroll{Kind: ScrollEnsureVisible, Position: target})
}

func (c *Controller) invalidate(positions ...int) {
	for _, l := range c.listeners {
		l.PositionsInvalidated(positions...)
	}
}

func (c *Controller) scroll(s Scroll) Scroll {
	for _, l := range c.listeners {
		l.ScrollTo(s)
	}
	return s
}
