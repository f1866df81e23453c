package input

import (
	"sync"

	"MaskPad/internal/state"
)

// Source identifies which kind of device produced an event. Touch and mouse
// feed the same state machine, but a platform may synthesize mouse events
// from an active touch gesture, so the controller arbitrates between them.
type Source int

const (
	SourceMouse Source = iota
	SourceTouch
)

// Controller bridges device events to session operations. It owns the
// display-to-image coordinate transform and the Idle/Drawing state machine;
// its only side effects are session mutations.
type Controller struct {
	mu          sync.Mutex
	session     *state.Session
	geom        Geometry
	touchActive bool
}

func NewController(session *state.Session) *Controller {
	return &Controller{session: session}
}

// SetGeometry updates the transform, typically on widget resize.
func (c *Controller) SetGeometry(g Geometry) {
	c.mu.Lock()
	c.geom = g
	c.mu.Unlock()
}

func (c *Controller) Geometry() Geometry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.geom
}

// Down starts a stroke at the event position. A touch down claims the
// gesture; mouse events are dropped until the touch gesture ends.
func (c *Controller) Down(src Source, ex, ey float64) {
	c.mu.Lock()
	if c.suppressed(src) {
		c.mu.Unlock()
		return
	}
	if src == SourceTouch {
		c.touchActive = true
	}
	p := c.geom.ToImage(ex, ey)
	c.mu.Unlock()
	c.session.BeginStroke(p)
}

// Move extends the in-progress stroke. The session ignores it while idle.
func (c *Controller) Move(src Source, ex, ey float64) {
	c.mu.Lock()
	if c.suppressed(src) {
		c.mu.Unlock()
		return
	}
	p := c.geom.ToImage(ex, ey)
	c.mu.Unlock()
	c.session.ExtendStroke(p)
}

// Up ends the gesture and commits the stroke.
func (c *Controller) Up(src Source, ex, ey float64) {
	c.finish(src)
}

// Leave handles the pointer exiting the surface mid-stroke. The stroke is
// committed, not discarded, so it behaves exactly like a pointer up.
func (c *Controller) Leave(src Source) {
	c.finish(src)
}

// Cancel handles a platform-cancelled gesture, again by committing.
func (c *Controller) Cancel(src Source) {
	c.finish(src)
}

func (c *Controller) finish(src Source) {
	c.mu.Lock()
	if c.suppressed(src) {
		c.mu.Unlock()
		return
	}
	if src == SourceTouch {
		c.touchActive = false
	}
	c.mu.Unlock()
	c.session.CommitStroke()
}

// suppressed reports whether a mouse-origin event must be ignored because a
// touch gesture currently owns the input.
func (c *Controller) suppressed(src Source) bool {
	return c.touchActive && src == SourceMouse
}
