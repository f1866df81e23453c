package state

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session owns all mask-authoring state for one loaded image: the committed
// stroke history (which doubles as the undo stack), the redo stack, the
// in-progress stroke buffer, the current brush setting and the drawing flag.
//
// Every operation is total: calls whose preconditions do not hold are no-ops,
// never errors. That makes the session safe to drive with any sequence of
// input events.
type Session struct {
	mu sync.RWMutex

	width, height int

	strokes []Stroke // committed history, oldest first
	redo    []Stroke
	buffer  []Point
	brush   int
	drawing bool

	listeners []func()
}

// NewSession creates a session for an image of the given native pixel size.
func NewSession(width, height int) *Session {
	return &Session{
		width:  width,
		height: height,
		brush:  30,
	}
}

// Subscribe registers fn to be called after every mutating operation.
// The renderer uses this to trigger a full redraw.
func (s *Session) Subscribe(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Session) notify() {
	s.mu.RLock()
	fns := make([]func(), len(s.listeners))
	copy(fns, s.listeners)
	s.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}

// BeginStroke starts a new in-progress stroke at p. No-op while already
// drawing.
func (s *Session) BeginStroke(p Point) {
	s.mu.Lock()
	if s.drawing {
		s.mu.Unlock()
		return
	}
	s.drawing = true
	s.buffer = []Point{p}
	s.mu.Unlock()
	s.notify()
}

// ExtendStroke appends p to the in-progress stroke. No-op unless drawing.
func (s *Session) ExtendStroke(p Point) {
	s.mu.Lock()
	if !s.drawing {
		s.mu.Unlock()
		return
	}
	s.buffer = append(s.buffer, p)
	s.mu.Unlock()
	s.notify()
}

// CommitStroke moves the in-progress buffer into the committed history,
// freezing the current brush diameter into the stroke. Committing always
// empties the redo stack. No-op if the buffer is empty.
func (s *Session) CommitStroke() {
	s.mu.Lock()
	if len(s.buffer) == 0 {
		s.mu.Unlock()
		return
	}
	stroke := Stroke{
		ID:       uuid.NewString(),
		Points:   s.buffer,
		Diameter: s.brush,
		Time:     time.Now(),
	}
	s.strokes = append(s.strokes, stroke)
	s.buffer = nil
	s.redo = nil
	s.drawing = false
	s.mu.Unlock()
	s.notify()
}

// Undo moves the most recent committed stroke onto the redo stack.
func (s *Session) Undo() {
	s.mu.Lock()
	if len(s.strokes) == 0 {
		s.mu.Unlock()
		return
	}
	last := s.strokes[len(s.strokes)-1]
	s.strokes = s.strokes[:len(s.strokes)-1]
	s.redo = append(s.redo, last)
	s.mu.Unlock()
	s.notify()
}

// Redo moves the top of the redo stack back onto the committed history.
func (s *Session) Redo() {
	s.mu.Lock()
	if len(s.redo) == 0 {
		s.mu.Unlock()
		return
	}
	top := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.strokes = append(s.strokes, top)
	s.mu.Unlock()
	s.notify()
}

// Clear empties the committed history, the redo stack and the in-progress
// buffer.
func (s *Session) Clear() {
	s.mu.Lock()
	s.strokes = nil
	s.redo = nil
	s.buffer = nil
	s.drawing = false
	s.mu.Unlock()
	s.notify()
}

// Reset reinitializes the session for a newly loaded image.
func (s *Session) Reset(width, height int) {
	s.mu.Lock()
	s.width = width
	s.height = height
	s.strokes = nil
	s.redo = nil
	s.buffer = nil
	s.drawing = false
	s.mu.Unlock()
	s.notify()
}

// SetBrushDiameter updates the brush setting, clamped to the allowed range.
// Only strokes committed after the call are affected.
func (s *Session) SetBrushDiameter(d int) {
	s.mu.Lock()
	s.brush = ClampBrushDiameter(d)
	s.mu.Unlock()
	s.notify()
}

func (s *Session) BrushDiameter() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.brush
}

func (s *Session) IsDrawing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drawing
}

// CanUndo reports whether the committed history is non-empty. The toolbar
// uses this to enable its undo control.
func (s *Session) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.strokes) > 0
}

// CanRedo reports whether the redo stack is non-empty.
func (s *Session) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.redo) > 0
}

func (s *Session) Size() (width, height int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height
}

// Strokes returns a copy of the committed history.
func (s *Session) Strokes() []Stroke {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Stroke, len(s.strokes))
	copy(out, s.strokes)
	return out
}

// Buffer returns a copy of the in-progress stroke's points.
func (s *Session) Buffer() []Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Point, len(s.buffer))
	copy(out, s.buffer)
	return out
}

// Snapshot captures everything the rasterizer needs in one consistent read.
type Snapshot struct {
	Width, Height int
	Strokes       []Stroke
	Buffer        []Point
	Brush         int
}

// Snapshot returns a consistent copy of the drawable state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Width:   s.width,
		Height:  s.height,
		Strokes: make([]Stroke, len(s.strokes)),
		Buffer:  make([]Point, len(s.buffer)),
		Brush:   s.brush,
	}
	copy(snap.Strokes, s.strokes)
	copy(snap.Buffer, s.buffer)
	return snap
}
