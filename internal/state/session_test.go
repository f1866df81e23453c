package state

import (
	"reflect"
	"testing"
)

func TestBeginExtendCommitPointCount(t *testing.T) {
	// A committed stroke holds the initiating point plus one point per
	// extend issued while drawing.
	for _, extends := range []int{0, 1, 5, 50} {
		s := NewSession(400, 300)
		s.BeginStroke(Point{X: 1, Y: 1})
		for i := 0; i < extends; i++ {
			s.ExtendStroke(Point{X: float64(i), Y: float64(i)})
		}
		s.CommitStroke()

		strokes := s.Strokes()
		if len(strokes) != 1 {
			t.Fatalf("extends=%d: committed %d strokes, want 1", extends, len(strokes))
		}
		if got := len(strokes[0].Points); got != 1+extends {
			t.Errorf("extends=%d: stroke has %d points, want %d", extends, got, 1+extends)
		}
	}
}

func TestExtendWhileIdleIsNoOp(t *testing.T) {
	s := NewSession(400, 300)
	s.ExtendStroke(Point{X: 5, Y: 5})
	s.CommitStroke()
	if len(s.Strokes()) != 0 {
		t.Errorf("extend+commit while idle produced a stroke")
	}
}

func TestBeginWhileDrawingIsNoOp(t *testing.T) {
	s := NewSession(400, 300)
	s.BeginStroke(Point{X: 1, Y: 1})
	s.BeginStroke(Point{X: 9, Y: 9}) // ignored
	s.ExtendStroke(Point{X: 2, Y: 2})
	s.CommitStroke()

	strokes := s.Strokes()
	if len(strokes) != 1 {
		t.Fatalf("committed %d strokes, want 1", len(strokes))
	}
	if strokes[0].Points[0] != (Point{X: 1, Y: 1}) {
		t.Errorf("initiating point = %v, want {1 1}", strokes[0].Points[0])
	}
}

func TestUndoRedoRestoresHistory(t *testing.T) {
	s := NewSession(400, 300)
	diameters := []int{10, 40, 90}
	for i, d := range diameters {
		s.SetBrushDiameter(d)
		s.BeginStroke(Point{X: float64(i), Y: 0})
		s.ExtendStroke(Point{X: float64(i), Y: 10})
		s.CommitStroke()
	}
	before := s.Strokes()

	// Undo then redo at every depth must restore the exact history,
	// including frozen diameters.
	for depth := 1; depth <= len(diameters); depth++ {
		for i := 0; i < depth; i++ {
			s.Undo()
		}
		for i := 0; i < depth; i++ {
			s.Redo()
		}
		if got := s.Strokes(); !reflect.DeepEqual(got, before) {
			t.Fatalf("depth %d: history not restored after undo/redo", depth)
		}
	}
}

func TestCommitClearsRedo(t *testing.T) {
	for _, undos := range []int{0, 1, 3} {
		s := NewSession(400, 300)
		for i := 0; i < 4; i++ {
			s.BeginStroke(Point{X: float64(i), Y: 0})
			s.CommitStroke()
		}
		for i := 0; i < undos; i++ {
			s.Undo()
		}
		s.BeginStroke(Point{X: 99, Y: 99})
		s.CommitStroke()

		if s.CanRedo() {
			t.Errorf("undos=%d: redo stack not cleared by new commit", undos)
		}
	}
}

func TestClear(t *testing.T) {
	s := NewSession(400, 300)
	s.BeginStroke(Point{X: 1, Y: 1})
	s.CommitStroke()
	s.Undo()
	s.BeginStroke(Point{X: 2, Y: 2})
	s.Clear()

	if s.CanUndo() || s.CanRedo() || s.IsDrawing() || len(s.Buffer()) != 0 {
		t.Errorf("clear left state behind: canUndo=%v canRedo=%v drawing=%v buffer=%d",
			s.CanUndo(), s.CanRedo(), s.IsDrawing(), len(s.Buffer()))
	}
}

func TestUndoRedoEmptyAreNoOps(t *testing.T) {
	s := NewSession(400, 300)
	s.Undo()
	s.Redo()
	if s.CanUndo() || s.CanRedo() {
		t.Errorf("no-op undo/redo changed state")
	}
}

func TestDiameterFrozenAtCommit(t *testing.T) {
	s := NewSession(400, 300)
	s.SetBrushDiameter(30)
	s.BeginStroke(Point{X: 1, Y: 1})
	s.CommitStroke()

	s.SetBrushDiameter(80)
	s.BeginStroke(Point{X: 2, Y: 2})
	s.CommitStroke()

	strokes := s.Strokes()
	if strokes[0].Diameter != 30 {
		t.Errorf("first stroke diameter = %d, want 30", strokes[0].Diameter)
	}
	if strokes[1].Diameter != 80 {
		t.Errorf("second stroke diameter = %d, want 80", strokes[1].Diameter)
	}
}

func TestBrushDiameterClamped(t *testing.T) {
	tests := []struct{ in, want int }{
		{1, 5},
		{5, 5},
		{42, 42},
		{100, 100},
		{400, 100},
		{-7, 5},
	}
	s := NewSession(400, 300)
	for _, tt := range tests {
		s.SetBrushDiameter(tt.in)
		if got := s.BrushDiameter(); got != tt.want {
			t.Errorf("SetBrushDiameter(%d): got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestChangeNotifications(t *testing.T) {
	s := NewSession(400, 300)
	count := 0
	s.Subscribe(func() { count++ })

	s.BeginStroke(Point{X: 1, Y: 1})
	s.ExtendStroke(Point{X: 2, Y: 2})
	s.CommitStroke()
	s.Undo()
	s.Redo()
	s.SetBrushDiameter(50)
	s.Clear()

	if count != 7 {
		t.Errorf("got %d notifications for 7 mutations", count)
	}
}

func TestResetReinitializes(t *testing.T) {
	s := NewSession(400, 300)
	s.BeginStroke(Point{X: 1, Y: 1})
	s.CommitStroke()
	s.Reset(800, 600)

	w, h := s.Size()
	if w != 800 || h != 600 {
		t.Errorf("size after reset = %dx%d, want 800x600", w, h)
	}
	if s.CanUndo() {
		t.Errorf("history survived reset")
	}
}
