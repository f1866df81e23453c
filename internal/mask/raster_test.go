package mask

import (
	"bytes"
	"image/color"
	"math"
	"testing"

	"MaskPad/internal/state"
)

var overlayTestColor = color.NRGBA{R: 255, A: 96}

// commitLine draws and commits a straight stroke through the given points.
func commitLine(s *state.Session, d int, pts ...state.Point) {
	s.SetBrushDiameter(d)
	s.BeginStroke(pts[0])
	for _, p := range pts[1:] {
		s.ExtendStroke(p)
	}
	s.CommitStroke()
}

func rasterize(s *state.Session) []byte {
	return Rasterize(s.Snapshot(), false).Pix
}

func TestSinglePointStrokeIsFilledCircle(t *testing.T) {
	s := state.NewSession(400, 300)
	commitLine(s, 30, state.Point{X: 100, Y: 100})

	m := Rasterize(s.Snapshot(), false)
	if m.Bounds().Dx() != 400 || m.Bounds().Dy() != 300 {
		t.Fatalf("mask size = %v, want 400x300", m.Bounds())
	}

	// Radius 15 circle at (100,100): probe well inside and well outside to
	// stay clear of antialiased edge pixels.
	probes := []struct {
		x, y   int
		remove bool
	}{
		{100, 100, true},
		{110, 100, true},
		{100, 112, true},
		{120, 100, false},
		{100, 80, false},
		{0, 0, false},
		{399, 299, false},
	}
	for _, p := range probes {
		if got := m.GrayAt(p.x, p.y).Y > 127; got != p.remove {
			t.Errorf("pixel (%d,%d): remove=%v, want %v", p.x, p.y, got, p.remove)
		}
	}

	// Coverage must be close to the analytic circle area.
	area := math.Pi * 15 * 15
	n := RemoveCount(m)
	if float64(n) < area*0.9 || float64(n) > area*1.1 {
		t.Errorf("remove count = %d, want within 10%% of %.0f", n, area)
	}
}

func TestRemoveCountMonotonic(t *testing.T) {
	s := state.NewSession(400, 300)

	counts := []int{RemoveCount(Rasterize(s.Snapshot(), false))}
	commitLine(s, 30, state.Point{X: 50, Y: 50}, state.Point{X: 150, Y: 50})
	counts = append(counts, RemoveCount(Rasterize(s.Snapshot(), false)))
	commitLine(s, 20, state.Point{X: 200, Y: 200}, state.Point{X: 300, Y: 200})
	counts = append(counts, RemoveCount(Rasterize(s.Snapshot(), false)))

	for i := 1; i < len(counts); i++ {
		if counts[i] < counts[i-1] {
			t.Errorf("remove count decreased from %d to %d after adding a stroke", counts[i-1], counts[i])
		}
	}

	s.Undo()
	after := RemoveCount(Rasterize(s.Snapshot(), false))
	// The undone stroke does not overlap the first, so the drop is strict.
	if after >= counts[len(counts)-1] {
		t.Errorf("remove count did not strictly decrease after undoing a disjoint stroke (%d -> %d)",
			counts[len(counts)-1], after)
	}
}

func TestUndoRedoMaskIdentity(t *testing.T) {
	s := state.NewSession(400, 300)
	commitLine(s, 30, state.Point{X: 100, Y: 100})

	before := rasterize(s)
	s.Undo()
	if s.CanUndo() || !s.CanRedo() {
		t.Fatalf("undo did not move the stroke to the redo stack")
	}
	if n := RemoveCount(Rasterize(s.Snapshot(), false)); n != 0 {
		t.Errorf("mask after undo has %d remove pixels, want 0", n)
	}
	s.Redo()
	if !bytes.Equal(rasterize(s), before) {
		t.Errorf("mask after undo+redo differs from original")
	}
}

func TestFrozenDiametersRasterized(t *testing.T) {
	s := state.NewSession(400, 300)
	commitLine(s, 30, state.Point{X: 50, Y: 50})
	commitLine(s, 80, state.Point{X: 200, Y: 150})

	m := Rasterize(s.Snapshot(), false)
	// First stroke stays at radius 15 even though the brush moved to 80.
	if !(m.GrayAt(60, 50).Y > 127) {
		t.Errorf("first stroke missing inside its own radius")
	}
	if m.GrayAt(75, 50).Y > 127 {
		t.Errorf("first stroke rasterized wider than its frozen diameter")
	}
	// Second stroke is radius 40.
	if !(m.GrayAt(230, 150).Y > 127) {
		t.Errorf("second stroke missing inside radius 40")
	}
	if m.GrayAt(245, 150).Y > 127 {
		t.Errorf("second stroke rasterized wider than diameter 80")
	}
}

func TestUndoLeavesNoResidue(t *testing.T) {
	a := []state.Point{{X: 100, Y: 100}, {X: 140, Y: 100}}
	b := []state.Point{{X: 120, Y: 100}, {X: 160, Y: 100}}

	// Draw both overlapping strokes, then undo the second.
	s := state.NewSession(400, 300)
	commitLine(s, 30, a...)
	commitLine(s, 30, b...)
	s.Undo()

	// Reference: only the first stroke ever drawn.
	ref := state.NewSession(400, 300)
	commitLine(ref, 30, a...)

	if !bytes.Equal(rasterize(s), rasterize(ref)) {
		t.Errorf("undone stroke left residue in the mask")
	}
}

func TestInProgressBufferExcludedFromExport(t *testing.T) {
	s := state.NewSession(400, 300)
	s.SetBrushDiameter(30)
	s.BeginStroke(state.Point{X: 100, Y: 100})

	if n := RemoveCount(Rasterize(s.Snapshot(), false)); n != 0 {
		t.Errorf("uncommitted stroke leaked into the export mask (%d pixels)", n)
	}
	if n := RemoveCount(Rasterize(s.Snapshot(), true)); n == 0 {
		t.Errorf("in-progress stroke missing from the preview rasterization")
	}
}

func TestOverlayMatchesMaskShape(t *testing.T) {
	s := state.NewSession(400, 300)
	commitLine(s, 30, state.Point{X: 100, Y: 100}, state.Point{X: 150, Y: 120})
	snap := s.Snapshot()

	m := Rasterize(snap, false)
	o := Overlay(snap, overlayTestColor)

	// Overlay and mask share stamping: every confidently-removed pixel has
	// overlay coverage, every far-outside pixel has none.
	checks := []struct{ x, y int }{{100, 100}, {150, 120}, {125, 110}, {10, 10}, {300, 250}}
	for _, c := range checks {
		masked := m.GrayAt(c.x, c.y).Y > 127
		painted := o.RGBAAt(c.x, c.y).A > 0
		if masked && !painted {
			t.Errorf("pixel (%d,%d) masked but not painted in overlay", c.x, c.y)
		}
		if !masked && m.GrayAt(c.x, c.y).Y == 0 && painted {
			t.Errorf("pixel (%d,%d) painted in overlay but fully outside the mask", c.x, c.y)
		}
	}
}
