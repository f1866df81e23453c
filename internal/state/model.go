package state

import (
	"time"
)

// Point is a position in image-pixel space. Input events are transformed
// from display coordinates before they get here, so the rasterizer and the
// base image share one coordinate system.
type Point struct{ X, Y float64 }

// Stroke is one continuous brush gesture. Diameter is the brush size that
// was active when the stroke was committed; later brush changes never touch
// it.
type Stroke struct {
	ID       string
	Points   []Point
	Diameter int
	Time     time.Time
}

// Brush diameter bounds, in image pixels.
const (
	MinBrushDiameter = 5
	MaxBrushDiameter = 100
)

// ClampBrushDiameter forces d into the allowed brush range.
func ClampBrushDiameter(d int) int {
	if d < MinBrushDiameter {
		return MinBrushDiameter
	}
	if d > MaxBrushDiameter {
		return MaxBrushDiameter
	}
	return d
}
