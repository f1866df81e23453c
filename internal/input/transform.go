package input

import (
	"MaskPad/internal/state"
)

// Geometry describes how the interactive surface is currently laid out: the
// on-screen display size, the native pixel size of the backing image, and the
// surface's on-screen origin. The horizontal and vertical scale factors are
// computed independently; nothing assumes square scaling.
type Geometry struct {
	DisplayW, DisplayH float64
	NativeW, NativeH   float64
	OriginX, OriginY   float64
}

// ToImage maps a raw event position to image-pixel space.
func (g Geometry) ToImage(ex, ey float64) state.Point {
	sx, sy := g.scale()
	return state.Point{
		X: (ex - g.OriginX) * sx,
		Y: (ey - g.OriginY) * sy,
	}
}

// ToDisplay maps an image-space point back to display space. Inverse of
// ToImage up to floating-point rounding.
func (g Geometry) ToDisplay(p state.Point) (float64, float64) {
	sx, sy := g.scale()
	return p.X/sx + g.OriginX, p.Y/sy + g.OriginY
}

// DisplayDiameter converts a brush diameter from image pixels to display
// units, the size the cursor preview ring is drawn at.
func (g Geometry) DisplayDiameter(d int) float64 {
	if g.NativeW == 0 {
		return float64(d)
	}
	return float64(d) * g.DisplayW / g.NativeW
}

func (g Geometry) scale() (sx, sy float64) {
	sx, sy = 1, 1
	if g.DisplayW > 0 {
		sx = g.NativeW / g.DisplayW
	}
	if g.DisplayH > 0 {
		sy = g.NativeH / g.DisplayH
	}
	return sx, sy
}
