package mask

import (
	"image"
	"image/color"
	"log"

	"github.com/gogpu/gg"

	"MaskPad/internal/state"
)

// Rasterize flattens a session snapshot into the binary mask consumed by the
// inpainting service: a native-resolution grayscale image where 255 marks
// pixels to remove and 0 pixels to preserve. Strokes combine by union.
// Antialiased edge pixels are near-binary; the service binarizes at 127 by
// contract.
//
// When includeBuffer is set the in-progress stroke is stamped too, at the
// current brush setting, matching what the overlay shows.
func Rasterize(snap state.Snapshot, includeBuffer bool) *image.Gray {
	dc := gg.NewContext(snap.Width, snap.Height)
	dc.ClearWithColor(gg.Black)
	dc.SetColor(color.White)
	stampAll(dc, snap, includeBuffer)

	rgba := dc.Image().(*image.RGBA)
	gray := image.NewGray(rgba.Bounds())
	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			// Strokes are white on black, so any channel carries the
			// coverage value.
			gray.SetGray(x, y, color.Gray{Y: rgba.RGBAAt(x, y).R})
		}
	}
	return gray
}

// Overlay renders the same strokes at native resolution in the translucent
// indicator color. It is presentation only; the widget scales it to the
// display size.
func Overlay(snap state.Snapshot, indicator color.Color) *image.RGBA {
	dc := gg.NewContext(snap.Width, snap.Height)
	dc.SetColor(indicator)
	stampAll(dc, snap, true)
	return dc.Image().(*image.RGBA)
}

func stampAll(dc *gg.Context, snap state.Snapshot, includeBuffer bool) {
	for _, s := range snap.Strokes {
		stamp(dc, s.Points, s.Diameter)
	}
	if includeBuffer && len(snap.Buffer) > 0 {
		stamp(dc, snap.Buffer, snap.Brush)
	}
}

// stamp draws one thick path with round caps and joins. Both the overlay and
// the mask go through here so the two stay pixel-identical in shape.
func stamp(dc *gg.Context, pts []state.Point, diameter int) {
	if len(pts) == 0 {
		return
	}
	if len(pts) == 1 {
		dc.DrawCircle(pts[0].X, pts[0].Y, float64(diameter)/2)
		if err := dc.Fill(); err != nil {
			log.Printf("mask: fill failed: %v", err)
		}
		return
	}
	dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.SetStroke(gg.RoundStroke().WithWidth(float64(diameter)))
	if err := dc.Stroke(); err != nil {
		log.Printf("mask: stroke failed: %v", err)
	}
}

// RemoveCount reports how many mask pixels are marked for removal, using the
// service's binarization threshold.
func RemoveCount(m *image.Gray) int {
	n := 0
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if m.GrayAt(x, y).Y > 127 {
				n++
			}
		}
	}
	return n
}
