package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"MaskPad/internal/input"
	"MaskPad/internal/mask"
	"MaskPad/internal/state"
)

// Indicator colors for the feedback layer. The overlay is a visualization
// aid only; the exported mask is rasterized separately.
var (
	overlayColor = color.NRGBA{R: 255, G: 40, B: 40, A: 96}
	cursorColor  = color.NRGBA{R: 255, G: 40, B: 40, A: 200}
)

// MaskWidget shows the immutable base image with the stroke overlay on top
// and feeds pointer/touch events into the input controller. It never mutates
// session state directly.
type MaskWidget struct {
	widget.BaseWidget
	session    *state.Session
	controller *input.Controller

	baseImage image.Image

	// touchHeld mirrors the controller's gesture arbitration so drag motion
	// can be attributed to the device that started it.
	touchHeld bool

	hovering bool
	hoverPos fyne.Position
}

var _ fyne.Widget = (*MaskWidget)(nil)
var _ fyne.Draggable = (*MaskWidget)(nil)
var _ desktop.Mouseable = (*MaskWidget)(nil)
var _ desktop.Hoverable = (*MaskWidget)(nil)
var _ mobile.Touchable = (*MaskWidget)(nil)

func NewMaskWidget(session *state.Session, controller *input.Controller) *MaskWidget {
	w := &MaskWidget{
		session:    session,
		controller: controller,
	}
	w.ExtendBaseWidget(w)
	session.Subscribe(w.Refresh)
	return w
}

// SetBaseImage swaps in a newly loaded source image. The caller is expected
// to reset the session alongside.
func (w *MaskWidget) SetBaseImage(img image.Image) {
	w.baseImage = img
	w.Refresh()
}

// --- mouse events ---

func (w *MaskWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		w.controller.Down(input.SourceMouse, float64(e.Position.X), float64(e.Position.Y))
	}
}

func (w *MaskWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		w.controller.Up(input.SourceMouse, float64(e.Position.X), float64(e.Position.Y))
	}
}

func (w *MaskWidget) MouseIn(e *desktop.MouseEvent) {
	w.hovering = true
	w.hoverPos = e.Position
	w.Refresh()
}

func (w *MaskWidget) MouseMoved(e *desktop.MouseEvent) {
	w.hovering = true
	w.hoverPos = e.Position
	w.Refresh()
}

func (w *MaskWidget) MouseOut() {
	w.hovering = false
	// Leaving the surface commits the stroke rather than discarding it.
	w.controller.Leave(input.SourceMouse)
	w.Refresh()
}

// --- touch events ---

func (w *MaskWidget) TouchDown(e *mobile.TouchEvent) {
	w.touchHeld = true
	w.controller.Down(input.SourceTouch, float64(e.Position.X), float64(e.Position.Y))
}

func (w *MaskWidget) TouchUp(e *mobile.TouchEvent) {
	w.touchHeld = false
	w.controller.Up(input.SourceTouch, float64(e.Position.X), float64(e.Position.Y))
}

func (w *MaskWidget) TouchCancel(e *mobile.TouchEvent) {
	w.touchHeld = false
	w.controller.Cancel(input.SourceTouch)
}

// --- drag motion (both devices deliver movement here) ---

func (w *MaskWidget) Dragged(e *fyne.DragEvent) {
	src := input.SourceMouse
	if w.touchHeld {
		src = input.SourceTouch
	}
	w.hoverPos = e.Position
	w.controller.Move(src, float64(e.Position.X), float64(e.Position.Y))
}

func (w *MaskWidget) DragEnd() {}

func (w *MaskWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &maskWidgetRenderer{widget: w}
	r.base = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	r.base.FillMode = canvas.ImageFillStretch
	r.overlay = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	r.overlay.FillMode = canvas.ImageFillStretch
	r.cursor = canvas.NewCircle(color.Transparent)
	r.cursor.StrokeColor = cursorColor
	r.cursor.StrokeWidth = 2
	r.cursor.Hidden = true
	return r
}

type maskWidgetRenderer struct {
	widget  *MaskWidget
	base    *canvas.Image
	overlay *canvas.Image
	cursor  *canvas.Circle
}

func (r *maskWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.base, r.overlay, r.cursor}
}

func (r *maskWidgetRenderer) Layout(size fyne.Size) {
	r.base.Resize(size)
	r.overlay.Resize(size)
	r.updateGeometry(size)
}

func (r *maskWidgetRenderer) updateGeometry(size fyne.Size) {
	nw, nh := r.widget.session.Size()
	r.widget.controller.SetGeometry(input.Geometry{
		DisplayW: float64(size.Width),
		DisplayH: float64(size.Height),
		NativeW:  float64(nw),
		NativeH:  float64(nh),
	})
}

func (r *maskWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(320, 240)
}

// Refresh fully rebuilds the overlay from the current session snapshot.
// Undo and redo can remove strokes out of append order, so incremental
// patching is never attempted.
func (r *maskWidgetRenderer) Refresh() {
	// A new base image changes the native size without a relayout, so the
	// transform is refreshed here too.
	r.updateGeometry(r.widget.Size())

	if r.widget.baseImage != nil {
		r.base.Image = r.widget.baseImage
	}
	snap := r.widget.session.Snapshot()
	if snap.Width > 0 && snap.Height > 0 {
		r.overlay.Image = mask.Overlay(snap, overlayColor)
	}
	r.base.Refresh()
	r.overlay.Refresh()
	r.refreshCursor()
}

// refreshCursor positions the brush-footprint ring under the pointer; it
// tracks hover independently of the drawing state and hides on leave.
func (r *maskWidgetRenderer) refreshCursor() {
	if !r.widget.hovering {
		r.cursor.Hidden = true
		r.cursor.Refresh()
		return
	}
	d := float32(r.widget.controller.Geometry().DisplayDiameter(r.widget.session.BrushDiameter()))
	r.cursor.Hidden = false
	r.cursor.Resize(fyne.NewSize(d, d))
	r.cursor.Move(fyne.NewPos(r.widget.hoverPos.X-d/2, r.widget.hoverPos.Y-d/2))
	r.cursor.Refresh()
}

func (r *maskWidgetRenderer) Destroy() {}
