package ui

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"MaskPad/internal/config"
	"MaskPad/internal/export"
	"MaskPad/internal/input"
	"MaskPad/internal/mask"
	"MaskPad/internal/net"
	"MaskPad/internal/state"
)

// App wires the session, controller, widget and service client together and
// owns the main window.
type App struct {
	fyneApp fyne.App
	win     fyne.Window

	conf       config.Config
	session    *state.Session
	controller *input.Controller
	board      *MaskWidget
	client     *net.InpaintClient

	baseImage image.Image
	result    image.Image

	status  *widget.Label
	undoBtn *widget.Button
	redoBtn *widget.Button
}

// RunApp builds the UI and blocks until the window closes. imagePath, if
// non-empty, is opened immediately.
func RunApp(conf config.Config, serverURL, imagePath string) {
	a := &App{
		fyneApp: app.New(),
		conf:    conf,
		client:  net.NewInpaintClient(serverURL),
		status:  widget.NewLabel("Open an image to start"),
	}
	a.session = state.NewSession(0, 0)
	a.session.SetBrushDiameter(conf.BrushDiameter)
	a.controller = input.NewController(a.session)
	a.board = NewMaskWidget(a.session, a.controller)
	a.session.Subscribe(a.updateControls)

	a.win = a.fyneApp.NewWindow("MaskPad")
	a.win.Resize(fyne.NewSize(1024, 768))
	a.win.SetContent(container.NewBorder(a.makeToolbar(), a.status, nil, nil, a.board))

	if imagePath != "" {
		if err := a.openPath(imagePath); err != nil {
			log.Printf("Could not open %s: %v", imagePath, err)
		}
	}

	a.updateControls()
	a.win.ShowAndRun()
}

func (a *App) setStatus(text string) {
	a.status.SetText(text)
}

func (a *App) updateControls() {
	if a.undoBtn == nil || a.redoBtn == nil {
		return
	}
	if a.session.CanUndo() {
		a.undoBtn.Enable()
	} else {
		a.undoBtn.Disable()
	}
	if a.session.CanRedo() {
		a.redoBtn.Enable()
	} else {
		a.redoBtn.Disable()
	}
}

// openPath loads an image file and starts a fresh session for it. All
// stroke history from the previous image is discarded.
func (a *App) openPath(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("could not decode image: %w", err)
	}
	a.useBaseImage(img)
	a.setStatus(fmt.Sprintf("Loaded %s (%dx%d)", path, img.Bounds().Dx(), img.Bounds().Dy()))
	return nil
}

func (a *App) useBaseImage(img image.Image) {
	a.baseImage = img
	a.result = nil
	b := img.Bounds()
	a.session.Reset(b.Dx(), b.Dy())
	a.board.SetBaseImage(img)
}

func (a *App) openImage() {
	dialog.ShowFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		img, _, err := image.Decode(rc)
		if err != nil {
			dialog.ShowError(fmt.Errorf("could not decode image: %w", err), a.win)
			return
		}
		a.useBaseImage(img)
		a.setStatus(fmt.Sprintf("Loaded %s (%dx%d)", rc.URI().Name(), img.Bounds().Dx(), img.Bounds().Dy()))
	}, a.win)
}

// submit commits any in-progress stroke, rasterizes the mask and sends the
// job to the inpainting service. Submission runs off the UI thread; the
// session stays editable while a job is outstanding.
func (a *App) submit() {
	if a.baseImage == nil {
		a.setStatus("Load an image first")
		return
	}
	// Submit is an implicit commit, so the export is exactly the committed
	// history and never an ambiguous half-drawn stroke.
	a.session.CommitStroke()
	snap := a.session.Snapshot()
	if len(snap.Strokes) == 0 {
		a.setStatus("Draw over the area to remove first")
		return
	}

	m := mask.Rasterize(snap, false)
	log.Printf("Submitting mask with %d strokes, %d pixels marked for removal",
		len(snap.Strokes), mask.RemoveCount(m))
	a.setStatus("Processing...")

	src := a.baseImage
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if err := a.client.Health(ctx); err != nil {
			log.Printf("Service health check failed: %v", err)
			fyne.Do(func() { a.setStatus("Inpainting service unreachable") })
			return
		}
		result, err := a.client.Inpaint(ctx, src, m)
		fyne.Do(func() {
			if err != nil {
				log.Printf("Inpaint failed: %v", err)
				a.setStatus("Inpainting failed: " + err.Error())
				return
			}
			a.result = result
			a.setStatus("Done")
			a.showResult(result)
		})
	}()
}

// showResult opens the processed image in its own window with save and
// continue-editing actions. The result is opaque output; it is never fed
// back through the mask pipeline unless the user adopts it as a new base.
func (a *App) showResult(result image.Image) {
	win := a.fyneApp.NewWindow("Result")
	img := canvas.NewImageFromImage(result)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(640, 480))

	saveBtn := widget.NewButton("Save PNG", func() { a.saveResult(win) })
	adoptBtn := widget.NewButton("Edit further", func() {
		a.useBaseImage(result)
		a.setStatus("Result loaded as new base image")
		win.Close()
	})

	win.SetContent(container.NewBorder(nil, container.NewHBox(saveBtn, adoptBtn), nil, nil, img))
	win.Show()
}

func (a *App) saveResult(parent fyne.Window) {
	if a.result == nil {
		return
	}
	dialog.ShowFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := export.WritePNG(wc, a.result); err != nil {
			dialog.ShowError(err, parent)
			return
		}
		a.setStatus("Saved " + wc.URI().Name())
	}, parent)
}

func (a *App) exportReport() {
	if a.baseImage == nil {
		a.setStatus("Nothing to export yet")
		return
	}
	dialog.ShowFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		path := wc.URI().Path()
		wc.Close()

		snap := a.session.Snapshot()
		m := mask.Rasterize(snap, false)
		if err := export.Report(path, a.baseImage, m, a.result, snap.Strokes); err != nil {
			dialog.ShowError(fmt.Errorf("pdf export failed: %w", err), a.win)
			return
		}
		a.setStatus("Exported " + path)
	}, a.win)
}
