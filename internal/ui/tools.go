package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"MaskPad/internal/state"
)

// makeToolbar assembles the top control strip: file actions, undo/redo/clear,
// the brush size slider and the submit action. Undo and redo enablement
// follows the session's CanUndo/CanRedo predicates.
func (a *App) makeToolbar() fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), a.openImage),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), a.exportReport),
	)

	a.undoBtn = widget.NewButtonWithIcon("", theme.ContentUndoIcon(), a.session.Undo)
	a.redoBtn = widget.NewButtonWithIcon("", theme.ContentRedoIcon(), a.session.Redo)
	clearBtn := widget.NewButtonWithIcon("", theme.DeleteIcon(), a.session.Clear)

	sizeLabel := widget.NewLabel(fmt.Sprintf("%d px", a.session.BrushDiameter()))
	slider := widget.NewSlider(state.MinBrushDiameter, state.MaxBrushDiameter)
	slider.SetValue(float64(a.session.BrushDiameter()))
	slider.OnChanged = func(val float64) {
		a.session.SetBrushDiameter(int(val))
		sizeLabel.SetText(fmt.Sprintf("%d px", a.session.BrushDiameter()))
	}
	sliderBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), slider)

	submitBtn := widget.NewButtonWithIcon("Remove", theme.UploadIcon(), a.submit)
	submitBtn.Importance = widget.HighImportance

	return container.NewHBox(
		tb,
		widget.NewSeparator(),
		a.undoBtn,
		a.redoBtn,
		clearBtn,
		widget.NewSeparator(),
		widget.NewLabel("Brush:"),
		sliderBox,
		sizeLabel,
		layout.NewSpacer(),
		submitBtn,
	)
}
