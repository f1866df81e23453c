package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/jung-kurt/gofpdf"

	"MaskPad/internal/state"
)

// Report writes a one-stop PDF of the editing session: the source image, the
// rasterized mask, the processed result if one exists, and a stroke summary.
func Report(path string, src image.Image, mask image.Image, result image.Image, strokes []state.Stroke) error {
	p := gofpdf.New("P", "mm", "A4", "")
	p.SetFont("Helvetica", "", 11)

	addImagePage(p, "source", "Source image", src)
	addImagePage(p, "mask", "Removal mask", mask)
	if result != nil {
		addImagePage(p, "result", "Inpainted result", result)
	}

	p.AddPage()
	p.Cell(0, 8, fmt.Sprintf("Strokes: %d", len(strokes)))
	p.Ln(10)
	for i, s := range strokes {
		p.Cell(0, 6, fmt.Sprintf("%d: %d points, diameter %d px, drawn %s",
			i+1, len(s.Points), s.Diameter, s.Time.Format("15:04:05")))
		p.Ln(6)
	}

	return p.OutputFileAndClose(path)
}

func addImagePage(p *gofpdf.Fpdf, name, title string, img image.Image) {
	if img == nil {
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		p.SetError(err)
		return
	}

	p.AddPage()
	p.Cell(0, 8, title)
	p.Ln(10)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader(name, opts, &buf)

	// Fit to the printable width, preserving aspect ratio.
	b := img.Bounds()
	const maxW = 190.0
	w := maxW
	h := maxW * float64(b.Dy()) / float64(b.Dx())
	p.ImageOptions(name, 10, p.GetY(), w, h, false, opts, 0, "")
}
