package export

import (
	"image"
	"image/png"
	"io"
)

// WritePNG encodes img losslessly to w. Used for saving the processed
// result.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
