package production

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/comalice/adis/internal/primitives"
)

// PNGRenderer is the stdlib-only implementation of the core Renderer
// interface. It scales the grid to sizePx x sizePx with nearest-neighbor
// sampling (cells stay hard-edged) and encodes the result as PNG.
type PNGRenderer struct{}

// Render encodes the grid as a PNG image of the given pixel size.
func (r *PNGRenderer) Render(grid *primitives.Grid, sizePx int) ([]byte, error) {
	if sizePx < 1 {
		return nil, fmt.Errorf("%w: render size %d, must be >= 1", primitives.ErrConfig, sizePx)
	}

	resolution := grid.Resolution()
	img := image.NewRGBA(image.Rect(0, 0, sizePx, sizePx))
	for py := 0; py < sizePx; py++ {
		// Grid row index x maps to the vertical image axis.
		x := py * resolution / sizePx
		for px := 0; px < sizePx; px++ {
			y := px * resolution / sizePx
			c := grid.At(x, y)
			img.SetRGBA(px, py, color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xff})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}
	return buf.Bytes(), nil
}
