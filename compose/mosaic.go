package compose

import "github.com/pixelforge/compositor/pixel"

// Position places one input image at a fixed coordinate with no
// per-image transform. Index references the inputs slice.
type Position struct {
	Index int
	X, Y  float64
}

// Mosaic composites the inputs onto a width×height canvas at the given
// positions, in slice order. The canvas format is negotiated over all
// input formats and filled with background before placement. Positions
// referencing a missing input are skipped silently; fully off-canvas
// placements leave the canvas untouched.
func Mosaic(inputs []*pixel.Image, width, height int, background pixel.Color,
	positions []Position, normalized bool) (*pixel.Image, error) {

	format := pixel.Negotiate(inputFormats(inputs))
	elem := widestElem(inputs)
	canvas := pixel.NewFilled(width, height, format, elem, background.Resolve(format, elem))

	// Clip and convert each placement off the canvas first: that work is
	// pure and may run in parallel, while the blits below stay sequential
	// so later positions overwrite earlier ones deterministically.
	type placement struct {
		tile       *pixel.Image
		dstX, dstY int
		err        error
	}
	placements := make([]placement, len(positions))
	parallelEach(len(positions), func(i int) {
		pos := positions[i]
		if pos.Index < 0 || pos.Index >= len(inputs) {
			return
		}
		img := inputs[pos.Index]
		x := resolvePosition(pos.X, width, normalized)
		y := resolvePosition(pos.Y, height, normalized)
		if x >= width || y >= height || x+img.Width <= 0 || y+img.Height <= 0 {
			return
		}
		srcX := max(0, -x)
		srcY := max(0, -y)
		dstX := max(0, x)
		dstY := max(0, y)
		w := min(img.Width-srcX, width-dstX)
		h := min(img.Height-srcY, height-dstY)
		if w <= 0 || h <= 0 {
			return
		}
		region := pixel.SubImage(img, srcX, srcY, w, h)
		tile, err := toCanvas(region, format, elem)
		placements[i] = placement{tile: tile, dstX: dstX, dstY: dstY, err: err}
	})

	for _, p := range placements {
		if p.err != nil {
			return nil, p.err
		}
		if p.tile == nil {
			continue
		}
		pixel.CopyRegion(canvas, p.dstX, p.dstY, p.tile, 0, 0, p.tile.Width, p.tile.Height)
	}
	return canvas, nil
}
