package compose

import (
	"sort"

	"github.com/pixelforge/compositor/pixel"
	"github.com/pixelforge/compositor/transform"
)

// Directive describes how one input image is transformed and placed on
// the canvas.
type Directive struct {
	// Index references the inputs slice. Out-of-range indices cause the
	// directive to be skipped, not an error.
	Index int
	// X, Y position the transformed image's top-left corner, in absolute
	// pixels or normalized 0..1 depending on the call's normalized flag.
	X, Y float64
	// Width, Height are the resize target. Zero or negative means keep
	// the original; with exactly one given the other preserves aspect.
	Width, Height int
	// Rotation is the angle in degrees, positive counter-clockwise.
	Rotation float64
	// Z controls paint order: lower paints first, higher occludes.
	Z int
}

// Layout composites the inputs onto a width×height canvas following the
// directives: each referenced image is resized, rotated, and placed in
// ascending z order. Directives with equal z keep their relative order.
//
// The resize/rotate stage touches no shared state and runs on worker
// goroutines when more than four directives participate; conversion and
// blitting onto the canvas always happen sequentially in z order, so
// later directives deterministically overwrite earlier ones.
func Layout(inputs []*pixel.Image, width, height int, background pixel.Color,
	directives []Directive, normalized bool) (*pixel.Image, error) {

	format := pixel.Negotiate(inputFormats(inputs))
	elem := widestElem(inputs)
	canvas := pixel.NewFilled(width, height, format, elem, background.Resolve(format, elem))

	ordered := make([]Directive, len(directives))
	copy(ordered, directives)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Z < ordered[j].Z })

	// Transform stage: pure per-directive work.
	transformed := make([]*pixel.Image, len(ordered))
	parallelEach(len(ordered), func(i int) {
		d := ordered[i]
		if d.Index < 0 || d.Index >= len(inputs) {
			return
		}
		transformed[i] = applyDirective(inputs[d.Index], d, background)
	})

	// Blit stage: sequential, ascending z.
	for i, img := range transformed {
		if img == nil {
			continue
		}
		tile, err := toCanvas(img, format, elem)
		if err != nil {
			return nil, err
		}
		x := resolvePosition(ordered[i].X, width, normalized)
		y := resolvePosition(ordered[i].Y, height, normalized)
		placeOnCanvas(canvas, tile, x, y)
	}
	return canvas, nil
}

// applyDirective runs the per-image pipeline: resize first, then rotate.
// The rotation border color is resolved in the image's own channel
// order; conversion to the canvas format happens later, at placement.
func applyDirective(img *pixel.Image, d Directive, background pixel.Color) *pixel.Image {
	out := img
	if d.Width > 0 || d.Height > 0 {
		w, h := transform.FitDimensions(img.Width, img.Height, d.Width, d.Height)
		out = transform.Resize(out, w, h)
	}
	if d.Rotation != 0 {
		out = transform.Rotate(out, d.Rotation, background)
	}
	return out
}
