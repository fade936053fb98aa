package compose

import (
	"github.com/pkg/errors"

	"github.com/pixelforge/compositor/pixel"
	"github.com/pixelforge/compositor/transform"
)

// Direction selects the concatenation axis and ordering.
type Direction string

const (
	// DirectionRight lays tiles out left to right in input order.
	DirectionRight Direction = "right"
	// DirectionLeft builds the right-direction strip and mirrors it.
	DirectionLeft Direction = "left"
	// DirectionDown stacks tiles top to bottom in input order.
	DirectionDown Direction = "down"
	// DirectionUp reverses the tile order before stacking, so the first
	// input ends up at the bottom. (The final image is not mirrored.)
	DirectionUp Direction = "up"
)

// Strategy selects how tiles are brought to a common cross-axis size.
type Strategy string

const (
	// StrategyResize scales each tile, preserving aspect ratio, until its
	// cross-axis dimension matches the largest input.
	StrategyResize Strategy = "resize"
	// StrategyPadStart pads before the tile (top or left).
	StrategyPadStart Strategy = "pad-start"
	// StrategyPadEnd pads after the tile (bottom or right).
	StrategyPadEnd Strategy = "pad-end"
	// StrategyPadBoth splits the padding; an odd pixel goes to the end.
	StrategyPadBoth Strategy = "pad-both"
)

// Concat joins the images along one axis. Horizontal directions share
// the maximum input height, vertical directions the maximum width; each
// tile is resized or padded with padColor to that common size first. All
// tiles are converted to the format negotiated over every input.
func Concat(inputs []*pixel.Image, direction Direction, strategy Strategy,
	padColor pixel.Color) (*pixel.Image, error) {

	if len(inputs) == 0 {
		return nil, errors.New("concat requires at least one image")
	}
	switch direction {
	case DirectionRight, DirectionLeft, DirectionUp, DirectionDown:
	default:
		return nil, errors.Wrapf(transform.ErrUnknownOperator, "direction %q", direction)
	}
	switch strategy {
	case StrategyResize, StrategyPadStart, StrategyPadEnd, StrategyPadBoth:
	default:
		return nil, errors.Wrapf(transform.ErrUnknownOperator, "strategy %q", strategy)
	}

	format := pixel.Negotiate(inputFormats(inputs))
	elem := widestElem(inputs)

	horizontal := direction == DirectionRight || direction == DirectionLeft
	base := 0
	for _, im := range inputs {
		if horizontal {
			base = max(base, im.Height)
		} else {
			base = max(base, im.Width)
		}
	}

	tiles := make([]*pixel.Image, len(inputs))
	for i, im := range inputs {
		t, err := toCanvas(im, format, elem)
		if err != nil {
			return nil, err
		}
		tiles[i] = fitTile(t, base, horizontal, strategy, padColor)
	}

	if direction == DirectionUp {
		for i, j := 0, len(tiles)-1; i < j; i, j = i+1, j-1 {
			tiles[i], tiles[j] = tiles[j], tiles[i]
		}
	}

	var out *pixel.Image
	if horizontal {
		total := 0
		for _, t := range tiles {
			total += t.Width
		}
		out = pixel.New(total, base, format, elem)
		x := 0
		for _, t := range tiles {
			pixel.CopyRegion(out, x, 0, t, 0, 0, t.Width, t.Height)
			x += t.Width
		}
		if direction == DirectionLeft {
			out = flipHorizontal(out)
		}
	} else {
		total := 0
		for _, t := range tiles {
			total += t.Height
		}
		out = pixel.New(base, total, format, elem)
		y := 0
		for _, t := range tiles {
			pixel.CopyRegion(out, 0, y, t, 0, 0, t.Width, t.Height)
			y += t.Height
		}
	}
	return out, nil
}

// fitTile brings one tile to the common cross-axis size.
func fitTile(t *pixel.Image, base int, horizontal bool, strategy Strategy,
	padColor pixel.Color) *pixel.Image {

	if strategy == StrategyResize {
		if horizontal {
			scale := float64(base) / float64(t.Height)
			return resizeIfNeeded(t, max(1, int(float64(t.Width)*scale)), base)
		}
		scale := float64(base) / float64(t.Width)
		return resizeIfNeeded(t, base, max(1, int(float64(t.Height)*scale)))
	}

	delta := base - t.Height
	if !horizontal {
		delta = base - t.Width
	}
	if delta <= 0 {
		return t
	}
	var before, after int
	switch strategy {
	case StrategyPadStart:
		before = delta
	case StrategyPadEnd:
		after = delta
	case StrategyPadBoth:
		before = delta / 2
		after = delta - before
	}
	if horizontal {
		return transform.Pad(t, before, after, 0, 0, padColor)
	}
	return transform.Pad(t, 0, 0, before, after, padColor)
}

func flipHorizontal(img *pixel.Image) *pixel.Image {
	out := pixel.New(img.Width, img.Height, img.Format, img.Elem)
	ps := img.PixelSize()
	for y := 0; y < img.Height; y++ {
		row := y * img.Width
		for x := 0; x < img.Width; x++ {
			so := (row + img.Width - 1 - x) * ps
			do := (row + x) * ps
			copy(out.Data[do:do+ps], img.Data[so:so+ps])
		}
	}
	return out
}
