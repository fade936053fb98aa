package transform

import (
	"math"

	"github.com/pixelforge/compositor/pixel"
)

// Pad surrounds the image with a constant border of the given widths.
// The pad color is resolved in the image's own channel order. Negative
// widths are treated as zero.
func Pad(img *pixel.Image, top, bottom, left, right int, color pixel.Color) *pixel.Image {
	top = max(top, 0)
	bottom = max(bottom, 0)
	left = max(left, 0)
	right = max(right, 0)
	if top == 0 && bottom == 0 && left == 0 && right == 0 {
		return img.Clone()
	}
	out := pixel.NewFilled(img.Width+left+right, img.Height+top+bottom,
		img.Format, img.Elem, color.Resolve(img.Format, img.Elem))
	pixel.CopyRegion(out, left, top, img, 0, 0, img.Width, img.Height)
	return out
}

// Crop extracts a rectangular region. Coordinates and dimensions are
// absolute pixels, or fractions of the source size when normalized is
// set. The region is clamped so at least one pixel inside the source
// always survives.
func Crop(img *pixel.Image, x, y, width, height float64, normalized bool) *pixel.Image {
	w, h := img.Width, img.Height
	px, py, pw, ph := int(math.Round(x)), int(math.Round(y)), int(math.Round(width)), int(math.Round(height))
	if normalized {
		px = int(math.Round(x * float64(w)))
		py = int(math.Round(y * float64(h)))
		pw = int(math.Round(width * float64(w)))
		ph = int(math.Round(height * float64(h)))
	}
	px = clampInt(px, 0, w-1)
	py = clampInt(py, 0, h-1)
	pw = clampInt(pw, 1, w-px)
	ph = clampInt(ph, 1, h-py)
	return pixel.SubImage(img, px, py, pw, ph)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
