package compose

import "github.com/pixelforge/compositor/pixel"

// Blend cross-fades two images: out = a·opacity + b·(1-opacity) per
// channel. Opacity is clamped to [0,1]. The output format is negotiated
// over the two input formats; when dimensions differ, both images are
// resized up to the elementwise maximum so neither is cropped.
func Blend(a, b *pixel.Image, opacity float64) (*pixel.Image, error) {
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}

	format := pixel.Negotiate([]pixel.Format{a.Format, b.Format})
	elem := widestElem([]*pixel.Image{a, b})
	ca, err := toCanvas(a, format, elem)
	if err != nil {
		return nil, err
	}
	cb, err := toCanvas(b, format, elem)
	if err != nil {
		return nil, err
	}

	w := max(ca.Width, cb.Width)
	h := max(ca.Height, cb.Height)
	ca = resizeIfNeeded(ca, w, h)
	cb = resizeIfNeeded(cb, w, h)

	out := pixel.New(w, h, format, elem)
	wa := float32(opacity)
	wb := 1 - wa
	n := w * h * format.Channels()
	for i := 0; i < n; i++ {
		out.SetElem(i, ca.ElemAt(i)*wa+cb.ElemAt(i)*wb)
	}
	return out, nil
}
