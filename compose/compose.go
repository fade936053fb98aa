// Package compose - multi-image composition: position mosaics, z-ordered
// layouts with per-image transforms, linear blending, and axis
// concatenation. All modes share the same format negotiation and
// conversion primitives, so mixed-format inputs always land on a single
// canvas format.
package compose

import (
	"math"
	"runtime"
	"sync"

	"github.com/pixelforge/compositor/pixel"
	"github.com/pixelforge/compositor/transform"
)

func resizeIfNeeded(img *pixel.Image, w, h int) *pixel.Image {
	if img.Width == w && img.Height == h {
		return img
	}
	return transform.Resize(img, w, h)
}

// parallelThreshold is the directive count above which the pure transform
// stage runs on worker goroutines. Blitting onto the canvas is always
// sequential in z order regardless of this.
const parallelThreshold = 4

// parallelEach runs fn(i) for i in [0,n). Small batches run inline to
// avoid goroutine overhead.
func parallelEach(n int, fn func(i int)) {
	if n <= parallelThreshold {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	idx := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range idx {
				fn(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		idx <- i
	}
	close(idx)
	wg.Wait()
}

// inputFormats collects the channel format of every participating image.
func inputFormats(inputs []*pixel.Image) []pixel.Format {
	formats := make([]pixel.Format, len(inputs))
	for i, im := range inputs {
		formats[i] = im.Format
	}
	return formats
}

// widestElem picks the highest-precision element type among the inputs so
// no participating image loses depth on the shared canvas.
func widestElem(inputs []*pixel.Image) pixel.ElemType {
	elem := pixel.Uint8
	for _, im := range inputs {
		switch {
		case im.Elem == pixel.Float32:
			return pixel.Float32
		case im.Elem == pixel.Uint16 && elem == pixel.Uint8:
			elem = pixel.Uint16
		}
	}
	return elem
}

// toCanvas converts an image to the canvas format and element type.
func toCanvas(img *pixel.Image, format pixel.Format, elem pixel.ElemType) (*pixel.Image, error) {
	out, err := pixel.Convert(img, format)
	if err != nil {
		return nil, err
	}
	return pixel.ConvertElem(out, elem), nil
}

// placeOnCanvas copies img onto canvas with its top-left corner at
// (x, y), clipping to the canvas bounds. Both must already share the
// canvas format and element type. Placements with no overlap are a no-op.
func placeOnCanvas(canvas, img *pixel.Image, x, y int) {
	if x >= canvas.Width || y >= canvas.Height {
		return
	}
	if x+img.Width <= 0 || y+img.Height <= 0 {
		return
	}
	srcX := max(0, -x)
	srcY := max(0, -y)
	dstX := max(0, x)
	dstY := max(0, y)
	w := min(img.Width-srcX, canvas.Width-dstX)
	h := min(img.Height-srcY, canvas.Height-dstY)
	if w <= 0 || h <= 0 {
		return
	}
	pixel.CopyRegion(canvas, dstX, dstY, img, srcX, srcY, w, h)
}

// resolvePosition maps a directive coordinate to canvas pixels.
func resolvePosition(v float64, extent int, normalized bool) int {
	if normalized {
		return int(math.Round(v * float64(extent)))
	}
	return int(math.Round(v))
}
