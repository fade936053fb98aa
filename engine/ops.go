package engine

import (
	"time"

	"github.com/pkg/errors"

	"github.com/pixelforge/compositor/compose"
	"github.com/pixelforge/compositor/pixel"
	"github.com/pixelforge/compositor/transform"
)

// defaultBackground is black; malformed color specs fall back to it.
var defaultBackground = pixel.Color{0, 0, 0}

// MosaicRequest places inputs on a canvas at fixed positions.
type MosaicRequest struct {
	Inputs     []Input
	Width      int
	Height     int
	Background string // "#RRGGBB" or "rgb(r,g,b)", empty for black
	Positions  []compose.Position
	Normalized bool
	Output     Output
}

// Mosaic validates the request and runs the position-only compositor.
func Mosaic(req MosaicRequest) (*Result, error) {
	if err := validateInputs(req.Inputs); err != nil {
		return nil, err
	}
	if err := validateCanvas(req.Width, req.Height); err != nil {
		return nil, err
	}
	if err := validateOutput(req.Output); err != nil {
		return nil, err
	}

	var timing Timing
	start := time.Now()
	images, err := resolveInputs(req.Inputs)
	if err != nil {
		return nil, err
	}
	timing.ConvertMs = elapsedMs(start)

	start = time.Now()
	bg := pixel.ParseColorDefault(req.Background, defaultBackground)
	out, err := compose.Mosaic(images, req.Width, req.Height, bg, req.Positions, req.Normalized)
	if err != nil {
		return nil, err
	}
	timing.TaskMs = elapsedMs(start)
	return finish(out, req.Output, timing)
}

// Placement describes one image in a LayoutRequest. Unlike
// compose.Directive, ZIndex is optional: when nil it defaults to the
// placement's position in the slice, so untagged requests paint in
// submission order.
type Placement struct {
	Index    int
	X, Y     float64
	Width    int
	Height   int
	Rotation float64
	ZIndex   *int
}

// LayoutRequest places inputs on a canvas with per-image resize,
// rotation, and z-ordering.
type LayoutRequest struct {
	Inputs     []Input
	Width      int
	Height     int
	Background string
	Placements []Placement
	Normalized bool
	Output     Output
}

// Layout validates the request and runs the directive compositor.
func Layout(req LayoutRequest) (*Result, error) {
	if err := validateInputs(req.Inputs); err != nil {
		return nil, err
	}
	if err := validateCanvas(req.Width, req.Height); err != nil {
		return nil, err
	}
	if err := validateOutput(req.Output); err != nil {
		return nil, err
	}

	var timing Timing
	start := time.Now()
	images, err := resolveInputs(req.Inputs)
	if err != nil {
		return nil, err
	}
	timing.ConvertMs = elapsedMs(start)

	directives := make([]compose.Directive, len(req.Placements))
	for i, p := range req.Placements {
		z := i
		if p.ZIndex != nil {
			z = *p.ZIndex
		}
		directives[i] = compose.Directive{
			Index:    p.Index,
			X:        p.X,
			Y:        p.Y,
			Width:    p.Width,
			Height:   p.Height,
			Rotation: p.Rotation,
			Z:        z,
		}
	}

	start = time.Now()
	bg := pixel.ParseColorDefault(req.Background, defaultBackground)
	out, err := compose.Layout(images, req.Width, req.Height, bg, directives, req.Normalized)
	if err != nil {
		return nil, err
	}
	timing.TaskMs = elapsedMs(start)
	return finish(out, req.Output, timing)
}

// BlendRequest cross-fades two images.
type BlendRequest struct {
	A       Input
	B       Input
	Opacity float64 // weight of A, clamped to 0..1
	Output  Output
}

// Blend validates the request and runs the linear blend.
func Blend(req BlendRequest) (*Result, error) {
	if err := validateInput(req.A); err != nil {
		return nil, err
	}
	if err := validateInput(req.B); err != nil {
		return nil, err
	}
	if err := validateOutput(req.Output); err != nil {
		return nil, err
	}

	var timing Timing
	start := time.Now()
	images, err := resolveInputs([]Input{req.A, req.B})
	if err != nil {
		return nil, err
	}
	timing.ConvertMs = elapsedMs(start)

	start = time.Now()
	out, err := compose.Blend(images[0], images[1], req.Opacity)
	if err != nil {
		return nil, err
	}
	timing.TaskMs = elapsedMs(start)
	return finish(out, req.Output, timing)
}

// ConcatRequest joins images along one axis.
type ConcatRequest struct {
	Inputs    []Input
	Direction compose.Direction
	Strategy  compose.Strategy
	PadColor  string
	Output    Output
}

// Concat validates the request and runs the axis concatenation.
func Concat(req ConcatRequest) (*Result, error) {
	if err := validateInputs(req.Inputs); err != nil {
		return nil, err
	}
	if err := validateOutput(req.Output); err != nil {
		return nil, err
	}

	var timing Timing
	start := time.Now()
	images, err := resolveInputs(req.Inputs)
	if err != nil {
		return nil, err
	}
	timing.ConvertMs = elapsedMs(start)

	start = time.Now()
	pad := pixel.ParseColorDefault(req.PadColor, defaultBackground)
	out, err := compose.Concat(images, req.Direction, req.Strategy, pad)
	if err != nil {
		return nil, err
	}
	timing.TaskMs = elapsedMs(start)
	return finish(out, req.Output, timing)
}

// PadRequest surrounds one image with a constant border.
type PadRequest struct {
	Input  Input
	Top    int
	Bottom int
	Left   int
	Right  int
	Color  string
	Output Output
}

// Pad validates the request and applies the border.
func Pad(req PadRequest) (*Result, error) {
	return single(req.Input, req.Output, func(img *pixel.Image) (*pixel.Image, error) {
		c := pixel.ParseColorDefault(req.Color, defaultBackground)
		return transform.Pad(img, req.Top, req.Bottom, req.Left, req.Right, c), nil
	})
}

// RotateRequest rotates one image, enlarging the bounds as needed.
type RotateRequest struct {
	Input      Input
	Angle      float64 // degrees, positive counter-clockwise
	Background string
	Output     Output
}

// Rotate validates the request and applies the rotation.
func Rotate(req RotateRequest) (*Result, error) {
	return single(req.Input, req.Output, func(img *pixel.Image) (*pixel.Image, error) {
		bg := pixel.ParseColorDefault(req.Background, defaultBackground)
		return transform.Rotate(img, req.Angle, bg), nil
	})
}

// ResizeRequest scales one image. With only one of Width and Height set
// the other is derived from the source aspect ratio.
type ResizeRequest struct {
	Input  Input
	Width  int
	Height int
	Output Output
}

// Resize validates the request and applies the scale.
func Resize(req ResizeRequest) (*Result, error) {
	if req.Width <= 0 && req.Height <= 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "resize needs a width or a height")
	}
	return single(req.Input, req.Output, func(img *pixel.Image) (*pixel.Image, error) {
		w, h := transform.FitDimensions(img.Width, img.Height, req.Width, req.Height)
		return transform.Resize(img, w, h), nil
	})
}

// CropRequest extracts a region from one image.
type CropRequest struct {
	Input      Input
	X, Y       float64
	Width      float64
	Height     float64
	Normalized bool
	Output     Output
}

// Crop validates the request and extracts the region.
func Crop(req CropRequest) (*Result, error) {
	if req.Width <= 0 || req.Height <= 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "crop region is empty")
	}
	return single(req.Input, req.Output, func(img *pixel.Image) (*pixel.Image, error) {
		return transform.Crop(img, req.X, req.Y, req.Width, req.Height, req.Normalized), nil
	})
}

// FilterRequest applies a named kernel filter to one image.
type FilterRequest struct {
	Input      Input
	Operator   string
	KernelSize int
	Intensity  float64
	Output     Output
}

// Filter validates the request and applies the filter.
func Filter(req FilterRequest) (*Result, error) {
	return single(req.Input, req.Output, func(img *pixel.Image) (*pixel.Image, error) {
		return transform.Filter(img, req.Operator, req.KernelSize, req.Intensity)
	})
}

// single runs a one-input operation with the shared validate, decode,
// time, and encode plumbing.
func single(in Input, out Output, op func(*pixel.Image) (*pixel.Image, error)) (*Result, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := validateOutput(out); err != nil {
		return nil, err
	}

	var timing Timing
	start := time.Now()
	images, err := resolveInputs([]Input{in})
	if err != nil {
		return nil, err
	}
	timing.ConvertMs = elapsedMs(start)

	start = time.Now()
	result, err := op(images[0])
	if err != nil {
		return nil, err
	}
	timing.TaskMs = elapsedMs(start)
	return finish(result, out, timing)
}
