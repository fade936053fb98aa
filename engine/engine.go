// Package engine - the request boundary of the compositor. Callers fill
// a request struct per operation; the engine validates it, decodes any
// encoded inputs, runs the core operation, optionally encodes the
// result, and reports per-stage timings.
package engine

import (
	"time"

	"github.com/pkg/errors"

	"github.com/pixelforge/compositor/codec"
	"github.com/pixelforge/compositor/pixel"
)

// ErrInvalidArgument reports a request rejected before any pixel work
// ran. No partial output exists when it is returned.
var ErrInvalidArgument = errors.New("invalid argument")

// DefaultQuality is used for lossy output encoding when the request
// leaves Quality unset.
const DefaultQuality = 90

// Input is one source image: either an already decoded pixel buffer or
// encoded bytes (JPEG, PNG, WebP) the engine decodes itself. Exactly one
// of the two must be set.
type Input struct {
	Image *pixel.Image
	Data  []byte
}

// Output selects how the result is returned. An empty Format means raw.
type Output struct {
	// Format is raw, jpg, png, or webp.
	Format string
	// Quality applies to lossy formats, 1..100. Zero means DefaultQuality.
	Quality int
}

// Timing reports wall-clock milliseconds spent in each stage of a call.
type Timing struct {
	// ConvertMs covers input decode and format conversion.
	ConvertMs float64
	// TaskMs covers the core compositing or transform work.
	TaskMs float64
	// EncodeMs covers output encoding; zero for raw output.
	EncodeMs float64
}

// Result is the outcome of an engine call: a raw pixel buffer or encoded
// bytes depending on the request's Output, plus dimensions and timings.
type Result struct {
	// Image is set for raw output.
	Image *pixel.Image
	// Data is set for encoded output.
	Data []byte

	Width  int
	Height int
	Format pixel.Format
	Timing Timing
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}

func validateOutput(out Output) error {
	switch out.Format {
	case "", codec.FormatRaw, codec.FormatJPG, "jpeg", codec.FormatPNG, codec.FormatWebP:
	default:
		return errors.Wrapf(ErrInvalidArgument, "output format %q", out.Format)
	}
	if out.Quality != 0 && (out.Quality < 1 || out.Quality > 100) {
		return errors.Wrapf(ErrInvalidArgument, "quality %d out of range 1..100", out.Quality)
	}
	return nil
}

func validateInput(in Input) error {
	if (in.Image == nil) == (in.Data == nil) {
		return errors.Wrap(ErrInvalidArgument, "input needs exactly one of Image or Data")
	}
	if in.Image != nil {
		if err := in.Image.Validate(); err != nil {
			return errors.Wrap(ErrInvalidArgument, err.Error())
		}
	}
	return nil
}

func validateInputs(inputs []Input) error {
	if len(inputs) == 0 {
		return errors.Wrap(ErrInvalidArgument, "no input images")
	}
	for i, in := range inputs {
		if err := validateInput(in); err != nil {
			return errors.Wrapf(err, "input %d", i)
		}
	}
	return nil
}

func validateCanvas(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Wrapf(ErrInvalidArgument, "canvas %dx%d", width, height)
	}
	return nil
}

// resolveInputs decodes encoded inputs into pixel buffers. Already
// decoded inputs pass through untouched.
func resolveInputs(inputs []Input) ([]*pixel.Image, error) {
	images := make([]*pixel.Image, len(inputs))
	for i, in := range inputs {
		if in.Image != nil {
			images[i] = in.Image
			continue
		}
		img, err := codec.Decode(in.Data)
		if err != nil {
			return nil, errors.Wrapf(err, "input %d", i)
		}
		images[i] = img
	}
	return images, nil
}

// finish applies the output spec to the operation result and fills in
// the encode timing.
func finish(img *pixel.Image, out Output, timing Timing) (*Result, error) {
	res := &Result{
		Width:  img.Width,
		Height: img.Height,
		Format: img.Format,
		Timing: timing,
	}
	switch out.Format {
	case "", codec.FormatRaw:
		res.Image = img
		return res, nil
	}
	quality := out.Quality
	if quality == 0 {
		quality = DefaultQuality
	}
	start := time.Now()
	data, err := codec.Encode(img, out.Format, quality)
	if err != nil {
		return nil, err
	}
	res.Data = data
	res.Timing.EncodeMs = elapsedMs(start)
	return res, nil
}
