// Package pixel - raw pixel buffer model shared by every compositing
// operation: channel formats, element types, and the conversion matrix
// between channel layouts.
package pixel

import "github.com/pkg/errors"

// Format identifies the channel layout of a pixel buffer.
type Format string

const (
	// Gray is single-channel luminance.
	Gray Format = "GRAY"
	// BGR is 3-channel blue-green-red order.
	BGR Format = "BGR"
	// RGB is 3-channel red-green-blue order.
	RGB Format = "RGB"
	// BGRA is 4-channel blue-green-red-alpha order.
	BGRA Format = "BGRA"
	// RGBA is 4-channel red-green-blue-alpha order.
	RGBA Format = "RGBA"
)

// Channels returns the number of interleaved channels per pixel, or 0 for
// an unrecognized format.
func (f Format) Channels() int {
	switch f {
	case Gray:
		return 1
	case BGR, RGB:
		return 3
	case BGRA, RGBA:
		return 4
	}
	return 0
}

// HasAlpha reports whether the format carries an alpha channel.
func (f Format) HasAlpha() bool {
	return f == BGRA || f == RGBA
}

// Valid reports whether f is one of the five supported layouts.
func (f Format) Valid() bool {
	return f.Channels() != 0
}

// ElemType identifies the storage type of a single channel element.
type ElemType int

const (
	// Uint8 stores each element as an 8-bit unsigned integer.
	Uint8 ElemType = iota
	// Uint16 stores each element as a little-endian 16-bit unsigned integer.
	Uint16
	// Float32 stores each element as a little-endian IEEE-754 float.
	Float32
)

// Size returns the element width in bytes.
func (e ElemType) Size() int {
	switch e {
	case Uint16:
		return 2
	case Float32:
		return 4
	}
	return 1
}

// Max returns the full-scale value for the element type. Float32 buffers
// are normalized to [0,1].
func (e ElemType) Max() float32 {
	switch e {
	case Uint16:
		return 65535
	case Float32:
		return 1
	}
	return 255
}

// Image is a rectangular interleaved pixel buffer.
//
// Inputs handed to the engine are treated as borrowed read-only views;
// every transform returns a new owned Image and never mutates its source.
type Image struct {
	// Width and Height are the buffer dimensions in pixels. Both > 0.
	Width, Height int
	// Format is the channel layout of Data.
	Format Format
	// Elem is the storage type of each channel element.
	Elem ElemType
	// Data holds Width*Height*Channels interleaved elements, row-major.
	Data []byte
}

// New allocates a zeroed image of the given geometry.
func New(width, height int, format Format, elem ElemType) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Format: format,
		Elem:   elem,
		Data:   make([]byte, width*height*format.Channels()*elem.Size()),
	}
}

// NewFilled allocates an image filled with the given color. The color is
// laid out in the image's own channel order, one value per channel.
func NewFilled(width, height int, format Format, elem ElemType, color []float32) *Image {
	im := New(width, height, format, elem)
	im.Fill(color)
	return im
}

// PixelSize returns the byte width of one pixel.
func (im *Image) PixelSize() int {
	return im.Format.Channels() * im.Elem.Size()
}

// Stride returns the byte width of one row.
func (im *Image) Stride() int {
	return im.Width * im.PixelSize()
}

// Validate checks the structural invariants of the buffer: positive
// dimensions, a known format, and a data length matching the geometry.
func (im *Image) Validate() error {
	if im == nil {
		return errors.New("nil image")
	}
	if im.Width <= 0 || im.Height <= 0 {
		return errors.Errorf("invalid image dimensions %dx%d", im.Width, im.Height)
	}
	if !im.Format.Valid() {
		return errors.Errorf("unknown channel format %q", im.Format)
	}
	if want := im.Width * im.Height * im.PixelSize(); len(im.Data) != want {
		return errors.Errorf("data length %d does not match %dx%d %s buffer (want %d)",
			len(im.Data), im.Width, im.Height, im.Format, want)
	}
	return nil
}

// Clone returns a deep copy of the image.
func (im *Image) Clone() *Image {
	out := *im
	out.Data = make([]byte, len(im.Data))
	copy(out.Data, im.Data)
	return &out
}

// Fill overwrites every pixel with the given per-channel values. Values
// beyond the channel count are ignored; missing values default to zero.
func (im *Image) Fill(color []float32) {
	ch := im.Format.Channels()
	// Write the first pixel, then replicate it row by row.
	for c := 0; c < ch; c++ {
		v := float32(0)
		if c < len(color) {
			v = color[c]
		}
		im.SetElem(c, v)
	}
	row := im.Data[:im.Stride()]
	for off := im.PixelSize(); off < len(row); off *= 2 {
		copy(row[off:], row[:off])
	}
	for y := 1; y < im.Height; y++ {
		copy(im.Data[y*im.Stride():], row)
	}
}
