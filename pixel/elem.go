package pixel

import (
	"encoding/binary"
	"math"

	"github.com/chewxy/math32"
)

// ElemAt reads the i-th channel element of the buffer as a float32,
// regardless of the underlying element type.
func (im *Image) ElemAt(i int) float32 {
	switch im.Elem {
	case Uint16:
		return float32(binary.LittleEndian.Uint16(im.Data[i*2:]))
	case Float32:
		return math.Float32frombits(binary.LittleEndian.Uint32(im.Data[i*4:]))
	}
	return float32(im.Data[i])
}

// SetElem writes the i-th channel element, rounding and saturating to the
// element range for integer types. Float32 buffers store the value as is.
func (im *Image) SetElem(i int, v float32) {
	switch im.Elem {
	case Uint16:
		binary.LittleEndian.PutUint16(im.Data[i*2:], uint16(clamp(math32.Round(v), 0, 65535)))
	case Float32:
		binary.LittleEndian.PutUint32(im.Data[i*4:], math.Float32bits(v))
	default:
		im.Data[i] = uint8(clamp(math32.Round(v), 0, 255))
	}
}

// ConvertElem returns the image rescaled to the target element type,
// mapping full scale to full scale. Converting to the image's own element
// type returns the input unchanged with no copy.
func ConvertElem(img *Image, elem ElemType) *Image {
	if img.Elem == elem {
		return img
	}
	out := New(img.Width, img.Height, img.Format, elem)
	scale := elem.Max() / img.Elem.Max()
	n := img.Width * img.Height * img.Format.Channels()
	for i := 0; i < n; i++ {
		out.SetElem(i, img.ElemAt(i)*scale)
	}
	return out
}

// PixelIndex returns the element index of the first channel of pixel (x,y).
func (im *Image) PixelIndex(x, y int) int {
	return (y*im.Width + x) * im.Format.Channels()
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
