// Package codec - decode and encode between compressed image bytes
// (JPEG, PNG, WebP) and raw pixel buffers. The compositing core never
// touches encoded bytes itself; it delegates to this package.
package codec

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/chai2010/webp"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"

	"github.com/pixelforge/compositor/pixel"
)

// ErrDecode reports an input buffer the codec could not parse.
var ErrDecode = errors.New("decode failed")

// Encoded output format names.
const (
	FormatRaw  = "raw"
	FormatJPG  = "jpg"
	FormatPNG  = "png"
	FormatWebP = "webp"
)

// Decode parses an encoded JPEG, PNG, or WebP buffer into a pixel
// buffer. Grayscale sources decode to GRAY, opaque color to RGB, and
// alpha-bearing color to RGBA; 16-bit grayscale PNG keeps its depth.
func Decode(data []byte) (*pixel.Image, error) {
	m, err := decodeImage(data)
	if err != nil {
		return nil, err
	}
	return FromImage(m), nil
}

// DecodeThumbnail decodes like Decode but bounds the result to
// maxWidth×maxHeight, downscaling with aspect preserved when the source
// is larger.
func DecodeThumbnail(data []byte, maxWidth, maxHeight int) (*pixel.Image, error) {
	m, err := decodeImage(data)
	if err != nil {
		return nil, err
	}
	m = resize.Thumbnail(uint(maxWidth), uint(maxHeight), m, resize.Bilinear)
	return FromImage(m), nil
}

func decodeImage(data []byte) (image.Image, error) {
	r := bytes.NewReader(data)
	switch {
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xD8:
		m, err := jpeg.Decode(r)
		return m, errors.Wrap(wrapDecode(err), "jpeg")
	case len(data) >= 8 && bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		m, err := png.Decode(r)
		return m, errors.Wrap(wrapDecode(err), "png")
	case len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		m, err := webp.Decode(r)
		return m, errors.Wrap(wrapDecode(err), "webp")
	}
	return nil, errors.Wrap(ErrDecode, "unrecognized image signature")
}

func wrapDecode(err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(ErrDecode, err.Error())
}

// FromImage converts a decoded Go image into a pixel buffer.
func FromImage(m image.Image) *pixel.Image {
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()

	switch src := m.(type) {
	case *image.Gray:
		out := pixel.New(w, h, pixel.Gray, pixel.Uint8)
		for y := 0; y < h; y++ {
			copy(out.Data[y*w:(y+1)*w], src.Pix[y*src.Stride:y*src.Stride+w])
		}
		return out
	case *image.Gray16:
		out := pixel.New(w, h, pixel.Gray, pixel.Uint16)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.SetElem(y*w+x, float32(src.Gray16At(b.Min.X+x, b.Min.Y+y).Y))
			}
		}
		return out
	}

	opaque := true
	if o, ok := m.(interface{ Opaque() bool }); ok {
		opaque = o.Opaque()
	}
	format := pixel.RGBA
	if opaque {
		format = pixel.RGB
	}
	ch := format.Channels()
	out := pixel.New(w, h, format, pixel.Uint8)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(m.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i := (y*w + x) * ch
			out.Data[i] = c.R
			out.Data[i+1] = c.G
			out.Data[i+2] = c.B
			if !opaque {
				out.Data[i+3] = c.A
			}
		}
	}
	return out
}

// ToImage converts a pixel buffer into a Go image for encoding:
// grayscale to image.Gray, everything else to NRGBA. Non-8-bit buffers
// are rescaled to 8 bits first.
func ToImage(img *pixel.Image) (image.Image, error) {
	img = pixel.ConvertElem(img, pixel.Uint8)
	w, h := img.Width, img.Height

	if img.Format == pixel.Gray {
		out := image.NewGray(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			copy(out.Pix[y*out.Stride:y*out.Stride+w], img.Data[y*w:(y+1)*w])
		}
		return out, nil
	}

	rgba, err := pixel.Convert(img, pixel.RGBA)
	if err != nil {
		return nil, err
	}
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+w*4], rgba.Data[y*w*4:(y+1)*w*4])
	}
	return out, nil
}

// Encode serializes the pixel buffer to the named format. Quality
// applies to the lossy formats and is expected in 1..100.
func Encode(img *pixel.Image, format string, quality int) ([]byte, error) {
	m, err := ToImage(img)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	switch format {
	case FormatJPG, "jpeg":
		err = jpeg.Encode(&buf, m, &jpeg.Options{Quality: quality})
	case FormatPNG:
		err = png.Encode(&buf, m)
	case FormatWebP:
		err = webp.Encode(&buf, m, &webp.Options{Quality: float32(quality)})
	default:
		return nil, errors.Errorf("unsupported encode format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s", format)
	}
	return buf.Bytes(), nil
}
