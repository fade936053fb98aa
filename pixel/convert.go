package pixel

import "fmt"

// BT.601 luma weights, matching what the engine historically produced for
// color-to-grayscale conversion.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Channel roles used to describe a format's element layout.
const (
	roleR = iota
	roleG
	roleB
	roleA
)

// layouts maps each color format to the role stored in each element slot.
var layouts = map[Format][]int{
	RGB:  {roleR, roleG, roleB},
	BGR:  {roleB, roleG, roleR},
	RGBA: {roleR, roleG, roleB, roleA},
	BGRA: {roleB, roleG, roleR, roleA},
}

// ConversionError reports a channel-format pair the converter does not
// support. It is fatal to the call that triggered it.
type ConversionError struct {
	From, To Format
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("unsupported channel format conversion %s -> %s", e.From, e.To)
}

type convKey struct {
	from, to Format
}

type convFunc func(*Image) *Image

// conversions holds one entry per ordered format pair, keyed by
// (from, to). Exhaustive over the 20 cross-format pairs; identity pairs
// never reach the table.
var conversions = map[convKey]convFunc{}

func init() {
	colors := []Format{BGR, RGB, BGRA, RGBA}
	for _, from := range colors {
		for _, to := range colors {
			if from != to {
				conversions[convKey{from, to}] = reorderConv(from, to)
			}
		}
		conversions[convKey{from, Gray}] = grayConv(from)
		conversions[convKey{Gray, from}] = colorizeConv(from)
	}
}

// Convert returns img laid out in the target format. Converting to the
// image's own format returns the input unchanged with no copy. Unknown
// pairs fail with a *ConversionError.
func Convert(img *Image, to Format) (*Image, error) {
	if img.Format == to {
		return img, nil
	}
	fn, ok := conversions[convKey{img.Format, to}]
	if !ok {
		return nil, &ConversionError{From: img.Format, To: to}
	}
	return fn(img), nil
}

// reorderConv builds a color-to-color conversion: channel permutation plus
// alpha drop or opaque alpha insertion.
func reorderConv(from, to Format) convFunc {
	src := layouts[from]
	dst := layouts[to]
	// For each destination slot, the source slot holding the same role,
	// or -1 when the source has no alpha to take it from.
	mapping := make([]int, len(dst))
	for d, role := range dst {
		mapping[d] = -1
		for s, r := range src {
			if r == role {
				mapping[d] = s
				break
			}
		}
	}
	return func(img *Image) *Image {
		out := New(img.Width, img.Height, to, img.Elem)
		opaque := img.Elem.Max()
		srcCh, dstCh := len(src), len(dst)
		n := img.Width * img.Height
		for p := 0; p < n; p++ {
			si, di := p*srcCh, p*dstCh
			for d, s := range mapping {
				if s < 0 {
					out.SetElem(di+d, opaque)
					continue
				}
				out.SetElem(di+d, img.ElemAt(si+s))
			}
		}
		return out
	}
}

// grayConv builds a color-to-grayscale conversion using BT.601 luma.
func grayConv(from Format) convFunc {
	src := layouts[from]
	var ri, gi, bi int
	for s, r := range src {
		switch r {
		case roleR:
			ri = s
		case roleG:
			gi = s
		case roleB:
			bi = s
		}
	}
	return func(img *Image) *Image {
		out := New(img.Width, img.Height, Gray, img.Elem)
		srcCh := len(src)
		n := img.Width * img.Height
		for p := 0; p < n; p++ {
			si := p * srcCh
			y := lumaR*img.ElemAt(si+ri) + lumaG*img.ElemAt(si+gi) + lumaB*img.ElemAt(si+bi)
			out.SetElem(p, y)
		}
		return out
	}
}

// colorizeConv builds a grayscale-to-color conversion: luma replicated
// into each color channel, alpha fully opaque.
func colorizeConv(to Format) convFunc {
	dst := layouts[to]
	return func(img *Image) *Image {
		out := New(img.Width, img.Height, to, img.Elem)
		opaque := img.Elem.Max()
		dstCh := len(dst)
		n := img.Width * img.Height
		for p := 0; p < n; p++ {
			y := img.ElemAt(p)
			di := p * dstCh
			for d, role := range dst {
				if role == roleA {
					out.SetElem(di+d, opaque)
					continue
				}
				out.SetElem(di+d, y)
			}
		}
		return out
	}
}

// negotiationOrder is the fixed priority used to pick a canvas format:
// prefer the most information-preserving layout present.
var negotiationOrder = []Format{RGBA, BGRA, RGB, BGR}

// Negotiate picks the single output format for a multi-input operation.
// The result depends only on the set of formats present, not on their
// order or frequency. An empty input resolves to BGR.
func Negotiate(formats []Format) Format {
	if len(formats) == 0 {
		return BGR
	}
	present := map[Format]bool{}
	for _, f := range formats {
		present[f] = true
	}
	for _, f := range negotiationOrder {
		if present[f] {
			return f
		}
	}
	return Gray
}
