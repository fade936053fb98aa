package transform

import (
	"math"

	"github.com/pixelforge/compositor/pixel"
)

// angleEps is the tolerance for snapping to the lossless 90-degree
// rotation fast paths.
const angleEps = 1e-3

// Rotate rotates the image by the given angle in degrees, positive being
// counter-clockwise. Multiples of 90 degrees take a lossless permutation
// path; any other angle uses an affine rotation about the image center
// with the output enlarged so no source pixel is clipped. Border pixels
// introduced by the enlargement are filled with bg resolved in the
// image's own channel order.
func Rotate(img *pixel.Image, degrees float64, bg pixel.Color) *pixel.Image {
	n := math.Mod(degrees, 360)
	if n < 0 {
		n += 360
	}
	switch {
	case n < angleEps || n > 360-angleEps:
		return img.Clone()
	case math.Abs(n-90) < angleEps:
		return rotate90CCW(img)
	case math.Abs(n-180) < angleEps:
		return rotate180(img)
	case math.Abs(n-270) < angleEps:
		return rotate90CW(img)
	}
	return rotateArbitrary(img, degrees, bg)
}

// rotate90CCW maps dst(x, y) = src(w-1-y, x); the right edge of the
// source becomes the top row of the output.
func rotate90CCW(img *pixel.Image) *pixel.Image {
	out := pixel.New(img.Height, img.Width, img.Format, img.Elem)
	ps := img.PixelSize()
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			so := (x*img.Width + (img.Width - 1 - y)) * ps
			do := (y*out.Width + x) * ps
			copy(out.Data[do:do+ps], img.Data[so:so+ps])
		}
	}
	return out
}

func rotate90CW(img *pixel.Image) *pixel.Image {
	out := pixel.New(img.Height, img.Width, img.Format, img.Elem)
	ps := img.PixelSize()
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			so := ((img.Height-1-x)*img.Width + y) * ps
			do := (y*out.Width + x) * ps
			copy(out.Data[do:do+ps], img.Data[so:so+ps])
		}
	}
	return out
}

func rotate180(img *pixel.Image) *pixel.Image {
	out := pixel.New(img.Width, img.Height, img.Format, img.Elem)
	ps := img.PixelSize()
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			so := ((img.Height-1-y)*img.Width + (img.Width - 1 - x)) * ps
			do := (y*img.Width + x) * ps
			copy(out.Data[do:do+ps], img.Data[so:so+ps])
		}
	}
	return out
}

// rotateArbitrary performs an inverse-mapped affine rotation with
// bilinear sampling. The output bounds are (h·|sin|+w·|cos|,
// h·|cos|+w·|sin|) and the translation recenters the source inside them.
func rotateArbitrary(img *pixel.Image, degrees float64, bg pixel.Color) *pixel.Image {
	theta := degrees * math.Pi / 180
	cosA, sinA := math.Cos(theta), math.Sin(theta)
	w, h := float64(img.Width), float64(img.Height)
	cx, cy := w/2, h/2

	newW := int(h*math.Abs(sinA) + w*math.Abs(cosA))
	newH := int(h*math.Abs(cosA) + w*math.Abs(sinA))

	// Forward map (counter-clockwise for positive angles, y pointing
	// down): dst = [cos sin; -sin cos]·src + t, recentered to the new
	// bounds.
	tx := (1-cosA)*cx - sinA*cy + float64(newW)/2 - cx
	ty := sinA*cx + (1-cosA)*cy + float64(newH)/2 - cy

	out := pixel.New(newW, newH, img.Format, img.Elem)
	border := bg.Resolve(img.Format, img.Elem)
	ch := img.Format.Channels()

	for y := 0; y < newH; y++ {
		dy := float64(y) - ty
		for x := 0; x < newW; x++ {
			dx := float64(x) - tx
			// Inverse of the pure rotation part.
			sx := cosA*dx - sinA*dy
			sy := sinA*dx + cosA*dy

			x0 := int(math.Floor(sx))
			y0 := int(math.Floor(sy))
			fx := float32(sx - float64(x0))
			fy := float32(sy - float64(y0))

			di := out.PixelIndex(x, y)
			for c := 0; c < ch; c++ {
				v00 := sampleOrBorder(img, x0, y0, c, border)
				v10 := sampleOrBorder(img, x0+1, y0, c, border)
				v01 := sampleOrBorder(img, x0, y0+1, c, border)
				v11 := sampleOrBorder(img, x0+1, y0+1, c, border)
				top := v00*(1-fx) + v10*fx
				bottom := v01*(1-fx) + v11*fx
				out.SetElem(di+c, top*(1-fy)+bottom*fy)
			}
		}
	}
	return out
}

func sampleOrBorder(img *pixel.Image, x, y, c int, border []float32) float32 {
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		return border[c]
	}
	return img.ElemAt(img.PixelIndex(x, y) + c)
}
