// Package transform - per-image geometric operations: resize, rotate,
// pad, crop, and kernel filtering. Every function returns a new owned
// image and leaves its input untouched, so transforms for independent
// placements can run concurrently.
package transform

import (
	"github.com/chewxy/math32"

	"github.com/pixelforge/compositor/pixel"
)

// FitDimensions resolves a resize target where either dimension may be
// unspecified (<= 0). With both given, the target is used exactly; with
// one given, the other is derived preserving the source aspect ratio;
// with neither, the source dimensions are kept.
func FitDimensions(srcW, srcH, targetW, targetH int) (int, int) {
	switch {
	case targetW > 0 && targetH > 0:
		return targetW, targetH
	case targetW > 0:
		return targetW, int(math32.Round(float32(targetW) * float32(srcH) / float32(srcW)))
	case targetH > 0:
		return int(math32.Round(float32(targetH) * float32(srcW) / float32(srcH))), targetH
	}
	return srcW, srcH
}

// Resize scales the image to exactly width×height using bilinear
// interpolation with pixel-center sampling. Every channel, alpha
// included, is interpolated independently.
func Resize(img *pixel.Image, width, height int) *pixel.Image {
	if width == img.Width && height == img.Height {
		return img.Clone()
	}
	out := pixel.New(width, height, img.Format, img.Elem)
	ch := img.Format.Channels()
	xScale := float32(img.Width) / float32(width)
	yScale := float32(img.Height) / float32(height)

	for y := 0; y < height; y++ {
		sy := (float32(y)+0.5)*yScale - 0.5
		fy := sy - math32.Floor(sy)
		y0 := clampIndex(int(math32.Floor(sy)), img.Height)
		y1 := clampIndex(int(math32.Floor(sy))+1, img.Height)
		for x := 0; x < width; x++ {
			sx := (float32(x)+0.5)*xScale - 0.5
			fx := sx - math32.Floor(sx)
			x0 := clampIndex(int(math32.Floor(sx)), img.Width)
			x1 := clampIndex(int(math32.Floor(sx))+1, img.Width)

			i00 := img.PixelIndex(x0, y0)
			i10 := img.PixelIndex(x1, y0)
			i01 := img.PixelIndex(x0, y1)
			i11 := img.PixelIndex(x1, y1)
			di := out.PixelIndex(x, y)
			for c := 0; c < ch; c++ {
				top := img.ElemAt(i00+c)*(1-fx) + img.ElemAt(i10+c)*fx
				bottom := img.ElemAt(i01+c)*(1-fx) + img.ElemAt(i11+c)*fx
				out.SetElem(di+c, top*(1-fy)+bottom*fy)
			}
		}
	}
	return out
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
