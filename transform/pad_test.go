package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelforge/compositor/pixel"
)

func TestPadDimensionsAndBorder(t *testing.T) {
	img := solid(2, 2, pixel.BGR, pixel.Uint8, 10, 20, 30)
	out := Pad(img, 1, 2, 3, 4, pixel.Color{255, 0, 0})
	require.Equal(t, 2+3+4, out.Width)
	require.Equal(t, 2+1+2, out.Height)

	// Border resolved in the image's own BGR order.
	assert.Equal(t, []byte{0, 0, 255}, out.Data[:3], "top-left border pixel")
	// Original content lands at (left, top).
	i := out.PixelIndex(3, 1)
	assert.Equal(t, []byte{10, 20, 30}, out.Data[i:i+3])
}

func TestPadNegativeWidthsAreZero(t *testing.T) {
	img := solid(2, 2, pixel.Gray, pixel.Uint8, 7)
	out := Pad(img, -1, -1, -1, -1, pixel.Color{})
	assert.Equal(t, 2, out.Width)
	assert.Equal(t, 2, out.Height)
	assert.Equal(t, img.Data, out.Data)
	assert.NotSame(t, img, out)
}

func TestCropAbsolute(t *testing.T) {
	img := pixel.New(4, 4, pixel.Gray, pixel.Uint8)
	for i := range img.Data {
		img.Data[i] = byte(i)
	}
	out := Crop(img, 1, 2, 2, 2, false)
	require.Equal(t, 2, out.Width)
	require.Equal(t, 2, out.Height)
	assert.Equal(t, []byte{9, 10, 13, 14}, out.Data)
}

func TestCropNormalized(t *testing.T) {
	img := solid(100, 100, pixel.RGB, pixel.Uint8, 1, 2, 3)
	out := Crop(img, 0.25, 0.25, 0.5, 0.5, true)
	assert.Equal(t, 50, out.Width)
	assert.Equal(t, 50, out.Height)
}

func TestCropClampsToBounds(t *testing.T) {
	img := solid(10, 10, pixel.Gray, pixel.Uint8, 1)

	out := Crop(img, 8, 8, 50, 50, false)
	assert.Equal(t, 2, out.Width, "width clamped to remaining pixels")
	assert.Equal(t, 2, out.Height)

	out = Crop(img, -5, -5, 3, 3, false)
	assert.Equal(t, 3, out.Width, "origin clamped to zero")

	out = Crop(img, 50, 50, 5, 5, false)
	assert.Equal(t, 1, out.Width, "at least one source pixel survives")
	assert.Equal(t, 1, out.Height)
}
