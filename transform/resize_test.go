package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelforge/compositor/pixel"
)

func solid(w, h int, format pixel.Format, elem pixel.ElemType, color ...float32) *pixel.Image {
	return pixel.NewFilled(w, h, format, elem, color)
}

func TestFitDimensions(t *testing.T) {
	cases := []struct {
		name             string
		srcW, srcH       int
		targetW, targetH int
		wantW, wantH     int
	}{
		{"both given", 100, 50, 30, 40, 30, 40},
		{"width only keeps aspect", 100, 50, 40, 0, 40, 20},
		{"height only keeps aspect", 100, 50, 0, 25, 50, 25},
		{"neither keeps source", 100, 50, 0, 0, 100, 50},
		{"negative treated as unset", 100, 50, -1, 25, 50, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, h := FitDimensions(tc.srcW, tc.srcH, tc.targetW, tc.targetH)
			assert.Equal(t, tc.wantW, w)
			assert.Equal(t, tc.wantH, h)
		})
	}
}

func TestResizeIdentityClones(t *testing.T) {
	img := solid(4, 4, pixel.RGB, pixel.Uint8, 1, 2, 3)
	out := Resize(img, 4, 4)
	assert.NotSame(t, img, out, "transforms return owned images")
	assert.Equal(t, img.Data, out.Data)
}

func TestResizeSolidStaysSolid(t *testing.T) {
	img := solid(10, 10, pixel.BGRA, pixel.Uint8, 40, 80, 120, 255)
	out := Resize(img, 23, 7)
	require.Equal(t, 23, out.Width)
	require.Equal(t, 7, out.Height)
	for p := 0; p < 23*7; p++ {
		assert.Equal(t, []byte{40, 80, 120, 255}, out.Data[p*4:p*4+4], "pixel %d", p)
	}
}

func TestResizeHalvesAverage(t *testing.T) {
	// 2x2 checker of 0 and 200 downsampled to 1x1 lands on the mean.
	img := pixel.New(2, 2, pixel.Gray, pixel.Uint8)
	img.Data = []byte{0, 200, 200, 0}
	out := Resize(img, 1, 1)
	assert.Equal(t, byte(100), out.Data[0])
}

func TestResizeUint16(t *testing.T) {
	img := solid(4, 4, pixel.Gray, pixel.Uint16, 50000)
	out := Resize(img, 8, 8)
	require.Equal(t, pixel.Uint16, out.Elem)
	assert.Equal(t, float32(50000), out.ElemAt(3), "16-bit depth preserved through interpolation")
}
