package codec

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelforge/compositor/pixel"
)

func solid(w, h int, format pixel.Format, elem pixel.ElemType, color ...float32) *pixel.Image {
	return pixel.NewFilled(w, h, format, elem, color)
}

func TestPNGRoundTrip(t *testing.T) {
	src := solid(8, 6, pixel.RGB, pixel.Uint8, 120, 60, 30)
	data, err := Encode(src, FormatPNG, 0)
	require.NoError(t, err)

	out, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 8, out.Width)
	assert.Equal(t, 6, out.Height)
	require.Equal(t, pixel.RGB, out.Format, "opaque color decodes to RGB")
	assert.Equal(t, []byte{120, 60, 30}, out.Data[:3], "PNG is lossless")
}

func TestPNGKeepsAlpha(t *testing.T) {
	src := solid(4, 4, pixel.RGBA, pixel.Uint8, 120, 60, 30, 128)
	data, err := Encode(src, FormatPNG, 0)
	require.NoError(t, err)

	out, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, pixel.RGBA, out.Format, "translucent pixels keep the alpha channel")
	assert.Equal(t, []byte{120, 60, 30, 128}, out.Data[:4])
}

func TestGrayRoundTrip(t *testing.T) {
	src := solid(5, 5, pixel.Gray, pixel.Uint8, 77)
	data, err := Encode(src, FormatPNG, 0)
	require.NoError(t, err)

	out, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, pixel.Gray, out.Format)
	assert.Equal(t, byte(77), out.Data[0])
}

func TestJPEGDecodeIsClose(t *testing.T) {
	src := solid(16, 16, pixel.BGR, pixel.Uint8, 30, 60, 120)
	data, err := Encode(src, FormatJPG, 90)
	require.NoError(t, err)

	out, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, pixel.RGB, out.Format)
	// Lossy codec: the solid color survives within a small tolerance.
	assert.InDelta(t, 120, out.Data[0], 4)
	assert.InDelta(t, 60, out.Data[1], 4)
	assert.InDelta(t, 30, out.Data[2], 4)
}

func TestWebPDecodeIsClose(t *testing.T) {
	src := solid(16, 16, pixel.RGB, pixel.Uint8, 120, 60, 30)
	data, err := Encode(src, FormatWebP, 95)
	require.NoError(t, err)

	out, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 16, out.Width)
	assert.InDelta(t, 120, out.Data[0], 6)
}

func TestEncodeRescalesWideElems(t *testing.T) {
	src := solid(4, 4, pixel.Gray, pixel.Float32, 1)
	data, err := Encode(src, FormatPNG, 0)
	require.NoError(t, err)

	out, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, byte(255), out.Data[0], "normalized white maps to 8-bit white")
}

func TestEncodeUnknownFormat(t *testing.T) {
	src := solid(2, 2, pixel.Gray, pixel.Uint8, 1)
	_, err := Encode(src, "tiff", 90)
	assert.Error(t, err)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("not an image"), {0xFF, 0xD8, 0x00}} {
		_, err := Decode(data)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDecode))
	}
}

func TestDecodeThumbnailBoundsResult(t *testing.T) {
	src := solid(100, 50, pixel.RGB, pixel.Uint8, 10, 20, 30)
	data, err := Encode(src, FormatPNG, 0)
	require.NoError(t, err)

	out, err := DecodeThumbnail(data, 20, 20)
	require.NoError(t, err)
	assert.Equal(t, 20, out.Width)
	assert.Equal(t, 10, out.Height, "aspect preserved")

	// Smaller sources pass through untouched.
	out, err = DecodeThumbnail(data, 500, 500)
	require.NoError(t, err)
	assert.Equal(t, 100, out.Width)
}
