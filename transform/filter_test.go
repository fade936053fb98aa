package transform

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelforge/compositor/pixel"
)

func TestFilterUnknownOperator(t *testing.T) {
	img := solid(4, 4, pixel.Gray, pixel.Uint8, 100)
	_, err := Filter(img, "posterize", 3, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownOperator))
	assert.Contains(t, err.Error(), "posterize")
}

func TestFilterBlurSolidStaysSolid(t *testing.T) {
	img := solid(8, 8, pixel.RGB, pixel.Uint8, 40, 90, 140)
	out, err := Filter(img, FilterBlur, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, img.Data, out.Data, "box kernel is normalized")
}

func TestFilterBlurSmoothsEdges(t *testing.T) {
	img := pixel.New(9, 1, pixel.Gray, pixel.Uint8)
	img.Data[4] = 210
	out, err := Filter(img, FilterBlur, 3, 1)
	require.NoError(t, err)
	assert.Less(t, out.Data[4], img.Data[4], "spike should spread out")
	assert.Greater(t, out.Data[3], byte(0), "neighbors pick up energy")
}

func TestFilterBlurIntensityMixes(t *testing.T) {
	img := pixel.New(9, 1, pixel.Gray, pixel.Uint8)
	img.Data[4] = 210
	full, err := Filter(img, FilterBlur, 3, 1)
	require.NoError(t, err)
	half, err := Filter(img, FilterBlur, 3, 0.5)
	require.NoError(t, err)
	assert.Greater(t, half.Data[4], full.Data[4], "lower intensity keeps more of the original")
}

func TestFilterSharpenSolidStaysSolid(t *testing.T) {
	img := solid(8, 8, pixel.Gray, pixel.Uint8, 120)
	out, err := Filter(img, FilterSharpen, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, img.Data, out.Data, "sharpen kernel sums to one")
}

func TestFilterGaussianSolidStaysSolid(t *testing.T) {
	img := solid(8, 8, pixel.BGR, pixel.Uint8, 10, 20, 30)
	out, err := Filter(img, FilterGaussian, 5, 1)
	require.NoError(t, err)
	for i, b := range out.Data {
		require.InDelta(t, img.Data[i], b, 1, "element %d", i)
	}
}

func TestFilterEdgeOnFlatImageIsBlack(t *testing.T) {
	img := solid(8, 8, pixel.RGB, pixel.Uint8, 130, 130, 130)
	out, err := Filter(img, FilterEdge, 3, 1)
	require.NoError(t, err)
	require.Equal(t, pixel.RGB, out.Format, "result converted back to the source format")
	for i, b := range out.Data {
		require.Equal(t, byte(0), b, "element %d", i)
	}
}

func TestFilterEdgeDetectsStep(t *testing.T) {
	img := pixel.New(8, 8, pixel.Gray, pixel.Uint8)
	for y := 0; y < 8; y++ {
		for x := 4; x < 8; x++ {
			img.Data[y*8+x] = 200
		}
	}
	out, err := Filter(img, FilterEdge, 3, 1)
	require.NoError(t, err)
	assert.Greater(t, out.Data[3*8+4], byte(100), "strong response at the boundary")
	assert.Equal(t, byte(0), out.Data[3*8+1], "flat region stays dark")
}

func TestFilterEmbossShiftsToMidGray(t *testing.T) {
	img := solid(8, 8, pixel.Gray, pixel.Uint8, 100)
	out, err := Filter(img, FilterEmboss, 3, 1)
	require.NoError(t, err)
	// Kernel sums to one, so a flat input yields value + mid-gray offset.
	assert.Equal(t, byte(228), out.Data[out.PixelIndex(4, 4)])
}

func TestFilterClampsParameters(t *testing.T) {
	img := solid(6, 6, pixel.Gray, pixel.Uint8, 50)
	// Even size is bumped to odd, oversized clamped to 15, intensity to 2.
	out, err := Filter(img, FilterBlur, 4, 7)
	require.NoError(t, err)
	assert.Equal(t, img.Data, out.Data)

	out, err = Filter(img, FilterBlur, 99, -3)
	require.NoError(t, err)
	assert.Equal(t, 6, out.Width)
}

func TestValidKernelSize(t *testing.T) {
	assert.Equal(t, 3, validKernelSize(0))
	assert.Equal(t, 3, validKernelSize(2))
	assert.Equal(t, 5, validKernelSize(4))
	assert.Equal(t, 7, validKernelSize(7))
	assert.Equal(t, 15, validKernelSize(31))
}
