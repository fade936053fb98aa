package pixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCopyRegion(t *testing.T) {
	dst := NewFilled(4, 4, Gray, Uint8, []float32{0})
	src := NewFilled(2, 2, Gray, Uint8, []float32{9})
	CopyRegion(dst, 1, 2, src, 0, 0, 2, 2)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := byte(0)
			if x >= 1 && x < 3 && y >= 2 {
				want = 9
			}
			assert.Equal(t, want, dst.Data[y*4+x], "(%d,%d)", x, y)
		}
	}
}

func TestCopyRegionEmptyIsNoop(t *testing.T) {
	dst := NewFilled(2, 2, Gray, Uint8, []float32{5})
	src := NewFilled(2, 2, Gray, Uint8, []float32{9})
	CopyRegion(dst, 0, 0, src, 0, 0, 0, 2)
	assert.Equal(t, []byte{5, 5, 5, 5}, dst.Data)
}

func TestSubImage(t *testing.T) {
	src := New(3, 3, Gray, Uint8)
	for i := range src.Data {
		src.Data[i] = byte(i)
	}
	out := SubImage(src, 1, 1, 2, 2)
	assert.Equal(t, 2, out.Width)
	assert.Equal(t, 2, out.Height)
	assert.Equal(t, []byte{4, 5, 7, 8}, out.Data)

	out.Data[0] = 99
	assert.Equal(t, byte(4), src.Data[4], "sub-image must own its buffer")
}
