package transform

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/pixelforge/compositor/pixel"
)

// ErrUnknownOperator reports a filter, strategy, or direction name that
// reached a component requiring exhaustive handling.
var ErrUnknownOperator = errors.New("unknown operator")

// Filter operator names.
const (
	FilterBlur     = "blur"
	FilterSharpen  = "sharpen"
	FilterEdge     = "edge"
	FilterEmboss   = "emboss"
	FilterGaussian = "gaussian"
)

// Filter applies a named kernel filter. kernelSize is forced odd and
// clamped to 3..15; intensity is clamped to 0..2. Unrecognized operator
// names fail with ErrUnknownOperator.
func Filter(img *pixel.Image, op string, kernelSize int, intensity float64) (*pixel.Image, error) {
	kernelSize = validKernelSize(kernelSize)
	i := float32(clamp64(intensity, 0, 2))
	switch op {
	case FilterBlur:
		blurred := convolve(img, boxKernel(kernelSize), 0)
		if i < 1 {
			return mix(img, blurred, i), nil
		}
		return blurred, nil
	case FilterSharpen:
		return convolve(img, sharpenKernel(kernelSize, i), 0), nil
	case FilterEmboss:
		// Offset to mid-gray so negative responses stay visible.
		return convolve(img, embossKernel(i), img.Elem.Max()*128/255), nil
	case FilterGaussian:
		sigma := float32(kernelSize) / 6 * i
		return convolve(img, gaussianKernel(kernelSize, sigma), 0), nil
	case FilterEdge:
		return edgeFilter(img, kernelSize, i)
	}
	return nil, errors.Wrapf(ErrUnknownOperator, "filter %q", op)
}

// convolve applies a 2D kernel to every channel independently, clamping
// samples at the borders and adding a constant offset to each response.
func convolve(img *pixel.Image, k [][]float32, offset float32) *pixel.Image {
	out := pixel.New(img.Width, img.Height, img.Format, img.Elem)
	ch := img.Format.Channels()
	r := len(k) / 2
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			di := out.PixelIndex(x, y)
			for c := 0; c < ch; c++ {
				var acc float32
				for ky := -r; ky <= r; ky++ {
					sy := clampIndex(y+ky, img.Height)
					for kx := -r; kx <= r; kx++ {
						sx := clampIndex(x+kx, img.Width)
						acc += k[ky+r][kx+r] * img.ElemAt(img.PixelIndex(sx, sy)+c)
					}
				}
				out.SetElem(di+c, acc+offset)
			}
		}
	}
	return out
}

// mix blends b over a with the given weight, per element.
func mix(a, b *pixel.Image, weight float32) *pixel.Image {
	out := pixel.New(a.Width, a.Height, a.Format, a.Elem)
	n := a.Width * a.Height * a.Format.Channels()
	for i := 0; i < n; i++ {
		out.SetElem(i, a.ElemAt(i)*(1-weight)+b.ElemAt(i)*weight)
	}
	return out
}

// edgeFilter computes Sobel gradient magnitude on the grayscale image and
// converts the result back to the source format.
func edgeFilter(img *pixel.Image, kernelSize int, intensity float32) (*pixel.Image, error) {
	gray, err := pixel.Convert(img, pixel.Gray)
	if err != nil {
		return nil, err
	}
	_ = kernelSize // 3x3 Sobel; larger derivative kernels are not supported
	gx := [][]float32{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	gy := [][]float32{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}

	out := pixel.New(gray.Width, gray.Height, pixel.Gray, gray.Elem)
	for y := 0; y < gray.Height; y++ {
		for x := 0; x < gray.Width; x++ {
			var ax, ay float32
			for ky := -1; ky <= 1; ky++ {
				sy := clampIndex(y+ky, gray.Height)
				for kx := -1; kx <= 1; kx++ {
					sx := clampIndex(x+kx, gray.Width)
					v := gray.ElemAt(gray.PixelIndex(sx, sy))
					ax += gx[ky+1][kx+1] * v
					ay += gy[ky+1][kx+1] * v
				}
			}
			mag := (math32.Abs(ax)*0.5 + math32.Abs(ay)*0.5) * intensity
			out.SetElem(out.PixelIndex(x, y), mag)
		}
	}
	return pixel.Convert(out, img.Format)
}

func sharpenKernel(size int, intensity float32) [][]float32 {
	k := zeroKernel(size)
	center := size / 2
	if size == 3 {
		k[0][1] = -intensity
		k[1][0] = -intensity
		k[1][1] = 1 + 4*intensity
		k[1][2] = -intensity
		k[2][1] = -intensity
		return k
	}
	// Larger kernels: negative weights on the immediate neighborhood,
	// center set to keep the kernel sum at 1.
	var neighbors float32
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			if i == center && j == center {
				continue
			}
			dx := absInt(i - center)
			dy := absInt(j - center)
			if dx <= 1 && dy <= 1 && dx+dy <= 2 {
				w := -intensity / float32(dx+dy+1)
				k[i][j] = w
				neighbors += w
			}
		}
	}
	k[center][center] = 1 - neighbors
	return k
}

func embossKernel(intensity float32) [][]float32 {
	return [][]float32{
		{-2 * intensity, -intensity, 0},
		{-intensity, 1, intensity},
		{0, intensity, 2 * intensity},
	}
}

func boxKernel(size int) [][]float32 {
	k := zeroKernel(size)
	v := 1 / float32(size*size)
	for i := range k {
		for j := range k[i] {
			k[i][j] = v
		}
	}
	return k
}

func gaussianKernel(size int, sigma float32) [][]float32 {
	if sigma <= 0 {
		// OpenCV's convention for an unspecified sigma.
		sigma = 0.3*(float32(size-1)*0.5-1) + 0.8
	}
	k := zeroKernel(size)
	center := size / 2
	var sum float32
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			dx := float32(i - center)
			dy := float32(j - center)
			k[i][j] = math32.Exp(-(dx*dx + dy*dy) / (2 * sigma * sigma))
			sum += k[i][j]
		}
	}
	for i := range k {
		for j := range k[i] {
			k[i][j] /= sum
		}
	}
	return k
}

func zeroKernel(size int) [][]float32 {
	k := make([][]float32, size)
	for i := range k {
		k[i] = make([]float32, size)
	}
	return k
}

// validKernelSize forces an odd size in 3..15.
func validKernelSize(size int) int {
	if size%2 == 0 {
		size++
	}
	return clampInt(size, 3, 15)
}

func clamp64(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
