package pixel

// CopyRegion copies a w×h block from src at (srcX, srcY) into dst at
// (dstX, dstY). Both images must share format and element type; callers
// convert before copying so no blit ever crosses formats. Coordinates are
// assumed pre-clipped to both buffers.
func CopyRegion(dst *Image, dstX, dstY int, src *Image, srcX, srcY, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	ps := src.PixelSize()
	rowBytes := w * ps
	for y := 0; y < h; y++ {
		so := (srcY+y)*src.Stride() + srcX*ps
		do := (dstY+y)*dst.Stride() + dstX*ps
		copy(dst.Data[do:do+rowBytes], src.Data[so:so+rowBytes])
	}
}

// SubImage returns an owned copy of the w×h region at (x, y). Coordinates
// are assumed to lie inside the source bounds.
func SubImage(src *Image, x, y, w, h int) *Image {
	out := New(w, h, src.Format, src.Elem)
	CopyRegion(out, 0, 0, src, x, y, w, h)
	return out
}
