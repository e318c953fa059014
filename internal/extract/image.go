package extract

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// cropClamped returns the part of frame covered by rect, clamped to the
// frame bounds. A rectangle that clamps to an empty area yields nil, which
// downstream treats as "no data" rather than a failure.
func cropClamped(frame image.Image, rect image.Rectangle) image.Image {
	clamped := rect.Intersect(frame.Bounds())
	if clamped.Empty() {
		return nil
	}

	type subImager interface {
		SubImage(r image.Rectangle) image.Image
	}
	if si, ok := frame.(subImager); ok {
		return si.SubImage(clamped)
	}

	out := image.NewRGBA(image.Rect(0, 0, clamped.Dx(), clamped.Dy()))
	xdraw.Draw(out, out.Bounds(), frame, clamped.Min, xdraw.Src)
	return out
}

// grayscale converts a frame to 8-bit grayscale. The gauge reader works on
// luma only; converting once per frame keeps its strip loops cheap.
func grayscale(frame image.Image) *image.Gray {
	if g, ok := frame.(*image.Gray); ok {
		return g
	}
	bounds := frame.Bounds()
	out := image.NewGray(bounds)
	xdraw.Draw(out, bounds, frame, bounds.Min, xdraw.Src)
	return out
}

// grayMinMax returns the global minimum and maximum luma of the frame.
func grayMinMax(g *image.Gray) (uint8, uint8) {
	min, max := uint8(255), uint8(0)
	bounds := g.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := g.Pix[(y-bounds.Min.Y)*g.Stride : (y-bounds.Min.Y)*g.Stride+bounds.Dx()]
		for _, v := range row {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	if min > max {
		return 0, 0
	}
	return min, max
}
