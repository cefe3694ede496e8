package iterator

import (
	"image"
	"iter"

	"github.com/eak1mov/go-libraster/raster"
)

// Pixels yields every pixel of rect, clipped to the image, in row-major
// order. The yielded slice holds all bands and is reused between iterations.
func Pixels(img raster.Image, rect image.Rectangle) iter.Seq2[image.Point, []int] {
	return func(yield func(image.Point, []int) bool) {
		bounds := clip(img, rect)
		it := newRook(readSource{img}, img, bounds, false)
		defer it.Done()

		pixel := make([]int, img.SampleModel().NumBands())
		for y := bounds.Min.Y; !it.FinishedLines(); y++ {
			it.StartPixels()
			for x := bounds.Min.X; !it.FinishedPixels(); x++ {
				if !yield(image.Pt(x, y), it.Pixel(pixel)) {
					return
				}
				it.NextPixel()
			}
			it.NextLine()
		}
	}
}
