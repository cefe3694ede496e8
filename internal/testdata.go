package internal

import "github.com/eak1mov/go-libraster/raster"

// Pattern is the sample FillImage stores at (x, y, b). Values fit every data
// type and every 8-bit packed band.
func Pattern(x, y, b int) int {
	return (x*7 + y*13 + b*29) & 0x7f
}

// FillImage writes Pattern into every pixel of img through tile leases and
// the sample model accessors.
func FillImage(img raster.WritableImage) {
	bounds := img.Bounds()
	tiles := raster.TileRange(bounds, img.TileLayout())
	for ty := tiles.Min.Y; ty < tiles.Max.Y; ty++ {
		for tx := tiles.Min.X; tx < tiles.Max.X; tx++ {
			lease := img.WritableTile(tx, ty)
			r := lease.Raster()
			area := r.Bounds().Intersect(bounds)
			for y := area.Min.Y; y < area.Max.Y; y++ {
				for x := area.Min.X; x < area.Max.X; x++ {
					for b := range r.NumBands() {
						r.SetSample(x, y, b, Pattern(x, y, b))
					}
				}
			}
			lease.Release()
		}
	}
}
