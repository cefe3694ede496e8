package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/eak1mov/go-libraster/iterator"
	"github.com/eak1mov/go-libraster/raster"
)

// rasterize copies src into a tiled image. Gray sources get one band, all
// others four non-premultiplied RGBA bands. 16-bit sources are stored as
// ushort samples, everything else as bytes.
func rasterize(src image.Image, tileSize int, banded bool) (*raster.TiledImage, error) {
	numBands, dataType, shift := 4, raster.TypeByte, 8
	switch src.ColorModel() {
	case color.GrayModel:
		numBands = 1
	case color.Gray16Model:
		numBands, dataType, shift = 1, raster.TypeUShort, 0
	case color.RGBA64Model, color.NRGBA64Model:
		dataType, shift = raster.TypeUShort, 0
	}

	newSampleModel := raster.NewPixelInterleavedSampleModel
	if banded {
		newSampleModel = raster.NewBandedSampleModel
	}
	sm, err := newSampleModel(dataType, tileSize, tileSize, numBands)
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	layout := raster.TileLayout{
		TileWidth:   tileSize,
		TileHeight:  tileSize,
		GridXOffset: bounds.Min.X,
		GridYOffset: bounds.Min.Y,
	}
	img, err := raster.NewTiledImage(bounds, layout, sm)
	if err != nil {
		return nil, err
	}

	it := iterator.NewWritableRect(img, iterator.All)
	defer it.Done()

	pixel := make([]int, numBands)
	for y := bounds.Min.Y; !it.FinishedLines(); y++ {
		it.StartPixels()
		for x := bounds.Min.X; !it.FinishedPixels(); x++ {
			c := color.NRGBA64Model.Convert(src.At(x, y)).(color.NRGBA64)
			if numBands == 1 {
				pixel[0] = int(c.R) >> shift
			} else {
				pixel[0] = int(c.R) >> shift
				pixel[1] = int(c.G) >> shift
				pixel[2] = int(c.B) >> shift
				pixel[3] = int(c.A) >> shift
			}
			it.SetPixel(pixel)
			it.NextPixel()
		}
		it.NextLine()
	}
	return img, nil
}

func clamp(v, hi int) int {
	return min(max(v, 0), hi)
}

// toImage converts a one, three or four band raster to an image.Image.
// Ushort samples keep 16 bits; other types are clamped to [0, 255].
func toImage(img raster.Image) (image.Image, error) {
	bounds := img.Bounds()
	wide := img.SampleModel().DataType() == raster.TypeUShort

	switch numBands := img.SampleModel().NumBands(); {
	case numBands == 1 && wide:
		out := image.NewGray16(bounds)
		for p, pixel := range iterator.Pixels(img, iterator.All) {
			out.SetGray16(p.X, p.Y, color.Gray16{Y: uint16(pixel[0])})
		}
		return out, nil
	case numBands == 1:
		out := image.NewGray(bounds)
		for p, pixel := range iterator.Pixels(img, iterator.All) {
			out.SetGray(p.X, p.Y, color.Gray{Y: uint8(clamp(pixel[0], 0xff))})
		}
		return out, nil
	case (numBands == 3 || numBands == 4) && wide:
		out := image.NewNRGBA64(bounds)
		for p, pixel := range iterator.Pixels(img, iterator.All) {
			c := color.NRGBA64{R: uint16(pixel[0]), G: uint16(pixel[1]), B: uint16(pixel[2]), A: 0xffff}
			if numBands == 4 {
				c.A = uint16(pixel[3])
			}
			out.SetNRGBA64(p.X, p.Y, c)
		}
		return out, nil
	case numBands == 3 || numBands == 4:
		out := image.NewNRGBA(bounds)
		for p, pixel := range iterator.Pixels(img, iterator.All) {
			c := color.NRGBA{
				R: uint8(clamp(pixel[0], 0xff)),
				G: uint8(clamp(pixel[1], 0xff)),
				B: uint8(clamp(pixel[2], 0xff)),
				A: 0xff,
			}
			if numBands == 4 {
				c.A = uint8(clamp(pixel[3], 0xff))
			}
			out.SetNRGBA(p.X, p.Y, c)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot convert %d bands to an image", numBands)
	}
}

type bandStats struct {
	Min, Max, Mean float64
}

// computeStats returns per-band statistics over rect clipped to the image,
// or nil when the region holds no pixels.
func computeStats(img raster.Image, rect image.Rectangle) []bandStats {
	it := iterator.NewRect(img, rect)
	defer it.Done()

	numBands := img.SampleModel().NumBands()
	stats := make([]bandStats, numBands)
	sums := make([]float64, numBands)
	count := 0

	pixel := make([]float64, numBands)
	for !it.FinishedLines() {
		it.StartPixels()
		for !it.FinishedPixels() {
			for b, v := range it.PixelDouble(pixel) {
				if count == 0 || v < stats[b].Min {
					stats[b].Min = v
				}
				if count == 0 || v > stats[b].Max {
					stats[b].Max = v
				}
				sums[b] += v
			}
			count++
			it.NextPixel()
		}
		it.NextLine()
	}

	if count == 0 {
		return nil
	}
	for b := range stats {
		stats[b].Mean = sums[b] / float64(count)
	}
	return stats
}
