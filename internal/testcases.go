package internal

import (
	"fmt"
	"image"
	"iter"
	"testing"

	"github.com/eak1mov/go-libraster/raster"
)

// TestBounds and TestLayout place the test images off the origin, with a
// tile grid that does not start at the image corner.
var (
	TestBounds = image.Rect(-3, 2, 8, 9)
	TestLayout = raster.TileLayout{TileWidth: 4, TileHeight: 3, GridXOffset: -5, GridYOffset: 1}
)

var testDataTypes = []raster.DataType{
	raster.TypeByte,
	raster.TypeUShort,
	raster.TypeShort,
	raster.TypeInt,
	raster.TypeFloat,
	raster.TypeDouble,
}

// ImageCases yields filled three-band test images for every data type and
// component layout, plus one packed image. Case names are "<type>/<layout>".
func ImageCases(t testing.TB) iter.Seq2[string, *raster.TiledImage] {
	return func(yield func(string, *raster.TiledImage) bool) {
		t.Helper()

		for _, dataType := range testDataTypes {
			for _, layout := range []string{"interleaved", "banded", "component", "offset"} {
				img := NewTestImage(t, dataType, layout)
				if !yield(fmt.Sprintf("%v/%s", dataType, layout), img) {
					return
				}
			}
		}

		if !yield("int/packed", NewTestImage(t, raster.TypeInt, "packed")) {
			return
		}
	}
}

// NewTestImage creates a filled image over TestBounds. Layouts:
//
//	interleaved  bands next to each other in one bank
//	banded       one bank per band
//	component    two banks, padded scanlines, shuffled band offsets
//	offset       interleaved, every tile buffer starting at its own offset
//	packed       8-bit bands packed into int elements (integral types only)
func NewTestImage(t testing.TB, dataType raster.DataType, layout string) *raster.TiledImage {
	t.Helper()

	w, h := TestLayout.TileWidth, TestLayout.TileHeight
	var sm raster.SampleModel
	var err error
	switch layout {
	case "interleaved", "offset":
		sm, err = raster.NewPixelInterleavedSampleModel(dataType, w, h, 3)
	case "banded":
		sm, err = raster.NewBandedSampleModel(dataType, w, h, 3)
	case "component":
		sm, err = raster.NewComponentSampleModel(dataType, w, h, 2, 2*w+3, []int{1, 0, 1}, []int{1, 0, 0})
	case "packed":
		sm, err = raster.NewPackedSampleModel(dataType, w, h, []uint32{0xff0000, 0xff00, 0xff})
	default:
		t.Fatalf("unknown layout %q", layout)
	}
	if err != nil {
		t.Fatal(err)
	}

	img, err := raster.NewTiledImage(TestBounds, TestLayout, sm)
	if err != nil {
		t.Fatal(err)
	}

	if layout == "offset" {
		tiles := img.TileRange()
		for ty := tiles.Min.Y; ty < tiles.Max.Y; ty++ {
			for tx := tiles.Min.X; tx < tiles.Max.X; tx++ {
				pad := 1 + 2*tx + ty
				r := newPaddedRaster(t, sm, pad, raster.TileBounds(tx, ty, TestLayout).Min)
				if err := img.SetTile(tx, ty, r); err != nil {
					t.Fatal(err)
				}
			}
		}
	}

	FillImage(img)
	return img
}

func newPaddedRaster(t testing.TB, sm raster.SampleModel, pad int, origin image.Point) *raster.Raster {
	t.Helper()

	size := sm.NewDataBuffer().Size()
	var buf raster.DataBuffer
	var err error
	switch sm.DataType() {
	case raster.TypeByte:
		buf, err = raster.NewBufferFromBanks([][]uint8{make([]uint8, pad+size)}, []int{pad})
	case raster.TypeUShort:
		buf, err = raster.NewBufferFromBanks([][]uint16{make([]uint16, pad+size)}, []int{pad})
	case raster.TypeShort:
		buf, err = raster.NewBufferFromBanks([][]int16{make([]int16, pad+size)}, []int{pad})
	case raster.TypeInt:
		buf, err = raster.NewBufferFromBanks([][]int32{make([]int32, pad+size)}, []int{pad})
	case raster.TypeFloat:
		buf, err = raster.NewBufferFromBanks([][]float32{make([]float32, pad+size)}, []int{pad})
	case raster.TypeDouble:
		buf, err = raster.NewBufferFromBanks([][]float64{make([]float64, pad+size)}, []int{pad})
	}
	if err != nil {
		t.Fatal(err)
	}

	r, err := raster.NewRaster(sm, buf, origin)
	if err != nil {
		t.Fatal(err)
	}
	return r
}
