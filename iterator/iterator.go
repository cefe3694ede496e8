// Package iterator provides cursors over the pixels of tiled images.
//
// Three access patterns are supported: RandomIter reads any pixel by
// coordinate, RectIter walks a rectangle line by line, pixel by pixel and
// band by band, and RookIter adds backward movement. Each has a writable
// counterpart that checks tiles out of a raster.WritableImage.
//
// Constructors pick an implementation once: component layouts
// (raster.ComponentSampleModel) of every data type get a cursor that
// indexes the typed banks directly, any other layout goes through the
// generic raster.SampleModel accessors. Both produce the same samples.
//
// Cursors are not safe for concurrent use.
package iterator

import (
	"errors"
	"image"
	"math"
)

// All covers every pixel of any image. Constructors clip the rectangle they
// are given to the image bounds, so passing All selects the whole image while
// an empty rectangle, the zero value included, selects nothing.
var All = image.Rect(math.MinInt, math.MinInt, math.MaxInt, math.MaxInt)

// ErrOutOfBounds is returned by jumps that would leave the cursor's rectangle.
var ErrOutOfBounds = errors.New("libraster: jump outside iterator bounds")

// RandomIter reads samples at arbitrary coordinates.
//
// Coordinates must lie inside the rectangle the cursor was created for. They
// are not checked: out of range coordinates may read a neighbouring tile or
// panic.
type RandomIter interface {
	Sample(x, y, b int) int
	SampleFloat(x, y, b int) float32
	SampleDouble(x, y, b int) float64

	// Pixel fills dst with all bands of (x, y) and returns it. A nil dst is
	// allocated.
	Pixel(x, y int, dst []int) []int
	PixelFloat(x, y int, dst []float32) []float32
	PixelDouble(x, y int, dst []float64) []float64

	// Done releases the tiles held by the cursor. It may be called more than
	// once.
	Done()
}

// WritableRandomIter writes samples at arbitrary coordinates.
type WritableRandomIter interface {
	RandomIter

	SetSample(x, y, b, v int)
	SetSampleFloat(x, y, b int, v float32)
	SetSampleDouble(x, y, b int, v float64)
	SetPixel(x, y int, src []int)
	SetPixelFloat(x, y int, src []float32)
	SetPixelDouble(x, y int, src []float64)
}

// RectIter walks a rectangle in row-major order. Loops are written with the
// Finished predicates:
//
//	it.StartLines()
//	for !it.FinishedLines() {
//		it.StartPixels()
//		for !it.FinishedPixels() {
//			it.StartBands()
//			for !it.FinishedBands() {
//				_ = it.Sample()
//				it.NextBand()
//			}
//			it.NextPixel()
//		}
//		it.NextLine()
//	}
//
// Moving a line keeps the pixel position; call StartPixels to rewind it.
type RectIter interface {
	StartLines()
	NextLine()
	NextLineDone() bool
	// JumpLines moves n lines. It returns ErrOutOfBounds, leaving the
	// cursor untouched, if the target line is outside the rectangle.
	JumpLines(n int) error
	FinishedLines() bool

	StartPixels()
	NextPixel()
	NextPixelDone() bool
	JumpPixels(n int) error
	FinishedPixels() bool

	StartBands()
	NextBand()
	NextBandDone() bool
	FinishedBands() bool

	Sample() int
	BandSample(b int) int
	SampleFloat() float32
	BandSampleFloat(b int) float32
	SampleDouble() float64
	BandSampleDouble(b int) float64
	Pixel(dst []int) []int
	PixelFloat(dst []float32) []float32
	PixelDouble(dst []float64) []float64

	Done()
}

// WritableRectIter writes at the current position of a RectIter.
type WritableRectIter interface {
	RectIter

	SetSample(v int)
	SetBandSample(b, v int)
	SetSampleFloat(v float32)
	SetBandSampleFloat(b int, v float32)
	SetSampleDouble(v float64)
	SetBandSampleDouble(b int, v float64)
	SetPixel(src []int)
	SetPixelFloat(src []float32)
	SetPixelDouble(src []float64)
}

// RookIter is a RectIter that also moves backward. Its Finished predicates
// report true past either end.
type RookIter interface {
	RectIter

	EndLines()
	PrevLine()
	PrevLineDone() bool

	EndPixels()
	PrevPixel()
	PrevPixelDone() bool

	EndBands()
	PrevBand()
	PrevBandDone() bool
}

type WritableRookIter interface {
	WritableRectIter
	RookIter
}
