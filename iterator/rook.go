package iterator

import (
	"image"

	"github.com/eak1mov/go-libraster/raster"
)

// The sequential cursors below implement RookIter; RectIter constructors
// return them as well.

type fallbackRook struct {
	walker
	fallbackBinding
}

func newFallbackRook(src tileSource, img raster.Image, bounds image.Rectangle) *fallbackRook {
	it := &fallbackRook{}
	it.init(src, &it.fallbackBinding, img, bounds, 0, 0)
	return it
}

func (it *fallbackRook) Sample() int {
	return it.sm.Sample(it.x-it.tx, it.y-it.ty, it.b, it.buf)
}

func (it *fallbackRook) BandSample(b int) int {
	return it.sm.Sample(it.x-it.tx, it.y-it.ty, b, it.buf)
}

func (it *fallbackRook) SampleFloat() float32 {
	return it.sm.SampleFloat(it.x-it.tx, it.y-it.ty, it.b, it.buf)
}

func (it *fallbackRook) BandSampleFloat(b int) float32 {
	return it.sm.SampleFloat(it.x-it.tx, it.y-it.ty, b, it.buf)
}

func (it *fallbackRook) SampleDouble() float64 {
	return it.sm.SampleDouble(it.x-it.tx, it.y-it.ty, it.b, it.buf)
}

func (it *fallbackRook) BandSampleDouble(b int) float64 {
	return it.sm.SampleDouble(it.x-it.tx, it.y-it.ty, b, it.buf)
}

func (it *fallbackRook) Pixel(dst []int) []int {
	if dst == nil {
		dst = make([]int, it.numBands)
	}
	for b := range it.numBands {
		dst[b] = it.sm.Sample(it.x-it.tx, it.y-it.ty, b, it.buf)
	}
	return dst
}

func (it *fallbackRook) PixelFloat(dst []float32) []float32 {
	if dst == nil {
		dst = make([]float32, it.numBands)
	}
	for b := range it.numBands {
		dst[b] = it.sm.SampleFloat(it.x-it.tx, it.y-it.ty, b, it.buf)
	}
	return dst
}

func (it *fallbackRook) PixelDouble(dst []float64) []float64 {
	if dst == nil {
		dst = make([]float64, it.numBands)
	}
	for b := range it.numBands {
		dst[b] = it.sm.SampleDouble(it.x-it.tx, it.y-it.ty, b, it.buf)
	}
	return dst
}

type writableFallbackRook struct {
	*fallbackRook
}

func (it *writableFallbackRook) SetSample(v int) {
	it.sm.SetSample(it.x-it.tx, it.y-it.ty, it.b, v, it.buf)
}

func (it *writableFallbackRook) SetBandSample(b, v int) {
	it.sm.SetSample(it.x-it.tx, it.y-it.ty, b, v, it.buf)
}

func (it *writableFallbackRook) SetSampleFloat(v float32) {
	it.sm.SetSampleFloat(it.x-it.tx, it.y-it.ty, it.b, v, it.buf)
}

func (it *writableFallbackRook) SetBandSampleFloat(b int, v float32) {
	it.sm.SetSampleFloat(it.x-it.tx, it.y-it.ty, b, v, it.buf)
}

func (it *writableFallbackRook) SetSampleDouble(v float64) {
	it.sm.SetSampleDouble(it.x-it.tx, it.y-it.ty, it.b, v, it.buf)
}

func (it *writableFallbackRook) SetBandSampleDouble(b int, v float64) {
	it.sm.SetSampleDouble(it.x-it.tx, it.y-it.ty, b, v, it.buf)
}

func (it *writableFallbackRook) SetPixel(src []int) {
	for b := range it.numBands {
		it.sm.SetSample(it.x-it.tx, it.y-it.ty, b, src[b], it.buf)
	}
}

func (it *writableFallbackRook) SetPixelFloat(src []float32) {
	for b := range it.numBands {
		it.sm.SetSampleFloat(it.x-it.tx, it.y-it.ty, b, src[b], it.buf)
	}
}

func (it *writableFallbackRook) SetPixelDouble(src []float64) {
	for b := range it.numBands {
		it.sm.SetSampleDouble(it.x-it.tx, it.y-it.ty, b, src[b], it.buf)
	}
}

// componentRook reads typed banks at the walker's running offset. Origins
// carry the tile translation, so the offset stays valid across tile seams.
type componentRook[T raster.Sample] struct {
	walker
	componentBinding[T]
}

func newComponentRook[T raster.Sample](src tileSource, img raster.Image, sm *raster.ComponentSampleModel, bounds image.Rectangle) *componentRook[T] {
	it := &componentRook[T]{componentBinding: newComponentBinding[T](sm)}
	it.init(src, &it.componentBinding, img, bounds, sm.PixelStride(), sm.ScanlineStride())
	return it
}

func (it *componentRook[T]) Sample() int {
	return int(it.banks[it.b][it.offset+it.origins[it.b]])
}

func (it *componentRook[T]) BandSample(b int) int {
	return int(it.banks[b][it.offset+it.origins[b]])
}

func (it *componentRook[T]) SampleFloat() float32 {
	return float32(it.banks[it.b][it.offset+it.origins[it.b]])
}

func (it *componentRook[T]) BandSampleFloat(b int) float32 {
	return float32(it.banks[b][it.offset+it.origins[b]])
}

func (it *componentRook[T]) SampleDouble() float64 {
	return float64(it.banks[it.b][it.offset+it.origins[it.b]])
}

func (it *componentRook[T]) BandSampleDouble(b int) float64 {
	return float64(it.banks[b][it.offset+it.origins[b]])
}

func (it *componentRook[T]) Pixel(dst []int) []int {
	if dst == nil {
		dst = make([]int, it.numBands)
	}
	for b, bank := range it.banks {
		dst[b] = int(bank[it.offset+it.origins[b]])
	}
	return dst
}

func (it *componentRook[T]) PixelFloat(dst []float32) []float32 {
	if dst == nil {
		dst = make([]float32, it.numBands)
	}
	for b, bank := range it.banks {
		dst[b] = float32(bank[it.offset+it.origins[b]])
	}
	return dst
}

func (it *componentRook[T]) PixelDouble(dst []float64) []float64 {
	if dst == nil {
		dst = make([]float64, it.numBands)
	}
	for b, bank := range it.banks {
		dst[b] = float64(bank[it.offset+it.origins[b]])
	}
	return dst
}

type writableComponentRook[T raster.Sample] struct {
	*componentRook[T]
}

func (it *writableComponentRook[T]) SetSample(v int) {
	it.banks[it.b][it.offset+it.origins[it.b]] = T(v)
}

func (it *writableComponentRook[T]) SetBandSample(b, v int) {
	it.banks[b][it.offset+it.origins[b]] = T(v)
}

func (it *writableComponentRook[T]) SetSampleFloat(v float32) {
	it.banks[it.b][it.offset+it.origins[it.b]] = raster.FromFloat64[T](float64(v))
}

func (it *writableComponentRook[T]) SetBandSampleFloat(b int, v float32) {
	it.banks[b][it.offset+it.origins[b]] = raster.FromFloat64[T](float64(v))
}

func (it *writableComponentRook[T]) SetSampleDouble(v float64) {
	it.banks[it.b][it.offset+it.origins[it.b]] = raster.FromFloat64[T](v)
}

func (it *writableComponentRook[T]) SetBandSampleDouble(b int, v float64) {
	it.banks[b][it.offset+it.origins[b]] = raster.FromFloat64[T](v)
}

func (it *writableComponentRook[T]) SetPixel(src []int) {
	for b, bank := range it.banks {
		bank[it.offset+it.origins[b]] = T(src[b])
	}
}

func (it *writableComponentRook[T]) SetPixelFloat(src []float32) {
	for b, bank := range it.banks {
		bank[it.offset+it.origins[b]] = raster.FromFloat64[T](float64(src[b]))
	}
}

func (it *writableComponentRook[T]) SetPixelDouble(src []float64) {
	for b, bank := range it.banks {
		bank[it.offset+it.origins[b]] = raster.FromFloat64[T](src[b])
	}
}
