package iterator

import (
	"image"

	"github.com/eak1mov/go-libraster/raster"
)

// randomBase tracks which grid cell is bound. Every access recomputes the
// storage offset from (x, y); only a change of cell touches the tile source.
type randomBase struct {
	src      tileSource
	layout   raster.TileLayout
	numBands int
	cell     image.Rectangle // empty when no tile is bound
}

func newRandomBase(src tileSource, img raster.Image) randomBase {
	return randomBase{
		src:      src,
		layout:   img.TileLayout(),
		numBands: img.SampleModel().NumBands(),
	}
}

// locate returns the tile to bind when (x, y) lies outside the bound cell.
func (r *randomBase) locate(x, y int) (*raster.Raster, bool) {
	if x >= r.cell.Min.X && x < r.cell.Max.X && y >= r.cell.Min.Y && y < r.cell.Max.Y {
		return nil, false
	}
	tx := raster.XToTileX(x, r.layout.GridXOffset, r.layout.TileWidth)
	ty := raster.XToTileX(y, r.layout.GridYOffset, r.layout.TileHeight)
	r.cell = raster.TileBounds(tx, ty, r.layout)
	return r.src.tile(tx, ty), true
}

func (r *randomBase) Done() {
	r.src.done()
	r.cell = image.Rectangle{}
}

type fallbackRandom struct {
	randomBase
	fallbackBinding
}

func newFallbackRandom(src tileSource, img raster.Image) *fallbackRandom {
	return &fallbackRandom{randomBase: newRandomBase(src, img)}
}

// local binds the tile holding (x, y) and returns sample model coordinates.
func (it *fallbackRandom) local(x, y int) (int, int) {
	if r, moved := it.locate(x, y); moved {
		it.bind(r)
	}
	return x - it.tx, y - it.ty
}

func (it *fallbackRandom) Sample(x, y, b int) int {
	lx, ly := it.local(x, y)
	return it.sm.Sample(lx, ly, b, it.buf)
}

func (it *fallbackRandom) SampleFloat(x, y, b int) float32 {
	lx, ly := it.local(x, y)
	return it.sm.SampleFloat(lx, ly, b, it.buf)
}

func (it *fallbackRandom) SampleDouble(x, y, b int) float64 {
	lx, ly := it.local(x, y)
	return it.sm.SampleDouble(lx, ly, b, it.buf)
}

func (it *fallbackRandom) Pixel(x, y int, dst []int) []int {
	if dst == nil {
		dst = make([]int, it.numBands)
	}
	lx, ly := it.local(x, y)
	for b := range it.numBands {
		dst[b] = it.sm.Sample(lx, ly, b, it.buf)
	}
	return dst
}

func (it *fallbackRandom) PixelFloat(x, y int, dst []float32) []float32 {
	if dst == nil {
		dst = make([]float32, it.numBands)
	}
	lx, ly := it.local(x, y)
	for b := range it.numBands {
		dst[b] = it.sm.SampleFloat(lx, ly, b, it.buf)
	}
	return dst
}

func (it *fallbackRandom) PixelDouble(x, y int, dst []float64) []float64 {
	if dst == nil {
		dst = make([]float64, it.numBands)
	}
	lx, ly := it.local(x, y)
	for b := range it.numBands {
		dst[b] = it.sm.SampleDouble(lx, ly, b, it.buf)
	}
	return dst
}

type writableFallbackRandom struct {
	*fallbackRandom
}

func (it *writableFallbackRandom) SetSample(x, y, b, v int) {
	lx, ly := it.local(x, y)
	it.sm.SetSample(lx, ly, b, v, it.buf)
}

func (it *writableFallbackRandom) SetSampleFloat(x, y, b int, v float32) {
	lx, ly := it.local(x, y)
	it.sm.SetSampleFloat(lx, ly, b, v, it.buf)
}

func (it *writableFallbackRandom) SetSampleDouble(x, y, b int, v float64) {
	lx, ly := it.local(x, y)
	it.sm.SetSampleDouble(lx, ly, b, v, it.buf)
}

func (it *writableFallbackRandom) SetPixel(x, y int, src []int) {
	lx, ly := it.local(x, y)
	for b := range it.numBands {
		it.sm.SetSample(lx, ly, b, src[b], it.buf)
	}
}

func (it *writableFallbackRandom) SetPixelFloat(x, y int, src []float32) {
	lx, ly := it.local(x, y)
	for b := range it.numBands {
		it.sm.SetSampleFloat(lx, ly, b, src[b], it.buf)
	}
}

func (it *writableFallbackRandom) SetPixelDouble(x, y int, src []float64) {
	lx, ly := it.local(x, y)
	for b := range it.numBands {
		it.sm.SetSampleDouble(lx, ly, b, src[b], it.buf)
	}
}

type componentRandom[T raster.Sample] struct {
	randomBase
	componentBinding[T]
}

func newComponentRandom[T raster.Sample](src tileSource, img raster.Image, sm *raster.ComponentSampleModel) *componentRandom[T] {
	return &componentRandom[T]{
		randomBase:       newRandomBase(src, img),
		componentBinding: newComponentBinding[T](sm),
	}
}

// at binds the tile holding (x, y) and returns its pixel index.
func (it *componentRandom[T]) at(x, y int) int {
	if r, moved := it.locate(x, y); moved {
		it.bind(r)
	}
	return it.index(x, y)
}

func (it *componentRandom[T]) Sample(x, y, b int) int {
	i := it.at(x, y)
	return int(it.banks[b][i+it.origins[b]])
}

func (it *componentRandom[T]) SampleFloat(x, y, b int) float32 {
	i := it.at(x, y)
	return float32(it.banks[b][i+it.origins[b]])
}

func (it *componentRandom[T]) SampleDouble(x, y, b int) float64 {
	i := it.at(x, y)
	return float64(it.banks[b][i+it.origins[b]])
}

func (it *componentRandom[T]) Pixel(x, y int, dst []int) []int {
	if dst == nil {
		dst = make([]int, it.numBands)
	}
	i := it.at(x, y)
	for b, bank := range it.banks {
		dst[b] = int(bank[i+it.origins[b]])
	}
	return dst
}

func (it *componentRandom[T]) PixelFloat(x, y int, dst []float32) []float32 {
	if dst == nil {
		dst = make([]float32, it.numBands)
	}
	i := it.at(x, y)
	for b, bank := range it.banks {
		dst[b] = float32(bank[i+it.origins[b]])
	}
	return dst
}

func (it *componentRandom[T]) PixelDouble(x, y int, dst []float64) []float64 {
	if dst == nil {
		dst = make([]float64, it.numBands)
	}
	i := it.at(x, y)
	for b, bank := range it.banks {
		dst[b] = float64(bank[i+it.origins[b]])
	}
	return dst
}

type writableComponentRandom[T raster.Sample] struct {
	*componentRandom[T]
}

func (it *writableComponentRandom[T]) SetSample(x, y, b, v int) {
	i := it.at(x, y)
	it.banks[b][i+it.origins[b]] = T(v)
}

func (it *writableComponentRandom[T]) SetSampleFloat(x, y, b int, v float32) {
	i := it.at(x, y)
	it.banks[b][i+it.origins[b]] = raster.FromFloat64[T](float64(v))
}

func (it *writableComponentRandom[T]) SetSampleDouble(x, y, b int, v float64) {
	i := it.at(x, y)
	it.banks[b][i+it.origins[b]] = raster.FromFloat64[T](v)
}

func (it *writableComponentRandom[T]) SetPixel(x, y int, src []int) {
	i := it.at(x, y)
	for b, bank := range it.banks {
		bank[i+it.origins[b]] = T(src[b])
	}
}

func (it *writableComponentRandom[T]) SetPixelFloat(x, y int, src []float32) {
	i := it.at(x, y)
	for b, bank := range it.banks {
		bank[i+it.origins[b]] = raster.FromFloat64[T](float64(src[b]))
	}
}

func (it *writableComponentRandom[T]) SetPixelDouble(x, y int, src []float64) {
	i := it.at(x, y)
	for b, bank := range it.banks {
		bank[i+it.origins[b]] = raster.FromFloat64[T](src[b])
	}
}
