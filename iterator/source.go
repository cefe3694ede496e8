package iterator

import (
	"fmt"

	"github.com/eak1mov/go-libraster/raster"
)

// tileSource hands tiles to a cursor. It is consulted only when the cursor
// crosses into another tile.
type tileSource interface {
	tile(tx, ty int) *raster.Raster
	done()
}

type readSource struct {
	img raster.Image
}

func (s readSource) tile(tx, ty int) *raster.Raster { return s.img.Tile(tx, ty) }
func (readSource) done()                            {}

// leaseSource holds at most one writable tile, releasing it before checking
// out the next one.
type leaseSource struct {
	img   raster.WritableImage
	lease *raster.TileLease
}

func (s *leaseSource) tile(tx, ty int) *raster.Raster {
	if s.lease != nil {
		if s.lease.TileX() == tx && s.lease.TileY() == ty {
			return s.lease.Raster()
		}
		s.lease.Release()
		s.lease = nil
	}
	s.lease = s.img.WritableTile(tx, ty)
	return s.lease.Raster()
}

func (s *leaseSource) done() {
	if s.lease != nil {
		s.lease.Release()
		s.lease = nil
	}
}

// fallbackBinding addresses a tile through its SampleModel.
type fallbackBinding struct {
	sm     raster.SampleModel
	buf    raster.DataBuffer
	tx, ty int
}

func (f *fallbackBinding) bind(r *raster.Raster) {
	t := r.SampleModelTranslate()
	f.sm, f.buf = r.SampleModel(), r.DataBuffer()
	f.tx, f.ty = t.X, t.Y
}

// componentBinding addresses a tile with a component layout directly.
// Sample (x, y, b) of the bound tile is banks[b][index(x, y)+origins[b]],
// with x and y in image coordinates: origins fold in the tile translation,
// the bank offset and the band offset.
type componentBinding[T raster.Sample] struct {
	pixelStride    int
	scanlineStride int
	banks          [][]T
	origins        []int
}

func newComponentBinding[T raster.Sample](sm *raster.ComponentSampleModel) componentBinding[T] {
	return componentBinding[T]{
		pixelStride:    sm.PixelStride(),
		scanlineStride: sm.ScanlineStride(),
		banks:          make([][]T, sm.NumBands()),
		origins:        make([]int, sm.NumBands()),
	}
}

func (c *componentBinding[T]) index(x, y int) int {
	return y*c.scanlineStride + x*c.pixelStride
}

// bind refreshes bank slices and origins. Tiles share strides with the image
// but may differ in band offsets, bank assignment and buffer offsets.
func (c *componentBinding[T]) bind(r *raster.Raster) {
	sm, ok := r.SampleModel().(*raster.ComponentSampleModel)
	if !ok || sm.PixelStride() != c.pixelStride || sm.ScanlineStride() != c.scanlineStride {
		panic(fmt.Errorf("%w: tile %v has layout %T", raster.ErrLayoutMismatch, r.Bounds(), r.SampleModel()))
	}
	buf, ok := r.DataBuffer().(*raster.Buffer[T])
	if !ok {
		panic(fmt.Errorf("%w: tile %v has buffer %T", raster.ErrLayoutMismatch, r.Bounds(), r.DataBuffer()))
	}

	t := r.SampleModelTranslate()
	base := -c.index(t.X, t.Y)
	for b := range c.banks {
		bank := sm.BankIndex(b)
		c.banks[b] = buf.Bank(bank)
		c.origins[b] = base + buf.Offset(bank) + sm.BandOffset(b)
	}
}
