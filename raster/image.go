package raster

import (
	"fmt"
	"image"
)

// TileLayout describes the regular tile grid of an image. Tile (0, 0) has
// its first pixel at (GridXOffset, GridYOffset).
type TileLayout struct {
	TileWidth   int
	TileHeight  int
	GridXOffset int
	GridYOffset int
}

func (l TileLayout) Valid() bool {
	return l.TileWidth > 0 && l.TileHeight > 0
}

// Image is a read-only store of tiles.
type Image interface {
	// Bounds returns the pixel bounds of the image.
	Bounds() image.Rectangle

	TileLayout() TileLayout

	// SampleModel returns the layout shared by every tile. Tiles have the
	// same shape but may place their samples at different buffer offsets.
	SampleModel() SampleModel

	// Tile returns the tile at grid index (tx, ty), or nil when the index is
	// outside the image. Tile may block while the tile is loaded;
	// implementations that can fail to load a tile panic.
	Tile(tx, ty int) *Raster
}

// WritableImage is an Image whose tiles can be checked out for writing.
type WritableImage interface {
	Image

	// WritableTile checks out tile (tx, ty) for writing. The store may block
	// until other writers of the same tile have released it. The returned
	// lease must be released exactly once; TileLease.Release is idempotent.
	WritableTile(tx, ty int) *TileLease
}

// TileLease is a writable checkout of a single tile.
type TileLease struct {
	raster  *Raster
	tx, ty  int
	release func()
}

// NewTileLease is used by WritableImage implementations. The release
// function runs on the first call to Release.
func NewTileLease(r *Raster, tx, ty int, release func()) *TileLease {
	return &TileLease{raster: r, tx: tx, ty: ty, release: release}
}

func (l *TileLease) Raster() *Raster { return l.raster }
func (l *TileLease) TileX() int      { return l.tx }
func (l *TileLease) TileY() int      { return l.ty }

// Released reports whether Release has been called.
func (l *TileLease) Released() bool { return l.raster == nil }

// Release returns the tile to its store. Calls after the first are no-ops.
func (l *TileLease) Release() {
	if l.raster == nil {
		return
	}
	l.raster = nil
	if l.release != nil {
		l.release()
	}
}

// RasterImage presents a single raster as a one-tile image.
type RasterImage struct {
	raster *Raster
}

var _ WritableImage = (*RasterImage)(nil)

func NewRasterImage(r *Raster) *RasterImage {
	return &RasterImage{raster: r}
}

func (im *RasterImage) Bounds() image.Rectangle  { return im.raster.Bounds() }
func (im *RasterImage) SampleModel() SampleModel { return im.raster.SampleModel() }

func (im *RasterImage) TileLayout() TileLayout {
	b := im.raster.Bounds()
	return TileLayout{
		TileWidth:   b.Dx(),
		TileHeight:  b.Dy(),
		GridXOffset: b.Min.X,
		GridYOffset: b.Min.Y,
	}
}

func (im *RasterImage) Tile(tx, ty int) *Raster {
	if tx != 0 || ty != 0 {
		return nil
	}
	return im.raster
}

func (im *RasterImage) WritableTile(tx, ty int) *TileLease {
	if tx != 0 || ty != 0 {
		panic(fmt.Sprintf("libraster: tile (%d, %d) outside single-raster image", tx, ty))
	}
	return NewTileLease(im.raster, tx, ty, nil)
}
