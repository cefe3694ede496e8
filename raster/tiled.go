package raster

import (
	"fmt"
	"image"
	"log/slog"
	"sync"
)

// TiledImage is an in-memory WritableImage. Tiles are allocated on first
// access. A tile has at most one writer at a time: WritableTile blocks while
// another lease on the same tile is outstanding.
//
// TiledImage is safe for concurrent use.
type TiledImage struct {
	bounds      image.Rectangle
	layout      TileLayout
	sampleModel SampleModel
	tileRange   image.Rectangle
	logger      *slog.Logger

	mu    sync.Mutex
	slots map[image.Point]*tileSlot
}

type tileSlot struct {
	raster  *Raster
	writer  sync.Mutex
	writers int // guarded by TiledImage.mu
}

var _ WritableImage = (*TiledImage)(nil)

type imageConfig struct {
	Logger *slog.Logger
}

type ImageOption func(*imageConfig)

func WithLogger(logger *slog.Logger) ImageOption {
	return func(c *imageConfig) { c.Logger = logger }
}

// NewTiledImage creates an image covering bounds. The sample model
// describes a single tile and must match the tile size of layout.
func NewTiledImage(bounds image.Rectangle, layout TileLayout, sm SampleModel, opts ...ImageOption) (*TiledImage, error) {
	config := imageConfig{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}

	if bounds.Empty() {
		return nil, fmt.Errorf("%w: empty bounds %v", ErrInvalidLayout, bounds)
	}
	if !layout.Valid() {
		return nil, fmt.Errorf("%w: tile size %dx%d", ErrInvalidLayout, layout.TileWidth, layout.TileHeight)
	}
	if sm.Width() != layout.TileWidth || sm.Height() != layout.TileHeight {
		return nil, fmt.Errorf("%w: sample model %dx%d, tiles %dx%d", ErrLayoutMismatch,
			sm.Width(), sm.Height(), layout.TileWidth, layout.TileHeight)
	}

	return &TiledImage{
		bounds:      bounds,
		layout:      layout,
		sampleModel: sm,
		tileRange:   TileRange(bounds, layout),
		logger:      config.Logger,
		slots:       make(map[image.Point]*tileSlot),
	}, nil
}

func (im *TiledImage) Bounds() image.Rectangle  { return im.bounds }
func (im *TiledImage) TileLayout() TileLayout   { return im.layout }
func (im *TiledImage) SampleModel() SampleModel { return im.sampleModel }

// TileRange returns the half-open range of valid tile indices.
func (im *TiledImage) TileRange() image.Rectangle { return im.tileRange }

func (im *TiledImage) slot(tx, ty int) *tileSlot {
	p := image.Pt(tx, ty)
	if !p.In(im.tileRange) {
		return nil
	}

	im.mu.Lock()
	defer im.mu.Unlock()

	s, ok := im.slots[p]
	if !ok {
		origin := TileBounds(tx, ty, im.layout).Min
		s = &tileSlot{raster: CreateRaster(im.sampleModel, origin)}
		im.slots[p] = s
		im.logger.Debug("libraster: tile allocated", "tileX", tx, "tileY", ty)
	}
	return s
}

func (im *TiledImage) Tile(tx, ty int) *Raster {
	s := im.slot(tx, ty)
	if s == nil {
		return nil
	}

	im.mu.Lock()
	defer im.mu.Unlock()
	return s.raster
}

// SetTile replaces the raster of tile (tx, ty). The raster must cover the
// tile's bounds and use a sample model of the same shape.
func (im *TiledImage) SetTile(tx, ty int, r *Raster) error {
	p := image.Pt(tx, ty)
	if !p.In(im.tileRange) {
		return fmt.Errorf("%w: tile (%d, %d) outside %v", ErrInvalidLayout, tx, ty, im.tileRange)
	}
	if r.Bounds() != TileBounds(tx, ty, im.layout) {
		return fmt.Errorf("%w: raster bounds %v for tile (%d, %d)", ErrLayoutMismatch, r.Bounds(), tx, ty)
	}
	sm := r.SampleModel()
	if sm.DataType() != im.sampleModel.DataType() || sm.NumBands() != im.sampleModel.NumBands() {
		return fmt.Errorf("%w: %v/%d bands, want %v/%d bands", ErrLayoutMismatch,
			sm.DataType(), sm.NumBands(), im.sampleModel.DataType(), im.sampleModel.NumBands())
	}

	s := im.slot(tx, ty)
	s.writer.Lock()
	defer s.writer.Unlock()

	im.mu.Lock()
	s.raster = r
	im.mu.Unlock()
	return nil
}

func (im *TiledImage) WritableTile(tx, ty int) *TileLease {
	s := im.slot(tx, ty)
	if s == nil {
		panic(fmt.Sprintf("libraster: writable tile (%d, %d) outside %v", tx, ty, im.tileRange))
	}

	s.writer.Lock()
	im.mu.Lock()
	s.writers++
	r := s.raster
	im.mu.Unlock()

	return NewTileLease(r, tx, ty, func() {
		im.mu.Lock()
		s.writers--
		im.mu.Unlock()
		s.writer.Unlock()
	})
}

// WritableTileCount returns the number of tiles currently checked out.
func (im *TiledImage) WritableTileCount() int {
	im.mu.Lock()
	defer im.mu.Unlock()

	count := 0
	for _, s := range im.slots {
		if s.writers > 0 {
			count++
		}
	}
	return count
}

// HasTileWriters reports whether tile (tx, ty) is checked out.
func (im *TiledImage) HasTileWriters(tx, ty int) bool {
	im.mu.Lock()
	defer im.mu.Unlock()

	s, ok := im.slots[image.Pt(tx, ty)]
	return ok && s.writers > 0
}
