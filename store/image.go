package store

import (
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/eak1mov/go-libraster/raster"
	"github.com/eak1mov/go-libraster/tile"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

const defaultCacheSize = 256

// Image is a read-only raster.Image backed by a tile archive. Tiles are
// decoded on first access and kept in an LRU cache; tiles missing from the
// archive read as zeros.
//
// Image is safe for concurrent use.
type Image struct {
	reader      tile.Reader
	metadata    Metadata
	sampleModel raster.SampleModel
	tileRange   image.Rectangle
	logger      *slog.Logger

	cache *lru.Cache[tile.ID, *raster.Raster]
	loads singleflight.Group
}

var _ raster.Image = (*Image)(nil)

type config struct {
	Logger    *slog.Logger
	CacheSize int
	Progress  func(done, total int)
	Workers   int
}

type Option func(*config)

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.Logger = logger }
}

// WithCacheSize sets the number of decoded tiles an Image keeps. Zero keeps
// every tile.
func WithCacheSize(size int) Option {
	return func(c *config) { c.CacheSize = size }
}

// WithProgress sets a function Save calls after each written tile.
func WithProgress(progress func(done, total int)) Option {
	return func(c *config) { c.Progress = progress }
}

// WithWorkers sets how many tiles Save encodes in parallel.
func WithWorkers(n int) Option {
	return func(c *config) { c.Workers = n }
}

func newConfig(opts []Option) config {
	c := config{
		Logger:    slog.New(slog.DiscardHandler),
		CacheSize: defaultCacheSize,
		Workers:   1,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Open returns an image reading its tiles from r.
func Open(r tile.Reader, metadata Metadata, opts ...Option) (*Image, error) {
	config := newConfig(opts)

	if err := metadata.Validate(); err != nil {
		return nil, err
	}
	sm, err := metadata.SampleModel()
	if err != nil {
		return nil, err
	}

	cacheSize := config.CacheSize
	if cacheSize <= 0 {
		cacheSize = math.MaxInt
	}
	logger := config.Logger
	cache, err := lru.NewWithEvict[tile.ID, *raster.Raster](cacheSize, func(tileID tile.ID, _ *raster.Raster) {
		logger.Debug("libraster: tile evicted", "tile", tileID)
	})
	if err != nil {
		return nil, err
	}

	return &Image{
		reader:      r,
		metadata:    metadata,
		sampleModel: sm,
		tileRange:   metadata.TileRange(),
		logger:      logger,
		cache:       cache,
	}, nil
}

// Archive is a tile archive that also stores image metadata.
type Archive interface {
	tile.Reader
	tile.MetadataReader
}

// OpenArchive reads the metadata stored in r and opens the image.
func OpenArchive(r Archive, opts ...Option) (*Image, error) {
	data, err := r.ReadMetadata()
	if err != nil {
		return nil, err
	}
	metadata, err := ParseMetadata(data)
	if err != nil {
		return nil, err
	}
	return Open(r, metadata, opts...)
}

func (im *Image) Bounds() image.Rectangle         { return im.metadata.Bounds }
func (im *Image) TileLayout() raster.TileLayout   { return im.metadata.Tiles }
func (im *Image) SampleModel() raster.SampleModel { return im.sampleModel }
func (im *Image) Metadata() Metadata              { return im.metadata }

// Tile decodes tile (tx, ty). It panics if the archive cannot be read or
// holds a malformed tile.
func (im *Image) Tile(tx, ty int) *raster.Raster {
	if !image.Pt(tx, ty).In(im.tileRange) {
		return nil
	}
	r, err := im.ReadTile(tile.ID{X: tx, Y: ty})
	if err != nil {
		panic(err)
	}
	return r
}

// ReadTile is Tile with an error return.
func (im *Image) ReadTile(tileID tile.ID) (*raster.Raster, error) {
	if r, ok := im.cache.Get(tileID); ok {
		return r, nil
	}

	v, err, _ := im.loads.Do(tileID.String(), func() (any, error) {
		if r, ok := im.cache.Get(tileID); ok {
			return r, nil
		}
		r, err := im.load(tileID)
		if err != nil {
			return nil, err
		}
		im.cache.Add(tileID, r)
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*raster.Raster), nil
}

func (im *Image) load(tileID tile.ID) (*raster.Raster, error) {
	data, err := im.reader.ReadTile(tileID)
	if err != nil {
		return nil, fmt.Errorf("libraster: read tile %v: %w", tileID, err)
	}
	if len(data) == 0 {
		im.logger.Debug("libraster: tile missing, using zeros", "tile", tileID)
		origin := raster.TileBounds(tileID.X, tileID.Y, im.metadata.Tiles).Min
		return raster.CreateRaster(im.sampleModel, origin), nil
	}
	im.logger.Debug("libraster: tile loaded", "tile", tileID, "size", len(data))
	return im.metadata.DecodeTile(tileID, data)
}
