package raster_test

import (
	"errors"
	"image"
	"testing"
	"time"

	"github.com/eak1mov/go-libraster/raster"
	"github.com/stretchr/testify/require"
)

func newTestTiledImage(t *testing.T) *raster.TiledImage {
	t.Helper()

	sm, err := raster.NewPixelInterleavedSampleModel(raster.TypeByte, 2, 2, 1)
	require.NoError(t, err)

	layout := raster.TileLayout{TileWidth: 2, TileHeight: 2}
	img, err := raster.NewTiledImage(image.Rect(0, 0, 4, 3), layout, sm)
	require.NoError(t, err)
	return img
}

func TestTiledImageTiles(t *testing.T) {
	img := newTestTiledImage(t)
	require.Equal(t, image.Rect(0, 0, 2, 2), img.TileRange())

	tile := img.Tile(1, 1)
	require.NotNil(t, tile)
	require.Equal(t, image.Rect(2, 2, 4, 4), tile.Bounds())
	require.Same(t, tile, img.Tile(1, 1))

	require.Nil(t, img.Tile(2, 0))
	require.Nil(t, img.Tile(-1, 0))
}

func TestTiledImageSetTile(t *testing.T) {
	img := newTestTiledImage(t)

	r := raster.CreateRaster(img.SampleModel(), image.Pt(2, 0))
	r.SetSample(3, 1, 0, 9)
	require.NoError(t, img.SetTile(1, 0, r))
	require.Equal(t, 9, img.Tile(1, 0).Sample(3, 1, 0))

	err := img.SetTile(0, 0, r)
	require.Truef(t, errors.Is(err, raster.ErrLayoutMismatch), "%v", err)

	err = img.SetTile(5, 0, r)
	require.Truef(t, errors.Is(err, raster.ErrInvalidLayout), "%v", err)
}

func TestNewTiledImageErrors(t *testing.T) {
	sm, err := raster.NewPixelInterleavedSampleModel(raster.TypeByte, 2, 2, 1)
	require.NoError(t, err)

	_, err = raster.NewTiledImage(image.Rect(0, 0, 4, 4), raster.TileLayout{TileWidth: 3, TileHeight: 2}, sm)
	require.Truef(t, errors.Is(err, raster.ErrLayoutMismatch), "%v", err)

	_, err = raster.NewTiledImage(image.Rect(0, 0, 4, 4), raster.TileLayout{}, sm)
	require.Truef(t, errors.Is(err, raster.ErrInvalidLayout), "%v", err)

	_, err = raster.NewTiledImage(image.Rectangle{}, raster.TileLayout{TileWidth: 2, TileHeight: 2}, sm)
	require.Truef(t, errors.Is(err, raster.ErrInvalidLayout), "%v", err)
}

func TestTiledImageLease(t *testing.T) {
	img := newTestTiledImage(t)

	lease := img.WritableTile(0, 1)
	require.Equal(t, 1, img.WritableTileCount())
	require.True(t, img.HasTileWriters(0, 1))
	require.False(t, img.HasTileWriters(1, 1))

	lease.Raster().SetSample(1, 2, 0, 5)
	require.Equal(t, 5, img.Tile(0, 1).Sample(1, 2, 0))

	acquired := make(chan *raster.TileLease)
	go func() {
		acquired <- img.WritableTile(0, 1)
	}()

	select {
	case <-acquired:
		t.Fatal("second writer acquired a leased tile")
	case <-time.After(20 * time.Millisecond):
	}

	lease.Release()
	lease.Release()
	require.True(t, lease.Released())

	second := <-acquired
	require.Equal(t, 1, img.WritableTileCount())
	second.Release()
	require.Equal(t, 0, img.WritableTileCount())
}

func TestRasterImage(t *testing.T) {
	sm, err := raster.NewBandedSampleModel(raster.TypeInt, 3, 2, 2)
	require.NoError(t, err)

	r := raster.CreateRaster(sm, image.Pt(-1, 5))
	img := raster.NewRasterImage(r)

	require.Equal(t, r.Bounds(), img.Bounds())
	require.Equal(t, raster.TileLayout{TileWidth: 3, TileHeight: 2, GridXOffset: -1, GridYOffset: 5}, img.TileLayout())
	require.Same(t, r, img.Tile(0, 0))
	require.Nil(t, img.Tile(1, 0))

	lease := img.WritableTile(0, 0)
	require.Same(t, r, lease.Raster())
	lease.Release()

	require.Panics(t, func() { img.WritableTile(0, 1) })
}
