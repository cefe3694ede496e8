// Package store keeps tiled images in tile archives. Tiles are stored as
// raw little-endian samples; the image geometry and sample layout travel in
// a JSON metadata document next to the tiles.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/eak1mov/go-libraster/raster"
)

var (
	ErrInvalidMetadata = errors.New("libraster: invalid image metadata")
	ErrInvalidTile     = errors.New("libraster: invalid tile data")
)

// Layout is the order of samples in a stored tile.
type Layout string

const (
	// LayoutInterleaved stores all bands of a pixel together, pixels in
	// row-major order.
	LayoutInterleaved Layout = "interleaved"
	// LayoutBanded stores each band as a row-major plane.
	LayoutBanded Layout = "banded"
)

type Metadata struct {
	Bounds   image.Rectangle   `json:"bounds"`
	Tiles    raster.TileLayout `json:"tiles"`
	DataType raster.DataType   `json:"dataType"`
	NumBands int               `json:"numBands"`
	Layout   Layout            `json:"layout"`
}

// MetadataOf describes img. Banded component layouts are stored banded,
// everything else interleaved.
func MetadataOf(img raster.Image) Metadata {
	sm := img.SampleModel()
	layout := LayoutInterleaved
	if csm, ok := sm.(*raster.ComponentSampleModel); ok && csm.Banded() && csm.NumBands() > 1 {
		layout = LayoutBanded
	}
	return Metadata{
		Bounds:   img.Bounds(),
		Tiles:    img.TileLayout(),
		DataType: sm.DataType(),
		NumBands: sm.NumBands(),
		Layout:   layout,
	}
}

func ParseMetadata(data []byte) (Metadata, error) {
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return Metadata{}, fmt.Errorf("%w: %w", ErrInvalidMetadata, err)
	}
	if err := m.Validate(); err != nil {
		return Metadata{}, err
	}
	return m, nil
}

func (m Metadata) Marshal() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

func (m Metadata) Validate() error {
	switch {
	case m.Bounds.Empty():
		return fmt.Errorf("%w: empty bounds %v", ErrInvalidMetadata, m.Bounds)
	case !m.Tiles.Valid():
		return fmt.Errorf("%w: tile size %dx%d", ErrInvalidMetadata, m.Tiles.TileWidth, m.Tiles.TileHeight)
	case !m.DataType.Valid():
		return fmt.Errorf("%w: data type %v", ErrInvalidMetadata, m.DataType)
	case m.NumBands <= 0:
		return fmt.Errorf("%w: %d bands", ErrInvalidMetadata, m.NumBands)
	case m.Layout != LayoutInterleaved && m.Layout != LayoutBanded:
		return fmt.Errorf("%w: layout %q", ErrInvalidMetadata, m.Layout)
	}
	return nil
}

// TileRange returns the half-open range of tile indices of the image.
func (m Metadata) TileRange() image.Rectangle {
	return raster.TileRange(m.Bounds, m.Tiles)
}

// SampleModel returns the layout of decoded tiles.
func (m Metadata) SampleModel() (*raster.ComponentSampleModel, error) {
	if m.Layout == LayoutBanded {
		return raster.NewBandedSampleModel(m.DataType, m.Tiles.TileWidth, m.Tiles.TileHeight, m.NumBands)
	}
	return raster.NewPixelInterleavedSampleModel(m.DataType, m.Tiles.TileWidth, m.Tiles.TileHeight, m.NumBands)
}

// TileSize returns the length of an encoded tile in bytes.
func (m Metadata) TileSize() int {
	return m.Tiles.TileWidth * m.Tiles.TileHeight * m.NumBands * m.DataType.Size()
}
