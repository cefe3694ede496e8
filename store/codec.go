package store

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/eak1mov/go-libraster/iterator"
	"github.com/eak1mov/go-libraster/raster"
	"github.com/eak1mov/go-libraster/tile"
)

// EncodeTile serializes every pixel of r, including pixels outside the
// image bounds, in the sample order of m.Layout.
func (m Metadata) EncodeTile(r *raster.Raster) ([]byte, error) {
	if r.Bounds().Dx() != m.Tiles.TileWidth || r.Bounds().Dy() != m.Tiles.TileHeight {
		return nil, fmt.Errorf("%w: raster %v, tiles %dx%d", ErrInvalidTile, r.Bounds(), m.Tiles.TileWidth, m.Tiles.TileHeight)
	}
	if r.NumBands() != m.NumBands || r.SampleModel().DataType() != m.DataType {
		return nil, fmt.Errorf("%w: raster %v/%d bands, want %v/%d bands", ErrInvalidTile,
			r.SampleModel().DataType(), r.NumBands(), m.DataType, m.NumBands)
	}

	data := make([]byte, 0, m.TileSize())
	it := iterator.NewRectFromRaster(r, iterator.All)
	defer it.Done()

	m.walk(it, func(b int) {
		switch m.DataType {
		case raster.TypeByte:
			data = append(data, byte(it.BandSample(b)))
		case raster.TypeUShort, raster.TypeShort:
			data = binary.LittleEndian.AppendUint16(data, uint16(it.BandSample(b)))
		case raster.TypeInt:
			data = binary.LittleEndian.AppendUint32(data, uint32(it.BandSample(b)))
		case raster.TypeFloat:
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(it.BandSampleFloat(b)))
		case raster.TypeDouble:
			data = binary.LittleEndian.AppendUint64(data, math.Float64bits(it.BandSampleDouble(b)))
		}
	})
	return data, nil
}

// DecodeTile builds the raster of tile tileID from data produced by
// EncodeTile.
func (m Metadata) DecodeTile(tileID tile.ID, data []byte) (*raster.Raster, error) {
	if len(data) != m.TileSize() {
		return nil, fmt.Errorf("%w: tile %v has %d bytes, want %d", ErrInvalidTile, tileID, len(data), m.TileSize())
	}
	sm, err := m.SampleModel()
	if err != nil {
		return nil, err
	}
	r := raster.CreateRaster(sm, raster.TileBounds(tileID.X, tileID.Y, m.Tiles).Min)

	it := iterator.NewWritableRectFromRaster(r, iterator.All)
	defer it.Done()

	m.walk(it, func(b int) {
		switch m.DataType {
		case raster.TypeByte:
			it.SetBandSample(b, int(data[0]))
			data = data[1:]
		case raster.TypeUShort:
			it.SetBandSample(b, int(binary.LittleEndian.Uint16(data)))
			data = data[2:]
		case raster.TypeShort:
			it.SetBandSample(b, int(int16(binary.LittleEndian.Uint16(data))))
			data = data[2:]
		case raster.TypeInt:
			it.SetBandSample(b, int(int32(binary.LittleEndian.Uint32(data))))
			data = data[4:]
		case raster.TypeFloat:
			it.SetBandSampleFloat(b, math.Float32frombits(binary.LittleEndian.Uint32(data)))
			data = data[4:]
		case raster.TypeDouble:
			it.SetBandSampleDouble(b, math.Float64frombits(binary.LittleEndian.Uint64(data)))
			data = data[8:]
		}
	})
	return r, nil
}

// walk calls fn for every sample of it in the order of m.Layout.
func (m Metadata) walk(it iterator.RectIter, fn func(b int)) {
	if m.Layout == LayoutBanded {
		for b := range m.NumBands {
			for it.StartLines(); !it.FinishedLines(); it.NextLine() {
				for it.StartPixels(); !it.FinishedPixels(); it.NextPixel() {
					fn(b)
				}
			}
		}
		return
	}
	for it.StartLines(); !it.FinishedLines(); it.NextLine() {
		for it.StartPixels(); !it.FinishedPixels(); it.NextPixel() {
			for b := range m.NumBands {
				fn(b)
			}
		}
	}
}
