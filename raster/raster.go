// Package raster provides the data model of tiled, banded images: sample
// layouts, typed data buffers, tiles and the image store interfaces that
// iterators read from and write to.
package raster

import (
	"fmt"
	"image"
)

// Raster is a rectangle of pixels backed by a DataBuffer. It is the unit of
// storage handed out by an Image (a tile).
type Raster struct {
	bounds      image.Rectangle
	translate   image.Point
	sampleModel SampleModel
	dataBuffer  DataBuffer
}

// NewRaster wraps a buffer laid out by sm. The raster covers sm's size with
// its first pixel at origin.
func NewRaster(sm SampleModel, buf DataBuffer, origin image.Point) (*Raster, error) {
	if sm.DataType() != buf.DataType() {
		return nil, fmt.Errorf("%w: sample model %v, buffer %v", ErrInvalidLayout, sm.DataType(), buf.DataType())
	}
	return &Raster{
		bounds:      image.Rect(origin.X, origin.Y, origin.X+sm.Width(), origin.Y+sm.Height()),
		translate:   origin,
		sampleModel: sm,
		dataBuffer:  buf,
	}, nil
}

// CreateRaster allocates a zeroed raster.
func CreateRaster(sm SampleModel, origin image.Point) *Raster {
	r, err := NewRaster(sm, sm.NewDataBuffer(), origin)
	if err != nil {
		panic(err) // sm always builds a buffer of its own type
	}
	return r
}

func (r *Raster) Bounds() image.Rectangle  { return r.bounds }
func (r *Raster) SampleModel() SampleModel { return r.sampleModel }
func (r *Raster) DataBuffer() DataBuffer   { return r.dataBuffer }
func (r *Raster) NumBands() int            { return r.sampleModel.NumBands() }

// SampleModelTranslate returns the image position of the sample model's
// (0, 0). Sample model coordinates are image coordinates minus this point.
func (r *Raster) SampleModelTranslate() image.Point { return r.translate }

// Sample returns the sample at image coordinates (x, y).
func (r *Raster) Sample(x, y, b int) int {
	return r.sampleModel.Sample(x-r.translate.X, y-r.translate.Y, b, r.dataBuffer)
}

func (r *Raster) SampleDouble(x, y, b int) float64 {
	return r.sampleModel.SampleDouble(x-r.translate.X, y-r.translate.Y, b, r.dataBuffer)
}

func (r *Raster) SetSample(x, y, b, v int) {
	r.sampleModel.SetSample(x-r.translate.X, y-r.translate.Y, b, v, r.dataBuffer)
}

func (r *Raster) SetSampleDouble(x, y, b int, v float64) {
	r.sampleModel.SetSampleDouble(x-r.translate.X, y-r.translate.Y, b, v, r.dataBuffer)
}
