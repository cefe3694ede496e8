package raster

import (
	"fmt"
	"math/bits"
	"slices"
)

// PackedSampleModel stores all bands of a pixel in one integral element,
// each band occupying the bits of its mask. Samples are unsigned.
type PackedSampleModel struct {
	dataType       DataType
	width          int
	height         int
	scanlineStride int
	masks          []uint32
	shifts         []int
}

var _ SampleModel = (*PackedSampleModel)(nil)

// NewPackedSampleModel creates a packed layout over byte, ushort or int
// elements. Masks must be non-zero and fit the element size.
func NewPackedSampleModel(dataType DataType, width, height int, masks []uint32) (*PackedSampleModel, error) {
	switch dataType {
	case TypeByte, TypeUShort, TypeInt:
	default:
		return nil, fmt.Errorf("%w: packed layout over %v", ErrInvalidDataType, dataType)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidLayout, width, height)
	}
	if len(masks) == 0 {
		return nil, fmt.Errorf("%w: no band masks", ErrInvalidLayout)
	}
	elemBits := dataType.Size() * 8
	shifts := make([]int, len(masks))
	for b, mask := range masks {
		if mask == 0 || bits.Len32(mask) > elemBits {
			return nil, fmt.Errorf("%w: band %d mask %#x does not fit %v", ErrInvalidLayout, b, mask, dataType)
		}
		shifts[b] = bits.TrailingZeros32(mask)
	}
	return &PackedSampleModel{
		dataType:       dataType,
		width:          width,
		height:         height,
		scanlineStride: width,
		masks:          slices.Clone(masks),
		shifts:         shifts,
	}, nil
}

func (m *PackedSampleModel) Width() int          { return m.width }
func (m *PackedSampleModel) Height() int         { return m.height }
func (m *PackedSampleModel) NumBands() int       { return len(m.masks) }
func (m *PackedSampleModel) DataType() DataType  { return m.dataType }
func (m *PackedSampleModel) ScanlineStride() int { return m.scanlineStride }
func (m *PackedSampleModel) Masks() []uint32     { return slices.Clone(m.masks) }

func (m *PackedSampleModel) Sample(x, y, b int, buf DataBuffer) int {
	word := uint32(buf.Elem(0, y*m.scanlineStride+x))
	return int((word & m.masks[b]) >> m.shifts[b])
}

func (m *PackedSampleModel) SampleFloat(x, y, b int, buf DataBuffer) float32 {
	return float32(m.Sample(x, y, b, buf))
}

func (m *PackedSampleModel) SampleDouble(x, y, b int, buf DataBuffer) float64 {
	return float64(m.Sample(x, y, b, buf))
}

// SetSample keeps the low bits of v that fit the band mask.
func (m *PackedSampleModel) SetSample(x, y, b, v int, buf DataBuffer) {
	i := y*m.scanlineStride + x
	word := uint32(buf.Elem(0, i))
	word = word&^m.masks[b] | (uint32(v)<<m.shifts[b])&m.masks[b]
	buf.SetElem(0, i, int(word))
}

func (m *PackedSampleModel) SetSampleFloat(x, y, b int, v float32, buf DataBuffer) {
	m.SetSample(x, y, b, int(v), buf)
}

func (m *PackedSampleModel) SetSampleDouble(x, y, b int, v float64, buf DataBuffer) {
	m.SetSample(x, y, b, int(v), buf)
}

func (m *PackedSampleModel) NewDataBuffer() DataBuffer {
	buf, err := NewDataBuffer(m.dataType, m.scanlineStride*m.height, 1)
	if err != nil {
		panic(err)
	}
	return buf
}
