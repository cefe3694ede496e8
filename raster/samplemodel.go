package raster

import (
	"fmt"
	"slices"
)

// SampleModel describes how the samples of a width x height block of pixels
// are laid out in a DataBuffer. Coordinates passed to SampleModel methods are
// local to the model: (0, 0) is its first pixel.
type SampleModel interface {
	Width() int
	Height() int
	NumBands() int
	DataType() DataType

	Sample(x, y, band int, buf DataBuffer) int
	SampleFloat(x, y, band int, buf DataBuffer) float32
	SampleDouble(x, y, band int, buf DataBuffer) float64
	SetSample(x, y, band, v int, buf DataBuffer)
	SetSampleFloat(x, y, band int, v float32, buf DataBuffer)
	SetSampleDouble(x, y, band int, v float64, buf DataBuffer)

	// NewDataBuffer allocates a zeroed buffer large enough for the model.
	NewDataBuffer() DataBuffer
}

// ComponentSampleModel stores each sample in its own buffer element. The
// sample of band b at (x, y) lives in bank BankIndex(b) at
// y*ScanlineStride() + x*PixelStride() + BandOffset(b).
//
// Pixel-interleaved and banded layouts are both component layouts.
type ComponentSampleModel struct {
	dataType       DataType
	width          int
	height         int
	pixelStride    int
	scanlineStride int
	bankIndices    []int
	bandOffsets    []int
	numBanks       int
}

var _ SampleModel = (*ComponentSampleModel)(nil)

func NewComponentSampleModel(dataType DataType, width, height, pixelStride, scanlineStride int, bankIndices, bandOffsets []int) (*ComponentSampleModel, error) {
	if !dataType.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataType, dataType)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidLayout, width, height)
	}
	if pixelStride < 0 || scanlineStride < 0 {
		return nil, fmt.Errorf("%w: negative stride", ErrInvalidLayout)
	}
	if len(bandOffsets) == 0 || len(bandOffsets) != len(bankIndices) {
		return nil, fmt.Errorf("%w: %d band offsets for %d bank indices", ErrInvalidLayout, len(bandOffsets), len(bankIndices))
	}
	numBanks := 0
	for b := range bandOffsets {
		if bankIndices[b] < 0 || bandOffsets[b] < 0 {
			return nil, fmt.Errorf("%w: band %d has negative bank or offset", ErrInvalidLayout, b)
		}
		numBanks = max(numBanks, bankIndices[b]+1)
	}
	return &ComponentSampleModel{
		dataType:       dataType,
		width:          width,
		height:         height,
		pixelStride:    pixelStride,
		scanlineStride: scanlineStride,
		bankIndices:    slices.Clone(bankIndices),
		bandOffsets:    slices.Clone(bandOffsets),
		numBanks:       numBanks,
	}, nil
}

// NewPixelInterleavedSampleModel stores all bands of a pixel next to each
// other in a single bank.
func NewPixelInterleavedSampleModel(dataType DataType, width, height, numBands int) (*ComponentSampleModel, error) {
	if numBands <= 0 {
		return nil, fmt.Errorf("%w: %d bands", ErrInvalidLayout, numBands)
	}
	bandOffsets := make([]int, numBands)
	for b := range bandOffsets {
		bandOffsets[b] = b
	}
	return NewComponentSampleModel(dataType, width, height, numBands, width*numBands, make([]int, numBands), bandOffsets)
}

// NewBandedSampleModel stores every band in a bank of its own.
func NewBandedSampleModel(dataType DataType, width, height, numBands int) (*ComponentSampleModel, error) {
	if numBands <= 0 {
		return nil, fmt.Errorf("%w: %d bands", ErrInvalidLayout, numBands)
	}
	bankIndices := make([]int, numBands)
	for b := range bankIndices {
		bankIndices[b] = b
	}
	return NewComponentSampleModel(dataType, width, height, 1, width, bankIndices, make([]int, numBands))
}

func (m *ComponentSampleModel) Width() int          { return m.width }
func (m *ComponentSampleModel) Height() int         { return m.height }
func (m *ComponentSampleModel) NumBands() int       { return len(m.bandOffsets) }
func (m *ComponentSampleModel) NumBanks() int       { return m.numBanks }
func (m *ComponentSampleModel) DataType() DataType  { return m.dataType }
func (m *ComponentSampleModel) PixelStride() int    { return m.pixelStride }
func (m *ComponentSampleModel) ScanlineStride() int { return m.scanlineStride }
func (m *ComponentSampleModel) BandOffset(b int) int {
	return m.bandOffsets[b]
}
func (m *ComponentSampleModel) BankIndex(b int) int {
	return m.bankIndices[b]
}
func (m *ComponentSampleModel) BandOffsets() []int { return slices.Clone(m.bandOffsets) }
func (m *ComponentSampleModel) BankIndices() []int { return slices.Clone(m.bankIndices) }

// Banded reports whether every band has its own bank and the pixel stride is 1.
func (m *ComponentSampleModel) Banded() bool {
	if m.pixelStride != 1 || m.scanlineStride != m.width {
		return false
	}
	for b, bank := range m.bankIndices {
		if bank != b || m.bandOffsets[b] != 0 {
			return false
		}
	}
	return true
}

// PixelInterleaved reports whether the model has the layout produced by
// NewPixelInterleavedSampleModel.
func (m *ComponentSampleModel) PixelInterleaved() bool {
	n := len(m.bandOffsets)
	if m.pixelStride != n || m.scanlineStride != m.width*n {
		return false
	}
	for b, bank := range m.bankIndices {
		if bank != 0 || m.bandOffsets[b] != b {
			return false
		}
	}
	return true
}

// Offset returns the element index of (x, y, b) within its bank.
func (m *ComponentSampleModel) Offset(x, y, b int) int {
	return y*m.scanlineStride + x*m.pixelStride + m.bandOffsets[b]
}

func (m *ComponentSampleModel) Sample(x, y, b int, buf DataBuffer) int {
	return buf.Elem(m.bankIndices[b], m.Offset(x, y, b))
}

func (m *ComponentSampleModel) SampleFloat(x, y, b int, buf DataBuffer) float32 {
	return buf.ElemFloat(m.bankIndices[b], m.Offset(x, y, b))
}

func (m *ComponentSampleModel) SampleDouble(x, y, b int, buf DataBuffer) float64 {
	return buf.ElemDouble(m.bankIndices[b], m.Offset(x, y, b))
}

func (m *ComponentSampleModel) SetSample(x, y, b, v int, buf DataBuffer) {
	buf.SetElem(m.bankIndices[b], m.Offset(x, y, b), v)
}

func (m *ComponentSampleModel) SetSampleFloat(x, y, b int, v float32, buf DataBuffer) {
	buf.SetElemFloat(m.bankIndices[b], m.Offset(x, y, b), v)
}

func (m *ComponentSampleModel) SetSampleDouble(x, y, b int, v float64, buf DataBuffer) {
	buf.SetElemDouble(m.bankIndices[b], m.Offset(x, y, b), v)
}

// bufferSize is one past the largest element index the model can address.
func (m *ComponentSampleModel) bufferSize() int {
	return (m.height-1)*m.scanlineStride + (m.width-1)*m.pixelStride + slices.Max(m.bandOffsets) + 1
}

func (m *ComponentSampleModel) NewDataBuffer() DataBuffer {
	buf, err := NewDataBuffer(m.dataType, m.bufferSize(), m.numBanks)
	if err != nil {
		panic(err) // dataType is validated by the constructor
	}
	return buf
}
