package raster

import "fmt"

// DataBuffer is the raw sample storage of one tile. Elements are addressed
// by bank and by index relative to the bank offset.
type DataBuffer interface {
	DataType() DataType
	NumBanks() int
	// Size returns the number of addressable elements per bank.
	Size() int
	// Offset returns the index of element 0 of the bank in its backing slice.
	Offset(bank int) int

	Elem(bank, i int) int
	SetElem(bank, i, v int)
	ElemFloat(bank, i int) float32
	SetElemFloat(bank, i int, v float32)
	ElemDouble(bank, i int) float64
	SetElemDouble(bank, i int, v float64)
}

// Buffer is a DataBuffer holding one or more banks of T.
type Buffer[T Sample] struct {
	banks   [][]T
	offsets []int
	size    int
}

var (
	_ DataBuffer = (*Buffer[uint8])(nil)
	_ DataBuffer = (*Buffer[float64])(nil)
)

// NewBuffer allocates numBanks zeroed banks of size elements each.
func NewBuffer[T Sample](size, numBanks int) *Buffer[T] {
	banks := make([][]T, numBanks)
	for i := range banks {
		banks[i] = make([]T, size)
	}
	return &Buffer[T]{
		banks:   banks,
		offsets: make([]int, numBanks),
		size:    size,
	}
}

// NewBufferFromBanks wraps existing banks. A nil offsets slice means all
// banks start at index 0. Size is the smallest bank length after its offset.
func NewBufferFromBanks[T Sample](banks [][]T, offsets []int) (*Buffer[T], error) {
	if len(banks) == 0 {
		return nil, fmt.Errorf("%w: no banks", ErrInvalidLayout)
	}
	if offsets == nil {
		offsets = make([]int, len(banks))
	}
	if len(offsets) != len(banks) {
		return nil, fmt.Errorf("%w: %d offsets for %d banks", ErrInvalidLayout, len(offsets), len(banks))
	}
	size := -1
	for i, bank := range banks {
		if offsets[i] < 0 || offsets[i] > len(bank) {
			return nil, fmt.Errorf("%w: bank %d offset %d out of range", ErrInvalidLayout, i, offsets[i])
		}
		if n := len(bank) - offsets[i]; size < 0 || n < size {
			size = n
		}
	}
	return &Buffer[T]{banks: banks, offsets: offsets, size: size}, nil
}

// NewDataBuffer allocates a buffer for a runtime data type.
func NewDataBuffer(dataType DataType, size, numBanks int) (DataBuffer, error) {
	switch dataType {
	case TypeByte:
		return NewBuffer[uint8](size, numBanks), nil
	case TypeUShort:
		return NewBuffer[uint16](size, numBanks), nil
	case TypeShort:
		return NewBuffer[int16](size, numBanks), nil
	case TypeInt:
		return NewBuffer[int32](size, numBanks), nil
	case TypeFloat:
		return NewBuffer[float32](size, numBanks), nil
	case TypeDouble:
		return NewBuffer[float64](size, numBanks), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrInvalidDataType, dataType)
}

func (b *Buffer[T]) DataType() DataType { return DataTypeOf[T]() }
func (b *Buffer[T]) NumBanks() int      { return len(b.banks) }
func (b *Buffer[T]) Size() int          { return b.size }
func (b *Buffer[T]) Offset(bank int) int {
	return b.offsets[bank]
}

// Bank returns the whole backing slice of a bank, including elements before
// its offset. Writes through it are visible to every user of the buffer.
func (b *Buffer[T]) Bank(bank int) []T {
	return b.banks[bank]
}

func (b *Buffer[T]) Elem(bank, i int) int {
	return int(b.banks[bank][b.offsets[bank]+i])
}

func (b *Buffer[T]) SetElem(bank, i, v int) {
	b.banks[bank][b.offsets[bank]+i] = T(v)
}

func (b *Buffer[T]) ElemFloat(bank, i int) float32 {
	return float32(b.banks[bank][b.offsets[bank]+i])
}

func (b *Buffer[T]) SetElemFloat(bank, i int, v float32) {
	b.banks[bank][b.offsets[bank]+i] = FromFloat64[T](float64(v))
}

func (b *Buffer[T]) ElemDouble(bank, i int) float64 {
	return float64(b.banks[bank][b.offsets[bank]+i])
}

func (b *Buffer[T]) SetElemDouble(bank, i int, v float64) {
	b.banks[bank][b.offsets[bank]+i] = FromFloat64[T](v)
}
