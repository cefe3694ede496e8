package raster

import (
	"fmt"
	"strings"
)

// DataType identifies the element type of a data buffer.
type DataType uint8

const (
	TypeUndefined DataType = iota
	TypeByte               // uint8
	TypeUShort             // uint16
	TypeShort              // int16
	TypeInt                // int32
	TypeFloat              // float32
	TypeDouble             // float64
)

var dataTypeNames = [...]string{
	TypeUndefined: "undefined",
	TypeByte:      "byte",
	TypeUShort:    "ushort",
	TypeShort:     "short",
	TypeInt:       "int",
	TypeFloat:     "float",
	TypeDouble:    "double",
}

var dataTypeSizes = [...]int{
	TypeUndefined: 0,
	TypeByte:      1,
	TypeUShort:    2,
	TypeShort:     2,
	TypeInt:       4,
	TypeFloat:     4,
	TypeDouble:    8,
}

func (t DataType) Valid() bool {
	return t > TypeUndefined && t <= TypeDouble
}

// Size returns the size of one element in bytes, or 0 for TypeUndefined.
func (t DataType) Size() int {
	if !t.Valid() {
		return 0
	}
	return dataTypeSizes[t]
}

func (t DataType) String() string {
	if int(t) >= len(dataTypeNames) {
		return fmt.Sprintf("DataType(%d)", uint8(t))
	}
	return dataTypeNames[t]
}

func (t DataType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataType, t)
	}
	return []byte(t.String()), nil
}

func (t *DataType) UnmarshalText(text []byte) error {
	parsed, err := ParseDataType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseDataType parses names produced by DataType.String.
func ParseDataType(name string) (DataType, error) {
	for t := TypeByte; t <= TypeDouble; t++ {
		if strings.EqualFold(name, dataTypeNames[t]) {
			return t, nil
		}
	}
	return TypeUndefined, fmt.Errorf("%w: %q", ErrInvalidDataType, name)
}

// Sample is the set of element types a Buffer can hold.
type Sample interface {
	uint8 | uint16 | int16 | int32 | float32 | float64
}

// DataTypeOf returns the DataType stored by a Buffer[T].
func DataTypeOf[T Sample]() DataType {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return TypeByte
	case uint16:
		return TypeUShort
	case int16:
		return TypeShort
	case int32:
		return TypeInt
	case float32:
		return TypeFloat
	case float64:
		return TypeDouble
	}
	return TypeUndefined
}

// FromFloat64 converts v to T. Integer element types truncate toward zero
// and then wrap, so 300.7 stored as a byte becomes 44.
func FromFloat64[T Sample](v float64) T {
	var zero T
	switch any(zero).(type) {
	case float32, float64:
		return T(v)
	}
	return T(int64(v))
}
