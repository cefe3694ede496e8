package raster_test

import (
	"errors"
	"testing"

	"github.com/eak1mov/go-libraster/raster"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDataType(t *testing.T) {
	for _, tc := range []struct {
		dataType raster.DataType
		name     string
		size     int
	}{
		{raster.TypeByte, "byte", 1},
		{raster.TypeUShort, "ushort", 2},
		{raster.TypeShort, "short", 2},
		{raster.TypeInt, "int", 4},
		{raster.TypeFloat, "float", 4},
		{raster.TypeDouble, "double", 8},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.name, tc.dataType.String())
			require.Equal(t, tc.size, tc.dataType.Size())

			parsed, err := raster.ParseDataType(tc.name)
			require.NoError(t, err)
			require.Equal(t, tc.dataType, parsed)
		})
	}

	_, err := raster.ParseDataType("complex")
	require.Truef(t, errors.Is(err, raster.ErrInvalidDataType), "%v", err)

	_, err = raster.TypeUndefined.MarshalText()
	require.Truef(t, errors.Is(err, raster.ErrInvalidDataType), "%v", err)
}

func TestDataTypeOf(t *testing.T) {
	require.Equal(t, raster.TypeByte, raster.DataTypeOf[uint8]())
	require.Equal(t, raster.TypeUShort, raster.DataTypeOf[uint16]())
	require.Equal(t, raster.TypeShort, raster.DataTypeOf[int16]())
	require.Equal(t, raster.TypeInt, raster.DataTypeOf[int32]())
	require.Equal(t, raster.TypeFloat, raster.DataTypeOf[float32]())
	require.Equal(t, raster.TypeDouble, raster.DataTypeOf[float64]())
}

func TestBufferWrap(t *testing.T) {
	buf := raster.NewBuffer[uint8](4, 1)

	buf.SetElem(0, 0, 300)
	if got, want := buf.Elem(0, 0), 44; got != want {
		t.Errorf("Elem after SetElem(300) = %d, want = %d", got, want)
	}

	buf.SetElemDouble(0, 1, 300.7)
	if got, want := buf.Elem(0, 1), 44; got != want {
		t.Errorf("Elem after SetElemDouble(300.7) = %d, want = %d", got, want)
	}

	buf.SetElem(0, 2, -1)
	if got, want := buf.Elem(0, 2), 255; got != want {
		t.Errorf("Elem after SetElem(-1) = %d, want = %d", got, want)
	}

	shorts := raster.NewBuffer[int16](1, 1)
	shorts.SetElem(0, 0, 40000)
	if got, want := shorts.Elem(0, 0), 40000-65536; got != want {
		t.Errorf("int16 Elem after SetElem(40000) = %d, want = %d", got, want)
	}

	floats := raster.NewBuffer[float32](1, 1)
	floats.SetElemDouble(0, 0, 1.5)
	if got, want := floats.ElemDouble(0, 0), 1.5; got != want {
		t.Errorf("float32 ElemDouble = %v, want = %v", got, want)
	}
}

func TestBufferFromBanks(t *testing.T) {
	banks := [][]uint16{{9, 9, 1, 2, 3}, {4, 5, 6}}
	buf, err := raster.NewBufferFromBanks(banks, []int{2, 0})
	require.NoError(t, err)

	require.Equal(t, 2, buf.NumBanks())
	require.Equal(t, 3, buf.Size())
	require.Equal(t, 2, buf.Offset(0))

	var got []int
	for bank := range buf.NumBanks() {
		for i := range buf.Size() {
			got = append(got, buf.Elem(bank, i))
		}
	}
	if want := []int{1, 2, 3, 4, 5, 6}; !cmp.Equal(got, want) {
		t.Errorf("elements = %v, want = %v", got, want)
	}

	_, err = raster.NewBufferFromBanks(banks, []int{6, 0})
	require.Truef(t, errors.Is(err, raster.ErrInvalidLayout), "%v", err)

	_, err = raster.NewBufferFromBanks[uint8](nil, nil)
	require.Truef(t, errors.Is(err, raster.ErrInvalidLayout), "%v", err)
}

func TestNewDataBuffer(t *testing.T) {
	buf, err := raster.NewDataBuffer(raster.TypeShort, 6, 2)
	require.NoError(t, err)
	require.Equal(t, raster.TypeShort, buf.DataType())
	require.IsType(t, (*raster.Buffer[int16])(nil), buf)

	_, err = raster.NewDataBuffer(raster.TypeUndefined, 6, 2)
	require.Truef(t, errors.Is(err, raster.ErrInvalidDataType), "%v", err)
}
