package raster_test

import (
	"errors"
	"image"
	"testing"

	"github.com/eak1mov/go-libraster/raster"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestPixelInterleavedSampleModel(t *testing.T) {
	sm, err := raster.NewPixelInterleavedSampleModel(raster.TypeByte, 3, 2, 3)
	require.NoError(t, err)

	require.True(t, sm.PixelInterleaved())
	require.False(t, sm.Banded())
	require.Equal(t, 3, sm.PixelStride())
	require.Equal(t, 9, sm.ScanlineStride())
	require.Equal(t, 1, sm.NumBanks())
	require.Equal(t, 1*9+2*3+1, sm.Offset(2, 1, 1))

	buf := sm.NewDataBuffer()
	require.Equal(t, 18, buf.Size())

	sm.SetSample(2, 1, 1, 7, buf)
	require.Equal(t, 7, buf.Elem(0, 16))
	require.Equal(t, 7, sm.Sample(2, 1, 1, buf))
}

func TestBandedSampleModel(t *testing.T) {
	sm, err := raster.NewBandedSampleModel(raster.TypeFloat, 2, 2, 2)
	require.NoError(t, err)

	require.True(t, sm.Banded())
	require.False(t, sm.PixelInterleaved())
	require.Equal(t, 2, sm.NumBanks())

	buf := sm.NewDataBuffer()
	require.Equal(t, 4, buf.Size())
	require.Equal(t, 2, buf.NumBanks())

	sm.SetSampleDouble(1, 1, 1, 2.5, buf)
	require.Equal(t, float32(2.5), buf.ElemFloat(1, 3))
	require.Equal(t, 2.5, sm.SampleDouble(1, 1, 1, buf))
	require.Equal(t, 0.0, sm.SampleDouble(1, 1, 0, buf))
}

func TestComponentSampleModelErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		fn   func() error
		want error
	}{
		{"undefined type", func() error {
			_, err := raster.NewComponentSampleModel(raster.TypeUndefined, 1, 1, 1, 1, []int{0}, []int{0})
			return err
		}, raster.ErrInvalidDataType},
		{"zero size", func() error {
			_, err := raster.NewComponentSampleModel(raster.TypeByte, 0, 1, 1, 1, []int{0}, []int{0})
			return err
		}, raster.ErrInvalidLayout},
		{"band count", func() error {
			_, err := raster.NewComponentSampleModel(raster.TypeByte, 1, 1, 1, 1, []int{0, 0}, []int{0})
			return err
		}, raster.ErrInvalidLayout},
		{"negative offset", func() error {
			_, err := raster.NewComponentSampleModel(raster.TypeByte, 1, 1, 1, 1, []int{0}, []int{-1})
			return err
		}, raster.ErrInvalidLayout},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.fn()
			require.Truef(t, errors.Is(err, tc.want), "%v", err)
		})
	}
}

func TestPackedSampleModel(t *testing.T) {
	sm, err := raster.NewPackedSampleModel(raster.TypeUShort, 2, 1, []uint32{0xf800, 0x07e0, 0x001f})
	require.NoError(t, err)

	buf := sm.NewDataBuffer()
	sm.SetSample(1, 0, 0, 31, buf)
	sm.SetSample(1, 0, 1, 63, buf)
	sm.SetSample(1, 0, 2, 1, buf)
	require.Equal(t, 0xffe1, buf.Elem(0, 1))

	sm.SetSample(1, 0, 1, 0x41, buf) // only the low six bits fit
	var got []int
	for b := range sm.NumBands() {
		got = append(got, sm.Sample(1, 0, b, buf))
	}
	if want := []int{31, 1, 1}; !cmp.Equal(got, want) {
		t.Errorf("samples = %v, want = %v", got, want)
	}

	_, err = raster.NewPackedSampleModel(raster.TypeByte, 2, 1, []uint32{0x100})
	require.Truef(t, errors.Is(err, raster.ErrInvalidLayout), "%v", err)

	_, err = raster.NewPackedSampleModel(raster.TypeFloat, 2, 1, []uint32{0xff})
	require.Truef(t, errors.Is(err, raster.ErrInvalidDataType), "%v", err)
}

func TestRasterTranslate(t *testing.T) {
	sm, err := raster.NewPixelInterleavedSampleModel(raster.TypeShort, 2, 2, 1)
	require.NoError(t, err)

	r := raster.CreateRaster(sm, image.Pt(10, -4))
	require.Equal(t, image.Rect(10, -4, 12, -2), r.Bounds())

	r.SetSample(11, -3, 0, -5)
	require.Equal(t, -5, r.Sample(11, -3, 0))
	require.Equal(t, -5, r.DataBuffer().Elem(0, 3))

	floats := raster.NewBuffer[float32](4, 1)
	_, err = raster.NewRaster(sm, floats, image.Pt(0, 0))
	require.Truef(t, errors.Is(err, raster.ErrInvalidLayout), "%v", err)
}
