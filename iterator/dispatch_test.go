package iterator

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/eak1mov/go-libraster/internal"
	"github.com/eak1mov/go-libraster/raster"
	"github.com/stretchr/testify/require"
)

func requireComponent[T raster.Sample](t *testing.T, img raster.WritableImage) {
	t.Helper()

	require.IsType(t, (*componentRandom[T])(nil), NewRandom(img, All))
	require.IsType(t, (*writableComponentRandom[T])(nil), NewWritableRandom(img, All))
	require.IsType(t, (*componentRook[T])(nil), NewRect(img, All))
	require.IsType(t, (*componentRook[T])(nil), NewRook(img, All))

	w := NewWritableRook(img, All)
	require.IsType(t, (*writableComponentRook[T])(nil), w)
	w.Done()
}

func TestDispatch(t *testing.T) {
	for _, layout := range []string{"interleaved", "banded", "component", "offset"} {
		requireComponent[uint8](t, internal.NewTestImage(t, raster.TypeByte, layout))
		requireComponent[uint16](t, internal.NewTestImage(t, raster.TypeUShort, layout))
		requireComponent[int16](t, internal.NewTestImage(t, raster.TypeShort, layout))
		requireComponent[int32](t, internal.NewTestImage(t, raster.TypeInt, layout))
		requireComponent[float32](t, internal.NewTestImage(t, raster.TypeFloat, layout))
		requireComponent[float64](t, internal.NewTestImage(t, raster.TypeDouble, layout))
	}
}

func TestDispatchFallback(t *testing.T) {
	var logs bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	img := internal.NewTestImage(t, raster.TypeInt, "packed")

	require.IsType(t, (*fallbackRandom)(nil), NewRandom(img, All))
	require.IsType(t, (*writableFallbackRandom)(nil), NewWritableRandom(img, All))
	require.IsType(t, (*fallbackRook)(nil), NewRect(img, All))

	w := NewWritableRect(img, All)
	require.IsType(t, (*writableFallbackRook)(nil), w)
	w.Done()

	require.Equal(t, 4, strings.Count(logs.String(), "PackedSampleModel"))
	require.Contains(t, logs.String(), "iterator=rook")
	require.Contains(t, logs.String(), "iterator=random")
}

func TestLeaseSource(t *testing.T) {
	img := internal.NewTestImage(t, raster.TypeInt, "banded")
	src := &leaseSource{img: img}

	r := src.tile(1, 1)
	require.Same(t, r, src.tile(1, 1))
	require.True(t, img.HasTileWriters(1, 1))

	src.tile(2, 1)
	require.False(t, img.HasTileWriters(1, 1))
	require.True(t, img.HasTileWriters(2, 1))
	require.Equal(t, 1, img.WritableTileCount())

	src.done()
	src.done()
	require.Equal(t, 0, img.WritableTileCount())
}
