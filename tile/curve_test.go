package tile_test

import (
	"errors"
	"image"
	"slices"
	"testing"

	"github.com/eak1mov/go-libraster/tile"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCurve(t *testing.T) {
	for _, grid := range []image.Rectangle{
		image.Rect(0, 0, 1, 1),
		image.Rect(0, 0, 2, 2),
		image.Rect(-3, 1, 2, 4),
		image.Rect(10, 10, 17, 11),
	} {
		t.Run(grid.String(), func(t *testing.T) {
			curve, err := tile.NewCurve(grid)
			require.NoError(t, err)

			ids := slices.Collect(curve.IDs())
			require.Len(t, ids, grid.Dx()*grid.Dy())

			seen := make(map[tile.ID]bool)
			var lastCode uint64
			for i, id := range ids {
				require.False(t, seen[id], "duplicate %v", id)
				seen[id] = true

				code, err := curve.Encode(id)
				require.NoError(t, err)
				if i > 0 && code <= lastCode {
					t.Errorf("Encode(%v) = %d, not after %d", id, code, lastCode)
				}
				lastCode = code

				decoded, err := curve.Decode(code)
				require.NoError(t, err)
				if got, want := decoded, id; !cmp.Equal(got, want) {
					t.Errorf("Decode(Encode(%v)) = %v, want = %v", id, got, want)
				}
			}
		})
	}
}

func TestCurveErrors(t *testing.T) {
	_, err := tile.NewCurve(image.Rectangle{})
	require.Truef(t, errors.Is(err, tile.ErrOutOfGrid), "%v", err)

	curve, err := tile.NewCurve(image.Rect(0, 0, 3, 1))
	require.NoError(t, err)

	_, err = curve.Encode(tile.ID{X: 3, Y: 0})
	require.Truef(t, errors.Is(err, tile.ErrOutOfGrid), "%v", err)

	_, err = curve.Decode(1 << 20)
	require.Truef(t, errors.Is(err, tile.ErrOutOfGrid), "%v", err)
}
