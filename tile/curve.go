package tile

import (
	"errors"
	"fmt"
	"image"
	"iter"
	"math/bits"

	"github.com/google/hilbert"
)

var ErrOutOfGrid = errors.New("libraster: tile outside grid")

// Curve orders the tiles of a grid along a Hilbert curve, so that tiles
// close on the curve are close in the image.
type Curve struct {
	grid image.Rectangle
	side int
	h    *hilbert.Hilbert
}

// NewCurve creates a curve covering the tile index range grid.
func NewCurve(grid image.Rectangle) (*Curve, error) {
	if grid.Empty() {
		return nil, fmt.Errorf("%w: empty grid %v", ErrOutOfGrid, grid)
	}
	side := max(grid.Dx(), grid.Dy())
	n := 1 << bits.Len(uint(side-1))
	h, err := hilbert.NewHilbert(n)
	if err != nil {
		return nil, err
	}
	return &Curve{grid: grid, side: n, h: h}, nil
}

func (c *Curve) Grid() image.Rectangle { return c.grid }

func (c *Curve) Encode(tileID ID) (uint64, error) {
	if !image.Pt(tileID.X, tileID.Y).In(c.grid) {
		return 0, fmt.Errorf("%w: %v not in %v", ErrOutOfGrid, tileID, c.grid)
	}
	code, err := c.h.MapInverse(tileID.X-c.grid.Min.X, tileID.Y-c.grid.Min.Y)
	if err != nil {
		return 0, err
	}
	return uint64(code), nil
}

func (c *Curve) Decode(code uint64) (ID, error) {
	x, y, err := c.h.Map(int(code))
	if err != nil {
		return ID{}, fmt.Errorf("%w: code %d: %w", ErrOutOfGrid, code, err)
	}
	tileID := ID{X: x + c.grid.Min.X, Y: y + c.grid.Min.Y}
	if !image.Pt(tileID.X, tileID.Y).In(c.grid) {
		return ID{}, fmt.Errorf("%w: code %d maps to %v", ErrOutOfGrid, code, tileID)
	}
	return tileID, nil
}

// IDs yields every tile of the grid in curve order.
func (c *Curve) IDs() iter.Seq[ID] {
	return func(yield func(ID) bool) {
		for code := range c.side * c.side {
			x, y, _ := c.h.Map(code)
			tileID := ID{X: x + c.grid.Min.X, Y: y + c.grid.Min.Y}
			if !image.Pt(tileID.X, tileID.Y).In(c.grid) {
				continue
			}
			if !yield(tileID) {
				return
			}
		}
	}
}
