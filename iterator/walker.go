package iterator

import (
	"fmt"
	"image"

	"github.com/eak1mov/go-libraster/raster"
)

type binder interface {
	bind(r *raster.Raster)
}

// walker holds the position of a sequential cursor. Tiles are refetched only
// when the position crosses a tile boundary, and only once both x and y are
// inside the cursor's rectangle; positions past either end never touch the
// tile source.
type walker struct {
	src      tileSource
	binder   binder
	layout   raster.TileLayout
	numBands int

	firstX, lastX int
	firstY, lastY int
	x, y, b       int

	// offset is y*lineStep + x*pixelStep, maintained on every move. Steps
	// are zero for layouts addressed through the sample model.
	offset    int
	pixelStep int
	lineStep  int

	tileX, tileY                 int
	prevXBoundary, nextXBoundary int
	prevYBoundary, nextYBoundary int

	// stale is set while the bound tile is not (tileX, tileY).
	stale bool
}

// init positions the walker on the first pixel of bounds and binds its tile.
// Empty bounds bind nothing.
func (w *walker) init(src tileSource, b binder, img raster.Image, bounds image.Rectangle, pixelStep, lineStep int) {
	*w = walker{
		src:       src,
		binder:    b,
		layout:    img.TileLayout(),
		numBands:  img.SampleModel().NumBands(),
		firstX:    bounds.Min.X,
		lastX:     bounds.Max.X - 1,
		firstY:    bounds.Min.Y,
		lastY:     bounds.Max.Y - 1,
		x:         bounds.Min.X,
		y:         bounds.Min.Y,
		pixelStep: pixelStep,
		lineStep:  lineStep,
	}
	w.offset = w.y*lineStep + w.x*pixelStep
	if bounds.Empty() {
		return
	}
	w.tileX = raster.XToTileX(w.x, w.layout.GridXOffset, w.layout.TileWidth)
	w.tileY = raster.XToTileX(w.y, w.layout.GridYOffset, w.layout.TileHeight)
	w.setXBoundaries()
	w.setYBoundaries()
	w.stale = true
	w.refresh()
}

func (w *walker) setXBoundaries() {
	start := raster.TileXToX(w.tileX, w.layout.GridXOffset, w.layout.TileWidth)
	w.prevXBoundary = max(start, w.firstX)
	w.nextXBoundary = min(start+w.layout.TileWidth-1, w.lastX)
}

func (w *walker) setYBoundaries() {
	start := raster.TileXToX(w.tileY, w.layout.GridYOffset, w.layout.TileHeight)
	w.prevYBoundary = max(start, w.firstY)
	w.nextYBoundary = min(start+w.layout.TileHeight-1, w.lastY)
}

// refresh binds (tileX, tileY) if it changed and the position is inside the
// rectangle on both axes.
func (w *walker) refresh() {
	if !w.stale || w.FinishedLines() || w.FinishedPixels() {
		return
	}
	w.binder.bind(w.src.tile(w.tileX, w.tileY))
	w.stale = false
}

func (w *walker) setX(x int) {
	w.offset += (x - w.x) * w.pixelStep
	w.x = x
	if x < w.firstX || x > w.lastX {
		return
	}
	if x < w.prevXBoundary || x > w.nextXBoundary {
		w.tileX = raster.XToTileX(x, w.layout.GridXOffset, w.layout.TileWidth)
		w.setXBoundaries()
		w.stale = true
	}
	w.refresh()
}

func (w *walker) setY(y int) {
	w.offset += (y - w.y) * w.lineStep
	w.y = y
	if y < w.firstY || y > w.lastY {
		return
	}
	if y < w.prevYBoundary || y > w.nextYBoundary {
		w.tileY = raster.XToTileX(y, w.layout.GridYOffset, w.layout.TileHeight)
		w.setYBoundaries()
		w.stale = true
	}
	w.refresh()
}

func jumpTarget(pos, n, first, last int, axis string) (int, error) {
	target := pos + n
	if target < first || target > last {
		return pos, fmt.Errorf("%w: %s %d not in [%d, %d]", ErrOutOfBounds, axis, target, first, last)
	}
	return target, nil
}

func (w *walker) StartLines() { w.setY(w.firstY) }
func (w *walker) EndLines()   { w.setY(w.lastY) }
func (w *walker) NextLine()   { w.setY(w.y + 1) }
func (w *walker) PrevLine()   { w.setY(w.y - 1) }

func (w *walker) NextLineDone() bool {
	w.NextLine()
	return w.y > w.lastY
}

func (w *walker) PrevLineDone() bool {
	w.PrevLine()
	return w.y < w.firstY
}

func (w *walker) JumpLines(n int) error {
	y, err := jumpTarget(w.y, n, w.firstY, w.lastY, "line")
	if err != nil {
		return err
	}
	w.setY(y)
	return nil
}

func (w *walker) FinishedLines() bool { return w.y < w.firstY || w.y > w.lastY }

func (w *walker) StartPixels() { w.setX(w.firstX) }
func (w *walker) EndPixels()   { w.setX(w.lastX) }
func (w *walker) NextPixel()   { w.setX(w.x + 1) }
func (w *walker) PrevPixel()   { w.setX(w.x - 1) }

func (w *walker) NextPixelDone() bool {
	w.NextPixel()
	return w.x > w.lastX
}

func (w *walker) PrevPixelDone() bool {
	w.PrevPixel()
	return w.x < w.firstX
}

func (w *walker) JumpPixels(n int) error {
	x, err := jumpTarget(w.x, n, w.firstX, w.lastX, "pixel")
	if err != nil {
		return err
	}
	w.setX(x)
	return nil
}

func (w *walker) FinishedPixels() bool { return w.x < w.firstX || w.x > w.lastX }

func (w *walker) StartBands() { w.b = 0 }
func (w *walker) EndBands()   { w.b = w.numBands - 1 }
func (w *walker) NextBand()   { w.b++ }
func (w *walker) PrevBand()   { w.b-- }

func (w *walker) NextBandDone() bool {
	w.b++
	return w.b >= w.numBands
}

func (w *walker) PrevBandDone() bool {
	w.b--
	return w.b < 0
}

func (w *walker) FinishedBands() bool { return w.b < 0 || w.b >= w.numBands }

func (w *walker) Done() { w.src.done() }
